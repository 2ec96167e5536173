package main

import (
	"context"
	"flag"
	"hostel/config"
	"hostel/helper"
	"hostel/infras/postgres"
	"hostel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	owner := flag.String("owner", "", "email of the profile that receives the demo hotels")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)
	logger.SetLogLevel(cfg)

	if *owner == "" {
		log.Fatal().Msg("-owner is required")
	}

	db := postgres.New(cfg)
	if db == nil {
		log.Fatal().Msg("Could not connect to the store database")
	}

	defer db.Close()

	if err := helper.Seed(context.Background(), db, *owner, helper.Catalogue()); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Str("owner", *owner).Msg("Seeding finished")
}
