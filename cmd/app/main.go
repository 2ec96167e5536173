package main

import (
	"context"
	"fmt"
	"hostel/config"
	"hostel/di"
	"hostel/internal/session"
	"hostel/shared/logger"
	"hostel/shared/metrics"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultGracePeriod = 5 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := di.InitializeApp()

	unsubscribe := application.Session.OnChange(transitionLogger())
	defer unsubscribe()

	var shutdownMetrics func(context.Context) error

	if cfg.Server.MetricsAddr != "" {
		srv := metrics.Serve(cfg.Server.MetricsAddr, metrics.InitRegistry())
		shutdownMetrics = srv.Shutdown
	}

	application.Start(ctx)

	log.Info().Str("status", string(application.Session.Status())).Msg("Client core ready.")

	<-ctx.Done()

	grace := defaultGracePeriod
	if seconds := cfg.Server.Shutdown.GracePeriodSeconds; seconds > 0 {
		grace = time.Duration(seconds) * time.Second
	}

	log.Info().Dur("grace", grace).Msg("Received shutdown signal.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	group, groupCtx := errgroup.WithContext(shutdownCtx)

	group.Go(func() error {
		return application.Shutdown(groupCtx)
	})

	if shutdownMetrics != nil {
		group.Go(func() error {
			if err := shutdownMetrics(groupCtx); err != nil {
				return fmt.Errorf("stopping metrics server: %w", err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}

	log.Info().Msg("Shut down.")
}

// transitionLogger logs every change of session status along with the identity it carries.
func transitionLogger() session.Listener {
	var (
		mu       sync.Mutex
		previous session.Status
	)

	return func(state session.State) {
		mu.Lock()
		defer mu.Unlock()

		status := state.Status()
		if status == previous {
			return
		}

		previous = status

		event := log.Info().Str("status", string(status))
		if state.User != nil {
			event = event.Str("user_id", state.User.ID).Bool("profile", state.Profile != nil)
		}

		event.Msg("Session changed.")
	}
}
