package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/profile/model"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Profile interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	Insert(ctx context.Context, payload any) (model.Profile, error)
	Update(ctx context.Context, id string, mod map[string]any) (model.Profile, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Profile]
}

func New(client postgrest.Client, otel otel.Otel) Profile {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}
