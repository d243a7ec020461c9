package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/sync/model"
	gDto "staysync/shared/dto"
	gRepo "staysync/shared/repository"
)

// SyncLog is append-only. There is deliberately no update or delete.
type SyncLog interface {
	Insert(ctx context.Context, model model.SyncLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SyncLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type logRepositoryImpl struct {
	gRepo.Repository[model.SyncLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSyncLog(db *postgres.Connection, otel otel.Otel) SyncLog {
	return &logRepositoryImpl{
		Repository: gRepo.NewRepository[model.SyncLog](model.LogEntityName, model.LogTableName, model.LogFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type SyncConflict interface {
	Insert(ctx context.Context, model model.SyncConflict) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SyncConflict, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SyncConflict, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type conflictRepositoryImpl struct {
	gRepo.Repository[model.SyncConflict]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSyncConflict(db *postgres.Connection, otel otel.Otel) SyncConflict {
	return &conflictRepositoryImpl{
		Repository: gRepo.NewRepository[model.SyncConflict](model.ConflictEntityName, model.ConflictTableName, model.ConflictFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
