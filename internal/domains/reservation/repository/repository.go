package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/reservation/model"
	"staysync/shared"
	gDto "staysync/shared/dto"
	gRepo "staysync/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindOverlapping(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]model.Reservation, error)
	FindByExternalRef(ctx context.Context, externalRef string) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindOverlapping returns reservations that still hold inventory for the room
// type and intersect the half-open [checkIn, checkOut) range. Back-to-back
// stays sharing a boundary date do not intersect.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, roomType string, checkIn, checkOut time.Time) ([]model.Reservation, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomType,
				Operator: gDto.FilterOperatorEq,
				Value:    roomType,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{model.StatusConfirmed, model.StatusCheckedIn},
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_check_out",
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_check_in",
				Field:    model.FieldCheckOut,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) FindByExternalRef(ctx context.Context, externalRef string) (model.Reservation, error) {
	return repo.Get(ctx, shared.FilterByID(externalRef, model.FieldExternalRef, model.TableName)) //nolint:wrapcheck
}
