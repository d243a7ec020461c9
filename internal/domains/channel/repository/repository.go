package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/channel/model"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	gRepo "staysync/shared/repository"
	"staysync/shared/logger"
)

type ChannelReservation interface {
	Insert(ctx context.Context, model model.ChannelReservation) error
	Upsert(ctx context.Context, model model.ChannelReservation) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ChannelReservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ChannelReservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ChannelReservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ChannelReservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ChannelReservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const upsertQuery = `
INSERT INTO channel_reservations (
	id, agency_id, external_id, guest_name, room_type, check_in, check_out,
	adults, children, total_amount, currency, status, pms_reservation_id,
	received_at, created_at, modified_at, created_by, modified_by
) VALUES (
	:id, :agency_id, :external_id, :guest_name, :room_type, :check_in, :check_out,
	:adults, :children, :total_amount, :currency, :status, :pms_reservation_id,
	:received_at, :created_at, :modified_at, :created_by, :modified_by
)
ON CONFLICT (agency_id, external_id) DO UPDATE SET
	guest_name = EXCLUDED.guest_name,
	room_type = EXCLUDED.room_type,
	check_in = EXCLUDED.check_in,
	check_out = EXCLUDED.check_out,
	adults = EXCLUDED.adults,
	children = EXCLUDED.children,
	total_amount = EXCLUDED.total_amount,
	currency = EXCLUDED.currency,
	status = EXCLUDED.status,
	received_at = EXCLUDED.received_at,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by
RETURNING id`

// Upsert inserts the reservation or, when the (agency_id, external_id) pair
// already exists, refreshes the buffered row in place. Concurrent deliveries
// of the same booking reference race safely at the database. Returns true
// when a new row was created.
func (repo *repositoryImpl) Upsert(ctx context.Context, model model.ChannelReservation) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.channel_reservation.Upsert", constant.OtelRepositoryScopeName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertQuery)

	stmt, err := repo.db.Write.PrepareNamedContext(ctx, upsertQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare upsert (channel_reservation): %w", err)
	}
	defer stmt.Close()

	var id string
	if err := stmt.GetContext(ctx, &id, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to upsert data (channel_reservation): %w", err)
	}

	return id == model.ID, nil
}

// FilterByBookingRef narrows to the partner's own booking reference, the
// globally unique (agency_id, external_id) pair.
func FilterByBookingRef(agencyID, externalID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAgencyID,
				Operator: gDto.FilterOperatorEq,
				Value:    agencyID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldExternalID,
				Operator: gDto.FilterOperatorEq,
				Value:    externalID,
				Table:    model.TableName,
			},
		},
	}
}
