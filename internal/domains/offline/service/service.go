package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/offline/model"
	"staysync/internal/domains/offline/model/dto"
	"staysync/internal/domains/offline/store"
	syncDto "staysync/internal/domains/sync/model/dto"
	syncService "staysync/internal/domains/sync/service"
	"staysync/shared/constant"
	"staysync/shared/failure"
	"staysync/shared/timezone"
)

type Offline interface {
	Enqueue(ctx context.Context, req dto.EnqueueOfflineRequest) (dto.OfflineReservationResponse, error)
	GetAll(ctx context.Context) (dto.GetOfflineReservationsResponse, error)
	Remove(ctx context.Context, reservationID string) error
	ClearSynced(ctx context.Context) (dto.ClearSyncedResponse, error)
	Reconcile(ctx context.Context) (dto.ReconcileResponse, error)
}

type serviceImpl struct {
	store  store.Store
	engine syncService.Sync
	cfg    *config.Config
	otel   otel.Otel

	// Serializes reconciliation passes within this process.
	reconcileMu sync.Mutex
}

func New(store store.Store, engine syncService.Sync, cfg *config.Config, otel otel.Otel) Offline {
	return &serviceImpl{
		store:  store,
		engine: engine,
		cfg:    cfg,
		otel:   otel,
	}
}

func (s *serviceImpl) Enqueue(ctx context.Context, req dto.EnqueueOfflineRequest) (res dto.OfflineReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enqueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if !entry.CheckOut.After(entry.CheckIn) {
		return res, failure.BadRequestFromString("check-out must be after check-in") // nolint:wrapcheck
	}

	if err = s.store.Set(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to enqueue offline reservation")

		return res, fmt.Errorf("failed to enqueue offline reservation: %w", err)
	}

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetOfflineReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list offline reservations")

		return res, fmt.Errorf("failed to list offline reservations: %w", err)
	}

	res.FromModels(entries)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, reservationID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, found, err := s.store.Get(ctx, reservationID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load offline reservation")

		return fmt.Errorf("failed to load offline reservation: %w", err)
	}

	if !found {
		return failure.NotFound("offline reservation: " + reservationID) // nolint:wrapcheck
	}

	if entry.SyncStatus == model.SyncStatusSyncing {
		return failure.Conflict("offline reservation " + reservationID + " is being synced") // nolint:wrapcheck
	}

	if err = s.store.Delete(ctx, reservationID); err != nil {
		log.Error().Err(err).Msg("failed to remove offline reservation")

		return fmt.Errorf("failed to remove offline reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) ClearSynced(ctx context.Context) (res dto.ClearSyncedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearSynced")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list offline reservations")

		return res, fmt.Errorf("failed to list offline reservations: %w", err)
	}

	for _, entry := range entries {
		if entry.SyncStatus != model.SyncStatusSynced {
			continue
		}

		if err = s.store.Delete(ctx, entry.ID); err != nil {
			log.Error().Err(err).Str("id", entry.ID).Msg("failed to clear synced reservation")

			return res, fmt.Errorf("failed to clear synced reservation: %w", err)
		}

		res.Removed++
	}

	return res, nil
}

// Reconcile drains the pending queue oldest first. Entries are handed to the
// sync engine one at a time; a failing entry is marked and skipped so the rest
// of the queue still drains. Passes serialize on an in-process mutex.
func (s *serviceImpl) Reconcile(ctx context.Context) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.reconcileMu.Lock()
	defer s.reconcileMu.Unlock()

	entries, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list offline reservations")

		return res, fmt.Errorf("failed to list offline reservations: %w", err)
	}

	res.Results = make([]dto.EntryResult, 0, len(entries))

	for _, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("reconciliation interrupted: %w", ctxErr)
		}

		if !entry.AwaitsSync() {
			continue
		}

		if entry.SyncStatus == model.SyncStatusError && entry.RetryCount >= s.cfg.Sync.ReconcileMaxRetries {
			continue
		}

		res.Processed++
		res.Results = append(res.Results, s.reconcileEntry(ctx, entry, &res))
	}

	return res, nil
}

func (s *serviceImpl) reconcileEntry(ctx context.Context, entry model.OfflineReservation, res *dto.ReconcileResponse) dto.EntryResult {
	result := dto.EntryResult{ReservationID: entry.ID}

	if !entry.CanTransition(model.SyncStatusSyncing) {
		log.Warn().Str("id", entry.ID).Str("status", entry.SyncStatus).Msg("offline reservation cannot enter syncing state")

		result.Outcome = entry.SyncStatus

		return result
	}

	entry.SyncStatus = model.SyncStatusSyncing
	entry.ModifiedAt = timezone.Now()

	if err := s.store.Set(ctx, entry); err != nil {
		log.Error().Err(err).Str("id", entry.ID).Msg("failed to mark offline reservation as syncing")

		res.Errors++
		result.Outcome = model.SyncStatusError
		result.Error = err.Error()

		return result
	}

	outcome, err := s.engine.ReconcileOffline(ctx, entry)
	if err != nil {
		entry.SyncStatus = model.SyncStatusError
		entry.RetryCount++
		entry.LastError = err.Error()
		entry.ModifiedAt = timezone.Now()
		s.persist(ctx, entry)

		res.Errors++
		result.Outcome = model.SyncStatusError
		result.Error = err.Error()

		return result
	}

	switch outcome.Outcome {
	case syncDto.OutcomeConflict:
		entry.SyncStatus = model.SyncStatusConflict
		entry.ConflictID = &outcome.ConflictID
		entry.ModifiedAt = timezone.Now()
		s.persist(ctx, entry)

		res.Conflicts++
		result.Outcome = model.SyncStatusConflict
		result.ConflictID = outcome.ConflictID

	default:
		entry.SyncStatus = model.SyncStatusSynced
		entry.PMSReservationID = &outcome.PMSReservationID
		entry.LastError = constant.Empty
		entry.ModifiedAt = timezone.Now()
		s.persist(ctx, entry)

		res.Synced++
		result.Outcome = model.SyncStatusSynced
		result.PMSReservationID = outcome.PMSReservationID
	}

	return result
}

// persist writes an entry's terminal reconcile state. A failed write is
// retried once on a detached context; losing both attempts would strand the
// entry in syncing, so that case is logged loudly for operator repair.
func (s *serviceImpl) persist(ctx context.Context, entry model.OfflineReservation) {
	err := s.store.Set(ctx, entry)
	if err == nil {
		return
	}

	log.Error().Err(err).Str("id", entry.ID).Msg("failed to persist offline reservation state, retrying")

	if err = s.store.Set(context.WithoutCancel(ctx), entry); err != nil {
		log.Error().Err(err).Str("id", entry.ID).Str("status", entry.SyncStatus).Msg("offline reservation stranded in syncing state")
	}
}
