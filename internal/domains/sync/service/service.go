package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/otel"
	chModel "staysync/internal/domains/channel/model"
	chRepo "staysync/internal/domains/channel/repository"
	offModel "staysync/internal/domains/offline/model"
	offStore "staysync/internal/domains/offline/store"
	partnerModel "staysync/internal/domains/partner/model"
	partnerRepo "staysync/internal/domains/partner/repository"
	resModel "staysync/internal/domains/reservation/model"
	resRepo "staysync/internal/domains/reservation/repository"
	"staysync/internal/domains/sync/model"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/domains/sync/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	"staysync/shared/timezone"
)

const (
	cacheChannelReservations = "channel_reservation"
	cacheReservations        = "reservation"

	lockKeyPrefix      = "sync:lock:"
	lockRetryAttempts  = 10
	offlineRefPrefix   = "offline:"
	resolvedLogMessage = "conflict resolved"
)

// Locker serializes sync attempts on a per-booking key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

type Sync interface {
	SyncToPMS(ctx context.Context, req dto.SyncRequest) (dto.SyncResultResponse, error)
	ReconcileOffline(ctx context.Context, entry offModel.OfflineReservation) (dto.SyncResultResponse, error)
	GetLogs(ctx context.Context, partnerID string, limit int) (dto.GetSyncLogsResponse, error)
	GetReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	GetConflicts(ctx context.Context, resolved *bool) (dto.GetConflictsResponse, error)
	Resolve(ctx context.Context, req dto.ResolveConflictRequest) (dto.ConflictResponse, error)
}

type serviceImpl struct {
	channels     chRepo.ChannelReservation
	reservations resRepo.Reservation
	partners     partnerRepo.Partner
	logs         repository.SyncLog
	conflicts    repository.SyncConflict
	offline      offStore.Store
	locker       Locker
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	channels chRepo.ChannelReservation,
	reservations resRepo.Reservation,
	partners partnerRepo.Partner,
	logs repository.SyncLog,
	conflicts repository.SyncConflict,
	offline offStore.Store,
	locker Locker,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Sync {
	return &serviceImpl{
		channels:     channels,
		reservations: reservations,
		partners:     partners,
		logs:         logs,
		conflicts:    conflicts,
		offline:      offline,
		locker:       locker,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// SyncToPMS reconciles one buffered channel reservation into the PMS store.
// The whole check-then-commit runs under a per-booking lock so concurrent
// attempts for the same (agencyId, externalId) serialize. Re-syncing an
// already linked reservation is a no-op that returns the existing link.
func (s *serviceImpl) SyncToPMS(ctx context.Context, req dto.SyncRequest) (res dto.SyncResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncToPMS")
	defer scope.End()
	defer scope.TraceIfError(err)

	ch, err := s.channels.Get(ctx, shared.FilterByID(req.ReservationID, chModel.FieldID, chModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load channel reservation")

		return res, fmt.Errorf("failed to load channel reservation: %w", err)
	}

	if ch.ID == constant.Empty {
		return res, failure.NotFound("channel reservation: " + req.ReservationID) // nolint:wrapcheck
	}

	lock, err := s.obtainLock(ctx, ch.AgencyID+":"+ch.ExternalID)
	if err != nil {
		return res, err
	}
	defer s.releaseLock(ctx, lock)

	// Reload under the lock so a concurrent attempt that just committed is
	// seen here instead of being committed twice.
	ch, err = s.channels.Get(ctx, shared.FilterByID(req.ReservationID, chModel.FieldID, chModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload channel reservation")

		return res, fmt.Errorf("failed to reload channel reservation: %w", err)
	}

	if ch.PMSReservationID != nil {
		return dto.SyncResultResponse{
			Outcome:          dto.OutcomeSynced,
			PMSReservationID: *ch.PMSReservationID,
			AlreadySynced:    true,
		}, nil
	}

	partnerID := s.partnerIDFor(ctx, ch.AgencyID)
	cand := candidateFromChannel(ch)

	det, err := s.detect(ctx, cand)
	if err != nil {
		s.appendLog(ctx, partnerID, ch.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	if det.kind != constant.Empty {
		conflictID, err := s.recordConflict(ctx, det, cand, nil, &ch.ID)
		if err != nil {
			return res, failure.Unavailable(err) // nolint:wrapcheck
		}

		s.appendLog(ctx, partnerID, ch.ID, model.OutcomeConflict, det.kind+" detected against "+det.incumbent.ID)

		return dto.SyncResultResponse{
			Outcome:      dto.OutcomeConflict,
			ConflictID:   conflictID,
			ConflictKind: det.kind,
		}, nil
	}

	pmsID, err := s.commit(ctx, det, cand)
	if err != nil {
		s.appendLog(ctx, partnerID, ch.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	linkFields := map[string]any{
		chModel.FieldPMSReservationID: pmsID,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      ch.AgencyID,
	}

	if err = s.channels.Update(ctx, linkFields, shared.FilterByID(ch.ID, chModel.FieldID, chModel.TableName)); err != nil {
		s.appendLog(ctx, partnerID, ch.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(fmt.Errorf("failed to link channel reservation: %w", err)) // nolint:wrapcheck
	}

	s.appendLog(ctx, partnerID, ch.ID, model.OutcomeSuccess, "committed as "+pmsID)
	s.invalidate(ctx)

	return dto.SyncResultResponse{
		Outcome:          dto.OutcomeSynced,
		PMSReservationID: pmsID,
	}, nil
}

// ReconcileOffline commits one offline queue entry into the PMS store. Queue
// state transitions stay with the caller; this only detects and commits. The
// synthetic external ref makes retried passes idempotent.
func (s *serviceImpl) ReconcileOffline(ctx context.Context, entry offModel.OfflineReservation) (res dto.SyncResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileOffline")
	defer scope.End()
	defer scope.TraceIfError(err)

	lock, err := s.obtainLock(ctx, offlineRefPrefix+entry.ID)
	if err != nil {
		return res, err
	}
	defer s.releaseLock(ctx, lock)

	cand := candidateFromOffline(entry)

	det, err := s.detect(ctx, cand)
	if err != nil {
		s.appendLog(ctx, nil, entry.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	if det.kind != constant.Empty {
		conflictID, err := s.recordConflict(ctx, det, cand, &entry.ID, nil)
		if err != nil {
			return res, failure.Unavailable(err) // nolint:wrapcheck
		}

		s.appendLog(ctx, nil, entry.ID, model.OutcomeConflict, det.kind+" detected against "+det.incumbent.ID)

		return dto.SyncResultResponse{
			Outcome:      dto.OutcomeConflict,
			ConflictID:   conflictID,
			ConflictKind: det.kind,
		}, nil
	}

	pmsID, err := s.commit(ctx, det, cand)
	if err != nil {
		s.appendLog(ctx, nil, entry.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	s.appendLog(ctx, nil, entry.ID, model.OutcomeSuccess, "committed as "+pmsID)
	s.invalidate(ctx)

	return dto.SyncResultResponse{
		Outcome:          dto.OutcomeSynced,
		PMSReservationID: pmsID,
	}, nil
}

// GetLogs returns audit entries most recent first, optionally narrowed to one
// partner.
func (s *serviceImpl) GetLogs(ctx context.Context, partnerID string, limit int) (res dto.GetSyncLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		limit = constant.DefaultSyncLogLimit
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if partnerID != constant.Empty {
		filter = shared.FilterByID(partnerID, model.LogFieldPartnerID, model.LogTableName)
	}

	params := gDto.QueryParams{
		Page:    1,
		Limit:   limit,
		SortBy:  model.LogFieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	total, err := s.logs.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sync logs")

		return res, fmt.Errorf("failed to count sync logs: %w", err)
	}

	models, err := s.logs.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sync logs")

		return res, fmt.Errorf("failed to get sync logs: %w", err)
	}

	res.FromModels(models, total)

	return res, nil
}

func (s *serviceImpl) GetReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.reservations.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.reservations.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetConflicts(ctx context.Context, resolved *bool) (res dto.GetConflictsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetConflicts")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if resolved != nil {
		filter.Filters = []any{
			gDto.Filter{
				Field:    model.ConflictFieldResolved,
				Operator: gDto.FilterOperatorEq,
				Value:    *resolved,
				Table:    model.ConflictTableName,
			},
		}
	}

	params := gDto.QueryParams{
		SortBy:  model.ConflictFieldDetectedAt,
		SortDir: gDto.SortDirDesc,
	}

	total, err := s.conflicts.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count conflicts")

		return res, fmt.Errorf("failed to count conflicts: %w", err)
	}

	models, err := s.conflicts.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conflicts")

		return res, fmt.Errorf("failed to get conflicts: %w", err)
	}

	res.FromModels(models, total)

	return res, nil
}

// Resolve closes an open conflict with one of the three supported outcomes.
// Resolving an already resolved conflict is rejected, never reapplied.
func (s *serviceImpl) Resolve(ctx context.Context, req dto.ResolveConflictRequest) (res dto.ConflictResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	conflictFilter := shared.FilterByID(req.ConflictID, model.ConflictFieldID, model.ConflictTableName)

	conflict, err := s.conflicts.Get(ctx, conflictFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load conflict")

		return res, fmt.Errorf("failed to load conflict: %w", err)
	}

	if conflict.ID == constant.Empty {
		return res, failure.NotFound("conflict: " + req.ConflictID) // nolint:wrapcheck
	}

	if conflict.Resolved {
		return res, failure.Conflict("conflict " + conflict.ID + " is already resolved") // nolint:wrapcheck
	}

	var local, remote model.Snapshot
	if err = json.Unmarshal(conflict.LocalSnapshot, &local); err != nil {
		return res, fmt.Errorf("failed to decode local snapshot: %w", err)
	}

	if err = json.Unmarshal(conflict.RemoteSnapshot, &remote); err != nil {
		return res, fmt.Errorf("failed to decode remote snapshot: %w", err)
	}

	pmsID, err := s.applyResolution(ctx, conflict, req.Resolution, local, remote)
	if err != nil {
		s.appendLog(ctx, nil, conflict.ID, model.OutcomeFailure, err.Error())

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	now := timezone.Now()
	closeFields := map[string]any{
		model.ConflictFieldResolved:   true,
		model.ConflictFieldResolution: req.Resolution,
		model.ConflictFieldResolvedAt: now,
	}

	if err = s.conflicts.Update(ctx, closeFields, conflictFilter); err != nil {
		log.Error().Err(err).Msg("failed to close conflict")

		return res, failure.Unavailable(fmt.Errorf("failed to close conflict: %w", err)) // nolint:wrapcheck
	}

	if err = s.settleOrigin(ctx, conflict, pmsID); err != nil {
		log.Error().Err(err).Msg("failed to settle conflict origin")

		return res, failure.Unavailable(err) // nolint:wrapcheck
	}

	s.appendLog(ctx, nil, conflict.ID, model.OutcomeSuccess, resolvedLogMessage+" ("+req.Resolution+")")
	s.invalidate(ctx)

	conflict, err = s.conflicts.Get(ctx, conflictFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload conflict")

		return res, fmt.Errorf("failed to reload conflict: %w", err)
	}

	res.FromModel(conflict)

	return res, nil
}

// applyResolution mutates the PMS store per the chosen outcome and returns the
// reservation the source entry should end up linked to.
func (s *serviceImpl) applyResolution(ctx context.Context, conflict model.SyncConflict, resolution string, local, remote model.Snapshot) (string, error) {
	switch resolution {
	case model.ResolutionKeepRemote:
		// Committed state already reflects the remote side.
		if conflict.IncumbentPMSID != nil {
			return *conflict.IncumbentPMSID, nil
		}

		return constant.Empty, nil

	case model.ResolutionKeepLocal:
		if err := s.supersedeIncumbent(ctx, conflict.IncumbentPMSID); err != nil {
			return constant.Empty, err
		}

		committed := reservationFromSnapshot(local)
		if err := s.reservations.Insert(ctx, committed); err != nil {
			return constant.Empty, fmt.Errorf("failed to commit local side: %w", err)
		}

		return committed.ID, nil

	case model.ResolutionMerge:
		merged := mergeSnapshots(local, remote)
		if conflict.IncumbentPMSID == nil {
			committed := reservationFromSnapshot(merged)
			if err := s.reservations.Insert(ctx, committed); err != nil {
				return constant.Empty, fmt.Errorf("failed to commit merged booking: %w", err)
			}

			return committed.ID, nil
		}

		fields := map[string]any{
			resModel.FieldGuestName:   merged.GuestName,
			resModel.FieldRoomType:    merged.RoomType,
			resModel.FieldCheckIn:     merged.CheckIn,
			resModel.FieldCheckOut:    merged.CheckOut,
			resModel.FieldAdults:      merged.Adults,
			resModel.FieldChildren:    merged.Children,
			resModel.FieldTotalAmount: merged.TotalAmount,
			resModel.FieldCurrency:    merged.Currency,
			resModel.FieldStatus:      merged.Status,
			constant.FieldModifiedAt:  timezone.Now(),
			constant.FieldModifiedBy:  merged.Source,
		}

		filter := shared.FilterByID(*conflict.IncumbentPMSID, resModel.FieldID, resModel.TableName)
		if err := s.reservations.Update(ctx, fields, filter); err != nil {
			return constant.Empty, fmt.Errorf("failed to merge into committed booking: %w", err)
		}

		return *conflict.IncumbentPMSID, nil

	default:
		return constant.Empty, failure.BadRequestFromString("unknown resolution: " + resolution) // nolint:wrapcheck
	}
}

// settleOrigin points the conflict's source entry at the reservation that won
// so later sync attempts see it as already handled.
func (s *serviceImpl) settleOrigin(ctx context.Context, conflict model.SyncConflict, pmsID string) error {
	if conflict.ChannelReservationID != nil && pmsID != constant.Empty {
		fields := map[string]any{
			chModel.FieldPMSReservationID: pmsID,
			constant.FieldModifiedAt:      timezone.Now(),
		}

		filter := shared.FilterByID(*conflict.ChannelReservationID, chModel.FieldID, chModel.TableName)
		if err := s.channels.Update(ctx, fields, filter); err != nil {
			return fmt.Errorf("failed to link channel reservation: %w", err)
		}
	}

	if conflict.OfflineReservationID != nil {
		entry, found, err := s.offline.Get(ctx, *conflict.OfflineReservationID)
		if err != nil {
			return fmt.Errorf("failed to load offline entry: %w", err)
		}

		if found && entry.CanTransition(offModel.SyncStatusSynced) {
			entry.SyncStatus = offModel.SyncStatusSynced
			entry.LastError = constant.Empty
			entry.ModifiedAt = timezone.Now()
			if pmsID != constant.Empty {
				entry.PMSReservationID = &pmsID
			}

			if err = s.offline.Set(ctx, entry); err != nil {
				return fmt.Errorf("failed to settle offline entry: %w", err)
			}
		}
	}

	return nil
}

// commit writes a clean candidate: insert when nothing committed matches,
// update in place when the candidate modifies its own earlier commit.
func (s *serviceImpl) commit(ctx context.Context, det detection, cand resModel.Reservation) (string, error) {
	if det.incumbent == nil {
		if err := s.reservations.Insert(ctx, cand); err != nil {
			return constant.Empty, fmt.Errorf("failed to commit booking: %w", err)
		}

		return cand.ID, nil
	}

	fields := map[string]any{
		resModel.FieldGuestName:   cand.GuestName,
		resModel.FieldRoomType:    cand.RoomType,
		resModel.FieldCheckIn:     cand.CheckIn,
		resModel.FieldCheckOut:    cand.CheckOut,
		resModel.FieldAdults:      cand.Adults,
		resModel.FieldChildren:    cand.Children,
		resModel.FieldTotalAmount: cand.TotalAmount,
		resModel.FieldCurrency:    cand.Currency,
		resModel.FieldStatus:      cand.Status,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  cand.ModifiedBy,
	}

	filter := shared.FilterByID(det.incumbent.ID, resModel.FieldID, resModel.TableName)
	if err := s.reservations.Update(ctx, fields, filter); err != nil {
		return constant.Empty, fmt.Errorf("failed to update committed booking: %w", err)
	}

	return det.incumbent.ID, nil
}

func (s *serviceImpl) recordConflict(ctx context.Context, det detection, cand resModel.Reservation, offlineID, channelID *string) (string, error) {
	localRaw, err := json.Marshal(model.SnapshotFromReservation(cand))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to encode local snapshot: %w", err)
	}

	remoteRaw, err := json.Marshal(model.SnapshotFromReservation(*det.incumbent))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to encode remote snapshot: %w", err)
	}

	conflict := model.SyncConflict{
		ID:                   uuid.NewString(),
		Kind:                 det.kind,
		LocalSnapshot:        localRaw,
		RemoteSnapshot:       remoteRaw,
		OfflineReservationID: offlineID,
		ChannelReservationID: channelID,
		IncumbentPMSID:       &det.incumbent.ID,
		DetectedAt:           timezone.Now(),
	}

	if err = s.conflicts.Insert(ctx, conflict); err != nil {
		return constant.Empty, fmt.Errorf("failed to record conflict: %w", err)
	}

	return conflict.ID, nil
}

func (s *serviceImpl) supersedeIncumbent(ctx context.Context, incumbentID *string) error {
	if incumbentID == nil {
		return nil
	}

	// The replacement inherits the booking reference, so the superseded row
	// gives its external_ref up. Otherwise two rows would answer lookups for
	// the same ref.
	fields := map[string]any{
		resModel.FieldStatus:      resModel.StatusCancelled,
		resModel.FieldExternalRef: constant.Empty,
		constant.FieldModifiedAt:  timezone.Now(),
	}

	filter := shared.FilterByID(*incumbentID, resModel.FieldID, resModel.TableName)
	if err := s.reservations.Update(ctx, fields, filter); err != nil {
		return fmt.Errorf("failed to supersede committed booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) obtainLock(ctx context.Context, key string) (*redislock.Lock, error) {
	ttl := time.Duration(s.cfg.Sync.LockTTLSeconds) * time.Second
	backoff := time.Duration(s.cfg.Sync.LockRetryMillis) * time.Millisecond

	lock, err := s.locker.Obtain(ctx, lockKeyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoff), lockRetryAttempts),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, failure.Unavailable(fmt.Errorf("booking %s is being synced elsewhere", key)) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("key", key).Msg("failed to obtain sync lock")

		return nil, failure.Unavailable(err) // nolint:wrapcheck
	}

	return lock, nil
}

func (s *serviceImpl) releaseLock(ctx context.Context, lock *redislock.Lock) {
	if lock == nil {
		return
	}

	if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		log.Error().Err(err).Msg("failed to release sync lock")
	}
}

func (s *serviceImpl) partnerIDFor(ctx context.Context, agencyID string) *string {
	partner, err := s.partners.Get(ctx, shared.FilterByID(agencyID, partnerModel.FieldAgencyID, partnerModel.TableName))
	if err != nil || partner.ID == constant.Empty {
		return nil
	}

	return &partner.ID
}

func (s *serviceImpl) appendLog(ctx context.Context, partnerID *string, target, outcome, message string) {
	entry := model.SyncLog{
		ID:                  uuid.NewString(),
		PartnerID:           partnerID,
		TargetReservationID: target,
		Outcome:             outcome,
		Message:             message,
		CreatedAt:           timezone.Now(),
	}

	if err := s.logs.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Str("target", target).Msg("failed to append sync log")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheChannelReservations)
		shared.InvalidateCaches(c, s.cache, cacheReservations)
	}()
}

func candidateFromChannel(ch chModel.ChannelReservation) resModel.Reservation {
	status := resModel.StatusConfirmed
	if ch.Status == chModel.StatusCancelled {
		status = resModel.StatusCancelled
	}

	cand := resModel.Reservation{
		ID:          uuid.NewString(),
		RoomType:    ch.RoomType,
		GuestName:   ch.GuestName,
		CheckIn:     ch.CheckIn,
		CheckOut:    ch.CheckOut,
		Adults:      ch.Adults,
		Children:    ch.Children,
		TotalAmount: ch.TotalAmount,
		Currency:    ch.Currency,
		Status:      status,
		Source:      resModel.SourceChannel,
		ExternalRef: ch.AgencyID + ":" + ch.ExternalID,
	}

	cand.CreatedAt = timezone.Now()
	cand.ModifiedAt = ch.ModifiedAt
	cand.CreatedBy = ch.AgencyID
	cand.ModifiedBy = ch.AgencyID

	return cand
}

func candidateFromOffline(entry offModel.OfflineReservation) resModel.Reservation {
	status := resModel.StatusConfirmed
	if entry.Status == offModel.StatusCancelled {
		status = resModel.StatusCancelled
	}

	// The entry's originating context survives into the committed record.
	source := entry.Source
	if source == constant.Empty {
		source = resModel.SourceOffline
	}

	cand := resModel.Reservation{
		ID:          uuid.NewString(),
		RoomType:    entry.RoomType,
		GuestName:   entry.GuestName,
		CheckIn:     entry.CheckIn,
		CheckOut:    entry.CheckOut,
		Adults:      entry.Adults,
		Children:    entry.Children,
		TotalAmount: entry.TotalAmount,
		Currency:    entry.Currency,
		Status:      status,
		Source:      source,
		ExternalRef: offlineRefPrefix + entry.ID,
	}

	cand.CreatedAt = timezone.Now()
	cand.ModifiedAt = entry.ModifiedAt
	cand.CreatedBy = source
	cand.ModifiedBy = source

	return cand
}

func reservationFromSnapshot(snap model.Snapshot) resModel.Reservation {
	status := snap.Status
	if status == constant.Empty {
		status = resModel.StatusConfirmed
	}

	source := snap.Source
	if source == constant.Empty {
		source = resModel.SourceDirect
	}

	committed := resModel.Reservation{
		ID:          uuid.NewString(),
		RoomType:    snap.RoomType,
		GuestName:   snap.GuestName,
		CheckIn:     snap.CheckIn,
		CheckOut:    snap.CheckOut,
		Adults:      snap.Adults,
		Children:    snap.Children,
		TotalAmount: snap.TotalAmount,
		Currency:    snap.Currency,
		Status:      status,
		Source:      source,
		ExternalRef: snap.ExternalRef,
	}

	committed.CreatedAt = timezone.Now()
	committed.ModifiedAt = timezone.Now()
	committed.CreatedBy = source
	committed.ModifiedBy = source

	return committed
}
