package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staysync/config"
	otelMocks "staysync/infras/otel/mocks"
	channelMocks "staysync/internal/domains/channel/mocks"
	chModel "staysync/internal/domains/channel/model"
	offModel "staysync/internal/domains/offline/model"
	offStore "staysync/internal/domains/offline/store"
	partnerMocks "staysync/internal/domains/partner/mocks"
	partnerModel "staysync/internal/domains/partner/model"
	resMocks "staysync/internal/domains/reservation/mocks"
	resModel "staysync/internal/domains/reservation/model"
	syncMocks "staysync/internal/domains/sync/mocks"
	"staysync/internal/domains/sync/model"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/domains/sync/service"
	cacheMocks "staysync/shared/cache/mocks"
	"staysync/shared/constant"
	"staysync/shared/failure"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

type stubLocker struct {
	err error
}

func (s *stubLocker) Obtain(_ context.Context, _ string, _ time.Duration, _ *redislock.Options) (*redislock.Lock, error) {
	return nil, s.err
}

type fixture struct {
	channels     *channelMocks.MockChannelReservation
	reservations *resMocks.MockReservation
	partners     *partnerMocks.MockPartner
	logs         *syncMocks.MockSyncLog
	conflicts    *syncMocks.MockSyncConflict
	store        offStore.Store
	cache        *cacheMocks.MockRedisCache
	svc          service.Sync
}

func newFixture(t *testing.T, locker service.Locker) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Sync.LockTTLSeconds = 30
	cfg.Sync.LockRetryMillis = 10

	f := fixture{
		channels:     channelMocks.NewMockChannelReservation(ctrl),
		reservations: resMocks.NewMockReservation(ctrl),
		partners:     partnerMocks.NewMockPartner(ctrl),
		logs:         syncMocks.NewMockSyncLog(ctrl),
		conflicts:    syncMocks.NewMockSyncConflict(ctrl),
		store:        offStore.NewMemoryStore(),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.channels,
		f.reservations,
		f.partners,
		f.logs,
		f.conflicts,
		f.store,
		locker,
		cfg,
		f.cache,
		otelMocks.NewOtel(),
	)

	return f
}

func buffered(id string) chModel.ChannelReservation {
	ch := chModel.ChannelReservation{
		ID:          id,
		AgencyID:    "AG1",
		ExternalID:  "EXT-100",
		GuestName:   "Ada Lovelace",
		RoomType:    "deluxe",
		CheckIn:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Adults:      2,
		TotalAmount: 420,
		Currency:    "USD",
		Status:      chModel.StatusConfirmed,
		ReceivedAt:  timezone.Now(),
	}
	ch.Metadata = gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()}

	return ch
}

func TestSyncService_SyncToPMS_CommitsCandidate(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil).Times(2)
	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{ID: "p-1"}, nil)
	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), "AG1:EXT-100").Return(resModel.Reservation{}, nil)
	f.reservations.EXPECT().FindOverlapping(gomock.Any(), "deluxe", ch.CheckIn, ch.CheckOut).Return(nil, nil)

	var committed resModel.Reservation
	f.reservations.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res resModel.Reservation) error {
			committed = res
			return nil
		})

	f.channels.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeSynced, res.Outcome)
	assert.Equal(t, committed.ID, res.PMSReservationID)
	assert.Equal(t, resModel.SourceChannel, committed.Source)
	assert.Equal(t, "AG1:EXT-100", committed.ExternalRef)
	assert.Equal(t, resModel.StatusConfirmed, committed.Status)
}

func TestSyncService_SyncToPMS_AlreadyLinkedIsNoOp(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")
	linked := ch
	pmsID := "pms-9"
	linked.PMSReservationID = &pmsID

	gomock.InOrder(
		f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil),
		f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(linked, nil),
	)

	res, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.NoError(t, err)
	assert.True(t, res.AlreadySynced)
	assert.Equal(t, "pms-9", res.PMSReservationID)
}

func TestSyncService_SyncToPMS_UnknownReservation(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chModel.ChannelReservation{}, nil)

	_, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "nope"})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestSyncService_SyncToPMS_OverlapProducesConflictNotCommit(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")
	incumbent := resModel.Reservation{
		ID:        "pms-1",
		RoomType:  "deluxe",
		GuestName: "Grace Hopper",
		CheckIn:   ch.CheckIn,
		CheckOut:  ch.CheckOut,
		Status:    resModel.StatusConfirmed,
		Source:    resModel.SourceDirect,
	}

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil).Times(2)
	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{ID: "p-1"}, nil)
	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), gomock.Any()).Return(resModel.Reservation{}, nil)
	f.reservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Reservation{incumbent}, nil)

	var recorded model.SyncConflict
	f.conflicts.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c model.SyncConflict) error {
			recorded = c
			return nil
		})
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeConflict, res.Outcome)
	assert.Equal(t, model.KindOverlap, res.ConflictKind)
	assert.Equal(t, recorded.ID, res.ConflictID)
	assert.Equal(t, "pms-1", *recorded.IncumbentPMSID)
	assert.False(t, recorded.Resolved)
}

func TestSyncService_SyncToPMS_SameGuestDivergence(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")
	incumbent := resModel.Reservation{
		ID:        "pms-1",
		RoomType:  "deluxe",
		GuestName: "Ada Lovelace",
		CheckIn:   ch.CheckIn,
		CheckOut:  ch.CheckOut.Add(24 * time.Hour),
		Status:    resModel.StatusConfirmed,
		Source:    resModel.SourceOffline,
	}

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil).Times(2)
	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{ID: "p-1"}, nil)
	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), gomock.Any()).Return(resModel.Reservation{}, nil)
	f.reservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Reservation{incumbent}, nil)
	f.conflicts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.NoError(t, err)
	assert.Equal(t, model.KindDivergence, res.ConflictKind)
}

func TestSyncService_SyncToPMS_ModificationUpdatesInPlace(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")
	ch.Status = chModel.StatusModified
	ch.TotalAmount = 999

	existing := resModel.Reservation{
		ID:          "pms-1",
		RoomType:    "deluxe",
		GuestName:   "Ada Lovelace",
		CheckIn:     ch.CheckIn,
		CheckOut:    ch.CheckOut,
		Adults:      2,
		TotalAmount: 420,
		Currency:    "USD",
		Status:      resModel.StatusConfirmed,
		Source:      resModel.SourceChannel,
		ExternalRef: "AG1:EXT-100",
	}

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil).Times(2)
	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{ID: "p-1"}, nil)
	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), "AG1:EXT-100").Return(existing, nil)
	f.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.channels.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeSynced, res.Outcome)
	assert.Equal(t, "pms-1", res.PMSReservationID)
}

func TestSyncService_SyncToPMS_LockNotObtained(t *testing.T) {
	f := newFixture(t, &stubLocker{err: redislock.ErrNotObtained})

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(buffered("ch-1"), nil)

	_, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.True(t, failure.IsRetryable(err))
}

func TestSyncService_SyncToPMS_StorageFailureIsRetryable(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	ch := buffered("ch-1")

	f.channels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ch, nil).Times(2)
	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{ID: "p-1"}, nil)
	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), gomock.Any()).Return(resModel.Reservation{}, nil)
	f.reservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.reservations.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.SyncToPMS(context.Background(), dto.SyncRequest{ReservationID: "ch-1"})

	require.Error(t, err)
	assert.True(t, failure.IsRetryable(err))
}

func TestSyncService_ReconcileOffline_Commits(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	entry := offModel.OfflineReservation{
		ID:        "off-1",
		GuestName: "Alan Turing",
		RoomType:  "standard",
		CheckIn:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Adults:    1,
		Currency:  "USD",
		Status:    offModel.StatusConfirmed,
		Source:    "front-desk",
	}

	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), "offline:off-1").Return(resModel.Reservation{}, nil)
	f.reservations.EXPECT().FindOverlapping(gomock.Any(), "standard", entry.CheckIn, entry.CheckOut).Return(nil, nil)

	var committed resModel.Reservation
	f.reservations.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res resModel.Reservation) error {
			committed = res
			return nil
		})
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.ReconcileOffline(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeSynced, res.Outcome)
	assert.Equal(t, "front-desk", committed.Source)
	assert.Equal(t, "front-desk", committed.CreatedBy)
	assert.Equal(t, "offline:off-1", committed.ExternalRef)
}

func TestSyncService_ReconcileOffline_RetryIsIdempotent(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	entry := offModel.OfflineReservation{
		ID:       "off-1",
		RoomType: "standard",
		CheckIn:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Status:   offModel.StatusConfirmed,
	}

	// A previous pass already committed this entry under its synthetic ref.
	existing := resModel.Reservation{
		ID:          "pms-7",
		RoomType:    "standard",
		CheckIn:     entry.CheckIn,
		CheckOut:    entry.CheckOut,
		Status:      resModel.StatusConfirmed,
		Source:      resModel.SourceOffline,
		ExternalRef: "offline:off-1",
	}

	f.reservations.EXPECT().FindByExternalRef(gomock.Any(), "offline:off-1").Return(existing, nil)
	f.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.ReconcileOffline(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "pms-7", res.PMSReservationID)
}

func mustSnapshot(t *testing.T, snap model.Snapshot) json.RawMessage {
	t.Helper()

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	return raw
}

func TestSyncService_Resolve_DoubleResolveRejected(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	resolution := model.ResolutionKeepRemote
	f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.SyncConflict{
		ID:         "c-1",
		Resolved:   true,
		Resolution: &resolution,
	}, nil)

	_, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "c-1",
		Resolution: model.ResolutionKeepLocal,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestSyncService_Resolve_UnknownConflict(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.SyncConflict{}, nil)

	_, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "missing",
		Resolution: model.ResolutionKeepLocal,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestSyncService_Resolve_KeepLocalSupersedesIncumbent(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	incumbentID := "pms-1"
	offlineID := "off-1"
	require.NoError(t, f.store.Set(context.Background(), offModel.OfflineReservation{
		ID:         offlineID,
		SyncStatus: offModel.SyncStatusConflict,
	}))

	local := model.Snapshot{
		GuestName:  "Alan Turing",
		RoomType:   "standard",
		CheckIn:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Status:     resModel.StatusConfirmed,
		Source:     resModel.SourceOffline,
		ModifiedAt: timezone.Now(),
	}
	remote := model.Snapshot{
		ReservationID: incumbentID,
		GuestName:     "Grace Hopper",
		RoomType:      "standard",
		Status:        resModel.StatusConfirmed,
		Source:        resModel.SourceDirect,
	}

	open := model.SyncConflict{
		ID:                   "c-1",
		Kind:                 model.KindOverlap,
		LocalSnapshot:        mustSnapshot(t, local),
		RemoteSnapshot:       mustSnapshot(t, remote),
		OfflineReservationID: &offlineID,
		IncumbentPMSID:       &incumbentID,
		DetectedAt:           timezone.Now(),
	}

	closed := open
	closed.Resolved = true
	keepLocal := model.ResolutionKeepLocal
	closed.Resolution = &keepLocal

	gomock.InOrder(
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil),
		f.conflicts.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil),
	)

	var superseded, refCleared, inserted bool
	f.reservations.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			superseded = fields[resModel.FieldStatus] == resModel.StatusCancelled
			ref, present := fields[resModel.FieldExternalRef]
			refCleared = present && ref == constant.Empty
			return nil
		})
	f.reservations.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res resModel.Reservation) error {
			inserted = true
			assert.Equal(t, "Alan Turing", res.GuestName)
			return nil
		})
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "c-1",
		Resolution: model.ResolutionKeepLocal,
	})

	require.NoError(t, err)
	assert.True(t, superseded)
	assert.True(t, refCleared)
	assert.True(t, inserted)
	assert.True(t, res.Resolved)

	settled, found, err := f.store.Get(context.Background(), offlineID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, offModel.SyncStatusSynced, settled.SyncStatus)
	assert.NotNil(t, settled.PMSReservationID)
}

func TestSyncService_Resolve_SettledOriginLeftUntouched(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	incumbentID := "pms-1"
	offlineID := "off-9"
	alreadyLinked := "pms-old"
	require.NoError(t, f.store.Set(context.Background(), offModel.OfflineReservation{
		ID:               offlineID,
		SyncStatus:       offModel.SyncStatusSynced,
		PMSReservationID: &alreadyLinked,
	}))

	local := model.Snapshot{
		GuestName:  "Alan Turing",
		RoomType:   "standard",
		CheckIn:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Status:     resModel.StatusConfirmed,
		Source:     resModel.SourceOffline,
		ModifiedAt: timezone.Now(),
	}
	remote := model.Snapshot{
		ReservationID: incumbentID,
		GuestName:     "Grace Hopper",
		RoomType:      "standard",
		Status:        resModel.StatusConfirmed,
		Source:        resModel.SourceDirect,
	}

	open := model.SyncConflict{
		ID:                   "c-9",
		Kind:                 model.KindOverlap,
		LocalSnapshot:        mustSnapshot(t, local),
		RemoteSnapshot:       mustSnapshot(t, remote),
		OfflineReservationID: &offlineID,
		IncumbentPMSID:       &incumbentID,
		DetectedAt:           timezone.Now(),
	}

	closed := open
	closed.Resolved = true
	keepRemote := model.ResolutionKeepRemote
	closed.Resolution = &keepRemote

	gomock.InOrder(
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil),
		f.conflicts.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil),
	)
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "c-9",
		Resolution: model.ResolutionKeepRemote,
	})

	require.NoError(t, err)

	settled, found, err := f.store.Get(context.Background(), offlineID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, offModel.SyncStatusSynced, settled.SyncStatus)
	require.NotNil(t, settled.PMSReservationID)
	assert.Equal(t, alreadyLinked, *settled.PMSReservationID)
}

func TestSyncService_Resolve_KeepRemoteLinksOrigin(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	incumbentID := "pms-1"
	channelID := "ch-1"

	open := model.SyncConflict{
		ID:                   "c-2",
		Kind:                 model.KindDivergence,
		LocalSnapshot:        mustSnapshot(t, model.Snapshot{GuestName: "Ada"}),
		RemoteSnapshot:       mustSnapshot(t, model.Snapshot{ReservationID: incumbentID, GuestName: "Ada L."}),
		ChannelReservationID: &channelID,
		IncumbentPMSID:       &incumbentID,
		DetectedAt:           timezone.Now(),
	}

	closed := open
	closed.Resolved = true

	gomock.InOrder(
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil),
		f.conflicts.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil),
	)

	var linkedTo any
	f.channels.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			linkedTo = fields[chModel.FieldPMSReservationID]
			return nil
		})
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "c-2",
		Resolution: model.ResolutionKeepRemote,
	})

	require.NoError(t, err)
	assert.Equal(t, incumbentID, linkedTo)
}

func TestSyncService_Resolve_MergeUpdatesIncumbent(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	incumbentID := "pms-1"
	older := timezone.Now().Add(-time.Hour)
	newer := timezone.Now()

	local := model.Snapshot{
		GuestName:   "Ada Lovelace",
		RoomType:    "deluxe",
		TotalAmount: 500,
		Status:      resModel.StatusConfirmed,
		ModifiedAt:  newer,
	}
	remote := model.Snapshot{
		ReservationID: incumbentID,
		GuestName:     "A. Lovelace",
		RoomType:      "deluxe",
		CheckIn:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		TotalAmount:   420,
		Currency:      "USD",
		Status:        resModel.StatusConfirmed,
		ModifiedAt:    older,
	}

	open := model.SyncConflict{
		ID:             "c-3",
		Kind:           model.KindDivergence,
		LocalSnapshot:  mustSnapshot(t, local),
		RemoteSnapshot: mustSnapshot(t, remote),
		IncumbentPMSID: &incumbentID,
		DetectedAt:     timezone.Now(),
	}

	closed := open
	closed.Resolved = true

	gomock.InOrder(
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil),
		f.conflicts.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.conflicts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil),
	)

	var merged map[string]any
	f.reservations.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			merged = fields
			return nil
		})
	f.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Resolve(context.Background(), dto.ResolveConflictRequest{
		ConflictID: "c-3",
		Resolution: model.ResolutionMerge,
	})

	require.NoError(t, err)
	// Fresher side wins where set, older side fills the gaps.
	assert.Equal(t, "Ada Lovelace", merged[resModel.FieldGuestName])
	assert.Equal(t, float64(500), merged[resModel.FieldTotalAmount])
	assert.Equal(t, "USD", merged[resModel.FieldCurrency])
	assert.Equal(t, remote.CheckIn, merged[resModel.FieldCheckIn])
}

func TestSyncService_GetLogs(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	entries := []model.SyncLog{
		{ID: "l-2", TargetReservationID: "ch-2", Outcome: model.OutcomeConflict, CreatedAt: timezone.Now()},
		{ID: "l-1", TargetReservationID: "ch-1", Outcome: model.OutcomeSuccess, CreatedAt: timezone.Now().Add(-time.Minute)},
	}

	f.logs.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.logs.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)

	res, err := f.svc.GetLogs(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	require.Len(t, res.Logs, 2)
	assert.Equal(t, "l-2", res.Logs[0].ID)
}

func TestSyncService_GetConflicts_FiltersResolved(t *testing.T) {
	f := newFixture(t, &stubLocker{})

	unresolved := false

	f.conflicts.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.conflicts.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.SyncConflict{{ID: "c-1", Kind: model.KindOverlap, LocalSnapshot: []byte("{}"), RemoteSnapshot: []byte("{}")}}, nil)

	res, err := f.svc.GetConflicts(context.Background(), &unresolved)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, model.KindOverlap, res.Conflicts[0].Kind)
}
