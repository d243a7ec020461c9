package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staysync/config"
	otelMocks "staysync/infras/otel/mocks"
	channelMocks "staysync/internal/domains/channel/mocks"
	"staysync/internal/domains/channel/model"
	"staysync/internal/domains/channel/model/dto"
	"staysync/internal/domains/channel/service"
	partnerMocks "staysync/internal/domains/partner/mocks"
	partnerModel "staysync/internal/domains/partner/model"
	cacheMocks "staysync/shared/cache/mocks"
	"staysync/shared/cache"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

type fixture struct {
	repo     *channelMocks.MockChannelReservation
	partners *partnerMocks.MockPartner
	cache    *cacheMocks.MockRedisCache
	svc      service.Channel
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Sync.ProbeTimeoutSeconds = 2

	f := fixture{
		repo:     channelMocks.NewMockChannelReservation(ctrl),
		partners: partnerMocks.NewMockPartner(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.partners, nil, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func enabledPartner() partnerModel.ChannelPartner {
	return partnerModel.ChannelPartner{
		ID:       "p-1",
		AgencyID: "AG1",
		Name:     "Booking Portal",
		Enabled:  true,
		Status:   partnerModel.StatusActive,
	}
}

func webhook() dto.WebhookPayload {
	return dto.WebhookPayload{
		Event:      "reservation.created",
		AgencyID:   "AG1",
		ExternalID: "EXT-100",
		Data: &dto.WebhookReservationData{
			GuestName:   "Ada Lovelace",
			RoomType:    "deluxe",
			CheckIn:     "2026-09-10",
			CheckOut:    "2026-09-12",
			Adults:      2,
			TotalAmount: 420,
			Currency:    "USD",
			Status:      model.StatusConfirmed,
		},
	}
}

func TestChannelService_Ingest_CreatesBufferedReservation(t *testing.T) {
	f := newFixture(t)

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledPartner(), nil)

	var stored model.ChannelReservation
	f.repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ch model.ChannelReservation) (bool, error) {
			stored = ch
			return true, nil
		})
	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.ChannelReservation, error) {
			return stored, nil
		})

	res, err := f.svc.Ingest(context.Background(), webhook())

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "AG1", stored.AgencyID)
	assert.Equal(t, "EXT-100", stored.ExternalID)
	assert.Equal(t, model.StatusConfirmed, stored.Status)
	assert.Nil(t, stored.PMSReservationID)
}

func TestChannelService_Ingest_RedeliveryUpdatesInPlace(t *testing.T) {
	f := newFixture(t)

	existing := model.ChannelReservation{
		ID:         "ch-1",
		AgencyID:   "AG1",
		ExternalID: "EXT-100",
		GuestName:  "Ada Lovelace",
		RoomType:   "deluxe",
		Status:     model.StatusConfirmed,
	}
	existing.Metadata = gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()}

	refreshed := existing
	refreshed.Status = model.StatusModified

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledPartner(), nil)

	gomock.InOrder(
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refreshed, nil),
	)

	payload := webhook()
	payload.Event = "reservation.modified"
	payload.Data.Status = model.StatusModified

	res, err := f.svc.Ingest(context.Background(), payload)

	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "ch-1", res.Reservation.ID)
	assert.Equal(t, model.StatusModified, res.Reservation.Status)
}

func TestChannelService_Ingest_DuplicateDeliveriesNeverError(t *testing.T) {
	f := newFixture(t)

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledPartner(), nil).Times(2)

	// A concurrent duplicate loses the insert race inside the store, so the
	// second upsert reports the row as pre-existing rather than failing.
	winner := model.ChannelReservation{
		ID:         "ch-1",
		AgencyID:   "AG1",
		ExternalID: "EXT-100",
		GuestName:  "Ada Lovelace",
		RoomType:   "deluxe",
		Status:     model.StatusConfirmed,
	}

	gomock.InOrder(
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(winner, nil),
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(winner, nil),
	)

	first, err := f.svc.Ingest(context.Background(), webhook())
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := f.svc.Ingest(context.Background(), webhook())
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
}

func TestChannelService_Ingest_UnknownAgency(t *testing.T) {
	f := newFixture(t)

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{}, nil)

	_, err := f.svc.Ingest(context.Background(), webhook())

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestChannelService_Ingest_DisabledPartnerRejected(t *testing.T) {
	f := newFixture(t)

	partner := enabledPartner()
	partner.Enabled = false

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partner, nil)

	_, err := f.svc.Ingest(context.Background(), webhook())

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestChannelService_Ingest_InvalidDateRejected(t *testing.T) {
	f := newFixture(t)

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(enabledPartner(), nil)

	payload := webhook()
	payload.Data.CheckIn = "09/10/2026"

	_, err := f.svc.Ingest(context.Background(), payload)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestChannelService_GetAll_CacheMissHitsStore(t *testing.T) {
	f := newFixture(t)

	entries := []model.ChannelReservation{
		{ID: "ch-1", AgencyID: "AG1", ExternalID: "EXT-100", Status: model.StatusConfirmed},
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Reservations, 1)
	assert.Equal(t, "ch-1", res.Reservations[0].ID)
}

func TestChannelService_TestConnection_Reachable(t *testing.T) {
	f := newFixture(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	partner := enabledPartner()
	partner.Endpoint = srv.URL

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partner, nil)

	res, err := f.svc.TestConnection(context.Background(), "AG1")

	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestChannelService_TestConnection_DegradesOnServerError(t *testing.T) {
	f := newFixture(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	partner := enabledPartner()
	partner.Endpoint = srv.URL

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partner, nil)

	res, err := f.svc.TestConnection(context.Background(), "AG1")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "500")
}

func TestChannelService_TestConnection_UnreachableEndpoint(t *testing.T) {
	f := newFixture(t)

	partner := enabledPartner()
	partner.Endpoint = "http://127.0.0.1:1"

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partner, nil)

	res, err := f.svc.TestConnection(context.Background(), "AG1")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestChannelService_TestConnection_NoEndpointConfigured(t *testing.T) {
	f := newFixture(t)

	partner := enabledPartner()
	partner.Endpoint = ""

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partner, nil)

	res, err := f.svc.TestConnection(context.Background(), "AG1")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "no endpoint configured", res.Message)
}

func TestChannelService_TestConnection_UnknownAgency(t *testing.T) {
	f := newFixture(t)

	f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.ChannelPartner{}, nil)

	_, err := f.svc.TestConnection(context.Background(), "nope")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
