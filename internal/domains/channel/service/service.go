package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/internal/domains/channel/model/dto"
	"staysync/internal/domains/channel/repository"
	partnerModel "staysync/internal/domains/partner/model"
	partnerRepo "staysync/internal/domains/partner/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
)

const (
	cacheGetAllChannelReservations = "channel_reservation:gets"
	cacheCountChannelReservations  = "channel_reservation:count"
)

type Channel interface {
	Ingest(ctx context.Context, payload dto.WebhookPayload) (dto.IngestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetChannelReservationsResponse, error)
	TestConnection(ctx context.Context, agencyID string) (dto.TestConnectionResponse, error)
}

type serviceImpl struct {
	repo     repository.ChannelReservation
	partners partnerRepo.Partner
	producer kafka.Client
	probe    *http.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.ChannelReservation, partners partnerRepo.Partner, producer kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Channel {
	return &serviceImpl{
		repo:     repo,
		partners: partners,
		producer: producer,
		probe: &http.Client{
			Timeout: time.Duration(cfg.Sync.ProbeTimeoutSeconds) * time.Second,
		},
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Ingest validates and normalizes an inbound channel event into the channel
// buffer. Re-delivery of the same (agencyId, externalId) updates the existing
// record instead of duplicating it. The PMS store is never touched here.
func (s *serviceImpl) Ingest(ctx context.Context, payload dto.WebhookPayload) (res dto.IngestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Ingest")
	defer scope.End()
	defer scope.TraceIfError(err)

	partner, err := s.partners.Get(ctx, shared.FilterByID(payload.AgencyID, partnerModel.FieldAgencyID, partnerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve partner for webhook")

		return res, fmt.Errorf("failed to resolve partner: %w", err)
	}

	if partner.ID == constant.Empty {
		return res, failure.NotFound("unknown agency: " + payload.AgencyID) // nolint:wrapcheck
	}

	if !partner.Enabled {
		return res, failure.Forbidden("partner is disabled: " + payload.AgencyID) // nolint:wrapcheck
	}

	draft, err := payload.ToModel(partner.AgencyID)
	if err != nil {
		log.Error().Err(err).Msg("failed to normalize webhook payload")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	// An upsert keyed on (agency_id, external_id) lets concurrent deliveries
	// of the same booking reference race safely: the loser refreshes the row
	// the winner created instead of tripping the unique constraint.
	created, err := s.repo.Upsert(ctx, draft)
	if err != nil {
		log.Error().Err(err).Msg("failed to store channel reservation")

		return res, fmt.Errorf("failed to store channel reservation: %w", err)
	}

	stored, err := s.repo.Get(ctx, repository.FilterByBookingRef(payload.AgencyID, payload.ExternalID))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload channel reservation")

		return res, fmt.Errorf("failed to reload channel reservation: %w", err)
	}

	res.Created = created
	res.Reservation.FromModel(stored)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, payload.Event, res.Reservation)

		shared.InvalidateCaches(c, s.cache, cacheGetAllChannelReservations)
		shared.InvalidateCaches(c, s.cache, cacheCountChannelReservations)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetChannelReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllChannelReservations, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for channel reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count channel reservations")

		return res, fmt.Errorf("failed to count channel reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get channel reservations")

		return res, fmt.Errorf("failed to get channel reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save channel reservations to cache")
		}
	}()

	return res, nil
}

// TestConnection probes the partner's configured endpoint with a bounded
// timeout. Reachability failures degrade to a structured result rather than an
// error so partner health stays renderable.
func (s *serviceImpl) TestConnection(ctx context.Context, agencyID string) (res dto.TestConnectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".TestConnection")
	defer scope.End()
	defer scope.TraceIfError(err)

	partner, err := s.partners.Get(ctx, shared.FilterByID(agencyID, partnerModel.FieldAgencyID, partnerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve partner for connection test")

		return res, fmt.Errorf("failed to resolve partner: %w", err)
	}

	if partner.ID == constant.Empty {
		return res, failure.NotFound("unknown agency: " + agencyID) // nolint:wrapcheck
	}

	if partner.Endpoint == constant.Empty {
		return dto.TestConnectionResponse{
			Success:   false,
			Message:   "no endpoint configured",
			LatencyMs: 0,
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, partner.Endpoint, nil)
	if err != nil {
		return dto.TestConnectionResponse{
			Success:   false,
			Message:   err.Error(),
			LatencyMs: 0,
		}, nil
	}

	start := time.Now()

	resp, err := s.probe.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("agencyId", agencyID).Msg("partner endpoint unreachable")

		return dto.TestConnectionResponse{
			Success:   false,
			Message:   err.Error(),
			LatencyMs: 0,
		}, nil
	}
	defer resp.Body.Close()

	latency := time.Since(start).Milliseconds()

	if resp.StatusCode >= http.StatusBadRequest {
		return dto.TestConnectionResponse{
			Success:   false,
			Message:   fmt.Sprintf("endpoint returned %s", resp.Status),
			LatencyMs: latency,
		}, nil
	}

	return dto.TestConnectionResponse{
		Success:   true,
		Message:   "connection established",
		LatencyMs: latency,
	}, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, reservation dto.ChannelReservationResponse) {
	if s.producer == nil || !s.cfg.Kafka.Enable {
		return
	}

	message := kafka.Message{
		Key: reservation.AgencyID + ":" + reservation.ExternalID,
		Value: map[string]any{
			"event":       event,
			"reservation": reservation,
		},
	}

	if err := s.producer.SendMessages(ctx, s.cfg.Kafka.ReservationTopic, message); err != nil {
		log.Error().Err(err).Str("topic", s.cfg.Kafka.ReservationTopic).Msg("failed to publish reservation event")
	}
}
