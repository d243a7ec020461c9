package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/partner/model"
	"staysync/internal/domains/partner/model/dto"
	"staysync/internal/domains/partner/repository"
	"staysync/shared"
	"staysync/shared/cache"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	"staysync/shared/timezone"
)

const (
	cacheGetPartner     = "partner:get"
	cacheGetAllPartners = "partner:gets"
	cacheCountPartners  = "partner:count"
)

type Partner interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPartnersResponse, error)
	Get(ctx context.Context, id string) (dto.PartnerResponse, error)
	Upsert(ctx context.Context, req dto.UpsertPartnerRequest) (dto.PartnerResponse, error)
	SetEnabled(ctx context.Context, partnerID string, enabled bool) (dto.PartnerResponse, error)
	SetStatus(ctx context.Context, partnerID, status, detail string) (dto.PartnerResponse, error)
	Delete(ctx context.Context, partnerID string) error
}

type serviceImpl struct {
	repo  repository.Partner
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Partner, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Partner {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPartnersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPartners, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for partners")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count partners")

		return res, fmt.Errorf("failed to count partners: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get partners")

		return res, fmt.Errorf("failed to get partners: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save partners to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PartnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPartner, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for partner")

		return res, nil
	}

	partner, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get partner")

		return res, fmt.Errorf("failed to get partner: %w", err)
	}

	if partner.ID == constant.Empty {
		return res, failure.NotFound("partner not found") // nolint:wrapcheck
	}

	res.FromModel(partner)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save partner to cache")
		}
	}()

	return res, nil
}

// Upsert creates the partner when the agency id is unknown and otherwise overwrites
// its mutable fields, preserving the current status and enabled flag.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertPartnerRequest) (res dto.PartnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyClientID).(string)
	filter := shared.FilterByID(req.AgencyID, model.FieldAgencyID, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up partner by agency id")

		return res, fmt.Errorf("failed to look up partner: %w", err)
	}

	if existing.ID == constant.Empty {
		partner := req.ToModel(user)

		if err = s.repo.Insert(ctx, partner); err != nil {
			log.Error().Err(err).Msg("failed to create partner")

			return res, fmt.Errorf("failed to create partner: %w", err)
		}

		s.invalidate(ctx, partner.ID)
		res.FromModel(partner)

		return res, nil
	}

	updatedFields := map[string]any{
		model.FieldName:           req.Name,
		model.FieldCredentials:    req.Credentials,
		model.FieldEndpoint:       req.Endpoint,
		model.FieldCommissionRate: req.CommissionRate,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update partner")

		return res, fmt.Errorf("failed to update partner: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload partner")

		return res, fmt.Errorf("failed to reload partner: %w", err)
	}

	s.invalidate(ctx, updated.ID)
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) SetEnabled(ctx context.Context, partnerID string, enabled bool) (dto.PartnerResponse, error) {
	status := model.StatusActive
	if !enabled {
		status = model.StatusDisabled
	}

	return s.patch(ctx, partnerID, map[string]any{
		model.FieldEnabled: enabled,
		model.FieldStatus:  status,
	})
}

func (s *serviceImpl) SetStatus(ctx context.Context, partnerID, status, detail string) (dto.PartnerResponse, error) {
	return s.patch(ctx, partnerID, map[string]any{
		model.FieldStatus:       status,
		model.FieldStatusDetail: detail,
	})
}

func (s *serviceImpl) Delete(ctx context.Context, partnerID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(partnerID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if partner exists")

		return fmt.Errorf("failed to check if partner exists: %w", err)
	}

	if !exist {
		log.Error().Msg("partner not found")

		return failure.NotFound("partner not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete partner")

		return fmt.Errorf("failed to delete partner: %w", err)
	}

	s.invalidate(ctx, partnerID)

	return nil
}

func (s *serviceImpl) patch(ctx context.Context, partnerID string, fields map[string]any) (res dto.PartnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".patch")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyClientID).(string)
	filter := shared.FilterByID(partnerID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if partner exists")

		return res, fmt.Errorf("failed to check if partner exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("partner not found") // nolint:wrapcheck
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to patch partner")

		return res, fmt.Errorf("failed to patch partner: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload partner")

		return res, fmt.Errorf("failed to reload partner: %w", err)
	}

	s.invalidate(ctx, partnerID)
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, partnerID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPartner, partnerID)); err != nil {
			log.Error().Err(err).Msg("failed to delete partner from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPartners)
		shared.InvalidateCaches(c, s.cache, cacheCountPartners)
	}()
}
