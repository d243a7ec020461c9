package partner

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	"staysync/internal/domains/partner/model"
	"staysync/internal/domains/partner/model/dto"
	"staysync/internal/domains/partner/service"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

type Handler struct {
	service service.Partner
	otel    otel.Otel
}

func New(service service.Partner, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/channels/partners", func(r chi.Router) {
		r.Get("/", handler.GetPartners)
		r.Post("/", handler.UpsertPartner)
		r.Patch("/", handler.PatchPartner)
		r.Delete("/", handler.DeletePartner)
		r.Get("/{id}", handler.GetPartnerByID)
	})
}

// GetPartners lists registered channel partners. Supports filtering by
// enabled flag, status and agency id.
func (handler *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartners")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if agencyID := r.URL.Query().Get(constant.RequestParamAgencyID); agencyID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAgencyID,
			Operator: gDto.FilterOperatorEq,
			Value:    agencyID,
			Table:    model.TableName,
		})
	}

	if enabled := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldEnabled)); enabled != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEnabled,
			Operator: gDto.FilterOperatorEq,
			Value:    *enabled,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetPartnerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartnerByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpsertPartner registers a partner or refreshes an existing registration for
// the same agency id.
func (handler *Handler) UpsertPartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertPartner")
	defer scope.End()

	req := dto.UpsertPartnerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert partner")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("partner registered")

	response.WithJSON(w, http.StatusOK, res)
}

// PatchPartner toggles a partner on or off, or moves it through the sync
// status lifecycle, depending on the requested action.
func (handler *Handler) PatchPartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PatchPartner")
	defer scope.End()

	req := dto.PatchPartnerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	var (
		res dto.PartnerResponse
		err error
	)

	switch req.Action {
	case dto.PatchActionToggle:
		enabled := true
		if req.Enabled != nil {
			enabled = *req.Enabled
		}

		res, err = handler.service.SetEnabled(ctx, req.PartnerID, enabled)
	default:
		res, err = handler.service.SetStatus(ctx, req.PartnerID, req.Status, req.StatusDetail)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to patch partner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePartner")
	defer scope.End()

	req := dto.DeletePartnerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req.PartnerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete partner")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("partner removed")

	response.WithMessage(w, http.StatusOK, "partner removed")
}
