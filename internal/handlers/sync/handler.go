package sync

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	chModel "staysync/internal/domains/channel/model"
	channelService "staysync/internal/domains/channel/service"
	partnerService "staysync/internal/domains/partner/service"
	resModel "staysync/internal/domains/reservation/model"
	"staysync/internal/domains/sync/model/dto"
	"staysync/internal/domains/sync/service"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

const (
	viewLogs         = "logs"
	viewReservations = "reservations"
	viewPartners     = "partners"
	viewCommitted    = "committed"
)

type Handler struct {
	service  service.Sync
	channels channelService.Channel
	partners partnerService.Partner
	otel     otel.Otel
}

func New(service service.Sync, channels channelService.Channel, partners partnerService.Partner, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		channels: channels,
		partners: partners,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/channels/sync", func(r chi.Router) {
		r.Get("/", handler.GetSyncState)
		r.Post("/", handler.TriggerSync)
	})

	r.Route("/channels/conflicts", func(r chi.Router) {
		r.Get("/", handler.GetConflicts)
		r.Post("/{id}/resolve", handler.ResolveConflict)
	})
}

// GetSyncState serves the sync dashboard views. The type parameter picks the
// audit log (default), the channel buffer, the partner registry, or the
// committed PMS reservations.
func (handler *Handler) GetSyncState(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSyncState")
	defer scope.End()

	view := r.URL.Query().Get(constant.RequestParamType)
	if view == constant.Empty {
		view = viewLogs
	}

	partnerID := r.URL.Query().Get(constant.RequestParamPartnerID)

	var (
		res any
		err error
	)

	switch view {
	case viewLogs:
		limit, _ := strconv.Atoi(r.URL.Query().Get(constant.RequestParamLimit))
		res, err = handler.service.GetLogs(ctx, partnerID, limit)

	case viewReservations:
		queryParams := gDto.QueryParams{}
		queryParams.FromRequest(r, true)

		filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
		if partnerID != constant.Empty {
			filterGroup = shared.FilterByID(partnerID, chModel.FieldAgencyID, chModel.TableName)
		}

		res, err = handler.channels.GetAll(ctx, queryParams, filterGroup)

	case viewPartners:
		queryParams := gDto.QueryParams{}
		queryParams.FromRequest(r, true)

		res, err = handler.partners.GetAll(ctx, queryParams, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

	case viewCommitted:
		queryParams := gDto.QueryParams{}
		queryParams.FromRequest(r, true)

		filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
		if roomType := r.URL.Query().Get(resModel.FieldRoomType); roomType != constant.Empty {
			filterGroup = shared.FilterByID(roomType, resModel.FieldRoomType, resModel.TableName)
		}

		res, err = handler.service.GetReservations(ctx, queryParams, filterGroup)

	default:
		response.WithError(w, failure.BadRequestFromString("unknown type: "+view))

		return
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sync state")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// TriggerSync pushes one buffered channel reservation into the PMS store. A
// detected conflict is a 200 with a conflict report, not an error.
func (handler *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TriggerSync")
	defer scope.End()

	req := dto.SyncRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SyncToPMS(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sync channel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("sync attempt finished")

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConflicts")
	defer scope.End()

	resolved := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamResolved))

	res, err := handler.service.GetConflicts(ctx, resolved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conflicts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResolveConflict applies a resolution strategy to an open conflict.
// Resolving twice returns 409.
func (handler *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveConflict")
	defer scope.End()

	req := dto.ResolveConflictRequest{}
	req.ConflictID = chi.URLParam(r, constant.RequestParamID)

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Resolve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve conflict")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("conflict resolved")

	response.WithJSON(w, http.StatusOK, res)
}
