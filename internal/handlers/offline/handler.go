package offline

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	"staysync/internal/domains/offline/model/dto"
	"staysync/internal/domains/offline/service"
	"staysync/shared/constant"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

type Handler struct {
	service service.Offline
	otel    otel.Otel
}

func New(service service.Offline, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/offline", func(r chi.Router) {
		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", handler.GetQueue)
			r.Post("/", handler.Enqueue)
			r.Post("/clear-synced", handler.ClearSynced)
			r.Delete("/{id}", handler.Remove)
		})
		r.Post("/sync", handler.Reconcile)
	})
}

// Enqueue captures a reservation made while disconnected into the pending
// queue. Nothing is committed until a reconciliation pass runs.
func (handler *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Enqueue")
	defer scope.End()

	req := dto.EnqueueOfflineRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Enqueue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to enqueue offline reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("offline reservation queued")

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQueue")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list offline reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Remove")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove offline reservation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "offline reservation removed")
}

func (handler *Handler) ClearSynced(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearSynced")
	defer scope.End()

	res, err := handler.service.ClearSynced(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear synced reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Reconcile runs a full pass over the pending queue, handing each entry to
// the sync engine. Partial progress survives interruption.
func (handler *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	res, err := handler.service.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile offline queue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("reconciliation pass finished")

	response.WithJSON(w, http.StatusOK, res)
}
