package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staysync/infras/otel"
	"staysync/internal/domains/channel/model/dto"
	"staysync/internal/domains/channel/service"
	"staysync/shared/constant"
	"staysync/shared/validator"
	"staysync/transport/http/response"
)

type Handler struct {
	service service.Channel
	otel    otel.Otel
}

func New(service service.Channel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/channels", func(r chi.Router) {
		r.Post("/webhook", handler.Webhook)
		r.Post("/test", handler.TestConnection)
	})
}

// Webhook receives a booking event from a channel partner and normalizes it
// into the channel buffer. Redelivery of the same booking reference is safe.
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	req := dto.WebhookPayload{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate webhook payload")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Ingest(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ingest webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("webhook ingested")

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}

	response.WithJSON(w, code, res)
}

// TestConnection probes a partner endpoint. Unreachable endpoints come back
// as a structured failure, not an error status.
func (handler *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TestConnection")
	defer scope.End()

	req := dto.TestConnectionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.TestConnection(ctx, req.AgencyID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to test partner connection")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
