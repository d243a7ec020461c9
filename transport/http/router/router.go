package router

import (
	"staysync/internal/handlers/channel"
	"staysync/internal/handlers/offline"
	"staysync/internal/handlers/partner"
	"staysync/internal/handlers/sync"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Partner partner.Handler
	Channel channel.Handler
	Sync    sync.Handler
	Offline offline.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Partner.Router(routerGroup)
		r.DomainHandlers.Channel.Router(routerGroup)
		r.DomainHandlers.Sync.Router(routerGroup)
		r.DomainHandlers.Offline.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
