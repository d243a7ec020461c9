//go:build wireinject
// +build wireinject

package di

import (
	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/infras/redis"
	"staysync/shared/cache"
	"staysync/transport/http"
	"staysync/transport/http/middleware"
	"staysync/transport/http/router"

	channelRepository "staysync/internal/domains/channel/repository"
	channelService "staysync/internal/domains/channel/service"
	offlineService "staysync/internal/domains/offline/service"
	offlineStore "staysync/internal/domains/offline/store"
	partnerRepository "staysync/internal/domains/partner/repository"
	partnerService "staysync/internal/domains/partner/service"
	reservationRepository "staysync/internal/domains/reservation/repository"
	syncRepository "staysync/internal/domains/sync/repository"
	syncService "staysync/internal/domains/sync/service"

	channelHandler "staysync/internal/handlers/channel"
	offlineHandler "staysync/internal/handlers/offline"
	partnerHandler "staysync/internal/handlers/partner"
	syncHandler "staysync/internal/handlers/sync"

	"github.com/bsm/redislock"
	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	redis.NewLocker,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var partnerDomain = wire.NewSet(
	partnerRepository.New,
	partnerService.New,
)

var channelDomain = wire.NewSet(
	channelRepository.New,
	channelService.New,
)

var syncDomain = wire.NewSet(
	reservationRepository.New,
	syncRepository.NewSyncLog,
	syncRepository.NewSyncConflict,
	wire.Bind(new(syncService.Locker), new(*redislock.Client)),
	syncService.New,
)

var offlineDomain = wire.NewSet(
	offlineStore.NewRedisStore,
	offlineService.New,
)

var domains = wire.NewSet(
	partnerDomain,
	channelDomain,
	syncDomain,
	offlineDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	partnerHandler.New,
	channelHandler.New,
	syncHandler.New,
	offlineHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
