package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"staysync/config"
	"staysync/infras/otel"
	"staysync/internal/domains/offline/model"
)

const otelScopeName = "offline_store"

type redisStore struct {
	client    *redis.Client
	namespace string
	otel      otel.Otel
}

func NewRedisStore(client *redis.Client, cfg *config.Config, ot otel.Otel) Store {
	return &redisStore{
		client:    client,
		namespace: cfg.Sync.OfflineStoreNamespace,
		otel:      ot,
	}
}

func (s *redisStore) key(id string) string {
	return s.namespace + ":" + id
}

func (s *redisStore) Get(ctx context.Context, id string) (res model.OfflineReservation, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return res, false, nil
		}

		return res, false, fmt.Errorf("failed to read offline entry: %w", err)
	}

	if err = json.Unmarshal(raw, &res); err != nil {
		return res, false, fmt.Errorf("failed to decode offline entry: %w", err)
	}

	return res, true, nil
}

func (s *redisStore) Set(ctx context.Context, res model.OfflineReservation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode offline entry: %w", err)
	}

	// Queue entries survive restarts, so no expiry.
	if err = s.client.Set(ctx, s.key(res.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write offline entry: %w", err)
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete offline entry: %w", err)
	}

	return nil
}

func (s *redisStore) List(ctx context.Context) (all []model.OfflineReservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	iter := s.client.Scan(ctx, 0, s.namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		raw, getErr := s.client.Get(ctx, iter.Val()).Bytes()
		if getErr != nil {
			if getErr == redis.Nil {
				continue
			}

			return nil, fmt.Errorf("failed to read offline entry: %w", getErr)
		}

		var res model.OfflineReservation
		if err = json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("failed to decode offline entry: %w", err)
		}

		all = append(all, res)
	}

	if err = iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan offline entries: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return all, nil
}
