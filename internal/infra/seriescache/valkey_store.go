package seriescache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/evanlin/lifeboard/internal/domain/dashboard"
)

// ValkeyStore caches computed series in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "caffeine"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (dashboard.SeriesResponse, bool, error) {
	cmd := s.client.B().Get().Key(s.prefix + ":" + key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return dashboard.SeriesResponse{}, false, nil
		}
		return dashboard.SeriesResponse{}, false, err
	}
	var response dashboard.SeriesResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return dashboard.SeriesResponse{}, false, err
	}
	return response, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, response dashboard.SeriesResponse, ttl time.Duration) error {
	payload, err := json.Marshal(response)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.prefix + ":" + key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

var _ dashboard.SeriesStore = (*ValkeyStore)(nil)
