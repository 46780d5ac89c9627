package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/glotchimo/keystone/internal/display"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

// Static memoizes the response of a command whose result does not depend on
// its arguments. Entries are keyed by command name and live for ttl. Failed
// invocations are not stored. Concurrent misses all reach the upstream.
type Static struct {
	Handler
	store Store
	ttl   time.Duration
}

func NewStatic(h Handler, store Store, ttl time.Duration) *Static {
	return &Static{Handler: h, store: store, ttl: ttl}
}

func (s *Static) key() string {
	return "static:" + s.Metadata().Name
}

func (s *Static) Handle(ctx context.Context, dep Dependencies) (*display.Response, error) {
	if data, ok := s.store.Get(ctx, s.key()); ok {
		var r display.Response
		err := json.Unmarshal(data, &r)
		if err == nil {
			return &r, nil
		}
		dep.Logger.Warn("error decoding cached response", "command", s.Metadata().Name, "error", err)
	}

	r, err := s.Handler.Handle(ctx, dep)
	if err != nil || r == nil {
		return r, err
	}

	data, err := json.Marshal(r)
	if err != nil {
		dep.Logger.Warn("error encoding response for cache", "command", s.Metadata().Name, "error", err)
		return r, nil
	}
	s.store.Set(ctx, s.key(), data, s.ttl)

	return r, nil
}
