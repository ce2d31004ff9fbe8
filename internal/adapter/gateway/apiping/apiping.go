package apiping

import (
	"context"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/health"
)

// Target is anything that can probe its own upstream.
type Target interface {
	Ping(ctx context.Context) error
}

// Upstream adapts a gateway's Ping into a named health check.
type Upstream struct {
	Label string
	T     Target
}

func (u Upstream) Name() string { return u.Label }

func (u Upstream) Ping(ctx context.Context) error { return u.T.Ping(ctx) }

var _ health.Pinger = Upstream{}
