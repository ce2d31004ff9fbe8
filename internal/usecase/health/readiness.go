package health

import (
	"context"
	"time"

	domain "github.com/sh1m0r1an1n/seller-apis/internal/domain/health"
)

type Output struct {
	Status  domain.Status
	Checks  map[string]domain.Status
	Version string
	Uptime  time.Duration
	Now     time.Time
}

type Clock interface{ Now() time.Time }

type SysClock struct{}

func (SysClock) Now() time.Time { return time.Now() }

// ReadinessInteractor pings every upstream the sync depends on (feed host,
// marketplace APIs). Any failed check degrades the overall status.
type ReadinessInteractor struct {
	Pingers   []domain.Pinger
	Version   string
	StartedAt time.Time
	Clock     Clock
	Timeout   time.Duration
}

func (uc *ReadinessInteractor) Execute(ctx context.Context) Output {
	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	checks := make(map[string]domain.Status, len(uc.Pingers))
	overall := domain.StatusOK

	for _, p := range uc.Pingers {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		err := p.Ping(cctx)
		cancel()

		if err != nil {
			checks[p.Name()] = domain.StatusDegraded
			overall = domain.StatusDegraded
		} else {
			checks[p.Name()] = domain.StatusOK
		}
	}

	now := uc.Clock.Now()
	return Output{
		Status:  overall,
		Checks:  checks,
		Version: uc.Version,
		Uptime:  now.Sub(uc.StartedAt).Truncate(time.Second),
		Now:     now.UTC(),
	}
}
