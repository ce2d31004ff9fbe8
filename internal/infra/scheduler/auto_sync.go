package scheduler

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	syncuc "github.com/sh1m0r1an1n/seller-apis/internal/usecase/sync"
)

type Runner interface {
	RunAll(ctx context.Context, only map[string]struct{}) (map[string]syncuc.Summary, error)
}

// AutoSync runs the full sync on an interval. A tick is skipped while the
// previous run is still in flight.
type AutoSync struct {
	Runner   Runner
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger

	running int32
}

func (a *AutoSync) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *AutoSync) Start(ctx context.Context) {
	interval := a.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	go func() {
		// разброс стартов, чтобы реплики не били в фид одновременно
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(5+rand.Intn(20)) * time.Second):
		}

		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if !atomic.CompareAndSwapInt32(&a.running, 0, 1) {
					continue
				}
				func() {
					defer atomic.StoreInt32(&a.running, 0)

					cctx, cancel := context.WithTimeout(ctx, timeout)
					defer cancel()

					if summary, err := a.Runner.RunAll(cctx, nil); err != nil {
						a.log().Warn("auto-sync failed", "err", err, "summary", summary)
					} else {
						a.log().Info("auto-sync done", "summary", summary)
					}
				}()
			}
		}
	}()
}
