package syncuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
	"github.com/sh1m0r1an1n/seller-apis/internal/usecase/reconcile"
)

// Limits bounds one marketplace's bulk endpoints per record kind.
type Limits struct {
	Stock int
	Price int
}

// Pipeline pushes the remnants feed into one marketplace campaign.
type Pipeline struct {
	Catalog  offers.Catalog
	Limits   Limits
	Currency string
}

// Summary reports what one pipeline run produced and submitted.
type Summary struct {
	Offers       int `json:"offers"`
	Stocks       int `json:"stocks"`
	Prices       int `json:"prices"`
	StockBatches int `json:"stockBatches"`
	PriceBatches int `json:"priceBatches"`
}

// Orchestrator fetches the feed once per run and drives every pipeline
// against it. Pipelines own their credentials and intermediate collections;
// the only thing they share is the read-only feed slice.
type Orchestrator struct {
	Feed      offers.FeedSource
	Pipelines []Pipeline
	Timeout   time.Duration

	// SubmitConcurrency caps in-flight batch submissions per pipeline.
	SubmitConcurrency int

	Logger *slog.Logger
}

func (o *Orchestrator) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// RunAll runs the pipelines whose catalog name is in only (nil/empty => all)
// concurrently. A failed pipeline does not stop the others; all failures
// come back joined, alongside the summaries of the pipelines that ran.
func (o *Orchestrator) RunAll(ctx context.Context, only map[string]struct{}) (map[string]Summary, error) {
	timeout := o.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	feed, err := o.Feed.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	out := make(map[string]Summary)
	var mu sync.Mutex
	var errsMu sync.Mutex
	var errs []error

	var wg sync.WaitGroup
	for _, p := range o.Pipelines {
		if len(only) > 0 {
			if _, ok := only[p.Catalog.Name()]; !ok {
				continue
			}
		}
		wg.Add(1)
		p := p
		go func() {
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			sum, err := p.run(cctx, feed, o.SubmitConcurrency, o.log())
			mu.Lock()
			out[p.Catalog.Name()] = sum
			mu.Unlock()
			if err != nil {
				errsMu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", p.Catalog.Name(), err))
				errsMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

// run is one full pass: enumerate → reconcile → chunked submit. Enumeration
// or reconciliation failure aborts the pass before anything is submitted;
// submission failures are collected per batch and do not stop later batches.
func (p Pipeline) run(ctx context.Context, feed []offers.RawRecord, workers int, l *slog.Logger) (Summary, error) {
	l = l.With("marketplace", p.Catalog.Name(), "run", uuid.NewString())
	l.Info("sync start")

	ids, err := p.Catalog.ListOfferIDs(ctx)
	if err != nil {
		l.Warn("enumeration failed", "err", err)
		return Summary{}, fmt.Errorf("enumerate offers: %w", err)
	}

	stocks, err := reconcile.BuildStocks(feed, ids)
	if err != nil {
		return Summary{}, err
	}
	prices, err := reconcile.BuildPrices(feed, ids, p.Currency)
	if err != nil {
		return Summary{}, err
	}

	stockBatches, err := reconcile.Chunk(stocks, p.Limits.Stock)
	if err != nil {
		return Summary{}, err
	}
	priceBatches, err := reconcile.Chunk(prices, p.Limits.Price)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Offers:       len(ids),
		Stocks:       len(stocks),
		Prices:       len(prices),
		StockBatches: len(stockBatches),
		PriceBatches: len(priceBatches),
	}

	var errs []error
	errs = append(errs, submitAll(ctx, workers, len(stockBatches), "stocks", func(i int) error {
		return p.Catalog.SubmitStocks(ctx, stockBatches[i])
	})...)
	errs = append(errs, submitAll(ctx, workers, len(priceBatches), "prices", func(i int) error {
		return p.Catalog.SubmitPrices(ctx, priceBatches[i])
	})...)

	if len(errs) > 0 {
		l.Warn("sync finished with failed batches", "failed", len(errs))
		return sum, errors.Join(errs...)
	}
	l.Info("sync done",
		"offers", sum.Offers, "stocks", sum.Stocks, "prices", sum.Prices,
		"stockBatches", sum.StockBatches, "priceBatches", sum.PriceBatches)
	return sum, nil
}

// submitAll dispatches every batch even when some fail, at most workers at a
// time; each failure is reported individually.
func submitAll(ctx context.Context, workers, n int, kind string, send func(int) error) []error {
	if workers <= 0 {
		workers = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)

	var mu sync.Mutex
	var errs []error
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s batch %d: %w", kind, i, err))
				mu.Unlock()
				return nil
			}
			if err := send(i); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s batch %d: %w", kind, i, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
