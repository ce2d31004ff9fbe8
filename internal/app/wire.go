package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	httpctrl "github.com/sh1m0r1an1n/seller-apis/internal/adapter/controller/http"
	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/apiping"
	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/feed"
	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/marketplace/ozon"
	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/marketplace/yandex"
	"github.com/sh1m0r1an1n/seller-apis/internal/config"
	domain "github.com/sh1m0r1an1n/seller-apis/internal/domain/health"
	httpinfra "github.com/sh1m0r1an1n/seller-apis/internal/infra/http"
	"github.com/sh1m0r1an1n/seller-apis/internal/infra/http/mw/adminauth"
	"github.com/sh1m0r1an1n/seller-apis/internal/infra/logx"
	"github.com/sh1m0r1an1n/seller-apis/internal/infra/scheduler"
	usehealth "github.com/sh1m0r1an1n/seller-apis/internal/usecase/health"
	syncuc "github.com/sh1m0r1an1n/seller-apis/internal/usecase/sync"
)

// Build assembles the process from the environment and hands back everything
// main needs: the router, the background sync loop and the listen address.
func Build() (*gin.Engine, *scheduler.AutoSync, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, "", err
	}

	logger := logx.New(os.Stdout)
	slog.SetDefault(logger)

	feedSrc := feed.NewSource(cfg.FeedURL, cfg.FeedHeaderRows)
	ozonCl := ozon.New(cfg.OzonClientID, cfg.OzonAPIKey)
	fbs := yandex.New(cfg.MarketToken, cfg.CampaignFBSID, cfg.WarehouseFBSID, "fbs")
	dbs := yandex.New(cfg.MarketToken, cfg.CampaignDBSID, cfg.WarehouseDBSID, "dbs")

	orch := &syncuc.Orchestrator{
		Feed: feedSrc,
		Pipelines: []syncuc.Pipeline{
			{
				Catalog:  ozonCl,
				Limits:   syncuc.Limits{Stock: cfg.OzonStockBatch, Price: cfg.OzonPriceBatch},
				Currency: "RUB",
			},
			{
				Catalog:  fbs,
				Limits:   syncuc.Limits{Stock: cfg.MarketStockBatch, Price: cfg.MarketPriceBatch},
				Currency: "RUR",
			},
			{
				Catalog:  dbs,
				Limits:   syncuc.Limits{Stock: cfg.MarketStockBatch, Price: cfg.MarketPriceBatch},
				Currency: "RUR",
			},
		},
		Timeout:           cfg.SyncTimeout,
		SubmitConcurrency: cfg.SubmitConcurrency,
		Logger:            logger,
	}

	health := &usehealth.ReadinessInteractor{
		Pingers: []domain.Pinger{
			feedSrc,
			apiping.Upstream{Label: "ozon", T: ozonCl},
			apiping.Upstream{Label: "yandex", T: fbs},
		},
		Version:   config.Version,
		StartedAt: config.StartedAt,
		Clock:     usehealth.SysClock{},
		Timeout:   500 * time.Millisecond,
	}

	router := httpinfra.NewRouter()
	httpctrl.NewHealthController(health).Register(router)
	httpctrl.NewSyncController(orch).Register(router, adminauth.New(cfg.AdminAPIKey).Handler())

	auto := &scheduler.AutoSync{
		Runner:   orch,
		Interval: cfg.SyncInterval,
		Timeout:  cfg.SyncTimeout,
		Logger:   logger,
	}

	return router, auto, cfg.HTTPAddr, nil
}
