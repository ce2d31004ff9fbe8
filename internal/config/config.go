package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything one process run needs; nothing is read from the
// environment after Load returns.
type Config struct {
	HTTPAddr    string
	AdminAPIKey string

	FeedURL        string
	FeedHeaderRows int

	OzonClientID string
	OzonAPIKey   string

	MarketToken    string
	CampaignFBSID  string
	CampaignDBSID  string
	WarehouseFBSID string
	WarehouseDBSID string

	// batch ceilings per marketplace and record kind
	OzonStockBatch   int
	OzonPriceBatch   int
	MarketStockBatch int
	MarketPriceBatch int

	SubmitConcurrency int
	SyncInterval      time.Duration
	SyncTimeout       time.Duration
}

const defaultFeedURL = "https://timeworld.ru/upload/files/ostatki.zip"

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		FeedURL:        getenv("FEED_URL", defaultFeedURL),
		FeedHeaderRows: atoienv("FEED_HEADER_ROWS", 17),

		OzonClientID: os.Getenv("OZON_CLIENT_ID"),
		OzonAPIKey:   os.Getenv("OZON_API_KEY"),

		MarketToken:    os.Getenv("MARKET_TOKEN"),
		CampaignFBSID:  os.Getenv("FBS_ID"),
		CampaignDBSID:  os.Getenv("DBS_ID"),
		WarehouseFBSID: os.Getenv("WAREHOUSE_FBS_ID"),
		WarehouseDBSID: os.Getenv("WAREHOUSE_DBS_ID"),

		OzonStockBatch:   atoienv("OZON_STOCK_BATCH", 100),
		OzonPriceBatch:   atoienv("OZON_PRICE_BATCH", 1000),
		MarketStockBatch: atoienv("MARKET_STOCK_BATCH", 2000),
		MarketPriceBatch: atoienv("MARKET_PRICE_BATCH", 500),

		SubmitConcurrency: atoienv("SUBMIT_CONCURRENCY", 1),
		SyncInterval:      durenv("SYNC_INTERVAL", time.Hour),
		SyncTimeout:       durenv("SYNC_TIMEOUT", 10*time.Minute),
	}

	var missing []string
	for _, req := range []struct{ name, val string }{
		{"OZON_CLIENT_ID", cfg.OzonClientID},
		{"OZON_API_KEY", cfg.OzonAPIKey},
		{"MARKET_TOKEN", cfg.MarketToken},
		{"FBS_ID", cfg.CampaignFBSID},
		{"DBS_ID", cfg.CampaignDBSID},
		{"WAREHOUSE_FBS_ID", cfg.WarehouseFBSID},
		{"WAREHOUSE_DBS_ID", cfg.WarehouseDBSID},
	} {
		if strings.TrimSpace(req.val) == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing env: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoienv(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func durenv(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
