package httpctrl_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpctrl "github.com/sh1m0r1an1n/seller-apis/internal/adapter/controller/http"
	syncuc "github.com/sh1m0r1an1n/seller-apis/internal/usecase/sync"
)

type fakeRunner struct {
	lastOnly map[string]struct{}
	res      map[string]syncuc.Summary
	err      error
}

func (f *fakeRunner) RunAll(ctx context.Context, only map[string]struct{}) (map[string]syncuc.Summary, error) {
	f.lastOnly = only
	return f.res, f.err
}

func newRouter(runner httpctrl.SyncRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	httpctrl.NewSyncController(runner).Register(r)
	return r
}

func TestSync_All_OK(t *testing.T) {
	runner := &fakeRunner{res: map[string]syncuc.Summary{
		"ozon":       {Offers: 3, Stocks: 3, Prices: 2, StockBatches: 1, PriceBatches: 1},
		"yandex-fbs": {Offers: 5, Stocks: 5, Prices: 4, StockBatches: 1, PriceBatches: 1},
	}}
	r := newRouter(runner)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Synced map[string]syncuc.Summary `json:"synced"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Synced["ozon"].Stocks != 3 || got.Synced["yandex-fbs"].Offers != 5 {
		t.Fatalf("payload: %#v", got)
	}
	if runner.lastOnly != nil {
		t.Fatalf("filter should be nil, got %v", runner.lastOnly)
	}
}

func TestSync_MarketplaceFilter(t *testing.T) {
	runner := &fakeRunner{res: map[string]syncuc.Summary{"ozon": {}}}
	r := newRouter(runner)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/sync?marketplace=%20ozon,%20yandex-dbs", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(runner.lastOnly) != 2 {
		t.Fatalf("filter: %v", runner.lastOnly)
	}
	for _, name := range []string{"ozon", "yandex-dbs"} {
		if _, ok := runner.lastOnly[name]; !ok {
			t.Fatalf("filter missing %s: %v", name, runner.lastOnly)
		}
	}
}

func TestSync_Error_BubblesUp(t *testing.T) {
	runner := &fakeRunner{
		res: map[string]syncuc.Summary{"yandex-fbs": {Offers: 1}},
		err: errors.New("ozon: enumerate offers: boom"),
	}
	r := newRouter(runner)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Error  string                    `json:"error"`
		Synced map[string]syncuc.Summary `json:"synced"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Error == "" {
		t.Fatal("error missing from payload")
	}
	// partial результат всё равно отдаём
	if got.Synced["yandex-fbs"].Offers != 1 {
		t.Fatalf("partial summaries dropped: %#v", got)
	}
}
