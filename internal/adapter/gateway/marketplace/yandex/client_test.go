package yandex_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	cl "github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/marketplace/yandex"
	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

func entriesPage(skus []string, next string) map[string]any {
	entries := make([]map[string]any, 0, len(skus))
	for _, s := range skus {
		entries = append(entries, map[string]any{"offer": map[string]any{"shopSku": s}})
	}
	return map[string]any{"result": map[string]any{
		"offerMappingEntries": entries,
		"paging":              map[string]any{"nextPageToken": next},
	}}
}

func TestListOfferIDs_Paginated(t *testing.T) {
	var auths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/campaigns/77/offer-mapping-entries", func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		var page map[string]any
		switch r.URL.Query().Get("page_token") {
		case "":
			page = entriesPage([]string{"A", "B"}, "tok1")
		case "tok1":
			page = entriesPage([]string{"C"}, "")
		default:
			t.Errorf("unexpected page_token %q", r.URL.Query().Get("page_token"))
		}
		_ = json.NewEncoder(w).Encode(page)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := cl.NewWithBaseURL(ts.URL, "tok", "77", "wh1", "fbs")
	ids, err := c.ListOfferIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"A", "B", "C"}) {
		t.Fatalf("ids=%v", ids)
	}
	if len(auths) != 2 || auths[0] != "Bearer tok" {
		t.Fatalf("auth: %v", auths)
	}
	if c.Name() != "yandex-fbs" {
		t.Fatalf("name=%s", c.Name())
	}
}

func TestListOfferIDs_MissingResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := cl.NewWithBaseURL(ts.URL, "tok", "77", "wh1", "dbs")
	if _, err := c.ListOfferIDs(context.Background()); !errors.Is(err, offers.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestSubmitStocks_PayloadShape(t *testing.T) {
	var method string
	var got map[string][]map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/campaigns/77/offers/stocks" {
			t.Errorf("path=%s", r.URL.Path)
		}
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer ts.Close()

	c := cl.NewWithBaseURL(ts.URL, "tok", "77", "wh1", "fbs")
	err := c.SubmitStocks(context.Background(), []offers.StockRecord{{OfferID: "A", Quantity: 7}})
	if err != nil {
		t.Fatal(err)
	}
	if method != http.MethodPut {
		t.Fatalf("method=%s", method)
	}
	if len(got["skus"]) != 1 {
		t.Fatalf("payload: %v", got)
	}
	sku := got["skus"][0]
	if sku["sku"] != "A" || sku["warehouseId"] != "wh1" {
		t.Fatalf("sku: %v", sku)
	}
	items, ok := sku["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items: %v", sku["items"])
	}
	it := items[0].(map[string]any)
	if it["count"] != float64(7) || it["type"] != "FIT" || it["updatedAt"] == "" {
		t.Fatalf("item: %v", it)
	}
}

func TestSubmitPrices_PayloadShape(t *testing.T) {
	var got map[string][]map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/campaigns/77/offer-prices/updates" {
			t.Errorf("path=%s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer ts.Close()

	c := cl.NewWithBaseURL(ts.URL, "tok", "77", "wh1", "dbs")
	err := c.SubmitPrices(context.Background(), []offers.PriceRecord{{OfferID: "A", Price: 5990, Currency: "RUR"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got["offers"]) != 1 {
		t.Fatalf("payload: %v", got)
	}
	o := got["offers"][0]
	if o["id"] != "A" {
		t.Fatalf("offer: %v", o)
	}
	price := o["price"].(map[string]any)
	if price["value"] != float64(5990) || price["currencyId"] != "RUR" {
		t.Fatalf("price: %v", price)
	}
}
