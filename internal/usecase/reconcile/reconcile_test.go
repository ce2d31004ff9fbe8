package reconcile_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
	"github.com/sh1m0r1an1n/seller-apis/internal/usecase/reconcile"
)

func row(code, qty, price string) offers.RawRecord {
	return offers.RawRecord{Code: code, Quantity: qty, Price: price}
}

func TestBuildStocks_FeedAndCatalogMerge(t *testing.T) {
	feed := []offers.RawRecord{
		row("A", ">10", "100.00"),
		row("B", "1", "50.00"),
	}
	ids := []string{"A", "B", "C"}

	got, err := reconcile.BuildStocks(feed, ids)
	if err != nil {
		t.Fatal(err)
	}
	want := []offers.StockRecord{
		{OfferID: "A", Quantity: 100},
		{OfferID: "B", Quantity: 0},
		{OfferID: "C", Quantity: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestBuildStocks_OnePerCatalogOffer(t *testing.T) {
	feed := []offers.RawRecord{
		row("B", "3", "10.00"),
		row("X", "5", "20.00"), // not listed → no record
		row("B", "7", "30.00"), // duplicate → first wins
	}
	ids := []string{"A", "B"}

	got, err := reconcile.BuildStocks(feed, ids)
	if err != nil {
		t.Fatal(err)
	}
	want := []offers.StockRecord{
		{OfferID: "B", Quantity: 3},
		{OfferID: "A", Quantity: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}

	// completeness: exactly one record per catalog offer
	seen := map[string]int{}
	for _, s := range got {
		seen[s.OfferID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Fatalf("offer %s emitted %d times", id, seen[id])
		}
	}
}

func TestBuildStocks_EmptyInputs(t *testing.T) {
	got, err := reconcile.BuildStocks([]offers.RawRecord{row("A", "2", "1.00")}, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty catalog: got=%v err=%v", got, err)
	}

	got, err = reconcile.BuildStocks(nil, []string{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	want := []offers.StockRecord{{OfferID: "A"}, {OfferID: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("empty feed: got=%v want=%v", got, want)
	}
}

func TestBuildStocks_MalformedQuantityAborts(t *testing.T) {
	feed := []offers.RawRecord{row("A", "many", "1.00")}
	if _, err := reconcile.BuildStocks(feed, []string{"A"}); !errors.Is(err, offers.ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
}

func TestBuildPrices_FeedOrderAndSkips(t *testing.T) {
	feed := []offers.RawRecord{
		row("A", ">10", "100.00"),
		row("B", "1", "50.00"),
		row("X", "2", "70.00"), // not listed → skipped
	}
	ids := []string{"A", "B", "C"}

	got, err := reconcile.BuildPrices(feed, ids, "RUB")
	if err != nil {
		t.Fatal(err)
	}
	want := []offers.PriceRecord{
		{OfferID: "A", Price: 100, Currency: "RUB"},
		{OfferID: "B", Price: 50, Currency: "RUB"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestBuildPrices_DuplicateKeepsFirst(t *testing.T) {
	feed := []offers.RawRecord{
		row("A", "2", "100.00"),
		row("A", "2", "999.00"),
	}
	got, err := reconcile.BuildPrices(feed, []string{"A"}, "RUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Price != 100 {
		t.Fatalf("got=%v", got)
	}
}

func TestBuildPrices_EmptyFeed(t *testing.T) {
	got, err := reconcile.BuildPrices(nil, []string{"A"}, "RUR")
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
