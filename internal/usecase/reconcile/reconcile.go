package reconcile

import (
	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

// BuildStocks merges the feed against the campaign's offer set and produces
// exactly one stock record per catalog offer: offers covered by the feed get
// the normalized quantity, the rest are zeroed so stale listings do not
// oversell. Output order is feed-matched rows in feed order, then the
// remaining catalog offers in catalog order.
//
// Duplicate feed rows for one code are resolved keep-first.
func BuildStocks(feed []offers.RawRecord, offerIDs []string) ([]offers.StockRecord, error) {
	known := toSet(offerIDs)

	out := make([]offers.StockRecord, 0, len(offerIDs))
	matched := make(map[string]struct{}, len(feed))
	for _, r := range feed {
		if _, ok := known[r.Code]; !ok {
			continue
		}
		if _, dup := matched[r.Code]; dup {
			continue
		}
		matched[r.Code] = struct{}{}

		qty, err := NormalizeQuantity(r.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, offers.StockRecord{OfferID: r.Code, Quantity: qty})
	}
	for _, id := range offerIDs {
		if _, ok := matched[id]; ok {
			continue
		}
		out = append(out, offers.StockRecord{OfferID: id, Quantity: 0})
	}
	return out, nil
}

// BuildPrices produces a price record for every catalog offer the feed
// covers, in feed order. Catalog-only offers are skipped: there is nothing
// to reprice. Duplicates resolve keep-first, same as BuildStocks.
func BuildPrices(feed []offers.RawRecord, offerIDs []string, currency string) ([]offers.PriceRecord, error) {
	known := toSet(offerIDs)

	out := make([]offers.PriceRecord, 0, len(feed))
	matched := make(map[string]struct{}, len(feed))
	for _, r := range feed {
		if _, ok := known[r.Code]; !ok {
			continue
		}
		if _, dup := matched[r.Code]; dup {
			continue
		}
		matched[r.Code] = struct{}{}

		value, err := NormalizePrice(r.Price)
		if err != nil {
			return nil, err
		}
		out = append(out, offers.PriceRecord{OfferID: r.Code, Price: value, Currency: currency})
	}
	return out, nil
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
