package offers

import "context"

// Catalog is one marketplace campaign: enumeration of what is listed there
// plus the two bulk-update endpoints.
type Catalog interface {
	Name() string
	ListOfferIDs(ctx context.Context) ([]string, error)
	SubmitStocks(ctx context.Context, batch []StockRecord) error
	SubmitPrices(ctx context.Context, batch []PriceRecord) error
}

// FeedSource delivers the current remnants feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}
