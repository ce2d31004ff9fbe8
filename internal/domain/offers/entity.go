package offers

// RawRecord is one row of the remnants feed, exactly as the spreadsheet
// carries it. Quantity and Price stay textual ("2", ">10", "5'990.00 руб.")
// until the reconciler normalizes them.
type RawRecord struct {
	Code     string
	Quantity string
	Price    string
}

// StockRecord is one stock update keyed by the marketplace offer id.
type StockRecord struct {
	OfferID  string
	Quantity int
}

// PriceRecord is one price update. Price is whole currency units.
type PriceRecord struct {
	OfferID  string
	Price    int64
	Currency string
}
