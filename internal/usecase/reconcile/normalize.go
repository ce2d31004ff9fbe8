package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

// Feed sentinels: ">10" means the supplier has plenty, "1" means the last
// piece is held in reserve and must not be listed.
const (
	sentinelMany     = ">10"
	sentinelReserved = "1"

	manyQuantity = 100
)

// NormalizeQuantity maps the feed's textual quantity onto the count we
// report to marketplaces.
func NormalizeQuantity(text string) (int, error) {
	s := strings.TrimSpace(text)
	switch s {
	case sentinelMany:
		return manyQuantity, nil
	case sentinelReserved:
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: quantity %q", offers.ErrMalformedRecord, text)
	}
	return n, nil
}

// NormalizePrice turns "5'990.00 руб." into 5990: the fractional part is cut
// at the first dot, then everything that is not a digit is dropped.
func NormalizePrice(text string) (int64, error) {
	intPart, _, _ := strings.Cut(text, ".")
	var b strings.Builder
	for _, r := range intPart {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: price %q", offers.ErrMalformedRecord, text)
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q: %v", offers.ErrMalformedRecord, text, err)
	}
	return n, nil
}
