package ozon

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/marketplace/common"
	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

const DefaultBaseURL = "https://api-seller.ozon.ru"

const pageLimit = 1000

// Client is the Ozon Seller API gateway for one shop.
type Client struct{ c *common.Client }

func New(clientID, apiKey string) *Client {
	return NewWithBaseURL(DefaultBaseURL, clientID, apiKey)
}

func NewWithBaseURL(base, clientID, apiKey string) *Client {
	return &Client{c: common.New(base, common.DefaultOptionsFromEnv(), map[string]string{
		"Client-Id": clientID,
		"Api-Key":   apiKey,
	})}
}

func (Client) Name() string { return "ozon" }

func (cl *Client) Ping(ctx context.Context) error { return cl.c.Ping(ctx) }

type productListResp struct {
	Result *struct {
		Items []struct {
			OfferID string `json:"offer_id"`
		} `json:"items"`
		Total  int    `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

// ListOfferIDs walks /v2/product/list with the last_id cursor until the
// reported total is reached. An empty page also ends the loop so a stale
// total cannot spin it forever.
func (cl *Client) ListOfferIDs(ctx context.Context) ([]string, error) {
	var (
		lastID string
		out    []string
	)
	for {
		body := map[string]any{
			"filter":  map[string]any{"visibility": "ALL"},
			"last_id": lastID,
			"limit":   pageLimit,
		}
		var v productListResp
		if err := cl.c.PostJSON(ctx, "/v2/product/list", body, &v); err != nil {
			return nil, err
		}
		if v.Result == nil {
			return nil, fmt.Errorf("%w: ozon product list: no result", offers.ErrUpstream)
		}
		for _, it := range v.Result.Items {
			out = append(out, it.OfferID)
		}
		lastID = v.Result.LastID
		if len(v.Result.Items) == 0 || len(out) >= v.Result.Total {
			return out, nil
		}
	}
}

type stockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

func (cl *Client) SubmitStocks(ctx context.Context, batch []offers.StockRecord) error {
	items := make([]stockItem, 0, len(batch))
	for _, r := range batch {
		items = append(items, stockItem{OfferID: r.OfferID, Stock: r.Quantity})
	}
	return cl.c.PostJSON(ctx, "/v1/product/import/stocks", map[string]any{"stocks": items}, nil)
}

type priceItem struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

func (cl *Client) SubmitPrices(ctx context.Context, batch []offers.PriceRecord) error {
	items := make([]priceItem, 0, len(batch))
	for _, r := range batch {
		items = append(items, priceItem{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      r.Currency,
			OfferID:           r.OfferID,
			OldPrice:          "0",
			Price:             strconv.FormatInt(r.Price, 10),
		})
	}
	return cl.c.PostJSON(ctx, "/v1/product/import/prices", map[string]any{"prices": items}, nil)
}
