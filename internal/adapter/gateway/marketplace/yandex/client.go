package yandex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sh1m0r1an1n/seller-apis/internal/adapter/gateway/marketplace/common"
	"github.com/sh1m0r1an1n/seller-apis/internal/domain/offers"
)

const DefaultBaseURL = "https://api.partner.market.yandex.ru"

const pageLimit = 200

// Client is the Yandex.Market partner API gateway for one campaign
// (fulfillment model FBS or DBS, each with its own warehouse).
type Client struct {
	c           *common.Client
	campaignID  string
	warehouseID string
	name        string
	now         func() time.Time
}

// New builds a client for one campaign; model is "fbs" or "dbs" and only
// names the pipeline.
func New(token, campaignID, warehouseID, model string) *Client {
	return NewWithBaseURL(DefaultBaseURL, token, campaignID, warehouseID, model)
}

func NewWithBaseURL(base, token, campaignID, warehouseID, model string) *Client {
	return &Client{
		c: common.New(base, common.DefaultOptionsFromEnv(), map[string]string{
			"Authorization": "Bearer " + token,
		}),
		campaignID:  campaignID,
		warehouseID: warehouseID,
		name:        "yandex-" + model,
		now:         time.Now,
	}
}

func (cl *Client) Name() string { return cl.name }

func (cl *Client) Ping(ctx context.Context) error { return cl.c.Ping(ctx) }

type entriesResp struct {
	Result *struct {
		OfferMappingEntries []struct {
			Offer struct {
				ShopSKU string `json:"shopSku"`
			} `json:"offer"`
		} `json:"offerMappingEntries"`
		Paging struct {
			NextPageToken string `json:"nextPageToken"`
		} `json:"paging"`
	} `json:"result"`
}

// ListOfferIDs walks the campaign's offer-mapping-entries with the
// page_token cursor; an absent nextPageToken ends the enumeration.
func (cl *Client) ListOfferIDs(ctx context.Context) ([]string, error) {
	var (
		page string
		out  []string
	)
	for {
		q := map[string]string{"limit": strconv.Itoa(pageLimit)}
		if page != "" {
			q["page_token"] = page
		}
		var v entriesResp
		if err := cl.c.GetJSON(ctx, "/campaigns/"+cl.campaignID+"/offer-mapping-entries", q, &v); err != nil {
			return nil, err
		}
		if v.Result == nil {
			return nil, fmt.Errorf("%w: yandex offer mapping: no result", offers.ErrUpstream)
		}
		for _, e := range v.Result.OfferMappingEntries {
			out = append(out, e.Offer.ShopSKU)
		}
		page = v.Result.Paging.NextPageToken
		if page == "" {
			return out, nil
		}
	}
}

type skuItem struct {
	SKU         string     `json:"sku"`
	WarehouseID string     `json:"warehouseId"`
	Items       []skuCount `json:"items"`
}

type skuCount struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

func (cl *Client) SubmitStocks(ctx context.Context, batch []offers.StockRecord) error {
	updatedAt := cl.now().UTC().Format("2006-01-02T15:04:05Z")
	skus := make([]skuItem, 0, len(batch))
	for _, r := range batch {
		skus = append(skus, skuItem{
			SKU:         r.OfferID,
			WarehouseID: cl.warehouseID,
			Items:       []skuCount{{Count: r.Quantity, Type: "FIT", UpdatedAt: updatedAt}},
		})
	}
	return cl.c.PutJSON(ctx, "/campaigns/"+cl.campaignID+"/offers/stocks", map[string]any{"skus": skus}, nil)
}

type offerPrice struct {
	ID    string     `json:"id"`
	Price priceValue `json:"price"`
}

type priceValue struct {
	Value      int64  `json:"value"`
	CurrencyID string `json:"currencyId"`
}

func (cl *Client) SubmitPrices(ctx context.Context, batch []offers.PriceRecord) error {
	items := make([]offerPrice, 0, len(batch))
	for _, r := range batch {
		items = append(items, offerPrice{
			ID:    r.OfferID,
			Price: priceValue{Value: r.Price, CurrencyID: r.Currency},
		})
	}
	return cl.c.PostJSON(ctx, "/campaigns/"+cl.campaignID+"/offer-prices/updates", map[string]any{"offers": items}, nil)
}
