// Package wooimport pulls products out of a WooCommerce store and loads
// them into the catalog. Imports are re-runnable: products are keyed by SKU
// and item-level failures skip the item rather than abort the run.
package wooimport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultPerPage = 50

// WooProduct is the subset of the WooCommerce product payload we consume.
type WooProduct struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	SKU         string     `json:"sku"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	Status      string     `json:"status"`
	Categories  []WooTerm  `json:"categories"`
	Brands      []WooTerm  `json:"brands"`
	Images      []WooImage `json:"images"`
}

// WooTerm is a category or brand reference on a product.
type WooTerm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// WooImage is a media attachment reference on a product.
type WooImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// Client talks to the WooCommerce REST API using consumer key/secret
// basic authentication.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	perPage        int
	http           *http.Client
}

// NewClient builds a Client for the store at baseURL (e.g.
// "https://shop.example.com").
func NewClient(baseURL, consumerKey, consumerSecret string) *Client {
	return &Client{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		perPage:        defaultPerPage,
		http:           &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProducts fetches one page of products. Pages start at 1; an empty
// slice means the store is exhausted.
func (c *Client) ListProducts(ctx context.Context, page int) ([]WooProduct, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/products?%s", c.baseURL, url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(c.perPage)},
		"status":   {"publish"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("woocommerce: products page %d: status %d: %s", page, res.StatusCode, body)
	}

	var products []WooProduct
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("woocommerce: decode products page %d: %w", page, err)
	}
	return products, nil
}

// FetchMedia downloads a single media file and returns its bytes.
func (c *Client) FetchMedia(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("woocommerce: media %s: status %d", src, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
