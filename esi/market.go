package esi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// StationOrders fetches every order in a region for one (type, side) filter.
// The upstream returns the complete region-wide list on page 1 for a
// type-filtered query, covering all stations in the region.
func (c *Client) StationOrders(ctx context.Context, regionID, typeID int32, buy bool) (Expirable[[]StationOrder], error) {
	orderType := "sell"
	if buy {
		orderType = "buy"
	}

	q := url.Values{}
	q.Set("datasource", datasource)
	q.Set("order_type", orderType)
	q.Set("page", "1")
	q.Set("type_id", strconv.FormatInt(int64(typeID), 10))
	u := fmt.Sprintf("%s/markets/%d/orders/?%s", c.baseURL, regionID, q.Encode())

	var orders []StationOrder
	expires, err := c.get(ctx, u, "", &orders)
	if err != nil {
		return Expirable[[]StationOrder]{}, err
	}
	return Expirable[[]StationOrder]{Data: orders, Expires: expires}, nil
}

// StructureOrders fetches the full order book of a player structure. The
// endpoint is paginated: a HEAD probe reads the page count, then all pages
// are fetched concurrently and unioned. The result expiry is the maximum
// across pages, since the most recently refreshed page dominates.
// refreshToken may be empty for structures readable without authentication.
func (c *Client) StructureOrders(ctx context.Context, locationID int64, refreshToken string) (Expirable[[]StructureOrder], error) {
	pageURL := func(page int) string {
		q := url.Values{}
		q.Set("datasource", datasource)
		q.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("%s/markets/structures/%d/?%s", c.baseURL, locationID, q.Encode())
	}

	bearer, err := c.bearer(ctx, refreshToken)
	if err != nil {
		return Expirable[[]StructureOrder]{}, err
	}

	pages, err := c.pageCount(ctx, pageURL(1), bearer)
	if err != nil {
		return Expirable[[]StructureOrder]{}, err
	}

	pageOrders := make([][]StructureOrder, pages)
	pageExpires := make([]time.Time, pages)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pages; i++ {
		page := i
		g.Go(func() error {
			bearer, err := c.bearer(gctx, refreshToken)
			if err != nil {
				return err
			}
			expires, err := c.get(gctx, pageURL(page+1), bearer, &pageOrders[page])
			if err != nil {
				return err
			}
			pageExpires[page] = expires
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Expirable[[]StructureOrder]{}, err
	}

	var orders []StructureOrder
	var expires time.Time
	for i := 0; i < pages; i++ {
		orders = append(orders, pageOrders[i]...)
		if pageExpires[i].After(expires) {
			expires = pageExpires[i]
		}
	}
	return Expirable[[]StructureOrder]{Data: orders, Expires: expires}, nil
}

// AdjustedPrices fetches the global reference price table.
func (c *Client) AdjustedPrices(ctx context.Context) (Expirable[[]AdjustedPrice], error) {
	u := fmt.Sprintf("%s/markets/prices/?datasource=%s", c.baseURL, datasource)

	var prices []AdjustedPrice
	expires, err := c.get(ctx, u, "", &prices)
	if err != nil {
		return Expirable[[]AdjustedPrice]{}, err
	}
	return Expirable[[]AdjustedPrice]{Data: prices, Expires: expires}, nil
}

// SystemIndices fetches the industry cost index table for all solar systems.
func (c *Client) SystemIndices(ctx context.Context) (Expirable[[]SystemIndex], error) {
	u := fmt.Sprintf("%s/industry/systems/?datasource=%s", c.baseURL, datasource)

	var indices []SystemIndex
	expires, err := c.get(ctx, u, "", &indices)
	if err != nil {
		return Expirable[[]SystemIndex]{}, err
	}
	return Expirable[[]SystemIndex]{Data: indices, Expires: expires}, nil
}
