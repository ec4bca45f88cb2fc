package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/inventaworks/inventa/pkg/model"
)

// ListParams selects a page of a flat list endpoint. The grid filters and
// sorts client-side, so the usual call asks for one large page.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

type itemList struct {
	Items      []model.Item     `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

// ListItems fetches a page of inventory items.
func (c *Client) ListItems(ctx context.Context, p ListParams) ([]model.Item, model.Pagination, error) {
	var out itemList
	if err := c.get(ctx, "/items", p.query(), &out); err != nil {
		return nil, model.Pagination{}, err
	}
	return out.Items, out.Pagination, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (model.Item, error) {
	var item model.Item
	err := c.get(ctx, "/items/"+id, nil, &item)
	return item, err
}

type stockList struct {
	Items      []model.Stock    `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

// ListStocks fetches a page of stock records.
func (c *Client) ListStocks(ctx context.Context, p ListParams) ([]model.Stock, model.Pagination, error) {
	var out stockList
	if err := c.get(ctx, "/stocks", p.query(), &out); err != nil {
		return nil, model.Pagination{}, err
	}
	return out.Items, out.Pagination, nil
}

type inboundList struct {
	Items      []model.Inbound  `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

// ListInbounds fetches a page of inbound receipts.
func (c *Client) ListInbounds(ctx context.Context, p ListParams) ([]model.Inbound, model.Pagination, error) {
	var out inboundList
	if err := c.get(ctx, "/inbounds", p.query(), &out); err != nil {
		return nil, model.Pagination{}, err
	}
	return out.Items, out.Pagination, nil
}

type outboundList struct {
	Items      []model.Outbound `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

// ListOutbounds fetches a page of outbound shipments.
func (c *Client) ListOutbounds(ctx context.Context, p ListParams) ([]model.Outbound, model.Pagination, error) {
	var out outboundList
	if err := c.get(ctx, "/outbounds", p.query(), &out); err != nil {
		return nil, model.Pagination{}, err
	}
	return out.Items, out.Pagination, nil
}

// ListCategories fetches the full category tree as a flat list.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
