package api

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/inventaworks/inventa/pkg/model"
)

// BomTree fetches the full component tree for a root item.
func (c *Client) BomTree(ctx context.Context, itemID string) (model.BomTree, error) {
	var out model.BomTree
	err := c.get(ctx, "/items/"+itemID+"/bom/tree", nil, &out)
	return out, err
}

// BomStats fetches the rollup statistics for a root item.
func (c *Client) BomStats(ctx context.Context, itemID string) (model.BomStats, error) {
	var out model.BomStats
	err := c.get(ctx, "/items/"+itemID+"/bom/stats", nil, &out)
	return out, err
}

// BomComponents fetches the flat component list for a root item.
func (c *Client) BomComponents(ctx context.Context, itemID string) ([]model.BomComponent, error) {
	var out struct {
		Components []model.BomComponent `json:"components"`
	}
	if err := c.get(ctx, "/items/"+itemID+"/bom/components", nil, &out); err != nil {
		return nil, err
	}
	return out.Components, nil
}

// BomView is the combined payload the tree view renders from.
type BomView struct {
	Tree       model.BomTree
	Stats      model.BomStats
	Components []model.BomComponent
}

// FetchBomView loads tree, stats and components concurrently. The three
// fetches are independent; any failure cancels the rest and surfaces as
// one error with a retry affordance in the UI.
func (c *Client) FetchBomView(ctx context.Context, itemID string) (BomView, error) {
	var view BomView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Tree, err = c.BomTree(ctx, itemID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Stats, err = c.BomStats(ctx, itemID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Components, err = c.BomComponents(ctx, itemID)
		return err
	})
	if err := g.Wait(); err != nil {
		return BomView{}, err
	}
	return view, nil
}

type bomComponentResponse struct {
	Success bool               `json:"success"`
	Data    model.BomComponent `json:"data"`
}

// AddBomComponent adds a component under the parent item.
func (c *Client) AddBomComponent(ctx context.Context, parentItemID string, in model.BomCreate) (model.BomComponent, error) {
	if in.Unit == "" {
		in.Unit = "EA"
	}
	var out bomComponentResponse
	err := c.post(ctx, "/items/"+parentItemID+"/bom/components", in, &out)
	return out.Data, err
}

// UpdateBomComponent edits one component entry. Only the set fields change.
func (c *Client) UpdateBomComponent(ctx context.Context, parentItemID, componentID string, in model.BomUpdate) (model.BomComponent, error) {
	var out model.BomComponent
	err := c.patch(ctx, "/items/"+parentItemID+"/bom/components/"+componentID, in, &out)
	return out, err
}

// DeleteBomComponent removes one component entry. With force false a
// backend that finds dependent children answers 409 carrying their count;
// the caller confirms with the user and retries with force true. Children
// are never cascade-deleted client-side.
func (c *Client) DeleteBomComponent(ctx context.Context, parentItemID, componentID string, force bool) error {
	var q url.Values
	if force {
		q = url.Values{"force": []string{"true"}}
	}
	return c.delete(ctx, "/items/"+parentItemID+"/bom/components/"+componentID, q)
}
