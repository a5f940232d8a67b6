package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
)

// SearchResult represents what a free form search term resolved to.
type SearchResult struct {
	Kind    search.Kind
	Block   *node.Block
	Outputs []node.OutputLocation
}

// SearchKernels returns the blocks holding a kernel matching the query.
func (c *Core) SearchKernels(ctx context.Context, q search.KernelQuery) ([]node.KernelLocation, error) {
	q = q.Normalize()
	if q.Empty() {
		return nil, nil
	}

	var nonces, signatures []string
	switch {
	case q.Nonce != "":
		nonces = []string{q.Nonce}
	default:
		signatures = []string{q.Signature}
	}

	locs, err := c.node.SearchKernels(ctx, nonces, signatures)
	if err != nil {
		return nil, fmt.Errorf("search kernels: %w", err)
	}

	return locs, nil
}

// SearchPayref returns the outputs carrying the payment reference. A
// malformed payment reference returns an error wrapping
// search.ErrInvalidQuery.
func (c *Core) SearchPayref(ctx context.Context, q search.PayrefQuery) ([]node.OutputLocation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	locs, err := c.node.SearchPayref(ctx, q.Normalize().Payref)
	if err != nil {
		return nil, fmt.Errorf("search payref: %w", err)
	}

	return locs, nil
}

// Search resolves a free form term. A height or a hash resolves to a block,
// a hash that isn't a block and a list of hashes resolve to the outputs
// with those commitments.
func (c *Core) Search(ctx context.Context, term string) (SearchResult, error) {
	t := search.Classify(term)

	switch t.Kind {
	case search.KindHeight:
		blk, err := c.node.BlockByHeight(ctx, t.Height)
		if err != nil {
			return SearchResult{}, fmt.Errorf("search: height[%d]: %w", t.Height, err)
		}
		return SearchResult{Kind: t.Kind, Block: &blk}, nil

	case search.KindHash:
		blk, err := c.Block(ctx, t.Values[0])
		switch {
		case err == nil:
			return SearchResult{Kind: t.Kind, Block: &blk}, nil
		case !errors.Is(err, node.ErrNotFound):
			return SearchResult{}, fmt.Errorf("search: %w", err)
		}
		return c.searchCommitments(ctx, search.KindCommitments, t.Values)

	case search.KindCommitments:
		return c.searchCommitments(ctx, t.Kind, t.Values)
	}

	return SearchResult{}, fmt.Errorf("search: %q: %w", term, search.ErrInvalidQuery)
}

func (c *Core) searchCommitments(ctx context.Context, kind search.Kind, commitments []string) (SearchResult, error) {
	locs, err := c.node.SearchCommitments(ctx, commitments)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: commitments: %w", err)
	}

	return SearchResult{Kind: kind, Outputs: locs}, nil
}
