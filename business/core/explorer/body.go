package explorer

import (
	"context"

	"github.com/ardanlabs/blockexplorer/business/core/paging"
	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
)

// Messages reported with a search that found nothing.
const (
	NoKernelMessage = "No matching kernel found"
	NoOutputMessage = "No matching output found"
)

// Page is one page of a block's kernels, outputs or inputs.
type Page[T any] struct {
	Header  node.BlockHeader
	View    paging.View[T]
	Message string
}

// Kernels returns a page of the block's kernels. A non-empty query is
// searched and, when it matches, replaces the requested page with the page
// holding the highlighted kernel.
func (c *Core) Kernels(ctx context.Context, id string, q search.KernelQuery, page int, perPage int) (Page[node.Kernel], error) {
	blk, err := c.Block(ctx, id)
	if err != nil {
		return Page[node.Kernel]{}, err
	}

	s := session(blk.Kernels, page, perPage, c.maxPerPage)

	if !q.Empty() {
		s.Search(func(ks []node.Kernel) (int, bool, error) {
			i, found := search.Kernels(ks, q)
			return i, found, nil
		})
	}

	return result(blk.Header, s, NoKernelMessage), nil
}

// Outputs returns a page of the block's outputs. A non-empty payment
// reference is searched the same way Kernels searches. A malformed payment
// reference returns an error wrapping search.ErrInvalidQuery.
func (c *Core) Outputs(ctx context.Context, id string, q search.PayrefQuery, page int, perPage int) (Page[node.Output], error) {
	if !q.Empty() {
		if err := q.Validate(); err != nil {
			return Page[node.Output]{}, err
		}
	}

	blk, err := c.Block(ctx, id)
	if err != nil {
		return Page[node.Output]{}, err
	}

	s := session(blk.Outputs, page, perPage, c.maxPerPage)

	if !q.Empty() {
		s.Search(func(outs []node.Output) (int, bool, error) {
			return search.Outputs(outs, q)
		})
	}

	return result(blk.Header, s, NoOutputMessage), nil
}

// Inputs returns a page of the block's inputs.
func (c *Core) Inputs(ctx context.Context, id string, page int, perPage int) (Page[node.Input], error) {
	blk, err := c.Block(ctx, id)
	if err != nil {
		return Page[node.Input]{}, err
	}

	s := session(blk.Inputs, page, perPage, c.maxPerPage)

	return result(blk.Header, s, ""), nil
}

// =============================================================================

// session constructs a paging session showing the requested page.
func session[T any](records []T, page int, perPage int, maxPerPage int) *paging.Session[T] {
	s := paging.NewSession(records, min(max(perPage, 1), maxPerPage))
	s.SetPage(page)
	return s
}

func result[T any](header node.BlockHeader, s *paging.Session[T], notFound string) Page[T] {
	p := Page[T]{
		Header: header,
		View:   s.View(),
	}

	if s.State() == paging.NotFound {
		p.Message = notFound
	}

	return p
}
