package explorergrp

import (
	"context"
	"net/http"

	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/web/errs"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
	"github.com/ardanlabs/blockexplorer/foundation/web"
)

// Search resolves a height, a block hash or a list of commitments.
func (h Handlers) Search(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hq := hashQuery{
		Hash: search.Normalize(web.Query(r, "hash")),
	}

	if err := validate.Check(hq); err != nil {
		return err
	}

	res, err := h.Core.Search(ctx, hq.Hash)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toSearchResult(res), http.StatusOK)
}

// SearchKernels returns the blocks holding a kernel with the nonce or the
// signature provided.
func (h Handlers) SearchKernels(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	kq := kernelSearchQuery{
		Nonce:     search.Normalize(web.Query(r, "nonce")),
		Signature: search.Normalize(web.Query(r, "signature")),
	}

	if err := validate.Check(kq); err != nil {
		return err
	}

	locs, err := h.Core.SearchKernels(ctx, search.KernelQuery(kq))
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toKernelLocations(locs), http.StatusOK)
}

// SearchPayref returns the outputs carrying the payment reference.
func (h Handlers) SearchPayref(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	q := search.PayrefQuery{
		Payref: web.Query(r, "payref"),
	}

	locs, err := h.Core.SearchPayref(ctx, q)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toOutputLocations(locs), http.StatusOK)
}
