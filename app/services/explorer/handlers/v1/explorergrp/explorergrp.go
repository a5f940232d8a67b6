// Package explorergrp maintains the group of handlers for explorer access.
package explorergrp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/web/errs"
	"github.com/ardanlabs/blockexplorer/foundation/events"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
	"github.com/ardanlabs/blockexplorer/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of explorer endpoints.
type Handlers struct {
	Log            *zap.SugaredLogger
	Core           *explorer.Core
	Evts           *events.Events
	WS             websocket.Upgrader
	PerPage        int
	OverviewBlocks int
}

// Tip returns the current chain tip.
func (h Handlers) Tip(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	t, err := h.Core.Tip(ctx)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toTip(t), http.StatusOK)
}

// Overview returns the tip, the network statistics, the mempool size and
// the most recent blocks.
func (h Handlers) Overview(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ov, err := h.Core.Overview(ctx, h.OverviewBlocks)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toOverview(ov), http.StatusOK)
}

// Blocks returns a list of block headers walking backwards from a height,
// the tip when no height is provided.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := web.QueryUint(r, "from", explorer.QueryLatest)
	if err != nil {
		return badQuery("from", err)
	}

	limit, err := web.QueryInt(r, "limit", h.OverviewBlocks)
	if err != nil {
		return badQuery("limit", err)
	}

	if err := validate.Check(blocksQuery{Limit: limit}); err != nil {
		return err
	}

	headers, err := h.Core.Blocks(ctx, from, limit)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toHeaders(headers), http.StatusOK)
}

// Block returns the block identified by height or hash.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.Core.Block(ctx, web.Param(r, "id"))
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// Kernels returns a page of a block's kernels. A nonce or signature query
// moves to the page holding the first matching kernel and highlights it.
func (h Handlers) Kernels(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pq, err := h.pageQuery(r)
	if err != nil {
		return err
	}

	q := search.KernelQuery{
		Nonce:     web.Query(r, "nonce"),
		Signature: web.Query(r, "signature"),
	}

	p, err := h.Core.Kernels(ctx, web.Param(r, "id"), q, pq.Page, pq.PerPage)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toPage(p, toKernel), http.StatusOK)
}

// Outputs returns a page of a block's outputs. A payref query moves to the
// page holding the matching output and highlights it.
func (h Handlers) Outputs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pq, err := h.pageQuery(r)
	if err != nil {
		return err
	}

	q := search.PayrefQuery{
		Payref: web.Query(r, "payref"),
	}

	p, err := h.Core.Outputs(ctx, web.Param(r, "id"), q, pq.Page, pq.PerPage)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toPage(p, toOutput), http.StatusOK)
}

// Inputs returns a page of a block's inputs.
func (h Handlers) Inputs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pq, err := h.pageQuery(r)
	if err != nil {
		return err
	}

	p, err := h.Core.Inputs(ctx, web.Param(r, "id"), pq.Page, pq.PerPage)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toPage(p, toInput), http.StatusOK)
}

// =============================================================================

func (h Handlers) pageQuery(r *http.Request) (pageQuery, error) {
	pg, err := web.QueryInt(r, "page", 1)
	if err != nil {
		return pageQuery{}, badQuery("page", err)
	}

	perPage, err := web.QueryInt(r, "per_page", h.PerPage)
	if err != nil {
		return pageQuery{}, badQuery("per_page", err)
	}

	pq := pageQuery{
		Page:    pg,
		PerPage: perPage,
	}

	if err := validate.Check(pq); err != nil {
		return pageQuery{}, err
	}

	return pq, nil
}

// badQuery reports a query parameter that could not be parsed the same way
// a validation failure is reported.
func badQuery(field string, err error) error {
	msg := field + " must be a number"
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		msg = field + " is out of range"
	}

	return validate.FieldErrors{
		{Field: field, Err: msg},
	}
}
