package explorergrp

import (
	"context"
	"net/http"
	"time"

	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/web/errs"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
	"github.com/ardanlabs/blockexplorer/foundation/web"
	"github.com/gorilla/websocket"
)

// Mempool returns the set of unconfirmed transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs, err := h.Core.Mempool(ctx)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toMempool(txs), http.StatusOK)
}

// Stats returns the network hash rates and block times.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := h.Core.Stats(ctx)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toStats(s), http.StatusOK)
}

// Miners returns the share of recent blocks mined per proof of work
// algorithm.
func (h Handlers) Miners(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	window, err := web.QueryInt(r, "window", 0)
	if err != nil {
		return badQuery("window", err)
	}

	if err := validate.Check(windowQuery{Window: window}); err != nil {
		return err
	}

	shares, err := h.Core.Miners(ctx, window)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toMiners(shares), http.StatusOK)
}

// Validators returns the active validator nodes at a height, the tip when
// no height is provided.
func (h Handlers) Validators(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	height, err := web.QueryUint(r, "height", explorer.QueryLatest)
	if err != nil {
		return badQuery("height", err)
	}

	vns, err := h.Core.ValidatorNodes(ctx, height)
	if err != nil {
		return errs.FromCore(err)
	}

	return web.Respond(ctx, w, toValidators(vns), http.StatusOK)
}

// Events handles a web socket to provide tip events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}
