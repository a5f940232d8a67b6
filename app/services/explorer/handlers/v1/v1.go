// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/blockexplorer/app/services/explorer/handlers/v1/explorergrp"
	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/foundation/events"
	"github.com/ardanlabs/blockexplorer/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log            *zap.SugaredLogger
	Core           *explorer.Core
	Evts           *events.Events
	PerPage        int
	OverviewBlocks int
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	exp := explorergrp.Handlers{
		Log:            cfg.Log,
		Core:           cfg.Core,
		Evts:           cfg.Evts,
		PerPage:        cfg.PerPage,
		OverviewBlocks: cfg.OverviewBlocks,
	}

	app.Handle(http.MethodGet, version, "/tip", exp.Tip)
	app.Handle(http.MethodGet, version, "/overview", exp.Overview)
	app.Handle(http.MethodGet, version, "/blocks", exp.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/:id", exp.Block)
	app.Handle(http.MethodGet, version, "/blocks/:id/kernels", exp.Kernels)
	app.Handle(http.MethodGet, version, "/blocks/:id/outputs", exp.Outputs)
	app.Handle(http.MethodGet, version, "/blocks/:id/inputs", exp.Inputs)
	app.Handle(http.MethodGet, version, "/mempool", exp.Mempool)
	app.Handle(http.MethodGet, version, "/stats", exp.Stats)
	app.Handle(http.MethodGet, version, "/miners", exp.Miners)
	app.Handle(http.MethodGet, version, "/validators", exp.Validators)
	app.Handle(http.MethodGet, version, "/search", exp.Search)
	app.Handle(http.MethodGet, version, "/search_kernels", exp.SearchKernels)
	app.Handle(http.MethodGet, version, "/search_outputs_by_payref", exp.SearchPayref)
	app.Handle(http.MethodGet, version, "/events", exp.Events)
}
