// Package explorer provides the core business API of the block explorer. It
// reads everything from a base node and shapes it for display.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/format"
)

// QueryLatest represents to query from the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// Set of error variables for the explorer.
var (
	ErrInvalidID = errors.New("block id must be a height or a 64 character hex hash")
)

// Node represents the behavior the explorer needs from a base node.
type Node interface {
	Tip(ctx context.Context) (node.Tip, error)
	BlockByHeight(ctx context.Context, height uint64) (node.Block, error)
	BlockByHash(ctx context.Context, hash node.Bytes) (node.Block, error)
	Headers(ctx context.Context, fromHeight uint64, limit int) ([]node.BlockHeader, error)
	Mempool(ctx context.Context) ([]node.MempoolTx, error)
	NetworkStats(ctx context.Context, window int) (node.NetworkStats, error)
	ValidatorNodes(ctx context.Context, height uint64) ([]node.ValidatorNode, error)
	SearchKernels(ctx context.Context, nonces []string, signatures []string) ([]node.KernelLocation, error)
	SearchPayref(ctx context.Context, payref string) ([]node.OutputLocation, error)
	SearchCommitments(ctx context.Context, commitments []string) ([]node.OutputLocation, error)
}

// Config represents the settings for the core.
type Config struct {
	StatsWindow int
	MaxPerPage  int
	MaxBlocks   int
}

// Core manages the set of APIs for explorer access.
type Core struct {
	node        Node
	statsWindow int
	maxPerPage  int
	maxBlocks   int
}

// NewCore constructs a core for explorer api access.
func NewCore(n Node, cfg Config) *Core {
	return &Core{
		node:        n,
		statsWindow: max(cfg.StatsWindow, 1),
		maxPerPage:  max(cfg.MaxPerPage, 1),
		maxBlocks:   max(cfg.MaxBlocks, 1),
	}
}

// Tip returns the current chain tip.
func (c *Core) Tip(ctx context.Context) (node.Tip, error) {
	tip, err := c.node.Tip(ctx)
	if err != nil {
		return node.Tip{}, fmt.Errorf("tip: %w", err)
	}
	return tip, nil
}

// Blocks returns up to limit block headers walking backwards from the
// specified height. Use QueryLatest to start at the tip.
func (c *Core) Blocks(ctx context.Context, from uint64, limit int) ([]node.BlockHeader, error) {
	if from == QueryLatest {
		tip, err := c.Tip(ctx)
		if err != nil {
			return nil, err
		}
		from = tip.Height
	}

	limit = min(max(limit, 1), c.maxBlocks)

	headers, err := c.node.Headers(ctx, from, limit)
	if err != nil {
		return nil, fmt.Errorf("headers: from[%d]: %w", from, err)
	}

	return headers, nil
}

// Block returns the block identified by height or by hash.
func (c *Core) Block(ctx context.Context, id string) (node.Block, error) {
	height, hash, err := ParseBlockID(id)
	if err != nil {
		return node.Block{}, err
	}

	var blk node.Block
	switch {
	case hash != nil:
		blk, err = c.node.BlockByHash(ctx, hash)
	default:
		blk, err = c.node.BlockByHeight(ctx, height)
	}

	if err != nil {
		return node.Block{}, fmt.Errorf("block[%s]: %w", id, err)
	}

	return blk, nil
}

// ParseBlockID splits a block id into a height or a hash.
func ParseBlockID(id string) (uint64, node.Bytes, error) {
	id = search.Normalize(id)

	if height, err := strconv.ParseUint(id, 10, 64); err == nil {
		return height, nil, nil
	}

	id = strings.TrimPrefix(id, "0x")
	if len(id) != search.HashLength {
		return 0, nil, ErrInvalidID
	}

	hash, err := format.FromHex(id)
	if err != nil {
		return 0, nil, ErrInvalidID
	}

	return 0, hash, nil
}
