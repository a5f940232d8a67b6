package explorer

import (
	"context"
	"fmt"
	"slices"

	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/format"
	"golang.org/x/sync/errgroup"
)

// Stats represents the network statistics with derived values.
type Stats struct {
	node.NetworkStats
	AverageBlockTime float64
}

// MinerShare represents how many blocks of a window were mined with a proof
// of work algorithm.
type MinerShare struct {
	PowAlgo uint64
	Label   string
	Blocks  int
	Percent float64
}

// Overview represents the data shown on the landing page.
type Overview struct {
	Tip     node.Tip
	Stats   Stats
	Mempool int
	Blocks  []node.BlockHeader
}

// Mempool returns the set of unconfirmed transactions.
func (c *Core) Mempool(ctx context.Context) ([]node.MempoolTx, error) {
	txs, err := c.node.Mempool(ctx)
	if err != nil {
		return nil, fmt.Errorf("mempool: %w", err)
	}
	return txs, nil
}

// Stats returns the network statistics over the configured window.
func (c *Core) Stats(ctx context.Context) (Stats, error) {
	ns, err := c.node.NetworkStats(ctx, c.statsWindow)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: window[%d]: %w", c.statsWindow, err)
	}

	stats := Stats{
		NetworkStats: ns,
	}

	if len(ns.BlockTimes) > 0 {
		var total uint64
		for _, bt := range ns.BlockTimes {
			total += bt
		}
		stats.AverageBlockTime = float64(total) / float64(len(ns.BlockTimes))
	}

	return stats, nil
}

// Miners returns the share of the last window blocks mined per proof of
// work algorithm, largest share first.
func (c *Core) Miners(ctx context.Context, window int) ([]MinerShare, error) {
	if window <= 0 {
		window = c.statsWindow
	}

	headers, err := c.Blocks(ctx, QueryLatest, window)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int)
	for _, hdr := range headers {
		counts[hdr.Pow.PowAlgo]++
	}

	shares := make([]MinerShare, 0, len(counts))
	for algo, n := range counts {
		shares = append(shares, MinerShare{
			PowAlgo: algo,
			Label:   format.PowCode(algo),
			Blocks:  n,
			Percent: float64(n) * 100 / float64(len(headers)),
		})
	}

	slices.SortFunc(shares, func(a, b MinerShare) int {
		if a.Blocks != b.Blocks {
			return b.Blocks - a.Blocks
		}
		return int(a.PowAlgo) - int(b.PowAlgo)
	})

	return shares, nil
}

// ValidatorNodes returns the validator nodes active at the specified height.
// Use QueryLatest for the tip.
func (c *Core) ValidatorNodes(ctx context.Context, height uint64) ([]node.ValidatorNode, error) {
	if height == QueryLatest {
		tip, err := c.Tip(ctx)
		if err != nil {
			return nil, err
		}
		height = tip.Height
	}

	vns, err := c.node.ValidatorNodes(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("validator nodes: height[%d]: %w", height, err)
	}

	return vns, nil
}

// Overview retrieves the tip, the statistics, the mempool size and the most
// recent blocks concurrently.
func (c *Core) Overview(ctx context.Context, blocks int) (Overview, error) {
	var ov Overview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tip, err := c.Tip(ctx)
		if err != nil {
			return err
		}
		ov.Tip = tip

		headers, err := c.Blocks(ctx, tip.Height, blocks)
		if err != nil {
			return err
		}
		ov.Blocks = headers

		return nil
	})

	g.Go(func() error {
		stats, err := c.Stats(ctx)
		if err != nil {
			return err
		}
		ov.Stats = stats
		return nil
	})

	g.Go(func() error {
		txs, err := c.Mempool(ctx)
		if err != nil {
			return err
		}
		ov.Mempool = len(txs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return ov, nil
}
