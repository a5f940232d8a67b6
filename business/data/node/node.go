// Package node provides typed access to the base node JSON-RPC API that the
// explorer reads all of its data from.
package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/blockexplorer/foundation/jsonrpc"
)

// CodeNotFound is the error code the node uses for unknown entities.
const CodeNotFound = -32004

// ErrNotFound is returned when the node doesn't know the requested entity.
var ErrNotFound = errors.New("not found")

// Set of methods exposed by the node.
const (
	methodTip               = "get_tip"
	methodBlock             = "get_block"
	methodHeaders           = "get_block_headers"
	methodMempool           = "get_mempool_transactions"
	methodNetworkStats      = "get_network_stats"
	methodValidatorNodes    = "get_active_validator_nodes"
	methodSearchKernels     = "search_kernels"
	methodSearchPayref      = "search_outputs_by_payref"
	methodSearchCommitments = "search_outputs_by_commitment"
)

// Client provides the typed calls against the node.
type Client struct {
	rpc *jsonrpc.Client
}

// NewClient constructs a node client on top of the JSON-RPC client.
func NewClient(rpc *jsonrpc.Client) *Client {
	return &Client{
		rpc: rpc,
	}
}

// Tip returns the current chain tip.
func (c *Client) Tip(ctx context.Context) (Tip, error) {
	var tip Tip
	if err := c.call(ctx, methodTip, nil, &tip); err != nil {
		return Tip{}, err
	}
	return tip, nil
}

// BlockByHeight returns the full block at the specified height.
func (c *Client) BlockByHeight(ctx context.Context, height uint64) (Block, error) {
	params := struct {
		Height uint64 `json:"height"`
	}{
		Height: height,
	}

	var blk Block
	if err := c.call(ctx, methodBlock, params, &blk); err != nil {
		return Block{}, err
	}
	return blk, nil
}

// BlockByHash returns the full block with the specified hash.
func (c *Client) BlockByHash(ctx context.Context, hash Bytes) (Block, error) {
	params := struct {
		Hash string `json:"hash"`
	}{
		Hash: hash.Hex(),
	}

	var blk Block
	if err := c.call(ctx, methodBlock, params, &blk); err != nil {
		return Block{}, err
	}
	return blk, nil
}

// Headers returns up to limit headers walking backwards from the specified
// height.
func (c *Client) Headers(ctx context.Context, fromHeight uint64, limit int) ([]BlockHeader, error) {
	params := struct {
		FromHeight uint64 `json:"from_height"`
		Limit      int    `json:"limit"`
	}{
		FromHeight: fromHeight,
		Limit:      limit,
	}

	return callList[BlockHeader](ctx, c, methodHeaders, params)
}

// Mempool returns the set of unconfirmed transactions.
func (c *Client) Mempool(ctx context.Context) ([]MempoolTx, error) {
	return callList[MempoolTx](ctx, c, methodMempool, nil)
}

// NetworkStats returns the statistics calculated over the last window blocks.
func (c *Client) NetworkStats(ctx context.Context, window int) (NetworkStats, error) {
	params := struct {
		Window int `json:"window"`
	}{
		Window: window,
	}

	var stats NetworkStats
	if err := c.call(ctx, methodNetworkStats, params, &stats); err != nil {
		return NetworkStats{}, err
	}
	return stats, nil
}

// ValidatorNodes returns the validator nodes active at the specified height.
func (c *Client) ValidatorNodes(ctx context.Context, height uint64) ([]ValidatorNode, error) {
	params := struct {
		Height uint64 `json:"height"`
	}{
		Height: height,
	}

	return callList[ValidatorNode](ctx, c, methodValidatorNodes, params)
}

// SearchKernels returns the blocks holding kernels with any of the specified
// public nonces or signatures.
func (c *Client) SearchKernels(ctx context.Context, nonces []string, signatures []string) ([]KernelLocation, error) {
	params := struct {
		Nonces     []string `json:"nonces"`
		Signatures []string `json:"signatures"`
	}{
		Nonces:     nonces,
		Signatures: signatures,
	}

	return callList[KernelLocation](ctx, c, methodSearchKernels, params)
}

// SearchPayref returns the outputs with the specified payment reference.
func (c *Client) SearchPayref(ctx context.Context, payref string) ([]OutputLocation, error) {
	params := struct {
		Payref string `json:"payref"`
	}{
		Payref: payref,
	}

	return callList[OutputLocation](ctx, c, methodSearchPayref, params)
}

// SearchCommitments returns the outputs with any of the specified commitments.
func (c *Client) SearchCommitments(ctx context.Context, commitments []string) ([]OutputLocation, error) {
	params := struct {
		Commitments []string `json:"commitments"`
	}{
		Commitments: commitments,
	}

	return callList[OutputLocation](ctx, c, methodSearchCommitments, params)
}

// callList executes a method returning a list. A null result is an empty
// list.
func callList[T any](ctx context.Context, c *Client, method string, params any) ([]T, error) {
	list := []T{}
	err := c.rpc.Call(ctx, method, params, &list)
	switch {
	case err == nil:
		if list == nil {
			return []T{}, nil
		}
		return list, nil
	case errors.Is(err, jsonrpc.ErrNullResult):
		return []T{}, nil
	case jsonrpc.IsError(err, CodeNotFound):
		return nil, fmt.Errorf("%s: %w", method, ErrNotFound)
	}

	return nil, err
}

// call executes the method and maps the node's not found conditions.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	err := c.rpc.Call(ctx, method, params, result)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jsonrpc.ErrNullResult), jsonrpc.IsError(err, CodeNotFound):
		return fmt.Errorf("%s: %w", method, ErrNotFound)
	}

	return err
}
