package explorer_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/paging"
	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

type fakeNode struct {
	tip     node.Tip
	blocks  map[uint64]node.Block
	mempool []node.MempoolTx
	stats   node.NetworkStats
	vns     []node.ValidatorNode
	outputs []node.OutputLocation
	fail    error

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeNode) called(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	return f.fail
}

func (f *fakeNode) Tip(ctx context.Context) (node.Tip, error) {
	return f.tip, f.called("tip")
}

func (f *fakeNode) BlockByHeight(ctx context.Context, height uint64) (node.Block, error) {
	if err := f.called("block"); err != nil {
		return node.Block{}, err
	}
	blk, exists := f.blocks[height]
	if !exists {
		return node.Block{}, node.ErrNotFound
	}
	return blk, nil
}

func (f *fakeNode) BlockByHash(ctx context.Context, hash node.Bytes) (node.Block, error) {
	if err := f.called("block"); err != nil {
		return node.Block{}, err
	}
	for _, blk := range f.blocks {
		if blk.Header.Hash.Hex() == hash.Hex() {
			return blk, nil
		}
	}
	return node.Block{}, node.ErrNotFound
}

func (f *fakeNode) Headers(ctx context.Context, fromHeight uint64, limit int) ([]node.BlockHeader, error) {
	if err := f.called("headers"); err != nil {
		return nil, err
	}
	var out []node.BlockHeader
	for h := int(fromHeight); h >= 0 && len(out) < limit; h-- {
		if blk, exists := f.blocks[uint64(h)]; exists {
			out = append(out, blk.Header)
		}
	}
	return out, nil
}

func (f *fakeNode) Mempool(ctx context.Context) ([]node.MempoolTx, error) {
	return f.mempool, f.called("mempool")
}

func (f *fakeNode) NetworkStats(ctx context.Context, window int) (node.NetworkStats, error) {
	return f.stats, f.called("stats")
}

func (f *fakeNode) ValidatorNodes(ctx context.Context, height uint64) ([]node.ValidatorNode, error) {
	return f.vns, f.called("validators")
}

func (f *fakeNode) SearchKernels(ctx context.Context, nonces []string, signatures []string) ([]node.KernelLocation, error) {
	if len(nonces) > 0 {
		return []node.KernelLocation{{Height: 2, PublicNonce: node.Bytes{0x03}}}, f.called("search_kernels")
	}
	return nil, f.called("search_kernels")
}

func (f *fakeNode) SearchPayref(ctx context.Context, payref string) ([]node.OutputLocation, error) {
	return f.outputs, f.called("search_payref")
}

func (f *fakeNode) SearchCommitments(ctx context.Context, commitments []string) ([]node.OutputLocation, error) {
	return f.outputs, f.called("search_commitments")
}

// =============================================================================

func payref(b byte) node.Bytes {
	p := make(node.Bytes, 32)
	for i := range p {
		p[i] = b
	}
	return p
}

func newFake() *fakeNode {
	hash := payref(0xaa)

	return &fakeNode{
		tip: node.Tip{Height: 2, Hash: hash},
		blocks: map[uint64]node.Block{
			0: {Header: node.BlockHeader{Height: 0, Pow: node.ProofOfWork{PowAlgo: 0}}},
			1: {Header: node.BlockHeader{Height: 1, Pow: node.ProofOfWork{PowAlgo: 1}}},
			2: {
				Header: node.BlockHeader{Height: 2, Hash: hash, Pow: node.ProofOfWork{PowAlgo: 1}},
				Kernels: []node.Kernel{
					{ExcessSig: node.Signature{PublicNonce: node.Bytes{0x01}, Signature: node.Bytes{0x11}}},
					{ExcessSig: node.Signature{PublicNonce: node.Bytes{0x02}, Signature: node.Bytes{0x12}}},
					{ExcessSig: node.Signature{PublicNonce: node.Bytes{0x03}, Signature: node.Bytes{0x13}}},
				},
				Outputs: []node.Output{
					{PaymentReference: payref(0x01)},
					{PaymentReference: payref(0x02)},
					{PaymentReference: payref(0x03)},
				},
				Inputs: []node.Input{{Commitment: node.Bytes{0x09}}},
			},
		},
		mempool: []node.MempoolTx{{}, {}},
		stats:   node.NetworkStats{TipHeight: 2, Sha3xHashRate: 1500, BlockTimes: []uint64{100, 140, 120}},
		outputs: []node.OutputLocation{{Height: 2}},
	}
}

func newCore(n explorer.Node) *explorer.Core {
	return explorer.NewCore(n, explorer.Config{StatsWindow: 100, MaxPerPage: 50, MaxBlocks: 20})
}

// =============================================================================

func Test_Kernels(t *testing.T) {
	t.Log("Given the need to page and search a block's kernels.")
	{
		core := newCore(newFake())
		ctx := context.Background()

		t.Logf("\tTest 0:\tWhen the query matches the last kernel.")
		{
			page, err := core.Kernels(ctx, "2", search.KernelQuery{Nonce: "03"}, 1, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to retrieve kernels: %v", failed, err)
			}
			v := page.View
			if v.State != paging.Found || v.Page != 2 || len(v.Items) != 1 || !v.Items[0].Highlighted {
				t.Fatalf("\t%s\tTest 0:\tShould move to page 2 and highlight the kernel, got %+v.", failed, v)
			}
			if page.Message != "" {
				t.Fatalf("\t%s\tTest 0:\tShould not carry a message, got %q.", failed, page.Message)
			}
			t.Logf("\t%s\tTest 0:\tShould move to page 2 and highlight the kernel.", success)
		}

		t.Logf("\tTest 1:\tWhen the query matches nothing.")
		{
			page, err := core.Kernels(ctx, "2", search.KernelQuery{Nonce: "ff"}, 1, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to retrieve kernels: %v", failed, err)
			}
			if page.View.Page != 1 || page.View.State != paging.NotFound || page.Message != "No matching kernel found" {
				t.Fatalf("\t%s\tTest 1:\tShould stay on page 1 and report not found, got %+v.", failed, page)
			}
			t.Logf("\t%s\tTest 1:\tShould stay on page 1 and report not found.", success)
		}

		t.Logf("\tTest 2:\tWhen there is no query.")
		{
			page, err := core.Kernels(ctx, strings.Repeat("aa", 32), search.KernelQuery{}, 2, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to retrieve kernels by hash: %v", failed, err)
			}
			if page.View.State != paging.Idle || page.View.Page != 2 || page.View.Items[0].Index != 2 {
				t.Fatalf("\t%s\tTest 2:\tShould show the requested page, got %+v.", failed, page.View)
			}
			t.Logf("\t%s\tTest 2:\tShould show the requested page.", success)
		}

		t.Logf("\tTest 3:\tWhen the page size is too large.")
		{
			core := explorer.NewCore(newFake(), explorer.Config{MaxPerPage: 2})
			page, err := core.Kernels(ctx, "2", search.KernelQuery{}, 1, 500)
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to retrieve kernels: %v", failed, err)
			}
			if page.View.PerPage != 2 {
				t.Fatalf("\t%s\tTest 3:\tShould cap the page size, got %d.", failed, page.View.PerPage)
			}
			t.Logf("\t%s\tTest 3:\tShould cap the page size.", success)
		}
	}
}

func Test_Outputs(t *testing.T) {
	t.Log("Given the need to page and search a block's outputs.")
	{
		fake := newFake()
		core := newCore(fake)
		ctx := context.Background()

		page, err := core.Outputs(ctx, "2", search.PayrefQuery{Payref: payref(0x02).Hex()}, 1, 1)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to retrieve outputs: %v", failed, err)
		}
		if page.View.State != paging.Found || page.View.Page != 2 || !page.View.Items[0].Highlighted {
			t.Fatalf("\t%s\tShould highlight the output on page 2, got %+v.", failed, page.View)
		}
		t.Logf("\t%s\tShould highlight the output on page 2.", success)

		page, err = core.Outputs(ctx, "2", search.PayrefQuery{Payref: payref(0x07).Hex()}, 1, 1)
		if err != nil || page.Message != "No matching output found" {
			t.Fatalf("\t%s\tShould report no matching output: %v %q", failed, err, page.Message)
		}
		t.Logf("\t%s\tShould report no matching output.", success)

		before := fake.calls["block"]
		_, err = core.Outputs(ctx, "2", search.PayrefQuery{Payref: "xyz"}, 1, 1)
		if !errors.Is(err, search.ErrInvalidQuery) || !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould reject a malformed payment reference, got %v.", failed, err)
		}
		if fake.calls["block"] != before {
			t.Fatalf("\t%s\tShould not fetch the block for a malformed payment reference.", failed)
		}
		t.Logf("\t%s\tShould reject a malformed payment reference before fetching.", success)
	}
}

func Test_Block(t *testing.T) {
	t.Log("Given the need to retrieve blocks.")
	{
		core := newCore(newFake())
		ctx := context.Background()

		if _, err := core.Block(ctx, "hello"); !errors.Is(err, explorer.ErrInvalidID) {
			t.Fatalf("\t%s\tShould reject an invalid block id, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject an invalid block id.", success)

		if _, err := core.Block(ctx, "77"); !errors.Is(err, node.ErrNotFound) {
			t.Fatalf("\t%s\tShould report an unknown block, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould report an unknown block.", success)

		headers, err := core.Blocks(ctx, explorer.QueryLatest, 2)
		if err != nil || len(headers) != 2 || headers[0].Height != 2 || headers[1].Height != 1 {
			t.Fatalf("\t%s\tShould list the latest blocks first: %v %+v", failed, err, headers)
		}
		t.Logf("\t%s\tShould list the latest blocks first.", success)

		page, err := core.Inputs(ctx, "2", 1, 10)
		if err != nil || page.View.Total != 1 {
			t.Fatalf("\t%s\tShould page the inputs: %v %+v", failed, err, page.View)
		}
		t.Logf("\t%s\tShould page the inputs.", success)
	}
}

func Test_Network(t *testing.T) {
	t.Log("Given the need to report on the network.")
	{
		core := newCore(newFake())
		ctx := context.Background()

		stats, err := core.Stats(ctx)
		if err != nil || stats.AverageBlockTime != 120 {
			t.Fatalf("\t%s\tShould average the block times: %v %v", failed, err, stats.AverageBlockTime)
		}
		t.Logf("\t%s\tShould average the block times.", success)

		shares, err := core.Miners(ctx, 0)
		if err != nil || len(shares) != 2 {
			t.Fatalf("\t%s\tShould group the blocks by algorithm: %v %+v", failed, err, shares)
		}
		if shares[0].Label != "SHA3x" || shares[0].Blocks != 2 || shares[1].Label != "RandomX (Merge Mined)" {
			t.Fatalf("\t%s\tShould order shares largest first, got %+v.", failed, shares)
		}
		t.Logf("\t%s\tShould group the blocks by algorithm largest first.", success)

		ov, err := core.Overview(ctx, 10)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build the overview: %v", failed, err)
		}
		if ov.Tip.Height != 2 || ov.Mempool != 2 || len(ov.Blocks) != 3 || ov.Stats.TipHeight != 2 {
			t.Fatalf("\t%s\tShould fill every part of the overview, got %+v.", failed, ov)
		}
		t.Logf("\t%s\tShould fill every part of the overview.", success)

		fake := newFake()
		fake.fail = errors.New("node down")
		if _, err := newCore(fake).Overview(ctx, 10); err == nil {
			t.Fatalf("\t%s\tShould fail the overview when the node fails.", failed)
		}
		t.Logf("\t%s\tShould fail the overview when the node fails.", success)
	}
}

func Test_Search(t *testing.T) {
	t.Log("Given the need to resolve search terms.")
	{
		core := newCore(newFake())
		ctx := context.Background()

		res, err := core.Search(ctx, "2")
		if err != nil || res.Kind != search.KindHeight || res.Block == nil || res.Block.Header.Height != 2 {
			t.Fatalf("\t%s\tShould resolve a height to a block: %v %+v", failed, err, res)
		}
		t.Logf("\t%s\tShould resolve a height to a block.", success)

		res, err = core.Search(ctx, strings.Repeat("aa", 32))
		if err != nil || res.Kind != search.KindHash || res.Block == nil {
			t.Fatalf("\t%s\tShould resolve a hash to a block: %v %+v", failed, err, res)
		}
		t.Logf("\t%s\tShould resolve a hash to a block.", success)

		res, err = core.Search(ctx, strings.Repeat("bb", 32))
		if err != nil || res.Kind != search.KindCommitments || len(res.Outputs) != 1 {
			t.Fatalf("\t%s\tShould fall back to a commitment search: %v %+v", failed, err, res)
		}
		t.Logf("\t%s\tShould fall back to a commitment search.", success)

		if _, err := core.Search(ctx, "not a hash"); !errors.Is(err, search.ErrInvalidQuery) {
			t.Fatalf("\t%s\tShould reject an invalid term, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject an invalid term.", success)

		locs, err := core.SearchKernels(ctx, search.KernelQuery{Nonce: "03", Signature: "13"})
		if err != nil || len(locs) != 1 {
			t.Fatalf("\t%s\tShould search kernels by nonce first: %v %+v", failed, err, locs)
		}
		t.Logf("\t%s\tShould search kernels by nonce first.", success)

		if _, err := core.SearchPayref(ctx, search.PayrefQuery{Payref: "12"}); !errors.Is(err, search.ErrInvalidQuery) {
			t.Fatalf("\t%s\tShould reject a malformed payment reference, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject a malformed payment reference.", success)
	}
}
