package explorergrp

import (
	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/paging"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/format"
)

type tip struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	Timestamp uint64 `json:"timestamp"`
	Time      string `json:"time"`
}

func toTip(t node.Tip) tip {
	return tip{
		Height:    t.Height,
		Hash:      t.Hash.Hex(),
		Timestamp: t.Timestamp,
		Time:      format.Timestamp(t.Timestamp),
	}
}

type header struct {
	Height            uint64 `json:"height"`
	Hash              string `json:"hash"`
	HashShort         string `json:"hash_short"`
	PrevHash          string `json:"prev_hash"`
	Version           uint32 `json:"version"`
	Timestamp         uint64 `json:"timestamp"`
	Time              string `json:"time"`
	PowAlgo           uint64 `json:"pow_algo"`
	Pow               string `json:"pow"`
	Difficulty        uint64 `json:"difficulty"`
	Nonce             uint64 `json:"nonce"`
	KernelMR          string `json:"kernel_mr"`
	OutputMR          string `json:"output_mr"`
	InputMR           string `json:"input_mr"`
	TotalKernelOffset string `json:"total_kernel_offset"`
	KernelMMRSize     uint64 `json:"kernel_mmr_size"`
	OutputMMRSize     uint64 `json:"output_mmr_size"`
}

func toHeader(h node.BlockHeader) header {
	return header{
		Height:            h.Height,
		Hash:              h.Hash.Hex(),
		HashShort:         format.Shorten(h.Hash.Hex()),
		PrevHash:          h.PrevHash.Hex(),
		Version:           h.Version,
		Timestamp:         h.Timestamp,
		Time:              format.Timestamp(h.Timestamp),
		PowAlgo:           h.Pow.PowAlgo,
		Pow:               format.PowCode(h.Pow.PowAlgo),
		Difficulty:        h.Difficulty,
		Nonce:             h.Nonce,
		KernelMR:          h.KernelMR.Hex(),
		OutputMR:          h.OutputMR.Hex(),
		InputMR:           h.InputMR.Hex(),
		TotalKernelOffset: h.TotalKernelOffset.Hex(),
		KernelMMRSize:     h.KernelMMRSize,
		OutputMMRSize:     h.OutputMMRSize,
	}
}

func toHeaders(hs []node.BlockHeader) []header {
	headers := make([]header, len(hs))
	for i, h := range hs {
		headers[i] = toHeader(h)
	}
	return headers
}

type block struct {
	Header  header `json:"header"`
	Kernels int    `json:"kernels"`
	Outputs int    `json:"outputs"`
	Inputs  int    `json:"inputs"`
}

func toBlock(b node.Block) block {
	return block{
		Header:  toHeader(b.Header),
		Kernels: len(b.Kernels),
		Outputs: len(b.Outputs),
		Inputs:  len(b.Inputs),
	}
}

type kernel struct {
	Hash        string `json:"hash"`
	Version     uint32 `json:"version"`
	Features    uint32 `json:"features"`
	Fee         uint64 `json:"fee"`
	LockHeight  uint64 `json:"lock_height"`
	Excess      string `json:"excess"`
	ExcessShort string `json:"excess_short"`
	PublicNonce string `json:"public_nonce"`
	Signature   string `json:"signature"`
}

func toKernel(k node.Kernel) kernel {
	return kernel{
		Hash:        k.Hash.Hex(),
		Version:     k.Version,
		Features:    k.Features,
		Fee:         k.Fee,
		LockHeight:  k.LockHeight,
		Excess:      k.Excess.Hex(),
		ExcessShort: format.Shorten(k.Excess.Hex()),
		PublicNonce: k.ExcessSig.PublicNonce.Hex(),
		Signature:   k.ExcessSig.Signature.Hex(),
	}
}

type output struct {
	Hash                  string `json:"hash"`
	Version               uint32 `json:"version"`
	OutputType            uint32 `json:"output_type"`
	Maturity              uint64 `json:"maturity"`
	Commitment            string `json:"commitment"`
	CommitmentShort       string `json:"commitment_short"`
	PaymentReference      string `json:"payment_reference"`
	Script                string `json:"script"`
	SenderOffsetPublicKey string `json:"sender_offset_public_key"`
	MinimumValuePromise   uint64 `json:"minimum_value_promise"`
}

func toOutput(o node.Output) output {
	return output{
		Hash:                  o.Hash.Hex(),
		Version:               o.Version,
		OutputType:            o.Features.OutputType,
		Maturity:              o.Features.Maturity,
		Commitment:            o.Commitment.Hex(),
		CommitmentShort:       format.Shorten(o.Commitment.Hex()),
		PaymentReference:      o.PaymentReference.Hex(),
		Script:                o.Script.Hex(),
		SenderOffsetPublicKey: o.SenderOffsetPublicKey.Hex(),
		MinimumValuePromise:   o.MinimumValuePromise,
	}
}

type input struct {
	OutputHash string `json:"output_hash"`
	Commitment string `json:"commitment"`
	OutputType uint32 `json:"output_type"`
	Maturity   uint64 `json:"maturity"`
}

func toInput(in node.Input) input {
	return input{
		OutputHash: in.OutputHash.Hex(),
		Commitment: in.Commitment.Hex(),
		OutputType: in.Features.OutputType,
		Maturity:   in.Features.Maturity,
	}
}

// =============================================================================

type item[V any] struct {
	Index       int  `json:"index"`
	Highlighted bool `json:"highlighted"`
	Record      V    `json:"record"`
}

type page[V any] struct {
	Block      header        `json:"block"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
	State      paging.State  `json:"state"`
	Match      *paging.Match `json:"match,omitempty"`
	Message    string        `json:"message,omitempty"`
	Items      []item[V]     `json:"items"`
}

func toPage[T any, V any](p explorer.Page[T], conv func(T) V) page[V] {
	items := make([]item[V], len(p.View.Items))
	for i, it := range p.View.Items {
		items[i] = item[V]{
			Index:       it.Index,
			Highlighted: it.Highlighted,
			Record:      conv(it.Record),
		}
	}

	return page[V]{
		Block:      toHeader(p.Header),
		Page:       p.View.Page,
		PerPage:    p.View.PerPage,
		TotalPages: p.View.TotalPages,
		Total:      p.View.Total,
		State:      p.View.State,
		Match:      p.View.Match,
		Message:    p.Message,
		Items:      items,
	}
}

// =============================================================================

type mempoolTx struct {
	Signature string `json:"signature"`
	Excess    string `json:"excess"`
	Fee       uint64 `json:"fee"`
	Kernels   int    `json:"kernels"`
	Inputs    int    `json:"inputs"`
	Outputs   int    `json:"outputs"`
}

func toMempool(txs []node.MempoolTx) []mempoolTx {
	mtxs := make([]mempoolTx, len(txs))
	for i, tx := range txs {
		mtx := mempoolTx{
			Kernels: len(tx.Kernels),
			Inputs:  len(tx.Inputs),
			Outputs: len(tx.Outputs),
		}

		for _, k := range tx.Kernels {
			mtx.Fee += k.Fee
		}

		if len(tx.Kernels) > 0 {
			mtx.Signature = tx.Kernels[0].ExcessSig.Signature.Hex()
			mtx.Excess = format.Shorten(tx.Kernels[0].Excess.Hex())
		}

		mtxs[i] = mtx
	}
	return mtxs
}

type hashRate struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func toHashRate(rate float64) hashRate {
	return hashRate{
		Value:   rate,
		Display: format.Hash(rate),
	}
}

type stats struct {
	TipHeight         uint64   `json:"tip_height"`
	Sha3x             hashRate `json:"sha3x_hash_rate"`
	RandomX           hashRate `json:"randomx_hash_rate"`
	MergeMinedRandomX hashRate `json:"merge_mined_randomx_hash_rate"`
	AverageBlockTime  float64  `json:"average_block_time"`
	BlockTimes        []uint64 `json:"block_times"`
}

func toStats(s explorer.Stats) stats {
	return stats{
		TipHeight:         s.TipHeight,
		Sha3x:             toHashRate(s.Sha3xHashRate),
		RandomX:           toHashRate(s.RandomxHashRate),
		MergeMinedRandomX: toHashRate(s.MergeMinedRandomxHashRate),
		AverageBlockTime:  s.AverageBlockTime,
		BlockTimes:        s.BlockTimes,
	}
}

type overview struct {
	Tip     tip      `json:"tip"`
	Stats   stats    `json:"stats"`
	Mempool int      `json:"mempool"`
	Blocks  []header `json:"blocks"`
}

func toOverview(ov explorer.Overview) overview {
	return overview{
		Tip:     toTip(ov.Tip),
		Stats:   toStats(ov.Stats),
		Mempool: ov.Mempool,
		Blocks:  toHeaders(ov.Blocks),
	}
}

type minerShare struct {
	PowAlgo uint64  `json:"pow_algo"`
	Label   string  `json:"label"`
	Blocks  int     `json:"blocks"`
	Percent float64 `json:"percent"`
}

func toMiners(shares []explorer.MinerShare) []minerShare {
	ms := make([]minerShare, len(shares))
	for i, s := range shares {
		ms[i] = minerShare(s)
	}
	return ms
}

type validatorNode struct {
	PublicKey       string `json:"public_key"`
	ShardKey        string `json:"shard_key"`
	ActivationEpoch uint64 `json:"activation_epoch"`
}

func toValidators(vns []node.ValidatorNode) []validatorNode {
	vs := make([]validatorNode, len(vns))
	for i, vn := range vns {
		vs[i] = validatorNode{
			PublicKey:       vn.PublicKey.Hex(),
			ShardKey:        vn.ShardKey.Hex(),
			ActivationEpoch: vn.ActivationEpoch,
		}
	}
	return vs
}

// =============================================================================

type kernelLocation struct {
	Height      uint64 `json:"height"`
	BlockHash   string `json:"block_hash"`
	PublicNonce string `json:"public_nonce"`
	Signature   string `json:"signature"`
}

func toKernelLocations(locs []node.KernelLocation) []kernelLocation {
	kls := make([]kernelLocation, len(locs))
	for i, loc := range locs {
		kls[i] = kernelLocation{
			Height:      loc.Height,
			BlockHash:   loc.BlockHash.Hex(),
			PublicNonce: loc.PublicNonce.Hex(),
			Signature:   loc.Signature.Hex(),
		}
	}
	return kls
}

type outputLocation struct {
	Height           uint64 `json:"height"`
	BlockHash        string `json:"block_hash"`
	OutputHash       string `json:"output_hash"`
	Commitment       string `json:"commitment"`
	PaymentReference string `json:"payment_reference"`
	MinedTimestamp   uint64 `json:"mined_timestamp"`
	MinedTime        string `json:"mined_time"`
	Spent            bool   `json:"spent"`
}

func toOutputLocations(locs []node.OutputLocation) []outputLocation {
	ols := make([]outputLocation, len(locs))
	for i, loc := range locs {
		ols[i] = outputLocation{
			Height:           loc.Height,
			BlockHash:        loc.BlockHash.Hex(),
			OutputHash:       loc.OutputHash.Hex(),
			Commitment:       loc.Commitment.Hex(),
			PaymentReference: loc.PaymentReference.Hex(),
			MinedTimestamp:   loc.MinedTimestamp,
			MinedTime:        format.Timestamp(loc.MinedTimestamp),
			Spent:            loc.Spent,
		}
	}
	return ols
}

type searchResult struct {
	Kind    string           `json:"kind"`
	Block   *block           `json:"block,omitempty"`
	Outputs []outputLocation `json:"outputs,omitempty"`
}

func toSearchResult(sr explorer.SearchResult) searchResult {
	res := searchResult{
		Kind: sr.Kind.String(),
	}

	if sr.Block != nil {
		b := toBlock(*sr.Block)
		res.Block = &b
	}

	if sr.Outputs != nil {
		res.Outputs = toOutputLocations(sr.Outputs)
	}

	return res
}

// =============================================================================

type pageQuery struct {
	Page    int `json:"page" validate:"gte=1"`
	PerPage int `json:"per_page" validate:"gte=1"`
}

type blocksQuery struct {
	Limit int `json:"limit" validate:"gte=1"`
}

type windowQuery struct {
	Window int `json:"window" validate:"gte=0"`
}

type kernelSearchQuery struct {
	Nonce     string `json:"nonce" validate:"required_without=Signature"`
	Signature string `json:"signature" validate:"required_without=Nonce"`
}

type hashQuery struct {
	Hash string `json:"hash" validate:"required"`
}
