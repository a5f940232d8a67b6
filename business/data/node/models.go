package node

import (
	"encoding/json"
	"errors"

	"github.com/ardanlabs/blockexplorer/foundation/format"
	"github.com/ardanlabs/blockexplorer/foundation/tagged"
)

// Bytes is a byte array field as emitted by the base node. It decodes every
// representation the node uses and encodes back out as a hex string.
type Bytes []byte

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	raw, err := tagged.Bytes(v)
	switch {
	case errors.Is(err, tagged.ErrUndefined):
		*b = nil
		return nil
	case err != nil:
		return err
	}

	*b = raw
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hex())
}

// Hex returns the lower case hex form of the bytes.
func (b Bytes) Hex() string {
	return format.ToHex(b)
}

// String implements the fmt.Stringer interface.
func (b Bytes) String() string {
	return b.Hex()
}

// =============================================================================

// Tip represents the highest block known to the node.
type Tip struct {
	Height    uint64 `json:"height"`
	Hash      Bytes  `json:"hash"`
	Timestamp uint64 `json:"timestamp"`
}

// ProofOfWork identifies the algorithm a block was mined with.
type ProofOfWork struct {
	PowAlgo uint64 `json:"pow_algo"`
	PowData Bytes  `json:"pow_data"`
}

// BlockHeader represents the header information for a block.
type BlockHeader struct {
	Hash              Bytes       `json:"hash"`
	Height            uint64      `json:"height"`
	Version           uint32      `json:"version"`
	PrevHash          Bytes       `json:"prev_hash"`
	Timestamp         uint64      `json:"timestamp"`
	OutputMR          Bytes       `json:"output_mr"`
	KernelMR          Bytes       `json:"kernel_mr"`
	InputMR           Bytes       `json:"input_mr"`
	TotalKernelOffset Bytes       `json:"total_kernel_offset"`
	Nonce             uint64      `json:"nonce"`
	Pow               ProofOfWork `json:"pow"`
	Difficulty        uint64      `json:"difficulty"`
	KernelMMRSize     uint64      `json:"kernel_mmr_size"`
	OutputMMRSize     uint64      `json:"output_mmr_size"`
}

// Block represents a header with its transaction body.
type Block struct {
	Header  BlockHeader `json:"header"`
	Kernels []Kernel    `json:"kernels"`
	Inputs  []Input     `json:"inputs"`
	Outputs []Output    `json:"outputs"`
}

// Signature is a Schnorr signature made of a public nonce and a signature.
type Signature struct {
	PublicNonce Bytes `json:"public_nonce"`
	Signature   Bytes `json:"signature"`
}

// Kernel represents a transaction kernel.
type Kernel struct {
	Hash       Bytes     `json:"hash"`
	Version    uint32    `json:"version"`
	Features   uint32    `json:"features"`
	Fee        uint64    `json:"fee"`
	LockHeight uint64    `json:"lock_height"`
	Excess     Bytes     `json:"excess"`
	ExcessSig  Signature `json:"excess_sig"`
}

// OutputFeatures represents the features attached to an output.
type OutputFeatures struct {
	OutputType    uint32 `json:"output_type"`
	Maturity      uint64 `json:"maturity"`
	CoinbaseExtra Bytes  `json:"coinbase_extra"`
}

// Output represents a transaction output.
type Output struct {
	Hash                  Bytes          `json:"hash"`
	Version               uint32         `json:"version"`
	Features              OutputFeatures `json:"features"`
	Commitment            Bytes          `json:"commitment"`
	PaymentReference      Bytes          `json:"payment_reference"`
	Script                Bytes          `json:"script"`
	SenderOffsetPublicKey Bytes          `json:"sender_offset_public_key"`
	EncryptedData         Bytes          `json:"encrypted_data"`
	MinimumValuePromise   uint64         `json:"minimum_value_promise"`
}

// Input represents a transaction input spending a previous output.
type Input struct {
	OutputHash Bytes          `json:"output_hash"`
	Commitment Bytes          `json:"commitment"`
	Features   OutputFeatures `json:"features"`
	InputData  Bytes          `json:"input_data"`
}

// MempoolTx represents an unconfirmed transaction.
type MempoolTx struct {
	Kernels []Kernel `json:"kernels"`
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// NetworkStats represents the hash rate and block time information the node
// calculates over a window of recent blocks.
type NetworkStats struct {
	TipHeight                 uint64   `json:"tip_height"`
	Sha3xHashRate             float64  `json:"sha3x_hash_rate"`
	RandomxHashRate           float64  `json:"randomx_hash_rate"`
	MergeMinedRandomxHashRate float64  `json:"merge_mined_randomx_hash_rate"`
	BlockTimes                []uint64 `json:"block_times"`
}

// ValidatorNode represents a registered validator node.
type ValidatorNode struct {
	PublicKey       Bytes  `json:"public_key"`
	ShardKey        Bytes  `json:"shard_key"`
	ActivationEpoch uint64 `json:"activation_epoch"`
}

// KernelLocation identifies the block a kernel was mined in.
type KernelLocation struct {
	Height      uint64 `json:"height"`
	BlockHash   Bytes  `json:"block_hash"`
	PublicNonce Bytes  `json:"public_nonce"`
	Signature   Bytes  `json:"signature"`
}

// OutputLocation identifies the block an output was mined in.
type OutputLocation struct {
	Height           uint64 `json:"height"`
	BlockHash        Bytes  `json:"block_hash"`
	OutputHash       Bytes  `json:"output_hash"`
	Commitment       Bytes  `json:"commitment"`
	PaymentReference Bytes  `json:"payment_reference"`
	MinedTimestamp   uint64 `json:"mined_timestamp"`
	Spent            bool   `json:"spent"`
}
