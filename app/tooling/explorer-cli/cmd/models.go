package cmd

type header struct {
	Height     uint64 `json:"height"`
	Hash       string `json:"hash"`
	HashShort  string `json:"hash_short"`
	PrevHash   string `json:"prev_hash"`
	Time       string `json:"time"`
	Pow        string `json:"pow"`
	Difficulty uint64 `json:"difficulty"`
	Nonce      uint64 `json:"nonce"`
	KernelMR   string `json:"kernel_mr"`
	OutputMR   string `json:"output_mr"`
}

type block struct {
	Header  header `json:"header"`
	Kernels int    `json:"kernels"`
	Outputs int    `json:"outputs"`
	Inputs  int    `json:"inputs"`
}

type kernel struct {
	Fee         uint64 `json:"fee"`
	LockHeight  uint64 `json:"lock_height"`
	ExcessShort string `json:"excess_short"`
	PublicNonce string `json:"public_nonce"`
	Signature   string `json:"signature"`
}

type output struct {
	OutputType       uint32 `json:"output_type"`
	Maturity         uint64 `json:"maturity"`
	CommitmentShort  string `json:"commitment_short"`
	PaymentReference string `json:"payment_reference"`
}

type item[T any] struct {
	Index       int  `json:"index"`
	Highlighted bool `json:"highlighted"`
	Record      T    `json:"record"`
}

type page[T any] struct {
	Block      header    `json:"block"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	State      string    `json:"state"`
	Message    string    `json:"message"`
	Items      []item[T] `json:"items"`
}

type mempoolTx struct {
	Signature string `json:"signature"`
	Excess    string `json:"excess"`
	Fee       uint64 `json:"fee"`
	Kernels   int    `json:"kernels"`
	Inputs    int    `json:"inputs"`
	Outputs   int    `json:"outputs"`
}

type hashRate struct {
	Display string `json:"display"`
}

type stats struct {
	TipHeight         uint64   `json:"tip_height"`
	Sha3x             hashRate `json:"sha3x_hash_rate"`
	RandomX           hashRate `json:"randomx_hash_rate"`
	MergeMinedRandomX hashRate `json:"merge_mined_randomx_hash_rate"`
	AverageBlockTime  float64  `json:"average_block_time"`
}

type minerShare struct {
	Label   string  `json:"label"`
	Blocks  int     `json:"blocks"`
	Percent float64 `json:"percent"`
}

type outputLocation struct {
	Height           uint64 `json:"height"`
	BlockHash        string `json:"block_hash"`
	Commitment       string `json:"commitment"`
	PaymentReference string `json:"payment_reference"`
	MinedTime        string `json:"mined_time"`
	Spent            bool   `json:"spent"`
}

type searchResult struct {
	Kind    string           `json:"kind"`
	Block   *block           `json:"block"`
	Outputs []outputLocation `json:"outputs"`
}
