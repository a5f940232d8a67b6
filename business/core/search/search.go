// Package search provides the matchers used to locate a kernel or an output
// inside the already fetched contents of a block, and the classification of
// free form search terms.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
)

// ErrInvalidQuery is returned when a query is rejected before any scan.
var ErrInvalidQuery = errors.New("invalid search query")

// Normalize trims and lower cases a query value.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// First returns the index of the first record whose field equals value. An
// empty value matches nothing and no scan is performed.
func First[T any](records []T, value string, field func(T) string) (int, bool) {
	if value == "" {
		return 0, false
	}

	for i, rec := range records {
		if field(rec) == value {
			return i, true
		}
	}

	return 0, false
}

// =============================================================================

// KernelQuery looks up a kernel by its excess signature. The fields are
// alternatives: the first non-empty one, nonce before signature, is the only
// one matched.
type KernelQuery struct {
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

// Normalize returns the query with trimmed lower case values.
func (q KernelQuery) Normalize() KernelQuery {
	return KernelQuery{
		Nonce:     Normalize(q.Nonce),
		Signature: Normalize(q.Signature),
	}
}

// Empty reports whether the query has nothing to search for.
func (q KernelQuery) Empty() bool {
	q = q.Normalize()
	return q.Nonce == "" && q.Signature == ""
}

// Kernels returns the index of the first kernel matching the query.
func Kernels(kernels []node.Kernel, q KernelQuery) (int, bool) {
	q = q.Normalize()

	switch {
	case q.Nonce != "":
		return First(kernels, q.Nonce, func(k node.Kernel) string {
			return k.ExcessSig.PublicNonce.Hex()
		})

	case q.Signature != "":
		return First(kernels, q.Signature, func(k node.Kernel) string {
			return k.ExcessSig.Signature.Hex()
		})
	}

	return 0, false
}

// =============================================================================

// PayrefQuery looks up an output by its payment reference.
type PayrefQuery struct {
	Payref string `json:"payref" validate:"required,len=64,hexadecimal,excludes=x"`
}

// Normalize returns the query with a trimmed lower case value.
func (q PayrefQuery) Normalize() PayrefQuery {
	return PayrefQuery{
		Payref: Normalize(q.Payref),
	}
}

// Empty reports whether the query has nothing to search for.
func (q PayrefQuery) Empty() bool {
	return q.Normalize().Payref == ""
}

// Validate checks the payment reference is a 64 character hex string.
func (q PayrefQuery) Validate() error {
	if err := validate.Check(q.Normalize()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

// Outputs returns the index of the first output matching the query. An empty
// query returns no match without an error, a malformed one returns an error
// wrapping ErrInvalidQuery.
func Outputs(outputs []node.Output, q PayrefQuery) (int, bool, error) {
	q = q.Normalize()
	if q.Payref == "" {
		return 0, false, nil
	}

	if err := q.Validate(); err != nil {
		return 0, false, err
	}

	i, found := First(outputs, q.Payref, func(o node.Output) string {
		return o.PaymentReference.Hex()
	})

	return i, found, nil
}
