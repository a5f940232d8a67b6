package errs

import (
	"errors"
	"net/http"

	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/search"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/validate"
)

// NodeUnavailable is the message a client sees when the base node could not
// answer a request.
const NodeUnavailable = "base node unavailable"

// FromCore translates an error returned by the explorer core into an error
// the Errors middleware knows how to respond with.
func FromCore(err error) error {
	switch {
	case err == nil:
		return nil

	case validate.IsFieldErrors(err):
		return err

	case errors.Is(err, search.ErrInvalidQuery), errors.Is(err, explorer.ErrInvalidID):
		return NewTrusted(err, http.StatusBadRequest)

	case errors.Is(err, node.ErrNotFound):
		return NewTrusted(err, http.StatusNotFound)
	}

	return NewTrustedPublic(err, http.StatusBadGateway, NodeUnavailable)
}
