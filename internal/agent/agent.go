// Package agent turns free-text questions into computed results over a
// dataset.
package agent

import (
	"context"
	"errors"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

// ErrNoPlan is returned when a question cannot be mapped to a query plan
var ErrNoPlan = errors.New("could not derive a query plan")

// Agent computes an answer to a question over a dataset
type Agent interface {
	Compute(ctx context.Context, question string, ds *dataset.Dataset) (*query.Result, error)
}
