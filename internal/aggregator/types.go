// Package aggregator combines the authored catalog with remote sources into a unified collection.
//
// This package enables folio to:
// - Fetch every remote source concurrently with a bounded timeout each
// - Keep whatever succeeded when some sources fail
// - Report failed origins so the user can be told content is missing
package aggregator

import (
	"context"
	"fmt"
	"strings"

	"github.com/gauthierbraillon/folio/internal/content"
)

// Source fetches and normalizes one origin's items.
type Source interface {
	Origin() content.Origin
	Fetch(ctx context.Context) ([]content.Item, error)
}

// Outcome is one origin's result for a fetch cycle: a batch or a failure.
type Outcome struct {
	Origin content.Origin
	Items  []content.Item
	Err    error
}

// Succeeded builds a successful outcome.
func Succeeded(origin content.Origin, items []content.Item) Outcome {
	return Outcome{Origin: origin, Items: items}
}

// Failed builds a failed outcome.
func Failed(origin content.Origin, err error) Outcome {
	return Outcome{Origin: origin, Err: err}
}

// FetchError records why an origin contributed nothing.
type FetchError struct {
	Origin content.Origin
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Origin, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Aggregation is the failure-isolated union of the catalog and every
// successful remote batch.
type Aggregation struct {
	Items    []content.Item
	Failures []*FetchError
}

// Partial reports whether at least one origin failed.
func (a Aggregation) Partial() bool {
	return len(a.Failures) > 0
}

// Notice returns a user-facing message naming the failed origins in
// registration order, or "" when every origin answered.
func (a Aggregation) Notice() string {
	if !a.Partial() {
		return ""
	}
	names := make([]string, 0, len(a.Failures))
	for _, f := range a.Failures {
		names = append(names, string(f.Origin))
	}
	return "Some content could not be loaded (" + strings.Join(names, ", ") + "). Everything else is still available."
}
