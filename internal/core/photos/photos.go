// Package photos defines image records and the sources that supply them.
package photos

import (
	"context"
	"fmt"
	"slices"
)

// Record is a single photo returned by a Source. Records are immutable once
// loaded; consumers hold them by index.
type Record struct {
	ID              string `json:"id"`
	PortraitURI     string `json:"portrait_uri"`
	Photographer    string `json:"photographer,omitempty"`
	PhotographerURL string `json:"photographer_url,omitempty"`
	URL             string `json:"url,omitempty"`
	Alt             string `json:"alt,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

// Source supplies the ordered photo sequence for a session.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Record, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// Static is an in-memory Source. Fetch returns a copy so callers can't
// mutate the backing slice.
type Static []Record

// Fetch returns the static records, or ctx.Err() if ctx is already done.
func (s Static) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}

// Demo returns n placeholder records for running without network access.
func Demo(n int) Static {
	out := make(Static, 0, n)
	for i := range n {
		id := fmt.Sprintf("demo-%02d", i+1)
		out = append(out, Record{
			ID:           id,
			PortraitURI:  fmt.Sprintf("https://example.invalid/photos/%s/portrait.jpg", id),
			Photographer: "Demo Photographer",
			Alt:          fmt.Sprintf("Placeholder landscape #%d", i+1),
			Width:        1200,
			Height:       1800,
		})
	}
	return out
}
