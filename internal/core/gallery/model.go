// Package gallery holds the photo sequence, its load lifecycle, and the
// controller that keeps the detail view and thumbnail strip in sync.
package gallery

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/gallery/internal/core/logging"
	"github.com/colonyops/gallery/internal/core/photos"
)

// Phase is the stage of the single-shot load.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState is a snapshot of the load lifecycle. Sequence is only set when
// Phase is PhaseLoaded; Reason only when Phase is PhaseFailed.
type LoadState struct {
	Phase    Phase
	Sequence []photos.Record
	Reason   string
}

func (s LoadState) clone() LoadState {
	s.Sequence = slices.Clone(s.Sequence)
	return s
}

var errNoSource = errors.New("no image source configured")

// Model owns the photo sequence and the active index. It performs no I/O
// beyond the single call to its Source.
//
// Reads are safe from any goroutine; Load is expected to run off the UI loop.
type Model struct {
	mu       sync.Mutex
	src      photos.Source
	timeout  time.Duration
	observer Observer
	log      zerolog.Logger

	state  LoadState
	active int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTimeout bounds the load. Zero disables the deadline.
func WithTimeout(d time.Duration) ModelOption {
	return func(m *Model) { m.timeout = d }
}

// WithObserver registers an observer for load and index events.
func WithObserver(o Observer) ModelOption {
	return func(m *Model) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) { m.log = l }
}

// NewModel creates a Model backed by src.
func NewModel(src photos.Source, opts ...ModelOption) *Model {
	m := &Model{
		src:      src,
		observer: NopObserver{},
		log:      logging.Component("gallery"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load fetches the sequence from the source. Only the first call reaches the
// source; later calls return the current state unchanged.
func (m *Model) Load(ctx context.Context) LoadState {
	m.mu.Lock()
	if m.state.Phase != PhaseNotStarted {
		st := m.state.clone()
		m.mu.Unlock()
		return st
	}
	m.state = LoadState{Phase: PhaseLoading}
	m.mu.Unlock()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := m.fetch(ctx)
	took := time.Since(start)

	m.mu.Lock()
	if err != nil {
		m.state = LoadState{Phase: PhaseFailed, Reason: err.Error()}
	} else {
		if records == nil {
			records = []photos.Record{}
		}
		m.state = LoadState{Phase: PhaseLoaded, Sequence: slices.Clone(records)}
		m.active = 0
	}
	st := m.state.clone()
	m.mu.Unlock()

	if err != nil {
		m.log.Error().Err(err).Dur("took", took).Msg("load photos failed")
	} else {
		m.log.Info().Int("count", len(st.Sequence)).Dur("took", took).Msg("photos loaded")
	}
	m.observer.LoadFinished(st, took)

	return st
}

func (m *Model) fetch(ctx context.Context) ([]photos.Record, error) {
	if m.src == nil {
		return nil, errNoSource
	}
	return m.src.Fetch(ctx)
}

// State returns a snapshot of the load state.
func (m *Model) State() LoadState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// CurrentSequence returns a copy of the loaded sequence, or nil before load.
func (m *Model) CurrentSequence() []photos.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Sequence)
}

// Len returns the number of loaded records.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.Sequence)
}

// At returns the record at i.
func (m *Model) At(i int) (photos.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.state.Sequence) {
		return photos.Record{}, false
	}
	return m.state.Sequence[i], true
}

// ActiveIndex returns the active index and whether it applies (N > 0).
func (m *Model) ActiveIndex() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.state.Sequence) == 0 {
		return 0, false
	}
	return m.active, true
}

// setActive is called only by the Controller, after range checking.
func (m *Model) setActive(i int) {
	m.mu.Lock()
	m.active = i
	m.mu.Unlock()
}
