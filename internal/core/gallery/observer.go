package gallery

import "time"

// Observer receives gallery lifecycle events. Implementations must be cheap;
// IndexChanged runs on the UI loop.
type Observer interface {
	LoadFinished(state LoadState, took time.Duration)
	IndexChanged(index int, origin Origin)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) LoadFinished(LoadState, time.Duration) {}
func (NopObserver) IndexChanged(int, Origin)              {}
