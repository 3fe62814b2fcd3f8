package gallery

import (
	"errors"
	"fmt"
	"math"
)

// Origin identifies which view caused an active index change.
type Origin int

const (
	OriginDetailSettled Origin = iota + 1
	OriginThumbnailTap
)

func (o Origin) String() string {
	switch o {
	case OriginDetailSettled:
		return "detail_settled"
	case OriginThumbnailTap:
		return "thumbnail_tap"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfRange is matched by errors.Is for every *OutOfRangeError.
	ErrOutOfRange = errors.New("index out of range")
	// ErrEmptyGallery is returned when a settle event arrives with no records.
	ErrEmptyGallery = errors.New("gallery is empty")
)

// OutOfRangeError reports an index outside [0, Len).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// Layout holds the thumbnail strip geometry.
type Layout struct {
	ItemSize    float64 // thumbnail edge length
	ItemSpacing float64 // gap after each thumbnail
}

// Stride is the distance between the leading edges of adjacent thumbnails.
func (l Layout) Stride() float64 {
	return l.ItemSize + l.ItemSpacing
}

// ScrollTargets are absolute offsets for both views.
type ScrollTargets struct {
	DetailOffset    float64
	ThumbnailOffset float64
}

// Scroller is a view that can be positioned at an absolute horizontal offset.
type Scroller interface {
	ScrollTo(offset float64, animated bool)
}

type nopScroller struct{}

func (nopScroller) ScrollTo(float64, bool) {}

// Controller keeps the detail view and the thumbnail strip agreed on one
// active index. Every change goes through SetActiveIndex, which commands both
// scrollers from the same computed targets.
//
// Controller is not safe for concurrent use; drive it from the UI loop.
type Controller struct {
	model         *Model
	layout        Layout
	viewportWidth float64
	detail        Scroller
	thumbs        Scroller
	observer      Observer
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithIndexObserver registers an observer for index changes.
func WithIndexObserver(o Observer) ControllerOption {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewController creates a controller over model. Nil scrollers are replaced
// with no-ops so the controller can be used headless.
func NewController(model *Model, layout Layout, viewportWidth float64, detail, thumbs Scroller, opts ...ControllerOption) *Controller {
	if detail == nil {
		detail = nopScroller{}
	}
	if thumbs == nil {
		thumbs = nopScroller{}
	}
	c := &Controller{
		model:         model,
		layout:        layout,
		viewportWidth: viewportWidth,
		detail:        detail,
		thumbs:        thumbs,
		observer:      NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the thumbnail geometry.
func (c *Controller) Layout() Layout { return c.layout }

// ViewportWidth returns the detail view width.
func (c *Controller) ViewportWidth() float64 { return c.viewportWidth }

// ActiveIndex returns the model's active index.
func (c *Controller) ActiveIndex() (int, bool) { return c.model.ActiveIndex() }

// Targets computes the scroll targets for index i without side effects.
//
// The thumbnail offset centers the item when that does not scroll past the
// strip's left edge, and is 0 otherwise. The right edge is left to the
// thumbnail view's own extent clamping.
func (c *Controller) Targets(i int) ScrollTargets {
	idx := float64(i)
	leading := idx * c.layout.Stride()

	thumb := 0.0
	if leading-c.layout.ItemSize/2 > c.viewportWidth/2 {
		thumb = leading - c.viewportWidth/2 + c.layout.ItemSize/2
	}

	return ScrollTargets{
		DetailOffset:    idx * c.viewportWidth,
		ThumbnailOffset: thumb,
	}
}

// SetActiveIndex makes newIndex active and scrolls both views to match.
// Callers must clamp newIndex first; out-of-range values fail with an
// *OutOfRangeError and leave every view untouched.
func (c *Controller) SetActiveIndex(newIndex int, origin Origin) (ScrollTargets, error) {
	n := c.model.Len()
	if newIndex < 0 || newIndex >= n {
		return ScrollTargets{}, &OutOfRangeError{Index: newIndex, Len: n}
	}

	c.model.setActive(newIndex)
	targets := c.Targets(newIndex)

	c.detail.ScrollTo(targets.DetailOffset, true)
	c.thumbs.ScrollTo(targets.ThumbnailOffset, true)

	c.observer.IndexChanged(newIndex, origin)
	return targets, nil
}

// OnDetailSettled handles the detail view coming to rest at offsetX after a
// free drag. The page under offsetX becomes active.
func (c *Controller) OnDetailSettled(offsetX float64) (ScrollTargets, error) {
	n := c.model.Len()
	if n == 0 {
		return ScrollTargets{}, ErrEmptyGallery
	}

	idx := 0
	if c.viewportWidth > 0 {
		idx = int(math.Floor(offsetX / c.viewportWidth))
	}
	idx = min(max(idx, 0), n-1)

	return c.SetActiveIndex(idx, OriginDetailSettled)
}

// SetViewportWidth updates the detail width and repositions both views for
// the current index without animation.
func (c *Controller) SetViewportWidth(w float64) {
	c.viewportWidth = w

	idx, ok := c.model.ActiveIndex()
	if !ok {
		return
	}
	targets := c.Targets(idx)
	c.detail.ScrollTo(targets.DetailOffset, false)
	c.thumbs.ScrollTo(targets.ThumbnailOffset, false)
}
