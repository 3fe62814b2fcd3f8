package gallery

import "fmt"

// Event is an inbound index-change request from one of the two views.
type Event interface {
	origin() Origin
}

// ThumbnailTap is emitted when the user selects a thumbnail.
type ThumbnailTap struct {
	Index int
}

func (ThumbnailTap) origin() Origin { return OriginThumbnailTap }

// DetailSettled is emitted when a free drag of the detail view comes to rest.
type DetailSettled struct {
	OffsetX float64
}

func (DetailSettled) origin() Origin { return OriginDetailSettled }

// Dispatch routes an event into SetActiveIndex.
func (c *Controller) Dispatch(ev Event) (ScrollTargets, error) {
	switch ev := ev.(type) {
	case ThumbnailTap:
		return c.SetActiveIndex(ev.Index, ev.origin())
	case DetailSettled:
		return c.OnDetailSettled(ev.OffsetX)
	default:
		return ScrollTargets{}, fmt.Errorf("unsupported event %T", ev)
	}
}
