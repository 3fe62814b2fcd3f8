package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/gallery/internal/core/gallery"
	"github.com/colonyops/gallery/internal/core/photos"
	"github.com/colonyops/gallery/pkg/tuitest"
)

type indexEvent struct {
	index  int
	origin gallery.Origin
}

type recordingObserver struct {
	gallery.NopObserver
	events []indexEvent
}

func (r *recordingObserver) IndexChanged(i int, o gallery.Origin) {
	r.events = append(r.events, indexEvent{index: i, origin: o})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return updated, cmd
}

// settle runs frames until both scrollers are at rest.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.animating; i++ {
		require.Less(t, i, 1000, "animation never settled")
		m, _ = update(t, m, frameMsg(time.Now()))
	}
	return m
}

func newModel(t *testing.T, src photos.Source, w, h int, obs gallery.Observer) Model {
	t.Helper()
	gm := gallery.NewModel(src)
	m := New(context.Background(), gm, Options{
		ItemSize:    12,
		ItemSpacing: 2,
		Observer:    obs,
	})
	m, _ = update(t, m, tuitest.WindowSize(w, h))
	return m
}

func loaded(t *testing.T, src photos.Source, w, h int, obs gallery.Observer) Model {
	t.Helper()
	m := newModel(t, src, w, h, obs)
	m, _ = update(t, m, m.loadPhotos()())
	return m
}

func activeIndex(t *testing.T, m Model) int {
	t.Helper()
	idx, ok := m.ctrl.ActiveIndex()
	require.True(t, ok)
	return idx
}

// stripRow is a row inside the thumbnail strip for an 80x24 screen with the
// one-line help bar.
const stripRow = 24 - 1 - stripHeight + 1

func TestModel_SwipeForwardUpdatesIndexOnSettle(t *testing.T) {
	obs := &recordingObserver{}
	m := loaded(t, photos.Demo(5), 80, 24, obs)

	m, cmd := update(t, m, tuitest.KeyRight())
	require.NotNil(t, cmd, "swipe schedules a frame")
	assert.Equal(t, 80.0, m.detail.Target())
	assert.Equal(t, 0, activeIndex(t, m), "index waits for the view to settle")

	m = settle(t, m)

	assert.Equal(t, 1, activeIndex(t, m))
	assert.Equal(t, 80.0, m.detail.Current())
	assert.Equal(t, 0.0, m.thumbs.Current())
	assert.Equal(t, []indexEvent{{index: 1, origin: gallery.OriginDetailSettled}}, obs.events)
}

func TestModel_SwipeClampsAtEnds(t *testing.T) {
	m := loaded(t, photos.Demo(3), 80, 24, nil)

	m, _ = update(t, m, tuitest.KeyLeft())
	m = settle(t, m)
	assert.Equal(t, 0, activeIndex(t, m))
	assert.Equal(t, 0.0, m.detail.Current())

	for range 4 {
		m, _ = update(t, m, tuitest.KeyPress('l'))
	}
	m = settle(t, m)
	assert.Equal(t, 2, activeIndex(t, m))
	assert.Equal(t, 160.0, m.detail.Current())
}

func TestModel_ThumbnailClick(t *testing.T) {
	obs := &recordingObserver{}
	m := loaded(t, photos.Demo(10), 80, 24, obs)

	// padding 2, stride 14: column 45 is inside the fourth cell.
	m, cmd := update(t, m, tuitest.MouseClick(45, stripRow))
	require.NotNil(t, cmd)
	assert.Equal(t, 3, activeIndex(t, m), "taps apply immediately")

	m = settle(t, m)
	assert.Equal(t, 240.0, m.detail.Current())
	assert.Equal(t, 0.0, m.thumbs.Current())
	assert.Equal(t, []indexEvent{{index: 3, origin: gallery.OriginThumbnailTap}}, obs.events)
}

func TestModel_ThumbnailClickMisses(t *testing.T) {
	m := loaded(t, photos.Demo(10), 80, 24, nil)

	tests := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{name: "gap between cells", msg: tuitest.MouseClick(14, stripRow)},
		{name: "leading padding", msg: tuitest.MouseClick(1, stripRow)},
		{name: "detail pane", msg: tuitest.MouseClick(45, 2)},
		{name: "help bar", msg: tuitest.MouseClick(45, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cmd := update(t, m, tt.msg)
			assert.Nil(t, cmd)
			assert.Equal(t, 0, activeIndex(t, next))
		})
	}
}

func TestModel_LastClampsThumbnailStrip(t *testing.T) {
	m := loaded(t, photos.Demo(10), 80, 24, nil)

	m, _ = update(t, m, tuitest.KeyEnd())
	m = settle(t, m)

	assert.Equal(t, 9, activeIndex(t, m))
	assert.Equal(t, 720.0, m.detail.Current())
	// Centered target 92 is past the strip's extent of 142-80.
	assert.Equal(t, 62.0, m.thumbs.Current())

	// A click maps through the scrolled strip offset.
	m, _ = update(t, m, tuitest.MouseClick(0, stripRow))
	assert.Equal(t, 4, activeIndex(t, m))
}

func TestModel_ThumbnailKeys(t *testing.T) {
	m := loaded(t, photos.Demo(10), 80, 24, nil)

	m, _ = update(t, m, tuitest.KeyPress('3'))
	assert.Equal(t, 2, activeIndex(t, m))

	m, _ = update(t, m, tuitest.KeyPress(']'))
	assert.Equal(t, 3, activeIndex(t, m))

	m, _ = update(t, m, tuitest.KeyPress('['))
	m, _ = update(t, m, tuitest.KeyPress('['))
	assert.Equal(t, 1, activeIndex(t, m))

	m, _ = update(t, m, tuitest.KeyPress('0'))
	assert.Equal(t, 9, activeIndex(t, m))

	m, _ = update(t, m, tuitest.KeyPress(']'))
	assert.Equal(t, 9, activeIndex(t, m), "stays on the last thumbnail")

	m, _ = update(t, m, tuitest.KeyHome())
	assert.Equal(t, 0, activeIndex(t, m))
}

func TestModel_OutOfRangeJumpIsIgnored(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logs).Level(zerolog.WarnLevel)
	t.Cleanup(func() { log.Logger = prev })

	obs := &recordingObserver{}
	m := loaded(t, photos.Demo(5), 80, 24, obs)

	m, cmd := update(t, m, tuitest.KeyPress('9'))

	assert.Empty(t, logs.String(), "controller should not see an out-of-range tap")
	assert.Nil(t, cmd)
	assert.Equal(t, 0, activeIndex(t, m))
	assert.Equal(t, 0.0, m.detail.Target())
	assert.Empty(t, obs.events)
}

func TestModel_MouseWheel(t *testing.T) {
	m := loaded(t, photos.Demo(10), 80, 24, nil)

	m, _ = update(t, m, tuitest.MouseWheel(10, 5, false))
	m = settle(t, m)
	assert.Equal(t, 1, activeIndex(t, m))

	// Scrolling the strip moves it without changing the index.
	m, _ = update(t, m, tuitest.MouseWheel(10, stripRow, false))
	m = settle(t, m)
	assert.Equal(t, 14.0, m.thumbs.Current())
	assert.Equal(t, 1, activeIndex(t, m))
}

func TestModel_ResizeRepositionsWithoutAnimation(t *testing.T) {
	m := loaded(t, photos.Demo(5), 80, 24, nil)
	m, _ = update(t, m, tuitest.KeyPress('3'))
	m = settle(t, m)
	require.Equal(t, 160.0, m.detail.Current())

	m, _ = update(t, m, tuitest.WindowSize(100, 30))

	assert.True(t, m.detail.Settled())
	assert.Equal(t, 200.0, m.detail.Current())
	assert.Equal(t, 2, activeIndex(t, m))
}

func TestModel_KeysIgnoredWhenEmpty(t *testing.T) {
	m := loaded(t, photos.Static{}, 80, 24, nil)

	_, cmd := update(t, m, tuitest.KeyRight())
	assert.Nil(t, cmd)

	_, cmd = update(t, m, tuitest.MouseClick(5, stripRow))
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, photos.Demo(2), 80, 24, nil)

	for _, msg := range []tea.KeyMsg{tuitest.KeyPress('q'), tuitest.CtrlC()} {
		_, cmd := update(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := loaded(t, photos.Demo(2), 120, 24, nil)
	short := m.detailHeight()

	m, _ = update(t, m, tuitest.KeyPress('?'))

	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.detailHeight(), short)
}

func TestModel_View(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		m := newModel(t, photos.Demo(2), 80, 24, nil)
		assert.Contains(t, tuitest.StripANSI(m.View()), msgLoading)
	})

	t.Run("failed", func(t *testing.T) {
		src := photos.SourceFunc(func(context.Context) ([]photos.Record, error) {
			return nil, errors.New("pexels: unexpected status 401")
		})
		m := loaded(t, src, 80, 24, nil)

		view := tuitest.StripANSI(m.View())
		assert.Contains(t, view, "No Data, Check API Configuration.")
		assert.Contains(t, view, "pexels: unexpected status 401")
	})

	t.Run("empty", func(t *testing.T) {
		m := loaded(t, photos.Static{}, 80, 24, nil)
		assert.Contains(t, tuitest.StripANSI(m.View()), "No photos found.")
	})

	t.Run("loaded", func(t *testing.T) {
		m := loaded(t, photos.Demo(5), 120, 24, nil)

		view := tuitest.StripANSI(m.View())
		assert.Contains(t, view, "Placeholder landscape #1")
		assert.Contains(t, view, "by Demo Photographer")
		assert.Contains(t, view, "1 / 5")
		assert.Contains(t, view, "quit")
		assert.NotContains(t, view, "Placeholder landscape #2")
	})

	t.Run("not sized", func(t *testing.T) {
		m := New(context.Background(), gallery.NewModel(photos.Demo(1)), Options{ItemSize: 12, ItemSpacing: 2})
		assert.Empty(t, m.View())
	})
}
