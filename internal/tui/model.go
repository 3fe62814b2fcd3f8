// Package tui renders the gallery as a paged detail view above a thumbnail
// strip and drives the scroll controller from keyboard and mouse input.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/gallery/internal/core/gallery"
	"github.com/colonyops/gallery/internal/core/logging"
	"github.com/colonyops/gallery/internal/core/styles"
)

const defaultFrameInterval = time.Second / 60

// Options configures the TUI.
type Options struct {
	ItemSize      int
	ItemSpacing   int
	FrameInterval time.Duration
	Smoothing     float64
	Observer      gallery.Observer // index change observer (optional)
}

// loadedMsg carries the finished load back to the update loop.
type loadedMsg struct {
	state gallery.LoadState
}

// Model is the Bubble Tea model for the gallery screen.
type Model struct {
	ctx     context.Context
	gallery *gallery.Model
	ctrl    *gallery.Controller
	detail  *Scroller
	thumbs  *Scroller

	itemSize      int
	itemSpacing   int
	frameInterval time.Duration

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	log     zerolog.Logger

	width  int
	height int

	// animating is true while a frame tick is scheduled.
	animating bool
	// settlePending is true while a user drag of the detail view is still
	// in flight; it reports DetailSettled once the scroller comes to rest.
	settlePending bool
}

// New creates the TUI model over an unloaded gallery model.
func New(ctx context.Context, gm *gallery.Model, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}

	detail := NewScroller(opts.Smoothing)
	thumbs := NewScroller(opts.Smoothing)

	layout := gallery.Layout{
		ItemSize:    float64(opts.ItemSize),
		ItemSpacing: float64(opts.ItemSpacing),
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.PageTitleStyle

	return Model{
		ctx:           ctx,
		gallery:       gm,
		ctrl:          gallery.NewController(gm, layout, 0, detail, thumbs, gallery.WithIndexObserver(opts.Observer)),
		detail:        detail,
		thumbs:        thumbs,
		itemSize:      opts.ItemSize,
		itemSpacing:   opts.ItemSpacing,
		frameInterval: opts.FrameInterval,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       s,
		log:           logging.Component("tui"),
	}
}

// Init starts the spinner and the one-shot load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPhotos())
}

func (m Model) loadPhotos() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{state: m.gallery.Load(m.ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case loadedMsg:
		return m.handleLoaded(msg)
	case frameMsg:
		return m.handleFrame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case spinner.TickMsg:
		if phase := m.gallery.State().Phase; phase == gallery.PhaseLoaded || phase == gallery.PhaseFailed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	// Extents first so the controller's reissued targets land clamped.
	m.updateExtents()
	m.settlePending = false
	m.ctrl.SetViewportWidth(float64(m.width))

	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	switch msg.state.Phase {
	case gallery.PhaseFailed:
		m.log.Warn().Str("reason", msg.state.Reason).Msg("gallery unavailable")
	case gallery.PhaseLoaded:
		m.log.Debug().Int("count", len(msg.state.Sequence)).Msg("gallery ready")
	}

	m.updateExtents()
	m.ctrl.SetViewportWidth(float64(m.width))
	return m, nil
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	m.detail.Step()
	m.thumbs.Step()

	if m.settlePending && m.detail.Settled() {
		m.settlePending = false
		m.dispatch(gallery.DetailSettled{OffsetX: m.detail.Current()})
	}

	if m.detail.Settled() && m.thumbs.Settled() {
		m.animating = false
		return m, nil
	}
	return m, scheduleFrame(m.frameInterval)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	n := m.gallery.Len()
	if n == 0 {
		return m, nil
	}
	active, _ := m.ctrl.ActiveIndex()

	switch {
	case key.Matches(msg, m.keys.PrevPage):
		m.drag(-1)
	case key.Matches(msg, m.keys.NextPage):
		m.drag(1)
	case key.Matches(msg, m.keys.PrevThumb):
		m.tap(max(active-1, 0))
	case key.Matches(msg, m.keys.NextThumb):
		m.tap(min(active+1, n-1))
	case key.Matches(msg, m.keys.First):
		m.tap(0)
	case key.Matches(msg, m.keys.Last):
		m.tap(n - 1)
	case key.Matches(msg, m.keys.Jump):
		if idx, ok := jumpIndex(msg.String()); ok && idx < n {
			m.tap(idx)
		}
	default:
		return m, nil
	}

	return m, m.animate()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	n := m.gallery.Len()
	if n == 0 || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	detailH := m.detailHeight()
	inDetail := msg.Y < detailH
	inStrip := msg.Y >= detailH && msg.Y < detailH+stripHeight

	switch {
	case inDetail && msg.Button == tea.MouseButtonWheelUp:
		m.drag(-1)
	case inDetail && msg.Button == tea.MouseButtonWheelDown:
		m.drag(1)
	case inStrip && msg.Button == tea.MouseButtonWheelUp:
		m.thumbs.ScrollTo(m.thumbs.Target()-float64(m.itemSize+m.itemSpacing), true)
	case inStrip && msg.Button == tea.MouseButtonWheelDown:
		m.thumbs.ScrollTo(m.thumbs.Target()+float64(m.itemSize+m.itemSpacing), true)
	case inStrip && msg.Button == tea.MouseButtonLeft:
		idx, ok := thumbAt(msg.X, m.thumbs.Column(), n, m.itemSize, m.itemSpacing)
		if !ok {
			return m, nil
		}
		m.tap(idx)
	default:
		return m, nil
	}

	return m, m.animate()
}

// drag moves the detail view by pages as a free swipe would. The index is
// only updated once the view settles.
func (m *Model) drag(pages int) {
	if m.width <= 0 {
		return
	}
	m.detail.ScrollTo(m.detail.Target()+float64(pages*m.width), true)
	m.settlePending = true
}

func (m *Model) tap(idx int) {
	m.settlePending = false
	m.dispatch(gallery.ThumbnailTap{Index: idx})
}

func (m *Model) dispatch(ev gallery.Event) {
	if _, err := m.ctrl.Dispatch(ev); err != nil {
		m.log.Error().Err(err).Msg("scroll controller rejected event")
	}
}

// animate schedules a frame tick unless one is already pending or both
// scrollers are at rest.
func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	if m.detail.Settled() && m.thumbs.Settled() && !m.settlePending {
		return nil
	}
	m.animating = true
	return scheduleFrame(m.frameInterval)
}

func (m *Model) updateExtents() {
	n := m.gallery.Len()
	m.detail.SetExtent(float64(max(n-1, 0) * m.width))
	m.thumbs.SetExtent(float64(stripContentWidth(n, m.itemSize, m.itemSpacing) - m.width))
}

func (m Model) detailHeight() int {
	return max(m.height-stripHeight-lipgloss.Height(m.help.View(m.keys)), 1)
}

// View renders the screen for the current load state.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	state := m.gallery.State()
	switch state.Phase {
	case gallery.PhaseFailed:
		body := lipgloss.JoinVertical(lipgloss.Center,
			styles.FailedStyle.Render(msgFailed),
			styles.MutedStyle.Render(state.Reason),
		)
		return m.placeCenter(body)
	case gallery.PhaseLoaded:
	default:
		return m.placeCenter(m.spinner.View() + " " + styles.StatusStyle.Render(msgLoading))
	}

	if len(state.Sequence) == 0 {
		return m.placeCenter(styles.StatusStyle.Render(msgEmpty))
	}

	active, _ := m.ctrl.ActiveIndex()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderDetail(state.Sequence, m.detail.Column(), m.width, m.detailHeight()),
		renderStrip(len(state.Sequence), active, m.thumbs.Column(), m.width, m.itemSize, m.itemSpacing),
		m.help.View(m.keys),
	)
}

func (m Model) placeCenter(s string) string {
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, s)
}
