// Package tui is a terminal front end for the carousel. It drives the same
// animator as the windowed viewer and prints each slot's pose instead of
// drawing it.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/carousel3d/internal/assets"
	"github.com/Faultbox/carousel3d/internal/carousel"
)

// FrameMsg advances the animation by one frame.
type FrameMsg time.Time

// Entry describes one loaded model.
type Entry struct {
	Name      string
	Vertices  int
	Triangles int
}

// EntriesFromAssets summarises loaded assets in order.
func EntriesFromAssets(loaded []assets.Asset) []Entry {
	out := make([]Entry, 0, len(loaded))
	for _, a := range loaded {
		e := Entry{Name: a.Path}
		if a.Mesh != nil {
			e.Vertices = len(a.Mesh.Vertices)
			e.Triangles = a.Mesh.TriangleCount()
		}
		out = append(out, e)
	}
	return out
}

type slotView struct {
	pose    carousel.Pose
	visible bool
}

// Model is the bubbletea model. It is also the animator's Display.
type Model struct {
	animator *carousel.Animator
	entries  []Entry
	slots    []slotView
	failed   int

	interval time.Duration
	frames   int
	width    int
	quitting bool
}

// New builds a model over entries. fps sets the frame tick rate.
func New(entries []Entry, failed int, duration int, strategy carousel.Strategy, fps int, opts ...carousel.Option) (*Model, error) {
	if fps <= 0 {
		fps = 60
	}
	m := &Model{
		entries:  entries,
		slots:    make([]slotView, len(entries)),
		failed:   failed,
		interval: time.Second / time.Duration(fps),
		width:    80,
	}

	opts = append(opts, carousel.WithDisplay(m))
	a, err := carousel.New(duration, strategy, opts...)
	if err != nil {
		return nil, err
	}
	m.animator = a

	slots := make([]*carousel.Slot, len(entries))
	for i, e := range entries {
		slots[i] = &carousel.Slot{Name: e.Name}
	}
	a.SetSlots(slots)
	return m, nil
}

// SetSlot implements carousel.Display.
func (m *Model) SetSlot(index int, pose carousel.Pose, visible bool) {
	if index >= 0 && index < len(m.slots) {
		m.slots[index] = slotView{pose: pose, visible: visible}
	}
}

// Animator returns the driven animator.
func (m *Model) Animator() *carousel.Animator {
	return m.animator
}

// Frames returns the number of frame ticks handled.
func (m *Model) Frames() int {
	return m.frames
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.animator.AdvanceFrame()
		m.frames++
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "a":
			m.animator.RequestTransition(carousel.Prev)
		case "right", "l", "d":
			m.animator.RequestTransition(carousel.Next)
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	st := m.animator.State()

	b.WriteString(titleStyle.Render("carousel3d"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(hiddenStyle.Render("no models loaded"))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		b.WriteString(m.renderEntry(i, e, st))
		b.WriteString("\n")
	}

	if m.failed > 0 {
		b.WriteString(hiddenStyle.Render(fmt.Sprintf("%d model(s) failed to load", m.failed)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus(st))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/h prev  →/l next  q quit"))

	return boxStyle.Render(b.String())
}

func (m *Model) renderEntry(i int, e Entry, st carousel.State) string {
	marker := "  "
	style := hiddenStyle
	sv := m.slots[i]
	if sv.visible {
		marker = "● "
		style = visibleStyle
	}
	if i == st.CurrentSlide {
		style = currentStyle
	}

	line := fmt.Sprintf("%s%d. %-24s %6d tris", marker, i+1, shortName(e.Name), e.Triangles)
	if sv.visible && !sv.pose.IsIdentity() {
		o, r := sv.pose.Offset, sv.pose.Rotation
		line += fmt.Sprintf("  pos(%5.2f %5.2f %5.2f) rotY %5.2f", o.X, o.Y, o.Z, r.Y)
	}
	return style.Render(line)
}

func (m *Model) renderStatus(st carousel.State) string {
	if len(m.entries) == 0 {
		return ""
	}
	status := fmt.Sprintf("slide %d / %d", st.CurrentSlide+1, len(m.entries))
	if !st.Transitioning {
		return status + "  idle"
	}

	barWidth := 30
	if m.width > 0 && m.width < 60 {
		barWidth = m.width / 3
	}
	return fmt.Sprintf("%s  %s → %d  %s", status, st.Direction,
		m.animator.NextIndex(st.Direction)+1, progressBar(m.animator.Fraction(), barWidth))
}

// progressBar renders a fixed-width bar for f in [0, 1].
func progressBar(f float64, width int) string {
	if width < 1 {
		width = 1
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	filled := int(f * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// shortName turns models/model_3/scene.gltf into model_3/scene.gltf.
func shortName(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	base := filepath.Base(path)
	if dir == "." || dir == string(filepath.Separator) {
		return base
	}
	return dir + "/" + base
}
