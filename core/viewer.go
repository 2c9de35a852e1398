package iconanim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/iconanim/internal/anim"
	animgif "github.com/Gaurav-Gosain/iconanim/internal/gif"
)

// defaultDelay is used for sequences without a frame delay.
const defaultDelay = 100 * time.Millisecond

// ============================================================================
// Messages
// ============================================================================

type frameMsg int
type renderCompleteMsg struct{ frames []string }
type progressMsg animgif.Progress

// ============================================================================
// Model
// ============================================================================

type model struct {
	// Animation data
	Title        string
	Seq          *anim.Sequence
	Frames       []string
	CurrentFrame int

	// Display state
	Width    int
	Height   int
	Paused   bool
	ShowHelp bool
	Ready    bool

	// Progressive loading state
	Loading      bool
	LoadingFrame string
	LoadingRows  int
	TotalRows    int

	program *tea.Program
}

// render draws every frame as halfblock text, streaming the progress of
// the first frame to the program.
func (m *model) render(p *tea.Program) tea.Cmd {
	seq := m.Seq
	r := animgif.Renderer{Width: m.Width, Height: m.Height - 1}
	return func() tea.Msg {
		frames := make([]string, len(seq.Frames))

		progress := make(chan animgif.Progress, 100)
		go func() {
			for u := range progress {
				if p != nil {
					p.Send(progressMsg(u))
				}
			}
		}()

		for i, f := range seq.Frames {
			if i == 0 {
				frames[i] = r.Render(f, progress)
				close(progress)
				continue
			}
			frames[i] = r.Render(f, nil)
		}
		return renderCompleteMsg{frames: frames}
	}
}

// ============================================================================
// Bubbletea Implementation
// ============================================================================

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg.String())

	case frameMsg:
		return m.handleFrameAdvance()

	case progressMsg:
		return m.handleProgress(msg)

	case renderCompleteMsg:
		return m.handleRenderComplete(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	}

	return m, nil
}

// ============================================================================
// Message Handlers
// ============================================================================

func (m *model) handleKeyPress(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "space":
		m.Paused = !m.Paused
		if !m.Paused && m.Ready {
			return m, m.nextFrame()
		}

	case "?":
		m.ShowHelp = !m.ShowHelp

	case "n", "right":
		if len(m.Frames) > 0 {
			m.Paused = true
			m.CurrentFrame = (m.CurrentFrame + 1) % len(m.Frames)
		}

	case "p", "left":
		if len(m.Frames) > 0 {
			m.Paused = true
			m.CurrentFrame = (m.CurrentFrame - 1 + len(m.Frames)) % len(m.Frames)
		}

	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}

	return m, nil
}

func (m *model) handleFrameAdvance() (tea.Model, tea.Cmd) {
	if m.Paused || !m.Ready || len(m.Frames) == 0 {
		return m, nil
	}
	next := m.CurrentFrame + 1
	if next == len(m.Frames) {
		if !m.Seq.Loop {
			m.Paused = true
			return m, nil
		}
		next = 0
	}
	m.CurrentFrame = next
	return m, m.nextFrame()
}

func (m *model) handleProgress(msg progressMsg) (tea.Model, tea.Cmd) {
	if m.Loading && !m.Ready {
		m.LoadingFrame = msg.Partial
		m.LoadingRows = msg.RowsComplete
		m.TotalRows = msg.TotalRows
	}
	return m, nil
}

func (m *model) handleRenderComplete(msg renderCompleteMsg) (tea.Model, tea.Cmd) {
	m.Frames = msg.frames
	m.Ready = true
	m.Loading = false
	if m.CurrentFrame >= len(m.Frames) {
		m.CurrentFrame = 0
	}
	if !m.Paused {
		return m, m.nextFrame()
	}
	return m, nil
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.Width && msg.Height == m.Height && (m.Ready || m.Loading) {
		return m, nil
	}
	m.Width, m.Height = msg.Width, msg.Height

	// A render in flight finishes at the old size; its frames
	// are replaced on the next resize.
	if m.Loading {
		return m, nil
	}

	m.Ready = false
	m.Loading = true
	m.LoadingFrame = ""
	m.LoadingRows = 0
	m.TotalRows = 0
	m.Frames = nil

	return m, m.render(m.program)
}

// nextFrame schedules the next frame after the sequence delay.
func (m *model) nextFrame() tea.Cmd {
	delay := m.Seq.Delay
	if delay <= 0 {
		delay = defaultDelay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return frameMsg(0)
	})
}

// ============================================================================
// View Rendering
// ============================================================================

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpColor   = lipgloss.Color("213")
)

var keyHelp = [][2]string{
	{"Space", "Pause/Resume"},
	{"n / →", "Next frame"},
	{"p / ←", "Previous frame"},
	{"?", "Toggle help"},
	{"q / Esc", "Quit"},
}

func (m model) View() tea.View {
	v := tea.View{AltScreen: true}

	switch {
	case m.Loading && m.LoadingFrame != "":
		status := accentStyle.Render(fmt.Sprintf(" Rendering... %d/%d rows ", m.LoadingRows, m.TotalRows))
		v.Content = m.compose(m.place(m.LoadingFrame, lipgloss.Top), status)
	case !m.Ready || len(m.Frames) == 0:
		v.Content = lipgloss.NewLayer(m.place(accentStyle.Render("Rendering animation..."), lipgloss.Center))
	default:
		var overlays []*lipgloss.Layer
		if m.ShowHelp {
			overlays = append(overlays, m.helpLayer())
		}
		v.Content = m.compose(m.place(m.Frames[m.CurrentFrame], lipgloss.Center), m.renderStatus(), overlays...)
	}
	return v
}

// place positions s in the window, horizontally centered.
func (m model) place(s string, vertical lipgloss.Position) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, vertical, s)
}

// compose stacks the status line and any overlays on top of base.
func (m model) compose(base, status string, overlays ...*lipgloss.Layer) *lipgloss.Layer {
	layers := append([]*lipgloss.Layer{
		lipgloss.NewLayer(base).Z(0),
		lipgloss.NewLayer(status).X(1).Y(0).Z(5),
	}, overlays...)
	return lipgloss.NewLayer(lipgloss.NewCanvas(layers...).Render())
}

func (m model) renderStatus() string {
	icon := "▶"
	if m.Paused {
		icon = "⏸"
	}

	parts := []string{icon}
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	parts = append(parts, fmt.Sprintf("%d/%d", m.CurrentFrame+1, len(m.Frames)))
	if size := m.Seq.Bounds().Size(); size.X > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", size.X, size.Y))
	}
	return dimStyle.Render(" " + strings.Join(parts, " ") + " ")
}

// helpLayer is the keybinding overlay, centered in the window.
func (m model) helpLayer() *lipgloss.Layer {
	help := m.renderHelp()
	return lipgloss.NewLayer(help).
		X(max(0, (m.Width-lipgloss.Width(help))/2)).
		Y(max(0, (m.Height-lipgloss.Height(help))/2)).
		Z(10)
}

func (m model) renderHelp() string {
	lines := []string{lipgloss.NewStyle().Foreground(helpColor).Bold(true).Render("Keybindings"), ""}
	for _, k := range keyHelp {
		lines = append(lines, fmt.Sprintf("%-10s %s", k[0], k[1]))
	}

	delay := m.Seq.Delay
	if delay <= 0 {
		delay = defaultDelay
	}
	playback := "plays once"
	if m.Seq.Loop {
		playback = "loops forever"
	}
	lines = append(lines, "", dimStyle.Render(fmt.Sprintf("%v per frame, %s", delay, playback)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(helpColor).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// ============================================================================
// Entry Points
// ============================================================================

// Preview plays seq in the terminal until the user quits.
func Preview(seq *anim.Sequence, title string) error {
	if seq == nil || len(seq.Frames) == 0 {
		return errors.New("preview: no frames")
	}
	m := model{Title: title, Seq: seq}
	p := tea.NewProgram(&m)
	m.program = p

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// PreviewSource plays an existing GIF from a file path or URL.
func PreviewSource(ctx context.Context, source string) error {
	g, err := animgif.LoadGIF(ctx, source)
	if err != nil {
		return fmt.Errorf("loading GIF: %w", err)
	}
	seq, err := animgif.Flatten(g)
	if err != nil {
		return fmt.Errorf("loading GIF: %w", err)
	}
	return Preview(seq, source)
}
