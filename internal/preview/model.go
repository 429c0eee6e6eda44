// Package preview is an interactive terminal scrubber for timeline documents.
// Arrow keys move progress through a compiled timeline; each scalar track is
// drawn as a bar, rect tracks as text, and boundary firings are listed as
// they happen.
package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/scrolltween"
	"github.com/phanxgames/scrolltween/timeline"
)

// maxFirings is how many recent boundary firings the model keeps.
const maxFirings = 5

// Options configures a Model.
type Options struct {
	// Step is the progress moved per key press. 0 means a tenth of the
	// viewport width.
	Step float64
	// BarWidth is the width of track bars in cells. Defaults to 40.
	BarWidth int
	// Logf receives compile warnings.
	Logf func(format string, args ...any)
}

// firingLog records boundary firings. Models are copied by value, so the log
// lives behind a pointer shared with the compile-time callback.
type firingLog struct {
	entries []string
}

func (l *firingLog) record(b timeline.BoundarySpec, dir scrolltween.Direction, at float64) {
	l.entries = append(l.entries, fmt.Sprintf("%s %s at %g: %s", b.Name, dir, at, b.Action))
	if len(l.entries) > maxFirings {
		l.entries = l.entries[len(l.entries)-maxFirings:]
	}
}

// Model is the bubbletea model for the scrubber.
type Model struct {
	compiled *timeline.Compiled
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	fired    *firingLog

	step       float64
	page       float64
	start, end float64
	barWidth   int
	labelWidth int
}

// New compiles doc onto a fresh controller and returns a model positioned
// at progress 0.
func New(doc *timeline.Document, opts Options) (Model, error) {
	fired := &firingLog{}
	c := scrolltween.NewController()
	cp, err := timeline.Compile(c, doc, timeline.Bindings{
		OnBoundary: func(b timeline.BoundarySpec, dir scrolltween.Direction) {
			fired.record(b, dir, b.At.Resolve(doc.Viewport))
		},
		Logf: opts.Logf,
	})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		compiled: cp,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		fired:    fired,
		step:     opts.Step,
		page:     doc.Viewport.Width,
		barWidth: opts.BarWidth,
	}
	if m.step <= 0 {
		m.step = doc.Viewport.Width / 10
	}
	if m.barWidth <= 0 {
		m.barWidth = 40
	}
	m.start, m.end = cp.Span()
	m.start = math.Min(m.start, 0)
	for _, tr := range doc.Tracks {
		m.labelWidth = max(m.labelWidth, lipgloss.Width(tr.Name))
	}
	m.bar = newBar(m.barWidth)
	return m, nil
}

func newBar(width int) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Progress returns the controller's current progress.
func (m Model) Progress() float64 {
	return m.compiled.Controller.Progress()
}

// Firings returns the most recent boundary firings, oldest first.
func (m Model) Firings() []string {
	return append([]string(nil), m.fired.entries...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		// name, gap, bar, gap, value
		if w := msg.Width - m.labelWidth - 20; w > 0 && w < m.barWidth {
			m.bar = newBar(w)
		} else {
			m.bar = newBar(m.barWidth)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.Progress()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		p -= m.step
	case key.Matches(msg, m.keys.Forward):
		p += m.step
	case key.Matches(msg, m.keys.PageBack):
		p -= m.page
	case key.Matches(msg, m.keys.PageFwd):
		p += m.page
	case key.Matches(msg, m.keys.Start):
		p = m.start
	case key.Matches(msg, m.keys.End):
		p = m.end
	default:
		return m, nil
	}
	m.compiled.Controller.UpdateProgress(math.Max(m.start, math.Min(m.end, p)))
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	doc := m.compiled.Document

	b.WriteString(titleStyle.Render(doc.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  progress %g / %g", m.Progress(), m.end)))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.fraction(m.Progress())))
	b.WriteString("\n\n")

	for _, s := range m.compiled.Sample(m.Progress()) {
		label := labelStyle.Render(fmt.Sprintf("%-*s", m.labelWidth, s.Track))
		if s.Kind == timeline.ValueScalar {
			fmt.Fprintf(&b, "%s  %s  %s\n", label, m.bar.ViewAs(clamp01(s.Scalar)), s)
		} else {
			fmt.Fprintf(&b, "%s  %s\n", label, s)
		}
	}

	if len(doc.Boundaries) > 0 {
		b.WriteString("\n")
		for _, bs := range doc.Boundaries {
			at := bs.At.Resolve(doc.Viewport)
			mark := dimStyle.Render("·")
			if m.Progress() >= at {
				mark = firedStyle.Render("●")
			}
			fmt.Fprintf(&b, "%s %s at %g (%s): %s\n", mark, bs.Name, at, directionOf(bs), bs.Action)
		}
	}

	if entries := m.fired.entries; len(entries) > 0 {
		var fired strings.Builder
		for i, e := range entries {
			if i > 0 {
				fired.WriteString("\n")
			}
			fired.WriteString(firedStyle.Render(e))
		}
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(fired.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// fraction maps p into [0, 1] over the scrub range.
func (m Model) fraction(p float64) float64 {
	if m.end <= m.start {
		return 0
	}
	return clamp01((p - m.start) / (m.end - m.start))
}

func directionOf(b timeline.BoundarySpec) string {
	if b.Direction == "" {
		return timeline.DirectionForward
	}
	return b.Direction
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Run starts an interactive program for m on the given terminal streams.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
