package viz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/export"
	"github.com/san-kum/dblpend/internal/metrics"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/sim"
)

const (
	defaultWidth  = 60
	defaultHeight = 24
	frameInterval = time.Second / 60
	energyHistory = 240

	// TrailCutoff is the lowest segment weight still drawn. Braille dots
	// have no alpha, so the fade is shown by dropping the oldest segments.
	TrailCutoff = 0.25
)

var paramKeys = []string{"g", "m", "l"}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live terminal view. Every tick advances the pendulum by the
// wall time since the previous tick, clamped by the pendulum's MaxStep.
type Model struct {
	p        *sim.Pendulum
	params   dynamo.Configurable
	rng      *rand.Rand
	trail    *Canvas
	body     *Canvas
	theme    int
	styles   styles
	paused   bool
	last     time.Time
	e0       float64
	energies []float64
	flips    *metrics.Flips
	selected int
	recorder *Recorder
	status   string
}

func NewModel(p *sim.Pendulum, rng *rand.Rand, theme string) Model {
	idx := ThemeIndex(theme)
	m := Model{
		p:        p,
		params:   p,
		rng:      rng,
		trail:    NewCanvas(defaultWidth, defaultHeight),
		body:     NewCanvas(defaultWidth, defaultHeight),
		theme:    idx,
		styles:   newStyles(Themes[idx]),
		e0:       p.Energy(),
		energies: make([]float64, 0, energyHistory),
		flips:    metrics.NewFlips(1),
	}
	m.flips.Observe(physics.ToVector(p.State()), nil, p.Time())
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.restart(physics.NewState(m.rng))
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(1 / 1.05)
		case "g":
			m.toggleRecording()
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-panelWidth-8, 20)
		h := max(msg.Height-4, 10)
		m.trail = NewCanvas(w, h)
		m.body = NewCanvas(w, h)
	case TickMsg:
		now := time.Time(msg)
		if !m.paused && !m.last.IsZero() {
			m.step(now.Sub(m.last))
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

func (m *Model) step(elapsed time.Duration) {
	if !m.p.Tick(elapsed) {
		return
	}
	if !m.p.State().IsFinite() {
		dynamo.Logger().Warn("state diverged, restarting", "t", m.p.Time())
		m.restart(physics.NewState(m.rng))
		m.status = "diverged, restarted"
		return
	}
	if len(m.energies) == energyHistory {
		copy(m.energies, m.energies[1:])
		m.energies = m.energies[:energyHistory-1]
	}
	m.energies = append(m.energies, m.p.Energy())
	m.flips.Observe(physics.ToVector(m.p.State()), nil, m.p.Time())

	if m.recorder != nil {
		if err := m.recorder.Capture(m.p); err != nil {
			dynamo.Logger().Warn("frame capture failed", "err", err)
		}
	}
}

func (m *Model) restart(s physics.State) {
	m.p.Reset(s)
	m.e0 = m.p.Energy()
	m.energies = m.energies[:0]
	m.flips.Reset()
	m.flips.Observe(physics.ToVector(s), nil, 0)
}

func (m *Model) adjustParam(factor float64) {
	key := paramKeys[m.selected]
	val := m.params.GetParams()[key] * factor
	if err := m.params.SetParam(key, val); err != nil {
		m.status = err.Error()
		return
	}
	m.e0 = m.p.Energy()
	m.energies = m.energies[:0]
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(240)
		m.status = "recording"
		return
	}
	path := fmt.Sprintf("dblpend_%d.gif", time.Now().Unix())
	switch err := m.recorder.Save(path); {
	case errors.Is(err, ErrNoFrames):
		m.status = "nothing recorded"
	case err != nil:
		m.status = "save failed: " + err.Error()
	default:
		m.status = fmt.Sprintf("saved %s (%d frames)", path, m.recorder.Len())
	}
	m.recorder = nil
}

// draw rasterizes the trail and the rods into their canvases. Both share
// the viewport used by the image exporters, in dot coordinates.
func (m *Model) draw() {
	m.trail.Clear()
	m.body.Clear()
	vp := export.NewViewport(m.trail.DotsX(), m.trail.DotsY(), m.p.Constants().L)

	for seg := range m.p.Trail().Segments() {
		if seg.Weight < TrailCutoff {
			break
		}
		m.trail.Line(vp.Project(seg.Newer), vp.Project(seg.Older))
	}

	upper, lower := m.p.Positions()
	u, l := vp.Project(upper), vp.Project(lower)
	m.body.Line(vp.Center, u)
	m.body.Line(u, l)
	r := math.Max(1, vp.Short*export.MassFraction/2)
	m.body.Disc(u, r)
	m.body.Disc(l, r)
	m.body.Set(round(vp.Center.X), round(vp.Center.Y))
}

// compose overlays the body canvas on the trail canvas, coloring each cell
// by the layer that owns it.
func (m *Model) compose() string {
	var b strings.Builder
	w := m.trail.Width
	for row := 0; row < m.trail.Height; row++ {
		var run strings.Builder
		runBody := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runBody {
				b.WriteString(m.styles.rod.Render(run.String()))
			} else {
				b.WriteString(m.styles.trail.Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < w; col++ {
			bodyCell := m.body.cells[row*w+col]
			cell := m.trail.cells[row*w+col] | bodyCell
			isBody := bodyCell != 0
			if isBody != runBody {
				flush()
				runBody = isBody
			}
			run.WriteRune(rune(brailleBase + int(cell)))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) drift() float64 {
	if m.e0 == 0 {
		return math.Abs(m.p.Energy())
	}
	return math.Abs((m.p.Energy() - m.e0) / m.e0)
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render("DOUBLE PENDULUM") + "\n")
	if m.paused {
		s.WriteString(st.paused.Render("PAUSED"))
	} else {
		s.WriteString(st.running.Render("RUNNING"))
	}
	if m.recorder != nil {
		s.WriteString(st.paused.Render(fmt.Sprintf("  REC %d", m.recorder.Len())))
	}
	s.WriteString("\n")

	if len(m.energies) > 1 {
		chart := asciigraph.Plot(m.energies, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption("energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.p.Time()))
	row("Energy", fmt.Sprintf("%.6f", m.p.Energy()))
	row("Drift", fmt.Sprintf("%.2e", m.drift()))
	row("Flips", fmt.Sprintf("%.0f", m.flips.Value()))
	row("Trail", fmt.Sprintf("%d/%d", m.p.Trail().Len(), m.p.Trail().Cap()))
	row("Theme", Themes[m.theme].Name)

	s.WriteString("\n")
	vals := m.params.GetParams()
	for i, k := range paramKeys {
		line := fmt.Sprintf("%s = %.3f", k, vals[k])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SPC:pause R:new T:theme G:rec\nTAB:param ↑↓:tune Q:quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.compose()), st.panel.Render(s.String()))
}
