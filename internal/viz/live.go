package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/engine"
)

const (
	historyCapacity = 240
	headerLines     = 2
	footerLines     = 1
	defaultCols     = 60
	defaultRows     = 20
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configures the terminal host.
type Options struct {
	Theme         string
	ReducedMotion bool
	Logger        *slog.Logger
}

// Model hosts an engine inside a Bubble Tea program. The tea tick pumps the engine's frame
// loop; resize and mouse messages are forwarded through its event bus.
type Model struct {
	eng     *engine.Engine
	loop    *engine.ManualLoop
	bus     *engine.EventBus
	motion  *engine.MotionSwitch
	surface *Surface

	theme    Theme
	styles   styles
	start    time.Time
	history  []float64
	showHelp bool
}

// NewModel builds the engine for cfg on a braille surface.
func NewModel(cfg *config.Config, opts Options) (Model, error) {
	loop := engine.NewManualLoop()
	bus := engine.NewEventBus()
	motion := engine.NewMotionSwitch(opts.ReducedMotion)
	surface := NewSurface(defaultCols, defaultRows)

	eng, err := engine.New(engine.Host{
		Surface: surface,
		Loop:    loop,
		Motion:  motion,
		Events:  bus,
		Logger:  opts.Logger,
	}, cfg)
	if err != nil {
		return Model{}, fmt.Errorf("start engine: %w", err)
	}

	theme := GetTheme(opts.Theme)
	return Model{
		eng:     eng,
		loop:    loop,
		bus:     bus,
		motion:  motion,
		surface: surface,
		theme:   theme,
		styles:  newStyles(theme),
		start:   time.Now(),
		history: make([]float64, 0, historyCapacity),
	}, nil
}

// Engine exposes the hosted engine.
func (m Model) Engine() *engine.Engine { return m.eng }

func (m Model) Init() tea.Cmd {
	m.eng.OnVisible()
	return tick()
}

// Update forwards input to the engine and pumps its frame loop on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.SetCells(msg.Width-panelWidth, msg.Height-headerLines-footerLines)
		m.bus.Resize()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if x, y, ok := m.cellToSub(msg.X, msg.Y); ok {
				m.bus.Click(x, y)
			}
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.eng.Destroy()
			return m, tea.Quit
		case " ":
			if m.eng.State() == engine.Running {
				m.eng.Stop()
			} else {
				m.eng.Start()
			}
		case "r":
			m.eng.Reset()
			m.history = m.history[:0]
		case "+", "=", "up", "k":
			m.eng.SetParameter(m.eng.Parameter() + m.paramStep())
		case "-", "_", "down", "j":
			m.eng.SetParameter(m.eng.Parameter() - m.paramStep())
		case "m":
			m.motion.Set(!m.motion.ReducedMotion())
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.loop.Pump(time.Since(m.start)) > 0 {
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

// cellToSub maps a terminal cell to the centre of its braille sub-pixel block.
func (m Model) cellToSub(col, row int) (float64, float64, bool) {
	c := m.surface.Canvas()
	if c == nil || m.showHelp {
		return 0, 0, false
	}
	row -= headerLines
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return float64(col*2) + 1, float64(row*4) + 2, true
}

func (m Model) paramStep() float64 {
	if m.eng.Variant().Name() == "ranking" {
		return 0.25
	}
	return 0.05
}

// metric is the value plotted in the side panel: live tracers for the map, elimination
// progress for the ranking.
func (m Model) metric() (float64, string) {
	switch v := m.eng.Variant().(type) {
	case *engine.MapVariant:
		return float64(len(v.Population().Tracers())), "Tracers"
	case *engine.RankingVariant:
		return 100 * v.Animation().Elimination, "Eliminated %"
	}
	return 0, ""
}

func (m *Model) record() {
	v, _ := m.metric()
	m.history = append(m.history, v)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) status() string {
	switch {
	case m.eng.Static():
		return m.styles.static.Render("STATIC")
	case m.eng.State() == engine.Running:
		return m.styles.running.Render("RUNNING")
	default:
		return m.styles.paused.Render(strings.ToUpper(m.eng.State().String()))
	}
}

func (m Model) View() string {
	var canvasView string
	if c := m.surface.Canvas(); c != nil {
		canvasView = strings.TrimSuffix(c.String(), "\n")
	}

	var s strings.Builder
	cfg := m.eng.Config()
	s.WriteString(m.status() + "\n\n")
	row := func(k, v string) {
		s.WriteString(m.styles.label.Render(k) + m.styles.value.Render(v) + "\n")
	}
	switch v := m.eng.Variant().(type) {
	case *engine.MapVariant:
		row("K", fmt.Sprintf("%.3f", v.Parameter()))
		row("Entities", fmt.Sprintf("%d", len(v.Population().Primary())))
		row("Tracers", fmt.Sprintf("%d/%d", len(v.Population().Tracers()), cfg.MaxTracers))
	case *engine.RankingVariant:
		a := v.Animation()
		row("Rank", fmt.Sprintf("%d/%d", cfg.Ranking.Rank, cfg.Ranking.Total))
		row("Phase", a.Phase.String())
		row("Speed", fmt.Sprintf("%.2fx", a.Speed))
		s.WriteString(m.styles.ProgressBar(a.Elimination, panelWidth-6) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.eng.Frame()))

	if _, caption := m.metric(); len(m.history) > 1 && caption != "" {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption(caption))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}
	s.WriteString(m.styles.help.Render("SP:Run R:Reset Q:Quit\n+/-:Param M:Motion T:Theme\nClick:Inject ?:Help"))

	header := m.styles.header.Render(GradientText(strings.ToUpper("phaseviz · "+m.eng.Variant().Name()), m.theme.Title, m.theme.Accent))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
	if m.showHelp {
		return header + "\n" + helpOverlay + "\n" + main
	}
	return header + "\n" + main
}

const helpOverlay = `
  Space   start / stop
  R       reset population or animation
  + / -   adjust K (map) or speed (ranking)
  M       toggle reduced motion
  T       cycle themes
  Click   inject a tracer or highlight a dot
  Q       quit
`
