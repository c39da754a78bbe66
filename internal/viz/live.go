package viz

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 42
	historyCapacity = 120
	lookStep        = 0.1
)

type TickMsg time.Time

// Model drives a simulator from bubbletea ticks and renders it on a braille
// canvas. Key and mouse handlers only edit the config and camera; the
// simulator sees those edits on the next tick.
type Model struct {
	cfg     *config.Config
	initial *config.Config
	name    string

	sim    *sim.Simulator
	frame  sim.Frame
	camera *Camera
	scene  Scene
	canvas *Canvas

	width, height int
	fps           int
	running       bool
	showHelp      bool

	params   []config.Param
	selected int

	speed        *metrics.MeanSpeed
	live         *metrics.LiveFraction
	speedHistory []float64

	lastTick time.Time
	measured float64
}

// NewModel builds a live view over cfg. The config is clamped to the
// interactive ranges first.
func NewModel(cfg *config.Config, name string, seed int64, fps int) Model {
	cfg.Clamp()
	if fps < 1 {
		fps = 30
	}

	s := sim.New(cfg.Sim(), seed)
	speed, live := metrics.NewMeanSpeed(), metrics.NewLiveFraction()
	s.AddMetric(speed)
	s.AddMetric(live)

	m := Model{
		cfg:          cfg,
		initial:      cfg.Clone(),
		name:         name,
		sim:          s,
		frame:        s.Frame(),
		camera:       NewCamera(cfg.Box.Size, fps),
		scene:        Scene{Theme: ThemeNebula, MaxPoints: 50000},
		width:        width + statsWidth,
		height:       height,
		fps:          fps,
		running:      true,
		params:       config.Params(),
		speed:        speed,
		live:         live,
		speedHistory: make([]float64, 0, historyCapacity),
	}
	m.canvas = NewCanvas(m.canvasSize())
	return m
}

func (m Model) canvasSize() (int, int) {
	return m.width - statsWidth - 4, m.height - 1
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = NewCanvas(m.canvasSize())
		log.Printf("resize %dx%d, canvas %dx%d", m.width, m.height, m.canvas.Width, m.canvas.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "tab":
		m.selected = (m.selected + 1) % len(m.params)
	case "shift+tab":
		m.selected = (m.selected + len(m.params) - 1) % len(m.params)
	case "up", "k":
		m.params[m.selected].Nudge(m.cfg, 1)
	case "down", "j":
		m.params[m.selected].Nudge(m.cfg, -1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "a":
		m.camera.Look(m.camera.Lat-lookStep, m.camera.Lon)
	case "d":
		m.camera.Look(m.camera.Lat+lookStep, m.camera.Lon)
	case "w":
		m.camera.Look(m.camera.Lat, m.camera.Lon-lookStep)
	case "s":
		m.camera.Look(m.camera.Lat, m.camera.Lon+lookStep)
	case "f":
		m.camera.Follow = !m.camera.Follow
	case "c":
		m.cfg.Particles.VelocityColor = !m.cfg.Particles.VelocityColor
	case "m":
		m.toggleMode()
	case "t":
		m.scene.Theme = NextTheme(m.scene.Theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.camera.ZoomIn()
		return
	case tea.MouseButtonWheelDown:
		m.camera.ZoomOut()
		return
	}
	if msg.Action == tea.MouseActionMotion {
		w, h := m.canvasSize()
		m.camera.LookFrom(msg.X, msg.Y, w, h)
	}
}

func (m *Model) toggleMode() {
	if m.cfg.Mode() == particles.Static {
		m.cfg.Scene.Mode = particles.Emitted.String()
	} else {
		m.cfg.Scene.Mode = particles.Static.String()
	}
	log.Printf("mode %s", m.cfg.Scene.Mode)
}

// reset restores the starting config and reseeds the simulation.
func (m *Model) reset() {
	*m.cfg = *m.initial.Clone()
	m.sim.Reset(m.cfg.Sim())
	m.frame = m.sim.Frame()
	m.speedHistory = m.speedHistory[:0]
	log.Printf("reset to %s", m.name)
}

// step advances the simulation one frame and redraws the canvas.
func (m *Model) step(now time.Time) {
	if !m.lastTick.IsZero() {
		if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
			m.measured = 1 / dt
		}
	}
	m.lastTick = now

	if m.running {
		m.frame = m.sim.Step(m.cfg.Sim())
		m.speedHistory = append(m.speedHistory, m.speed.Last())
		if len(m.speedHistory) > historyCapacity {
			m.speedHistory = m.speedHistory[1:]
		}
	}

	if len(m.frame.Sources) > 0 {
		m.camera.Track(m.frame.Sources[0].Position)
	} else {
		m.camera.Track(m.camera.Target())
	}
	m.scene.Draw(m.canvas, m.frame, m.camera)
}

// View renders the TUI interface.
func (m Model) View() string {
	th := m.scene.Theme
	var s strings.Builder

	s.WriteString(GradientText("GRAVSIM", colorful.Color{R: 0, G: 1, B: 1}, colorful.Color{R: 1, G: 0, B: 1}))
	s.WriteString("  " + lipgloss.NewStyle().Foreground(th.Muted).Render(m.name) + "\n\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Mode", m.frame.Mode.String())
	row("Frame", fmt.Sprintf("%d", m.frame.Index))
	row("Particles", fmt.Sprintf("%d / %d", int(m.live.Value()*float64(m.frame.Len())+0.5), m.frame.Len()))
	row("Sources", fmt.Sprintf("%d", len(m.frame.Sources)))
	row("FPS", fmt.Sprintf("%.1f", m.measured))
	row("Speed", fmt.Sprintf("%.3f", m.speed.Last()))
	follow := "off"
	if m.camera.Follow {
		follow = "comet"
	}
	row("Camera", fmt.Sprintf("x%.2f %+.1f %+.1f %s", m.camera.Zoom, m.camera.Lat, m.camera.Lon, follow))

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("mean speed"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(statsWidth-6, th.Muted) + "\n")
	active := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	for i, p := range m.params {
		v := p.Get(m.cfg)
		frac := 0.0
		if p.Max > p.Min {
			frac = (v - p.Min) / (p.Max - p.Min)
		}
		line := fmt.Sprintf("%-16s %s %g", p.Label, ProgressBar(frac, 8), v)
		if i == m.selected {
			s.WriteString(active.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\nTab:Param ↑↓:Tune +/-:Zoom F:Follow"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset scene              ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  +/-      - Zoom in/out (or wheel)   ║
║  WASD     - Look around (or mouse)   ║
║  F        - Follow the comet         ║
║  C        - Toggle velocity color    ║
║  M        - Toggle static/emitted    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the live view on the alternate screen. When logPath is set, log
// output goes to that file since the terminal is taken.
func Run(cfg *config.Config, name string, seed int64, fps int, logPath string) error {
	return run(NewModel(cfg, name, seed, fps), logPath)
}

func run(model tea.Model, logPath string) error {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "gravsim")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
