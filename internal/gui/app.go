package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/particles"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColBox     = rl.NewColor(85, 85, 85, 255)
	ColSource  = rl.NewColor(20, 0, 40, 255)
)

const (
	screenWidth  = 1280
	screenHeight = 720
	targetFPS    = 60
	maxTelemetry = 200
)

type App struct {
	Cfg     *config.Config
	Initial *config.Config
	Name    string

	Sim   *sim.Simulator
	Frame sim.Frame
	Speed *metrics.MeanSpeed

	Orbit  *viz.Camera
	Camera rl.Camera3D

	Running  bool
	InMenu   bool
	Presets  []string
	Selected int
	Params   []config.Param
	ParamSel int
	ShowHUD  bool

	Telemetry []float64
	Font      rl.Font

	seed int64
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "gravsim")
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
}

// NewApp creates an App for cfg. With interactive set, it opens on the preset
// menu instead and cfg is only used until a preset is picked.
func NewApp(cfg *config.Config, name string, seed int64, interactive bool) *App {
	a := &App{
		Presets:   config.ListPresets(),
		Params:    config.Params(),
		InMenu:    interactive,
		Running:   !interactive,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		Font:      rl.GetFontDefault(),
		Camera: rl.NewCamera3D(
			rl.NewVector3(-20, 0, 0),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			75.0,
			rl.CameraPerspective,
		),
		seed: seed,
	}
	a.load(cfg, name)
	return a
}

// RunInteractive opens the window on the preset menu and blocks until it is
// closed.
func RunInteractive(seed int64) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(config.DefaultConfig(), "comet", seed, true)
	app.RunLoop()
}

// Run opens the window on cfg and blocks until it is closed.
func Run(cfg *config.Config, name string, seed int64) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(cfg, name, seed, false)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) load(cfg *config.Config, name string) {
	cfg.Clamp()
	a.Cfg = cfg
	a.Initial = cfg.Clone()
	a.Name = name

	a.Sim = sim.New(cfg.Sim(), a.seed)
	a.Speed = metrics.NewMeanSpeed()
	a.Sim.AddMetric(a.Speed)
	a.Frame = a.Sim.Frame()
	a.Orbit = viz.NewCamera(cfg.Box.Size, targetFPS)
	a.Telemetry = a.Telemetry[:0]
}

// Update handles input and steps the simulation. It returns false when the
// app should quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		a.updateMenu()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return true
	}
	a.handleKeys()
	a.handleMouse()

	if a.Running {
		a.Frame = a.Sim.Step(a.Cfg.Sim())
		a.Telemetry = append(a.Telemetry, a.Speed.Last())
		if len(a.Telemetry) > maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
	}

	if len(a.Frame.Sources) > 0 {
		a.Orbit.Track(a.Frame.Sources[0].Position)
	} else {
		a.Orbit.Track(a.Orbit.Target())
	}
	a.Camera.Position = toVector(a.Orbit.Eye())
	a.Camera.Target = toVector(a.Orbit.Target())
	return true
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected + len(a.Presets) - 1) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		name := a.Presets[a.Selected]
		cfg, err := config.GetPreset(name)
		if err != nil {
			return
		}
		a.load(cfg, name)
		a.InMenu = false
		a.Running = true
	}
}

func (a *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		*a.Cfg = *a.Initial.Clone()
		a.Sim.Reset(a.Cfg.Sim())
		a.Frame = a.Sim.Frame()
		a.Telemetry = a.Telemetry[:0]
	case rl.IsKeyPressed(rl.KeyTab):
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.ParamSel = (a.ParamSel + len(a.Params) - 1) % len(a.Params)
		} else {
			a.ParamSel = (a.ParamSel + 1) % len(a.Params)
		}
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressedRepeat(rl.KeyUp):
		a.Params[a.ParamSel].Nudge(a.Cfg, 1)
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressedRepeat(rl.KeyDown):
		a.Params[a.ParamSel].Nudge(a.Cfg, -1)
	case rl.IsKeyPressed(rl.KeyF):
		a.Orbit.Follow = !a.Orbit.Follow
	case rl.IsKeyPressed(rl.KeyC):
		a.Cfg.Particles.VelocityColor = !a.Cfg.Particles.VelocityColor
	case rl.IsKeyPressed(rl.KeyM):
		if a.Cfg.Mode() == particles.Emitted {
			a.Cfg.Scene.Mode = particles.Static.String()
		} else {
			a.Cfg.Scene.Mode = particles.Emitted.String()
		}
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.Orbit.ZoomIn()
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.Orbit.ZoomOut()
	}
}

func (a *App) handleMouse() {
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.Orbit.ZoomIn()
	} else if wheel < 0 {
		a.Orbit.ZoomOut()
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p := rl.GetMousePosition()
		a.Orbit.LookFrom(int(p.X), int(p.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawScene()
		if a.ShowHUD {
			a.DrawHUD()
		}
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("gravsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 140, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	w := rl.GetScreenWidth()
	a.drawText(status, w-130, 30, 16, col)

	y := 80
	a.drawText(fmt.Sprintf("%-14s %s", "mode", a.Frame.Mode), 30, y, 14, ColText)
	a.drawText(fmt.Sprintf("%-14s %d", "particles", a.Frame.Len()), 30, y+18, 14, ColText)
	a.drawText(fmt.Sprintf("%-14s %d", "sources", len(a.Frame.Sources)), 30, y+36, 14, ColText)
	a.drawText(fmt.Sprintf("%-14s x%.2f", "zoom", a.Orbit.Zoom), 30, y+54, 14, ColText)

	y += 90
	for i, p := range a.Params {
		line := fmt.Sprintf("%-16s %g", p.Label, p.Get(a.Cfg))
		if i == a.ParamSel {
			a.drawText("> "+line, 30, y, 16, ColSelect)
		} else {
			a.drawText("  "+line, 30, y, 16, ColText)
		}
		y += 22
	}

	a.DrawTelemetry()

	h := rl.GetScreenHeight()
	a.drawText("[SPACE] PAUSE  [R] RESET  [TAB] PARAM  [F] FOLLOW  [M] MODE  [ESC] MENU  [Q] QUIT", w-760, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("speed %.3f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("gravsim", 50, 50, 40, ColSelect)
	a.drawText("Select Scene", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", rl.GetScreenWidth()-430, rl.GetScreenHeight()-40, 14, ColTextDim)
}
