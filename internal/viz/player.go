package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	canvasCols = 80
	canvasRows = 24
	maxSpeed   = 64
	tickRate   = time.Second / 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Player replays a recorded history in the terminal.
type Player struct {
	name       string
	h          *dynamo.History
	vp         render.Viewport
	opts       render.Options
	canvas     *Canvas
	separation []float64
	step       int
	speed      int
	running    bool
	theme      int
}

// NewPlayer fits the view to h the same way the GIF renderer does, with the
// canvas dots standing in for pixels.
func NewPlayer(name string, h *dynamo.History, opts render.Options) (Player, error) {
	if h == nil {
		return Player{}, dynamo.ErrEmptyHistory
	}
	if err := h.Validate(); err != nil {
		return Player{}, err
	}

	canvas := NewCanvas(canvasCols, canvasRows)
	opts.Width, opts.Height = canvas.Dots()
	vp, err := render.NewViewport(h, opts)
	if err != nil {
		return Player{}, err
	}

	return Player{
		name:       name,
		h:          h,
		vp:         vp,
		opts:       opts,
		canvas:     canvas,
		separation: separations(h),
		speed:      1,
		running:    true,
	}, nil
}

// Play runs p full screen until the user quits.
func Play(p Player) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}

func separations(h *dynamo.History) []float64 {
	out := make([]float64, len(h.Positions[0]))
	for k := range out {
		d := math.Inf(1)
		for i := 0; i < dynamo.NumBodies; i++ {
			for j := i + 1; j < dynamo.NumBodies; j++ {
				d = math.Min(d, r2.Norm(r2.Sub(h.Positions[j][k], h.Positions[i][k])))
			}
		}
		out[k] = d
	}
	return out
}

func (p Player) Step() int     { return p.step }
func (p Player) Speed() int    { return p.speed }
func (p Player) Running() bool { return p.running }
func (p Player) Theme() Theme  { return Themes[p.theme] }

func (p Player) Init() tea.Cmd { return tick() }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			if p.step >= p.h.Steps() {
				p.step = 0
			}
			p.running = !p.running
		case "[":
			p.running = false
			p.seek(p.step - p.speed)
		case "]":
			p.running = false
			p.seek(p.step + p.speed)
		case "+", "=":
			p.speed = min(p.speed*2, maxSpeed)
		case "-", "_":
			p.speed = max(p.speed/2, 1)
		case "r":
			p.step = 0
			p.running = true
		case "t":
			p.theme = (p.theme + 1) % len(Themes)
		}
	case TickMsg:
		if p.running {
			p.seek(p.step + p.speed)
			if p.step == p.h.Steps() {
				p.running = false
			}
		}
		return p, tick()
	}
	return p, nil
}

func (p *Player) seek(k int) {
	p.step = max(0, min(k, p.h.Steps()))
}

func (p *Player) project(v r2.Vec) (int, int) {
	x, y := p.vp.Project(v)
	return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
}

func (p *Player) draw() {
	p.canvas.Clear()
	k := p.step

	if p.opts.Trail > 0 {
		start := max(0, k-p.opts.Trail)
		for i := 0; i < dynamo.NumBodies; i++ {
			x0, y0 := p.project(p.h.Positions[i][start])
			for j := start + 1; j <= k; j++ {
				x1, y1 := p.project(p.h.Positions[i][j])
				p.canvas.Line(x0, y0, x1, y1, i)
				x0, y0 = x1, y1
			}
		}
	}

	pos, forces := p.h.Frame(k)
	cols, _ := p.canvas.Dots()
	scale := p.opts.ArrowScale * float64(cols) / float64(render.DefaultOptions().Width)
	for i := 0; i < dynamo.NumBodies; i++ {
		x, y := p.project(pos[i])
		p.canvas.Dot(x, y, 1, i)
		if k < p.h.Steps() && scale > 0 {
			d := r2.Scale(scale, render.ClampForce(forces[i], p.opts.MaxArrow))
			p.canvas.Line(x, y, x+int(math.Round(d.X)), y-int(math.Round(d.Y)), i)
		}
	}
}

func (p Player) status() string {
	switch {
	case p.step >= p.h.Steps():
		return "END"
	case p.running:
		return "PLAYING"
	default:
		return "PAUSED"
	}
}

func (p Player) View() string {
	theme := Themes[p.theme]
	p.draw()
	canvasView := canvasStyle.Render(p.canvas.Styled(theme.bodyStyles()))

	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).MarginBottom(1)
	value := lipgloss.NewStyle().Foreground(theme.Text)
	help := lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(1)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(p.name)) + "\n")
	s.WriteString(p.status() + "\n\n")

	if p.step > 0 {
		chart := asciigraph.Plot(p.separation[:p.step+1], asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Min separation"))
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + value.Render(fmt.Sprintf("%.2f", p.h.Time(p.step))) + "\n")
	s.WriteString(labelStyle.Render("Step") + value.Render(fmt.Sprintf("%d / %d", p.step, p.h.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + value.Render(fmt.Sprintf("x%d", p.speed)) + "\n")
	s.WriteString(labelStyle.Render("Separation") + value.Render(fmt.Sprintf("%.3f", p.separation[p.step])) + "\n")
	s.WriteString(labelStyle.Render("Theme") + value.Render(theme.Name) + "\n\n")

	pos, _ := p.h.Frame(p.step)
	for i, style := range theme.bodyStyles() {
		s.WriteString(style.Render("●") + fmt.Sprintf(" body %d  (%.1f, %.1f)\n", i+1, pos[i].X, pos[i].Y))
	}

	s.WriteString(help.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Scrub +/-:Speed T:Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
