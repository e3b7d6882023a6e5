package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Dots(); w != 4 || h != 4 {
		t.Fatalf("Dots() = %d,%d", w, h)
	}

	c.Set(0, 0, 0)
	c.Set(1, 3, 0)
	if got := c.String(); got != string(rune(0x2800+0x1+0x80))+"⠀\n" {
		t.Errorf("String() = %q", got)
	}
	if !c.IsSet(1, 3) || c.IsSet(2, 0) {
		t.Error("IsSet is wrong")
	}

	c.Unset(0, 0)
	c.Unset(1, 3)
	if got := c.String(); got != "⠀⠀\n" {
		t.Errorf("String() after Unset = %q", got)
	}

	c.Set(-1, 0, 0)
	c.Set(100, 100, 0)
	if got := c.String(); got != "⠀⠀\n" {
		t.Errorf("out-of-range Set changed the canvas: %q", got)
	}
}

func TestCanvas_Line(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(0, 0, 19, 19, 1)
	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot %d not set", i)
		}
	}

	c.Clear()
	c.Line(5, 2, 5, 2, 0)
	if !c.IsSet(5, 2) {
		t.Error("single point line not drawn")
	}
}

func TestCanvas_LineClipped(t *testing.T) {
	c := NewCanvas(10, 5)

	// Horizontal line with both ends far outside.
	c.Line(-1<<40, 7, 1<<40, 7, 2)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 7) {
			t.Errorf("dot (%d,7) not set", x)
		}
	}
	if c.IsSet(0, 6) || c.IsSet(0, 8) {
		t.Error("clipped line leaked off its row")
	}

	// Entirely outside on one side: nothing drawn.
	c.Clear()
	c.Line(-50, -3, -1<<40, 1<<40, 0)
	c.Line(25, 0, 1<<40, 19, 0)
	if got := c.String(); strings.Trim(got, "⠀\n") != "" {
		t.Errorf("off-canvas lines drew dots: %q", got)
	}

	// One end inside: the visible part runs from that end to the border.
	c.Clear()
	c.Line(3, 3, 3, 1<<40, 1)
	for y := 3; y < 20; y++ {
		if !c.IsSet(3, y) {
			t.Errorf("dot (3,%d) not set", y)
		}
	}
	if c.IsSet(3, 2) {
		t.Error("line extended past its start")
	}
}

func TestCanvas_Styled(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, 0)
	c.Set(2, 0, 7)
	out := c.Styled([]lipgloss.Style{lipgloss.NewStyle()})
	if lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n"); len(lines) != 1 {
		t.Errorf("expected one row, got %d", len(lines))
	}
	if !strings.ContainsRune(out, rune(0x2801)) {
		t.Errorf("styled output lost a dot: %q", out)
	}
}

func newTestPlayer(t *testing.T, steps int) Player {
	t.Helper()
	h, err := sim.Run(
		[3]float64{10000, 300, 100},
		[3]r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 86.6}},
		[3]r2.Vec{{X: 0.1, Y: 0.1}, {X: 0, Y: 1.732}, {X: -1.732, Y: 0}},
		float64(steps), 1,
	)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlayer("triangle", h, render.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, p Player, msg tea.Msg) Player {
	t.Helper()
	m, _ := p.Update(msg)
	return m.(Player)
}

func TestPlayer_Playback(t *testing.T) {
	p := newTestPlayer(t, 10)
	if !p.Running() || p.Step() != 0 || p.Speed() != 1 {
		t.Fatalf("unexpected initial state: running=%v step=%d speed=%d", p.Running(), p.Step(), p.Speed())
	}

	p = update(t, p, TickMsg{})
	if p.Step() != 1 {
		t.Errorf("tick: step %d, want 1", p.Step())
	}

	p = update(t, p, key("+"))
	p = update(t, p, TickMsg{})
	if p.Speed() != 2 || p.Step() != 3 {
		t.Errorf("speed %d step %d, want 2 and 3", p.Speed(), p.Step())
	}

	p = update(t, p, key("]"))
	if p.Running() || p.Step() != 5 {
		t.Errorf("scrub forward: running=%v step=%d", p.Running(), p.Step())
	}
	p = update(t, p, TickMsg{})
	if p.Step() != 5 {
		t.Errorf("paused player advanced to %d", p.Step())
	}

	p = update(t, p, key("["))
	p = update(t, p, key("["))
	p = update(t, p, key("["))
	if p.Step() != 0 {
		t.Errorf("scrub back should stop at 0, got %d", p.Step())
	}

	p = update(t, p, key("-"))
	p = update(t, p, key("-"))
	if p.Speed() != 1 {
		t.Errorf("speed should not drop below 1, got %d", p.Speed())
	}

	p = update(t, p, key(" "))
	for i := 0; i < 20; i++ {
		p = update(t, p, TickMsg{})
	}
	if p.Step() != 10 || p.Running() {
		t.Errorf("expected to stop at the last step, got step=%d running=%v", p.Step(), p.Running())
	}

	p = update(t, p, key(" "))
	if p.Step() != 0 || !p.Running() {
		t.Errorf("space at the end should restart, got step=%d running=%v", p.Step(), p.Running())
	}

	p = update(t, p, key("]"))
	p = update(t, p, key("r"))
	if p.Step() != 0 || !p.Running() {
		t.Errorf("restart: step=%d running=%v", p.Step(), p.Running())
	}
}

func TestPlayer_SpeedLimit(t *testing.T) {
	p := newTestPlayer(t, 5)
	for i := 0; i < 10; i++ {
		p = update(t, p, key("+"))
	}
	if p.Speed() != maxSpeed {
		t.Errorf("speed %d, want %d", p.Speed(), maxSpeed)
	}
	p = update(t, p, TickMsg{})
	if p.Step() != 5 {
		t.Errorf("step %d, want clamp at 5", p.Step())
	}
}

func TestPlayer_Theme(t *testing.T) {
	p := newTestPlayer(t, 2)
	seen := map[string]bool{}
	for range Themes {
		seen[p.Theme().Name] = true
		p = update(t, p, key("t"))
	}
	if len(seen) != len(Themes) {
		t.Errorf("visited %d themes, want %d", len(seen), len(Themes))
	}
	if p.Theme().Name != Themes[0].Name {
		t.Errorf("theme did not wrap around: %s", p.Theme().Name)
	}
	if ThemeIndex("sunset") != 3 || ThemeIndex("nope") != 0 {
		t.Error("ThemeIndex is wrong")
	}
}

func TestPlayer_Quit(t *testing.T) {
	p := newTestPlayer(t, 2)
	_, cmd := p.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlayer_View(t *testing.T) {
	p := newTestPlayer(t, 4)
	out := p.View()
	for _, want := range []string{"TRIANGLE", "PLAYING", "0 / 4", "body 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	for i := 0; i < 4; i++ {
		p = update(t, p, TickMsg{})
	}
	out = p.View()
	if !strings.Contains(out, "END") || !strings.Contains(out, "Min separation") {
		t.Error("final view should show END and the separation chart")
	}
}

func TestNewPlayer_Errors(t *testing.T) {
	if _, err := NewPlayer("x", nil, render.DefaultOptions()); err != dynamo.ErrEmptyHistory {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestSeparations(t *testing.T) {
	h := dynamo.NewHistory([3]r2.Vec{{X: 0}, {X: 3}, {X: 0, Y: 4}}, 0, 1)
	got := separations(h)
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("separations = %v", got)
	}
}
