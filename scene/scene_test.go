package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fieldlines/config"
	"github.com/pthm-cable/fieldlines/renderer"
)

func testConfig(t *testing.T, override string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// A coarse grid and short virtual time keep scene tests fast.
const smallScene = `
lines:
  x_range: [-1, 1, 0.5]
  y_range: [-1, 1, 0.5]
  virtual_time: 0.5
  workers: 1
flow:
  speed: 1
  frame_rate: 20
`

func TestLyapunovField(t *testing.T) {
	f := Lyapunov()

	got := f(r3.Vec{X: 1, Y: 1})
	if got.X != 0 || got.Y != 1 {
		t.Errorf("f(1,1) = %+v, want (0, 1)", got)
	}
	if v := f(r3.Vec{}); v != (r3.Vec{}) {
		t.Errorf("origin is not fixed: %+v", v)
	}

	// The second equilibrium vanishes too.
	eq := r3.Vec{X: math.Pow(2.0/3.0, 2.0/3.0), Y: math.Pow(2.0/3.0, 1.0/3.0)}
	v := f(eq)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y) > 1e-12 {
		t.Errorf("f(%v, %v) = %+v, want ~zero", eq.X, eq.Y, v)
	}
}

func TestNamedField(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"lyapunov", false},
		{"sink", false},
		{"saddle", false},
		{"spiral", false},
		{"turbulence", false},
		{"vortex", true},
	}
	for _, tt := range tests {
		cfg := testConfig(t, smallScene)
		cfg.Scene.Field = tt.name
		f, err := NamedField(cfg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected an error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tt.name, err)
		} else if f == nil {
			t.Errorf("%q: nil field", tt.name)
		}
	}
}

func TestBuildSetScalesIntoSceneUnits(t *testing.T) {
	cfg := testConfig(t, smallScene)
	set, err := BuildSet(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(set.Lines) == 0 {
		t.Fatal("no lines built")
	}

	// Projected anchors reach well beyond the unit spawn box, but stay
	// inside the scaled padded box.
	bound := (1 + cfg.Lines.Padding) * cfg.Scene.Scaling
	far := 0.0
	for _, ln := range set.Lines {
		if ln.Values == nil {
			t.Fatal("gradient styling should stamp scheme values")
		}
		for _, p := range ln.Points {
			far = max(far, math.Abs(p.X), math.Abs(p.Y))
		}
	}
	if far > bound+1e-9 {
		t.Errorf("anchor at %v, beyond the scaled padded box %v", far, bound)
	}
	if far < 2 {
		t.Errorf("farthest anchor at %v; scaling was not applied", far)
	}
}

func TestBuildSetFlatSkipsValues(t *testing.T) {
	cfg := testConfig(t, smallScene+`style:
  color: "#C78D46"
`)
	set, err := BuildSet(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, ln := range set.Lines {
		if ln.Values != nil {
			t.Fatal("flat styling should not stamp scheme values")
		}
	}
}

func TestStyleSelection(t *testing.T) {
	cfg := testConfig(t, smallScene)
	style, err := Style(cfg)
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	if _, ok := style.(*renderer.Gradient); !ok {
		t.Fatalf("default style = %T, want gradient", style)
	}

	// The ramp runs gold at slow flow to blue at fast flow.
	slow, fast := style.ColorAt(0), style.ColorAt(2)
	if slow.R <= slow.B {
		t.Errorf("slow end %+v should lean gold", slow)
	}
	if fast.B <= fast.R {
		t.Errorf("fast end %+v should lean blue", fast)
	}

	cfg.Derived.Flat = &config.RGBA{R: 1, G: 2, B: 3, A: 4}
	style, err = Style(cfg)
	if err != nil {
		t.Fatalf("flat style: %v", err)
	}
	flat, ok := style.(renderer.Flat)
	if !ok {
		t.Fatalf("style = %T, want flat", style)
	}
	if flat.Color.B != 3 {
		t.Errorf("flat color = %+v", flat.Color)
	}
}

func TestNewBuildsFlowingScene(t *testing.T) {
	s, err := New(testConfig(t, smallScene))
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	defer s.Unload()

	if !s.Lines().Flowing() {
		t.Fatal("flow should start immediately")
	}
	if s.phase != phaseFlowing {
		t.Fatalf("phase = %d, want flowing", s.phase)
	}
	if s.flowTime != 0.5 {
		t.Errorf("flow time = %v, want virtual time / speed = 0.5", s.flowTime)
	}
	if s.Done() {
		t.Error("fresh scene reports done")
	}
}

func TestHeadlessRunReachesReveal(t *testing.T) {
	s, err := New(testConfig(t, smallScene))
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	defer s.Unload()

	for i := 0; i < 500 && !s.Done(); i++ {
		s.UpdateHeadless()
	}
	if !s.Done() {
		t.Fatal("demo did not reach its final frame within the tick budget")
	}
	if s.roaProgress != 1 {
		t.Errorf("region trace progress = %v, want 1", s.roaProgress)
	}
	if s.Lines().Flowing() {
		t.Error("flow still running after wind-down")
	}

	// Every line holds its full arc in the final frame.
	for i, e := range s.Lines().Entities() {
		v := s.stage.Visual(e)
		if v.WindowLo != 0 || v.WindowHi != 1 {
			t.Errorf("line %d: window [%v, %v], want [0, 1]", i, v.WindowLo, v.WindowHi)
		}
	}
	if got, want := s.Lines().VisibleCount(), len(s.Set().Lines); got != want {
		t.Errorf("visible lines = %d, want %d", got, want)
	}
}

func TestRestartAfterReveal(t *testing.T) {
	s, err := New(testConfig(t, smallScene))
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	defer s.Unload()

	for i := 0; i < 500 && !s.Done(); i++ {
		s.UpdateHeadless()
	}
	if !s.Done() {
		t.Fatal("demo did not finish")
	}

	if err := s.startFlow(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.phase != phaseFlowing || s.Elapsed() != 0 {
		t.Errorf("restart did not reset the demo clock: phase %d elapsed %v", s.phase, s.Elapsed())
	}
	s.UpdateHeadless()
	if !s.Lines().Flowing() {
		t.Error("flow not running after restart")
	}
}
