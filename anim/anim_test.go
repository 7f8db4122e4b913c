package anim

import (
	"math"
	"testing"
)

type stubView struct {
	lo, hi float64
	calls  int
}

func (v *stubView) SetWindow(lo, hi float64) {
	v.lo, v.hi = lo, hi
	v.calls++
}

func TestPassingFlashWindow(t *testing.T) {
	tests := []struct {
		name   string
		alpha  float64
		wantLo float64
		wantHi float64
	}{
		{"start", 0, 0, 0},
		{"entering", 0.25, 0.025, 0.325},
		{"mid", 0.5, 0.35, 0.65},
		{"end", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &stubView{}
			flash := NewPassingFlash(view, 2, 0.3, Linear)
			flash.Apply(tt.alpha)

			if math.Abs(view.lo-tt.wantLo) > 1e-9 || math.Abs(view.hi-tt.wantHi) > 1e-9 {
				t.Errorf("window at alpha %v = [%v, %v], want [%v, %v]",
					tt.alpha, view.lo, view.hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestPassingFlashClamps(t *testing.T) {
	view := &stubView{}
	flash := NewPassingFlash(view, 1, 0.3, Linear)

	// Near the end the upper edge clamps to the path while the lower
	// edge keeps moving, shrinking the flash out of existence.
	flash.Apply(0.9)
	if view.hi != 1 {
		t.Errorf("upper edge should clamp to 1, got %v", view.hi)
	}
	if math.Abs(view.lo-(0.9*1.3-0.3)) > 1e-9 {
		t.Errorf("lower edge = %v, want %v", view.lo, 0.9*1.3-0.3)
	}
}

func TestPassingFlashStateless(t *testing.T) {
	view := &stubView{}
	flash := NewPassingFlash(view, 1, 0.2, Linear)

	flash.Apply(0.9)
	flash.Apply(0.1)
	wantHi := 0.1 * 1.2
	if math.Abs(view.hi-wantHi) > 1e-9 {
		t.Errorf("flash must reposition freely after a phase wrap: hi = %v, want %v", view.hi, wantHi)
	}
}

func TestCreateWindow(t *testing.T) {
	view := &stubView{}
	create := NewCreate(view, 1, OutSine)

	create.Start()
	if view.lo != 0 || view.hi != 0 {
		t.Errorf("create should start hidden, got [%v, %v]", view.lo, view.hi)
	}

	create.Apply(0.5)
	want := math.Sqrt(2) / 2
	if view.lo != 0 || math.Abs(view.hi-want) > 1e-9 {
		t.Errorf("window = [%v, %v], want [0, %v]", view.lo, view.hi, want)
	}

	create.Finish()
	if view.lo != 0 || view.hi != 1 {
		t.Errorf("create should finish fully revealed, got [%v, %v]", view.lo, view.hi)
	}
}

func TestAlphaFuncEndpoints(t *testing.T) {
	var got []float64
	a := FromAlphaFunc(func(alpha float64) { got = append(got, alpha) }, 2)

	if a.RunTime() != 2 {
		t.Errorf("run time = %v, want 2", a.RunTime())
	}

	a.Start()
	a.Apply(0.5)
	a.Finish()

	want := []float64{0, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("callback saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback saw %v, want %v", got, want)
			break
		}
	}
}
