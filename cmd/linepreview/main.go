// Stream line preview tool - interactive integrator tuning with sliders.
//
// Usage: go run ./cmd/linepreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fieldlines/camera"
	"github.com/pthm-cable/fieldlines/field"
	"github.com/pthm-cable/fieldlines/renderer"
	"github.com/pthm-cable/fieldlines/scene"
	"github.com/pthm-cable/fieldlines/streamline"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 720
	panelWidth   = windowWidth - previewSize - 30
	sliderWidth  = panelWidth - 70
)

var fieldNames = []string{"lyapunov", "sink", "saddle", "spiral", "turbulence"}

// previewParams holds the integrator parameters under tuning.
type previewParams struct {
	Field       int
	DT          float32
	VirtualTime float32
	MaxAnchors  int
	Padding     float32
	Noise       float32
	Repeats     int
	Seed        int64
}

func defaultParams() previewParams {
	return previewParams{
		DT:          0.05,
		VirtualTime: 3,
		MaxAnchors:  100,
		Padding:     0.1,
		Noise:       0.05,
		Repeats:     1,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Stream Line Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	paths := renderer.NewPathRenderer(nil)
	cam := camera.New(previewSize, previewSize)

	set := rebuild(params, cam)
	needsRebuild := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			set = rebuild(params, cam)
			needsRebuild = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview area
		rl.DrawRectangle(0, 0, previewSize, previewSize, rl.Black)
		for _, line := range set.Lines {
			paths.DrawLine(line, 0, 1, 2, 1, cam)
		}
		rl.DrawRectangleLines(0, 0, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Stream Line Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		anchors := 0
		longest := 0.0
		for _, line := range set.Lines {
			anchors += len(line.Points)
			longest = max(longest, line.Duration)
		}
		rl.DrawText(fmt.Sprintf("Lines: %d  Anchors: %d", len(set.Lines), anchors), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Longest duration: %.2f", longest), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 26}, "Field: "+fieldNames[params.Field]) {
			params.Field = (params.Field + 1) % len(fieldNames)
			needsRebuild = true
		}
		panelY += 40

		newDT := paramSlider(panelX, &panelY, "Step size (virtual seconds)",
			fmt.Sprintf("%.3f", params.DT), params.DT, 0.01, 0.2)
		if newDT != params.DT {
			params.DT = newDT
			needsRebuild = true
		}

		newVT := paramSlider(panelX, &panelY, "Virtual time (integration span)",
			fmt.Sprintf("%.1f", params.VirtualTime), params.VirtualTime, 0.5, 10)
		if newVT != params.VirtualTime {
			params.VirtualTime = newVT
			needsRebuild = true
		}

		newAnchors := paramSlider(panelX, &panelY, "Max anchors per line",
			fmt.Sprintf("%d", params.MaxAnchors), float32(params.MaxAnchors), 10, 200)
		if int(newAnchors) != params.MaxAnchors {
			params.MaxAnchors = int(newAnchors)
			needsRebuild = true
		}

		newPadding := paramSlider(panelX, &panelY, "Padding (truncation margin)",
			fmt.Sprintf("%.2f", params.Padding), params.Padding, 0, 1)
		if newPadding != params.Padding {
			params.Padding = newPadding
			needsRebuild = true
		}

		newNoise := paramSlider(panelX, &panelY, "Spawn jitter",
			fmt.Sprintf("%.3f", params.Noise), params.Noise, 0, 0.2)
		if newNoise != params.Noise {
			params.Noise = newNoise
			needsRebuild = true
		}

		newRepeats := paramSlider(panelX, &panelY, "Seeds per grid cell",
			fmt.Sprintf("%d", params.Repeats), float32(params.Repeats), 1, 5)
		if int(newRepeats) != params.Repeats {
			params.Repeats = int(newRepeats)
			needsRebuild = true
		}

		newSeed := paramSlider(panelX, &panelY, "Seed",
			fmt.Sprintf("%d", params.Seed), float32(params.Seed), 0, 99999)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRebuild = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// paramSlider draws one labeled slider row and returns its new value.
func paramSlider(x float32, y *float32, label, display string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: sliderWidth, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(display, int32(x+sliderWidth+10), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// rebuild integrates a fresh line set and refits the camera to it.
func rebuild(p previewParams, cam *camera.Camera) *streamline.Set {
	set, err := streamline.Build(fieldFor(p), optsFor(p))
	if err != nil {
		panic(err)
	}
	cam.FitRanges(set.XRange, set.YRange, float64(p.Padding))
	return set
}

func fieldFor(p previewParams) field.Field {
	switch fieldNames[p.Field] {
	case "sink":
		return field.Sink()
	case "saddle":
		return field.Saddle()
	case "spiral":
		return field.Spiral(0.5, 1)
	case "turbulence":
		return field.Turbulence(p.Seed, 2, 1)
	default:
		return scene.Lyapunov()
	}
}

func optsFor(p previewParams) streamline.Options {
	return streamline.Options{
		XRange:      streamline.Range{Min: -1, Max: 1, Step: 0.1},
		YRange:      streamline.Range{Min: -1, Max: 1, Step: 0.1},
		DT:          float64(p.DT),
		VirtualTime: float64(p.VirtualTime),
		MaxAnchors:  p.MaxAnchors,
		Padding:     float64(p.Padding),
		NoiseFactor: float64(p.Noise),
		Repeats:     p.Repeats,
		Seed:        p.Seed,
		Scheme:      field.Magnitude,
	}
}

func yamlLines(p previewParams) []string {
	return []string{
		"lines:",
		fmt.Sprintf("  dt: %.3f", p.DT),
		fmt.Sprintf("  virtual_time: %.1f", p.VirtualTime),
		fmt.Sprintf("  max_anchors_per_line: %d", p.MaxAnchors),
		fmt.Sprintf("  padding: %.2f", p.Padding),
		fmt.Sprintf("  noise_factor: %.3f", p.Noise),
		fmt.Sprintf("  repeats: %d", p.Repeats),
		fmt.Sprintf("  seed: %d", p.Seed),
	}
}
