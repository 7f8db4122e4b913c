package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/fieldlines/config"
	"github.com/pthm-cable/fieldlines/streamline"
)

// LineRecord is one anchor row in lines.csv.
type LineRecord struct {
	Line     int     `csv:"line"`
	Anchor   int     `csv:"anchor"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	Value    float64 `csv:"value"`
	Duration float64 `csv:"duration"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	linesFile *os.File
	statsFile *os.File

	// Track if headers have been written
	linesHeaderWritten bool
	statsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open lines.csv
	linesPath := filepath.Join(dir, "lines.csv")
	f, err := os.Create(linesPath)
	if err != nil {
		return nil, fmt.Errorf("creating lines.csv: %w", err)
	}
	om.linesFile = f

	// Open flowstats.csv
	statsPath := filepath.Join(dir, "flowstats.csv")
	f, err = os.Create(statsPath)
	if err != nil {
		om.linesFile.Close()
		return nil, fmt.Errorf("creating flowstats.csv: %w", err)
	}
	om.statsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteLines writes every anchor of every line in the set to lines.csv.
func (om *OutputManager) WriteLines(set *streamline.Set) error {
	if om == nil {
		return nil
	}

	var records []LineRecord
	for i, line := range set.Lines {
		for j, p := range line.Points {
			rec := LineRecord{
				Line:     i,
				Anchor:   j,
				X:        p.X,
				Y:        p.Y,
				Z:        p.Z,
				Duration: line.Duration,
			}
			if line.Values != nil {
				rec.Value = line.Values[j]
			}
			records = append(records, rec)
		}
	}

	if !om.linesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.linesFile); err != nil {
			return fmt.Errorf("writing lines: %w", err)
		}
		om.linesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.linesFile); err != nil {
			return fmt.Errorf("writing lines: %w", err)
		}
	}

	return nil
}

// WriteFlowStats writes a window stats record to flowstats.csv.
func (om *OutputManager) WriteFlowStats(stats FlowStats) error {
	if om == nil {
		return nil
	}

	records := []FlowStats{stats}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing flow stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing flow stats: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.linesFile != nil {
		if err := om.linesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
