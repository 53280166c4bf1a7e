package stub

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/safe"
)

//go:embed samples/*.json
var sampleCharts embed.FS

// textVariants are long filler paragraphs.
func textVariants(repeat int) []string {
	if repeat <= 0 {
		repeat = constants.DefaultStubTextRepeat
	}
	variants := make([]string, 0, 3)
	for _, v := range []string{"A", "B", "C"} {
		variants = append(variants, strings.Repeat(fmt.Sprintf("Generated long text variant %s. ", v), repeat))
	}
	return variants
}

// LoadCharts reads every debug_chart*.json file in dir in name order. With
// an empty dir the embedded samples are used.
func LoadCharts(dir string) ([]json.RawMessage, error) {
	if dir == "" {
		paths, err := fs.Glob(sampleCharts, "samples/"+constants.DefaultStubChartGlob)
		if err != nil {
			return nil, fmt.Errorf("invalid chart pattern: %w", err)
		}
		return loadCharts(paths, func(path string) ([]byte, error) {
			return fs.ReadFile(sampleCharts, path)
		})
	}

	paths, err := filepath.Glob(filepath.Join(dir, constants.DefaultStubChartGlob))
	if err != nil {
		return nil, fmt.Errorf("invalid chart pattern: %w", err)
	}
	return loadCharts(paths, func(path string) ([]byte, error) {
		return safe.ReadFile(path, &safe.ReadOptions{MaxSize: maxChartSize, AllowSymlinks: true})
	})
}

// maxChartSize bounds a single chart sample.
const maxChartSize = 4 << 20

func loadCharts(paths []string, read func(string) ([]byte, error)) ([]json.RawMessage, error) {
	sort.Strings(paths)

	charts := make([]json.RawMessage, 0, len(paths))
	for _, path := range paths {
		data, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read chart %s: %w", path, err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("chart %s is not valid JSON", path)
		}
		charts = append(charts, json.RawMessage(data))
	}

	if len(charts) == 0 {
		return nil, fmt.Errorf("no %s files found", constants.DefaultStubChartGlob)
	}
	return charts, nil
}
