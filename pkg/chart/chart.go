package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/Mause/tuya-graphing/pkg/series"
)

// plotlySrc is pinned so generated reports keep rendering the same way.
const plotlySrc = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// Renderer writes self-contained HTML line charts, one page per device plus
// an index page linking them.
type Renderer struct {
	outDir string
}

// NewRenderer creates a renderer writing into outDir. The directory is
// created on first render.
func NewRenderer(outDir string) (*Renderer, error) {
	if outDir == "" {
		return nil, errors.Wrap(errors.ErrInvalidPath, "chart output directory")
	}
	return &Renderer{outDir: outDir}, nil
}

// trace is the subset of a plotly trace the pages use.
type trace struct {
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
	Name string    `json:"name"`
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Line struct {
		Shape string `json:"shape,omitempty"`
	} `json:"line"`
}

// RenderFrame writes one device's chart page and returns its path. Empty
// frames are skipped and return an empty path.
func (r *Renderer) RenderFrame(frame *series.Frame) (string, error) {
	if frame.Empty() {
		return "", nil
	}
	if err := os.MkdirAll(r.outDir, fsutil.DirModeDefault); err != nil {
		return "", errors.Wrap(err, "creating chart directory")
	}

	traces := make([]trace, 0, len(frame.Series))
	for _, s := range frame.Series {
		tr := trace{
			Name: s.Code,
			Type: "scatter",
			Mode: "lines",
		}
		// Boolean series render as steps, numeric ones as straight lines.
		if s.Kind == series.KindBool {
			tr.Line.Shape = "hv"
		}
		for _, p := range s.Points {
			tr.X = append(tr.X, p.Time.Format(time.RFC3339))
			tr.Y = append(tr.Y, p.Value)
		}
		traces = append(traces, tr)
	}

	payload, err := json.Marshal(traces)
	if err != nil {
		return "", errors.Wrap(err, "encoding chart data")
	}

	path := filepath.Join(r.outDir, frame.DeviceID+".html")
	data := devicePage{
		Title:     pageTitle(frame),
		PlotlySrc: plotlySrc,
		Traces:    template.JS(payload),
	}
	if err := writePage(path, deviceTemplate, data); err != nil {
		return "", err
	}

	logger.Debug("Chart rendered", logger.Fields{"device_id": frame.DeviceID, "path": path})
	return path, nil
}

// RenderIndex writes an index page linking every non-empty frame's chart,
// sorted by device name, and returns its path.
func (r *Renderer) RenderIndex(frames []*series.Frame) (string, error) {
	if err := os.MkdirAll(r.outDir, fsutil.DirModeDefault); err != nil {
		return "", errors.Wrap(err, "creating chart directory")
	}

	entries := make([]indexEntry, 0, len(frames))
	for _, frame := range frames {
		if frame.Empty() {
			continue
		}
		entries = append(entries, indexEntry{
			Title: pageTitle(frame),
			Href:  frame.DeviceID + ".html",
			Count: len(frame.Series),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Title < entries[j].Title })

	path := filepath.Join(r.outDir, "index.html")
	data := indexPage{
		Generated: time.Now().Format(time.RFC1123),
		Entries:   entries,
	}
	if err := writePage(path, indexTemplate, data); err != nil {
		return "", err
	}
	return path, nil
}

func pageTitle(frame *series.Frame) string {
	if frame.DeviceName != "" {
		return frame.DeviceName
	}
	return frame.DeviceID
}

func writePage(path string, tmpl *template.Template, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}
