//go:generate mockgen -destination=./mocks/orchestrator.go . DeviceLister,LogFetcher,Renderer,Store,HookRunner

package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/export"
	"github.com/Mause/tuya-graphing/pkg/hook"
	"github.com/Mause/tuya-graphing/pkg/model"
	"github.com/Mause/tuya-graphing/pkg/series"
)

// DeviceLister is the subset of the cloud client used for device discovery.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]model.Device, error)
}

// LogFetcher is the subset of the cloud client used for report logs.
type LogFetcher interface {
	GetReportLogs(ctx context.Context, deviceID string, codes []string, window model.LogWindow) ([]model.Event, error)
}

// Renderer writes chart pages from frames.
type Renderer interface {
	RenderFrame(frame *series.Frame) (string, error)
	RenderIndex(frames []*series.Frame) (string, error)
}

// Store caches cloud responses between runs.
type Store interface {
	GetDevices(dest interface{}) error
	PutDevices(value interface{}) error
	GetLogs(deviceID, windowKey string, dest interface{}) error
	PutLogs(deviceID, windowKey string, value interface{}) error
}

// HookRunner executes manifest hooks at pipeline stages.
type HookRunner interface {
	RunStage(stage hook.Stage, ctx hook.Context) error
}

// Orchestrator ties the cloud client, series builder, renderer and exporter
// together for full graph runs.
type Orchestrator struct {
	Devices    DeviceLister
	Logs       LogFetcher
	Builder    *series.Builder
	Renderer   Renderer
	Cache      Store
	HookRunner HookRunner
	Hooks      Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // listing|fetching|building|rendering|exporting|done|error
	ID    string // device id, when the event concerns one device
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// GraphOptions control a graph run.
type GraphOptions struct {
	Filter      model.ResolveRequest
	Window      model.LogWindow
	Codes       []string
	ReportDir   string
	DumpPath    string
	Concurrency int
	DryRun      bool
	NoCache     bool
}

// Result summarizes a completed graph run.
type Result struct {
	Devices   int
	Fetched   int
	Rendered  int
	Skipped   int
	IndexPath string
	DumpPath  string
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// deviceLogs pairs a device with its fetched events.
type deviceLogs struct {
	device model.Device
	events []model.Event
}

// Graph runs the whole pipeline: list devices, fetch report logs, build
// frames, render charts, dump raw data.
func (o *Orchestrator) Graph(ctx context.Context, opts GraphOptions) (*Result, error) {
	if o.Devices == nil || o.Logs == nil {
		return nil, fmt.Errorf("cloud client is not configured")
	}
	if o.Builder == nil {
		return nil, fmt.Errorf("series builder is not configured")
	}
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = max(2, runtime.NumCPU()/2)
	}

	if err := o.runHooks(hook.PreFetch, opts, 0); err != nil {
		return nil, err
	}

	emit(o.Hooks, Event{Phase: "listing", Msg: "listing devices"})
	devices, err := o.listDevices(ctx, opts.NoCache)
	if err != nil {
		return nil, err
	}

	targets := selectTargets(devices, opts.Filter)
	result := &Result{Devices: len(targets), Skipped: len(devices) - len(targets)}

	if opts.DryRun {
		for _, dev := range targets {
			emit(o.Hooks, Event{Phase: "fetching", ID: dev.ID, Msg: dev.Name})
		}
		emit(o.Hooks, Event{Phase: "done", Msg: "dry-run"})
		return result, nil
	}

	fetched, err := o.fetchAll(ctx, targets, opts)
	if err != nil {
		return nil, err
	}
	result.Fetched = len(fetched)

	if err := o.runHooks(hook.PostFetch, opts, len(targets)); err != nil {
		return nil, err
	}

	frames, dump, err := o.buildFrames(fetched)
	if err != nil {
		return nil, err
	}

	if err := o.runHooks(hook.PreExport, opts, len(targets)); err != nil {
		return nil, err
	}

	if o.Renderer != nil {
		rendered, indexPath, err := o.render(frames)
		if err != nil {
			return nil, err
		}
		result.Rendered = rendered
		result.IndexPath = indexPath
	}

	if opts.DumpPath != "" {
		emit(o.Hooks, Event{Phase: "exporting", Msg: opts.DumpPath})
		if err := export.WriteDump(opts.DumpPath, dump); err != nil {
			return nil, err
		}
		result.DumpPath = opts.DumpPath
	}

	if err := o.runHooks(hook.PostExport, opts, len(targets)); err != nil {
		return nil, err
	}

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d devices rendered", result.Rendered)})
	return result, nil
}

// listDevices returns the device list, consulting the cache first.
func (o *Orchestrator) listDevices(ctx context.Context, noCache bool) ([]model.Device, error) {
	if o.Cache != nil && !noCache {
		var cached []model.Device
		if err := o.Cache.GetDevices(&cached); err == nil {
			logger.Debug("Device listing served from cache", logger.Fields{"count": len(cached)})
			return cached, nil
		}
	}

	devices, err := o.Devices.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if o.Cache != nil {
		if err := o.Cache.PutDevices(devices); err != nil {
			logger.Warnf("Failed to cache device listing: %v", err)
		}
	}
	return devices, nil
}

// selectTargets filters the listing down to devices worth fetching: those
// matching the filter and reporting at least one status code.
func selectTargets(devices []model.Device, filter model.ResolveRequest) []model.Device {
	var targets []model.Device
	for _, dev := range devices {
		if !filter.Matches(dev) {
			continue
		}
		if !dev.HasStatus() {
			logger.Debug("Skipping device without status", logger.Fields{"device_id": dev.ID})
			continue
		}
		targets = append(targets, dev)
	}
	return targets
}

// fetchAll fetches report logs for every target with a bounded worker pool.
// Device order of the listing is preserved in the result.
func (o *Orchestrator) fetchAll(ctx context.Context, targets []model.Device, opts GraphOptions) ([]deviceLogs, error) {
	results := make([]deviceLogs, len(targets))
	var firstErr error
	var mu sync.Mutex

	windowKey := windowKey(opts.Window)

	tasks := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				dev := targets[idx]
				emit(o.Hooks, Event{Phase: "fetching", ID: dev.ID, Msg: dev.Name})

				events, err := o.fetchOne(ctx, dev, windowKey, opts)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					results[idx] = deviceLogs{device: dev, events: events}
				}
				mu.Unlock()
			}
		}()
	}

	for idx := range targets {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (o *Orchestrator) fetchOne(ctx context.Context, dev model.Device, windowKey string, opts GraphOptions) ([]model.Event, error) {
	if o.Cache != nil && !opts.NoCache {
		var cached []model.Event
		if err := o.Cache.GetLogs(dev.ID, windowKey, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := o.Logs.GetReportLogs(ctx, dev.ID, opts.Codes, opts.Window)
	if err != nil {
		return nil, err
	}
	if o.Cache != nil {
		if err := o.Cache.PutLogs(dev.ID, windowKey, events); err != nil {
			logger.Warnf("Failed to cache logs for %s: %v", dev.ID, err)
		}
	}
	return events, nil
}

// buildFrames converts fetched logs into frames and collects the raw dump.
func (o *Orchestrator) buildFrames(fetched []deviceLogs) ([]*series.Frame, *export.Dump, error) {
	frames := make([]*series.Frame, 0, len(fetched))
	dump := &export.Dump{GeneratedAt: time.Now()}

	for _, dl := range fetched {
		emit(o.Hooks, Event{Phase: "building", ID: dl.device.ID, Msg: dl.device.Name})
		frame, err := o.Builder.Build(dl.device, dl.events)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "building series for %s", dl.device.ID)
		}
		frames = append(frames, frame)
		dump.Add(dl.device, dl.events)
	}
	return frames, dump, nil
}

// render writes one page per non-empty frame plus the index.
func (o *Orchestrator) render(frames []*series.Frame) (int, string, error) {
	rendered := 0
	for _, frame := range frames {
		if frame.Empty() {
			continue
		}
		emit(o.Hooks, Event{Phase: "rendering", ID: frame.DeviceID, Msg: frame.DeviceName})
		if _, err := o.Renderer.RenderFrame(frame); err != nil {
			return 0, "", err
		}
		rendered++
	}

	indexPath, err := o.Renderer.RenderIndex(frames)
	if err != nil {
		return 0, "", err
	}
	return rendered, indexPath, nil
}

func (o *Orchestrator) runHooks(stage hook.Stage, opts GraphOptions, deviceCount int) error {
	if o.HookRunner == nil {
		return nil
	}
	return o.HookRunner.RunStage(stage, hook.Context{
		DeviceCount: deviceCount,
		ReportDir:   opts.ReportDir,
		DumpPath:    opts.DumpPath,
	})
}

// windowKey derives a stable cache key from a log window.
func windowKey(w model.LogWindow) string {
	return fmt.Sprintf("%d-%d", w.Start.UnixMilli(), w.End.UnixMilli())
}
