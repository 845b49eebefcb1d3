package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mause/tuya-graphing/pkg/export"
	"github.com/Mause/tuya-graphing/pkg/hook"
	"github.com/Mause/tuya-graphing/pkg/model"
	ocmocks "github.com/Mause/tuya-graphing/pkg/orchestrator/mocks"
	"github.com/Mause/tuya-graphing/pkg/series"
	"go.uber.org/mock/gomock"
)

var testWindow = model.LogWindow{
	Start: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
}

func testDevices() []model.Device {
	return []model.Device{
		{ID: "dev-1", Name: "Heater", Status: []model.DeviceStatus{{Code: "cur_power", Value: 120}}},
		{ID: "dev-2", Name: "Lamp", Status: []model.DeviceStatus{{Code: "switch_led", Value: true}}},
		{ID: "dev-3", Name: "Ghost"}, // no status, skipped
	}
}

func testEvents(code, value string) []model.Event {
	return []model.Event{{Code: code, EventTime: testWindow.Start.Add(time.Hour), Value: value}}
}

func TestGraph_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices(), nil)

	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-1", gomock.Nil(), testWindow).
		Return(testEvents("cur_power", "120"), nil)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-2", gomock.Nil(), testWindow).
		Return(testEvents("switch_led", "true"), nil)

	renderer := ocmocks.NewMockRenderer(ctrl)
	renderer.EXPECT().RenderFrame(gomock.Any()).Return("page.html", nil).Times(2)
	renderer.EXPECT().RenderIndex(gomock.Any()).Return("index.html", nil)

	dumpPath := filepath.Join(t.TempDir(), "data.json")

	orch := &Orchestrator{
		Devices:  lister,
		Logs:     fetcher,
		Builder:  series.NewBuilder(time.UTC, nil),
		Renderer: renderer,
	}

	result, err := orch.Graph(context.Background(), GraphOptions{
		Window:      testWindow,
		DumpPath:    dumpPath,
		Concurrency: 2,
	})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}

	if result.Devices != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected device counts: %+v", result)
	}
	if result.Rendered != 2 {
		t.Fatalf("expected 2 rendered, got %d", result.Rendered)
	}
	if result.IndexPath != "index.html" {
		t.Fatalf("unexpected index path: %s", result.IndexPath)
	}

	dump, err := export.ReadDump(dumpPath)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	if len(dump.Devices) != 2 {
		t.Fatalf("expected 2 devices in dump, got %d", len(dump.Devices))
	}
	if dump.Devices[0].Device.ID != "dev-1" || len(dump.Devices[0].Events) != 1 {
		t.Fatalf("unexpected dump content: %+v", dump.Devices[0])
	}
}

func TestGraph_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices(), nil)

	// Dry run must not fetch, render or export.
	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	renderer := ocmocks.NewMockRenderer(ctrl)

	var events []Event
	orch := &Orchestrator{
		Devices:  lister,
		Logs:     fetcher,
		Builder:  series.NewBuilder(time.UTC, nil),
		Renderer: renderer,
		Hooks:    Hooks{OnEvent: func(e Event) { events = append(events, e) }},
	}

	result, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow, DryRun: true})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if result.Devices != 2 {
		t.Fatalf("expected 2 planned devices, got %d", result.Devices)
	}

	last := events[len(events)-1]
	if last.Phase != "done" || last.Msg != "dry-run" {
		t.Fatalf("unexpected final event: %+v", last)
	}
}

func TestGraph_NameFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices(), nil)

	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-1", gomock.Nil(), testWindow).
		Return(testEvents("cur_power", "120"), nil)

	orch := &Orchestrator{
		Devices: lister,
		Logs:    fetcher,
		Builder: series.NewBuilder(time.UTC, nil),
	}

	result, err := orch.Graph(context.Background(), GraphOptions{
		Window: testWindow,
		Filter: model.ResolveRequest{NameFilter: "heat"},
	})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if result.Devices != 1 {
		t.Fatalf("expected 1 matching device, got %d", result.Devices)
	}
}

func TestGraph_CacheHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ocmocks.NewMockStore(ctrl)
	store.EXPECT().GetDevices(gomock.Any()).DoAndReturn(func(dest any) error {
		*dest.(*[]model.Device) = testDevices()[:1]
		return nil
	})
	store.EXPECT().GetLogs("dev-1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, _ string, dest any) error {
			*dest.(*[]model.Event) = testEvents("cur_power", "120")
			return nil
		})

	// Cloud must not be touched when every layer hits the cache.
	lister := ocmocks.NewMockDeviceLister(ctrl)
	fetcher := ocmocks.NewMockLogFetcher(ctrl)

	orch := &Orchestrator{
		Devices: lister,
		Logs:    fetcher,
		Builder: series.NewBuilder(time.UTC, nil),
		Cache:   store,
	}

	result, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if result.Fetched != 1 {
		t.Fatalf("expected 1 fetched device, got %d", result.Fetched)
	}
}

func TestGraph_NoCacheBypassesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ocmocks.NewMockStore(ctrl)
	store.EXPECT().PutDevices(gomock.Any()).Return(nil)
	store.EXPECT().PutLogs("dev-1", gomock.Any(), gomock.Any()).Return(nil)

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices()[:1], nil)

	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-1", gomock.Nil(), testWindow).
		Return(testEvents("cur_power", "120"), nil)

	orch := &Orchestrator{
		Devices: lister,
		Logs:    fetcher,
		Builder: series.NewBuilder(time.UTC, nil),
		Cache:   store,
	}

	_, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow, NoCache: true})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
}

func TestGraph_FetchErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices()[:1], nil)

	wantErr := errors.New("cloud unavailable")
	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-1", gomock.Nil(), testWindow).
		Return(nil, wantErr)

	orch := &Orchestrator{
		Devices: lister,
		Logs:    fetcher,
		Builder: series.NewBuilder(time.UTC, nil),
	}

	_, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestGraph_HookStages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := ocmocks.NewMockDeviceLister(ctrl)
	lister.EXPECT().ListDevices(gomock.Any()).Return(testDevices()[:1], nil)

	fetcher := ocmocks.NewMockLogFetcher(ctrl)
	fetcher.EXPECT().GetReportLogs(gomock.Any(), "dev-1", gomock.Nil(), testWindow).
		Return(testEvents("cur_power", "120"), nil)

	runner := ocmocks.NewMockHookRunner(ctrl)
	gomock.InOrder(
		runner.EXPECT().RunStage(hook.PreFetch, gomock.Any()).Return(nil),
		runner.EXPECT().RunStage(hook.PostFetch, gomock.Any()).Return(nil),
		runner.EXPECT().RunStage(hook.PreExport, gomock.Any()).Return(nil),
		runner.EXPECT().RunStage(hook.PostExport, gomock.Any()).Return(nil),
	)

	orch := &Orchestrator{
		Devices:    lister,
		Logs:       fetcher,
		Builder:    series.NewBuilder(time.UTC, nil),
		HookRunner: runner,
	}

	if _, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow}); err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
}

func TestGraph_HookFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantErr := errors.New("hook rejected run")
	runner := ocmocks.NewMockHookRunner(ctrl)
	runner.EXPECT().RunStage(hook.PreFetch, gomock.Any()).Return(wantErr)

	// The listing must never happen when pre-fetch fails.
	lister := ocmocks.NewMockDeviceLister(ctrl)

	orch := &Orchestrator{
		Devices:    lister,
		Logs:       ocmocks.NewMockLogFetcher(ctrl),
		Builder:    series.NewBuilder(time.UTC, nil),
		HookRunner: runner,
	}

	_, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected hook error, got %v", err)
	}
}

func TestGraph_InvalidWindow(t *testing.T) {
	orch := &Orchestrator{
		Devices: ocmocks.NewMockDeviceLister(gomock.NewController(t)),
		Logs:    ocmocks.NewMockLogFetcher(gomock.NewController(t)),
		Builder: series.NewBuilder(time.UTC, nil),
	}

	_, err := orch.Graph(context.Background(), GraphOptions{Window: model.LogWindow{
		Start: testWindow.End,
		End:   testWindow.Start,
	}})
	if err == nil {
		t.Fatal("expected window validation error")
	}
}

func TestGraph_Unconfigured(t *testing.T) {
	orch := &Orchestrator{}
	if _, err := orch.Graph(context.Background(), GraphOptions{Window: testWindow}); err == nil {
		t.Fatal("expected configuration error")
	}
}
