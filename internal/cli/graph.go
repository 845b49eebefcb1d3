package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/chart"
	"github.com/Mause/tuya-graphing/pkg/config"
	"github.com/Mause/tuya-graphing/pkg/model"
	"github.com/Mause/tuya-graphing/pkg/orchestrator"
	"github.com/Mause/tuya-graphing/pkg/series"
	"github.com/spf13/cobra"
)

// NewGraphCmd creates the graph command.
func NewGraphCmd() *cobra.Command {
	var (
		nameFilter  string
		deviceID    string
		from        string
		to          string
		codes       []string
		reportDir   string
		noDump      bool
		noCache     bool
		dryRun      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Fetch logs and render device charts",
		Long: `Run the full pipeline: list devices, fetch today's report logs,
convert them to typed series and render one HTML line chart per device,
plus an index page and a raw JSON dump.

Use --from/--to to graph a different window, --name or --device to
restrict the device set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd, graphFlags{
				nameFilter:  nameFilter,
				deviceID:    deviceID,
				from:        from,
				to:          to,
				codes:       codes,
				reportDir:   reportDir,
				noDump:      noDump,
				noCache:     noCache,
				dryRun:      dryRun,
				concurrency: concurrency,
			})
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Only graph devices matching this name (partial match)")
	cmd.Flags().StringVar(&deviceID, "device", "", "Only graph the device with this id")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&codes, "codes", nil, "Only fetch these status codes")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for rendered reports (default from config)")
	cmd.Flags().BoolVar(&noDump, "no-dump", false, "Skip writing the raw JSON dump")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be fetched without fetching")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent log fetches (default from config)")

	return cmd
}

type graphFlags struct {
	nameFilter  string
	deviceID    string
	from        string
	to          string
	codes       []string
	reportDir   string
	noDump      bool
	noCache     bool
	dryRun      bool
	concurrency int
}

func runGraph(cmd *cobra.Command, flags graphFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, opts, err := buildGraphRun(cfg, flags)
	if err != nil {
		return err
	}

	result, err := orch.Graph(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if opts.DryRun {
		logger.Successf("Dry run complete: %d devices would be fetched", result.Devices)
		return nil
	}

	logger.Success("Graph run complete", logger.Fields{
		"devices":  result.Devices,
		"rendered": result.Rendered,
		"skipped":  result.Skipped,
	})
	if result.IndexPath != "" {
		fmt.Printf("Report index: %s\n", result.IndexPath)
	}
	if result.DumpPath != "" {
		fmt.Printf("Raw dump: %s\n", result.DumpPath)
	}
	return nil
}

// buildGraphRun assembles the orchestrator and options from configuration
// and flags.
func buildGraphRun(cfg *config.Config, flags graphFlags) (*orchestrator.Orchestrator, orchestrator.GraphOptions, error) {
	var opts orchestrator.GraphOptions

	client, err := newClient(cfg)
	if err != nil {
		return nil, opts, err
	}
	store, err := newCacheManager(cfg)
	if err != nil {
		return nil, opts, err
	}
	runner, err := newHookRunner(cfg)
	if err != nil {
		return nil, opts, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, opts, err
	}

	reportDir := flags.reportDir
	if reportDir == "" {
		reportDir = cfg.Settings.ReportDir
	}
	renderer, err := chart.NewRenderer(reportDir)
	if err != nil {
		return nil, opts, err
	}

	window, err := resolveWindow(cfg, flags.from, flags.to)
	if err != nil {
		return nil, opts, err
	}

	concurrency := flags.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Settings.MaxConcurrent
	}

	dumpPath := ""
	if !flags.noDump {
		dumpPath = filepath.Join(reportDir, cfg.Settings.DataDump)
	}

	orch := &orchestrator.Orchestrator{
		Devices:    client,
		Logs:       client,
		Builder:    series.NewBuilder(loc, cfg.Series.ExcludedCodes),
		Renderer:   renderer,
		Cache:      store,
		HookRunner: runner,
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			logger.Debug(e.Phase, logger.Fields{"id": e.ID, "msg": e.Msg})
		}},
	}

	opts = orchestrator.GraphOptions{
		Filter:      model.ResolveRequest{DeviceID: flags.deviceID, NameFilter: flags.nameFilter},
		Window:      window,
		Codes:       flags.codes,
		ReportDir:   reportDir,
		DumpPath:    dumpPath,
		Concurrency: concurrency,
		DryRun:      flags.dryRun,
		NoCache:     flags.noCache,
	}
	return orch, opts, nil
}
