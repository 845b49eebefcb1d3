package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Mause/tuya-graphing/pkg/config"
	"github.com/Mause/tuya-graphing/pkg/model"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the logs command.
func NewLogsCmd() *cobra.Command {
	var (
		from  string
		to    string
		codes []string
	)

	cmd := &cobra.Command{
		Use:   "logs DEVICE_ID",
		Short: "Show a device's report logs",
		Long: `Fetch and display the status report log of one device.

Without --from/--to the window covers today, midnight to now, in the
configured timezone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, args[0], from, to, codes)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&codes, "codes", nil, "Only fetch these status codes")

	return cmd
}

func runLogs(cmd *cobra.Command, deviceID, from, to string, codes []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	window, err := resolveWindow(cfg, from, to)
	if err != nil {
		return err
	}

	events, err := client.GetReportLogs(cmd.Context(), deviceID, codes, window)
	if err != nil {
		return err
	}

	if cfg.Settings.OutputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No events in window")
		return nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "TIME\tCODE\tVALUE")
	for _, ev := range events {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n",
			ev.EventTime.In(loc).Format(EventTimeFormat), ev.Code, ev.Value)
	}
	return tabWriter.Flush()
}

// resolveWindow builds the log window from --from/--to, defaulting to today
// in the configured timezone.
func resolveWindow(cfg *config.Config, from, to string) (model.LogWindow, error) {
	loc, err := cfg.Location()
	if err != nil {
		return model.LogWindow{}, err
	}

	now := time.Now().In(loc)
	window := model.TodayWindow(now)

	if from != "" {
		start, err := parseTimeFlag(from, loc)
		if err != nil {
			return model.LogWindow{}, fmt.Errorf("invalid --from: %w", err)
		}
		window.Start = start
	}
	if to != "" {
		end, err := parseTimeFlag(to, loc)
		if err != nil {
			return model.LogWindow{}, fmt.Errorf("invalid --to: %w", err)
		}
		window.End = end
	}

	if err := window.Validate(); err != nil {
		return model.LogWindow{}, err
	}
	return window, nil
}

// parseTimeFlag accepts RFC3339 timestamps or plain dates.
func parseTimeFlag(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if !strings.Contains(value, "T") {
		if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q (want RFC3339 or YYYY-MM-DD)", value)
}
