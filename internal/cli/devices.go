package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	pkgerrors "github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/model"
	"github.com/spf13/cobra"
)

// NewDevicesCmd creates the devices command.
func NewDevicesCmd() *cobra.Command {
	var (
		nameFilter string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices",
		Long: `List all devices associated with the configured cloud project.

By default, shows every device with id, name, product and status codes.
Use --name to filter devices by name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDevices(cmd, nameFilter, noCache)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter devices by name (partial match)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the response cache")

	return cmd
}

func runDevices(cmd *cobra.Command, nameFilter string, noCache bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	store, err := newCacheManager(cfg)
	if err != nil {
		return err
	}

	var devices []model.Device
	if !noCache {
		if err := store.GetDevices(&devices); err != nil && !errors.Is(err, pkgerrors.ErrCacheMiss) {
			return err
		}
	}
	if devices == nil {
		devices, err = client.ListDevices(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.PutDevices(devices); err != nil {
			return err
		}
	}

	filter := model.ResolveRequest{NameFilter: nameFilter}
	var matched []model.Device
	for _, dev := range devices {
		if filter.Matches(dev) {
			matched = append(matched, dev)
		}
	}

	if cfg.Settings.OutputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(matched)
	}

	if len(matched) == 0 {
		fmt.Println("No devices found")
		return nil
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "ID\tNAME\tPRODUCT\tSTATUS CODES")
	for _, dev := range matched {
		name := dev.Name
		if len(name) > MaxNameLength {
			name = name[:MaxNameLength-3] + "..."
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\n",
			dev.ID, name, dev.ProductName, strings.Join(dev.StatusCodes(), ","))
	}
	return tabWriter.Flush()
}
