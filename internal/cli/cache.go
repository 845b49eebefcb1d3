package cli

import (
	"fmt"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/cache"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
		Long:  "Clean, show information about, and manage the cloud response cache",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all     bool
		devices bool
		logs    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the response cache",
		Long:  "Remove cached cloud responses to force fresh fetches",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCacheClean(all, devices, logs)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean all cached responses")
	cmd.Flags().BoolVar(&devices, "devices", false, "Clean only the device listing")
	cmd.Flags().BoolVar(&logs, "logs", false, "Clean only report logs")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display information about the response cache",
		RunE:  runCacheInfo,
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		RunE:  runCacheDir,
	}
}

func runCacheClean(all, devices, logs bool) error {
	manager, err := cliCacheManager()
	if err != nil {
		return err
	}

	result, err := manager.Clean(cache.CleanOptions{All: all, Devices: devices, Logs: logs})
	if err != nil {
		return err
	}

	if result.DeviceFreed > 0 {
		logger.Info("Cleaned device listing", logger.Fields{"size": humanize.Bytes(uint64(result.DeviceFreed))})
	}
	if result.LogFreed > 0 {
		logger.Info("Cleaned report logs", logger.Fields{"size": humanize.Bytes(uint64(result.LogFreed))})
	}

	logger.Success("Cache cleaning completed", logger.Fields{"total_freed": humanize.Bytes(uint64(result.TotalFreed))})
	return nil
}

func runCacheInfo(*cobra.Command, []string) error {
	manager, err := cliCacheManager()
	if err != nil {
		return err
	}

	info, err := manager.GetInfo()
	if err != nil {
		return err
	}

	fmt.Printf("Cache Directory: %s\n", info.Directory)
	fmt.Printf("Total Size: %s\n", humanize.Bytes(uint64(info.TotalSize)))
	fmt.Printf("Device Listing: %s (%d files)\n", humanize.Bytes(uint64(info.DeviceSize)), info.DeviceFiles)
	fmt.Printf("Report Logs: %s (%d files)\n", humanize.Bytes(uint64(info.LogSize)), info.LogFiles)

	return nil
}

func runCacheDir(*cobra.Command, []string) error {
	manager, err := cliCacheManager()
	if err != nil {
		return err
	}
	fmt.Println(manager.GetDirectory())
	return nil
}

func cliCacheManager() (*cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newCacheManager(cfg)
}
