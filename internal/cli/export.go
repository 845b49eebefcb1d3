package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/export"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		reportDir string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bundle rendered reports into an archive",
		Long: `Pack the report directory (charts, index page and raw dump) into a
tar.gz archive for sharing or retention.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, reportDir, output)
		},
	}

	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory to bundle (default from config)")
	cmd.Flags().StringVarP(&output, "output", "f", "", "Archive path (default reports-<date>.tar.gz)")

	return cmd
}

func runExport(cmd *cobra.Command, reportDir, output string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if reportDir == "" {
		reportDir = cfg.Settings.ReportDir
	}
	if _, err := os.Stat(reportDir); err != nil {
		return fmt.Errorf("report directory %s not found; run graph first: %w", reportDir, err)
	}

	if output == "" {
		output = fmt.Sprintf("reports-%s.tar.gz", time.Now().Format("2006-01-02"))
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return err
	}

	if err := export.Bundle(cmd.Context(), reportDir, absOutput); err != nil {
		return err
	}

	logger.Success("Report bundle created", logger.Fields{"path": absOutput})
	return nil
}
