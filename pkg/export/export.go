// Package export persists fetched cloud data: raw JSON dumps for later
// reprocessing and compressed bundles of rendered reports.
package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/Mause/tuya-graphing/pkg/model"
	"github.com/mholt/archives"
)

// Dump is everything one run fetched, in a shape that reloads cleanly.
type Dump struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Devices     []DeviceDump `json:"devices"`
}

// DeviceDump pairs a device with the raw events fetched for it.
type DeviceDump struct {
	Device model.Device  `json:"device"`
	Events []model.Event `json:"events,omitempty"`
}

// Add appends one device's data to the dump.
func (d *Dump) Add(device model.Device, events []model.Event) {
	d.Devices = append(d.Devices, DeviceDump{Device: device, Events: events})
}

// WriteDump writes the dump as indented JSON, devices sorted by id so
// successive dumps diff cleanly. The write goes through a temp file.
func WriteDump(path string, dump *Dump) error {
	if path == "" {
		return errors.Wrap(errors.ErrInvalidPath, "dump path")
	}

	sort.Slice(dump.Devices, func(i, j int) bool {
		return dump.Devices[i].Device.ID < dump.Devices[j].Device.ID
	})

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding data dump")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrExportWrite, err.Error())
	}

	tmp, err := os.CreateTemp(dir, ".dump-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrExportWrite, err.Error())
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrExportWrite, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrExportWrite, err.Error())
	}
	if err := fsutil.Move(tmpPath, path); err != nil {
		return errors.Wrap(errors.ErrExportWrite, err.Error())
	}

	logger.Debug("Data dump written", logger.Fields{"path": path, "devices": len(dump.Devices)})
	return nil
}

// ReadDump loads a previously written dump.
func ReadDump(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading dump %s", path)
	}
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, errors.Wrapf(err, "parsing dump %s", path)
	}
	return &dump, nil
}

// Bundle packs sourceDir into a tar.gz archive at archivePath.
func Bundle(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return errors.Wrap(errors.ErrBundleCreate, err.Error())
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return errors.Wrap(errors.ErrBundleCreate, err.Error())
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrapf(errors.ErrBundleCreate, "creating %s", archivePath)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return errors.Wrap(errors.ErrBundleCreate, err.Error())
	}

	logger.Debug("Report bundle created", logger.Fields{"path": archivePath})
	return nil
}
