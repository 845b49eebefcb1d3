// Package cache stores API responses on disk so repeated runs inside the TTL
// window skip the cloud round trip.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
)

const (
	deviceDir = "devices"
	logDir    = "logs"
)

// Manager is a TTL'd JSON cache rooted at one directory, with separate
// subdirectories for device listings and report logs.
type Manager struct {
	directory string
	ttl       time.Duration
	now       func() time.Time
}

// NewManager creates a cache manager. A zero ttl disables expiry.
func NewManager(directory string, ttl time.Duration) (*Manager, error) {
	if directory == "" {
		return nil, errors.ErrCacheDirectory
	}
	return &Manager{directory: directory, ttl: ttl, now: time.Now}, nil
}

// NewDefaultManager creates a cache manager under the user cache directory.
func NewDefaultManager(ttl time.Duration) (*Manager, error) {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user cache directory")
	}
	if err := os.MkdirAll(cacheDir, fsutil.DirModeSecure); err != nil {
		return nil, errors.Wrap(err, "failed to create cache directory")
	}
	return NewManager(cacheDir, ttl)
}

// GetDirectory returns the cache root.
func (m *Manager) GetDirectory() string {
	return m.directory
}

// PutDevices stores the device listing payload.
func (m *Manager) PutDevices(value interface{}) error {
	return m.put(deviceDir, "listing", value)
}

// GetDevices loads the device listing into dest. Returns ErrCacheMiss when
// absent or expired.
func (m *Manager) GetDevices(dest interface{}) error {
	return m.get(deviceDir, "listing", dest)
}

// PutLogs stores one device's report-log payload under a key derived from
// the device id and the requested window.
func (m *Manager) PutLogs(deviceID, windowKey string, value interface{}) error {
	return m.put(logDir, logKey(deviceID, windowKey), value)
}

// GetLogs loads one device's report-log payload into dest.
func (m *Manager) GetLogs(deviceID, windowKey string, dest interface{}) error {
	return m.get(logDir, logKey(deviceID, windowKey), dest)
}

// Clean removes cached files according to the specified options.
func (m *Manager) Clean(options CleanOptions) (*CleanResult, error) {
	result := &CleanResult{}

	if !options.Devices && !options.Logs {
		options.All = true
	}

	if options.All || options.Devices {
		size, err := m.cleanSubdir(deviceDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.DeviceFreed = size
		result.TotalFreed += size
	}

	if options.All || options.Logs {
		size, err := m.cleanSubdir(logDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.LogFreed = size
		result.TotalFreed += size
	}

	return result, nil
}

// GetInfo returns information about the cache contents.
func (m *Manager) GetInfo() (*Info, error) {
	info := &Info{Directory: m.directory}

	deviceSize, deviceFiles, err := getDirSizeAndFiles(filepath.Join(m.directory, deviceDir))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCacheInfo, err.Error())
	}
	info.DeviceSize = deviceSize
	info.DeviceFiles = deviceFiles

	logSize, logFiles, err := getDirSizeAndFiles(filepath.Join(m.directory, logDir))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCacheInfo, err.Error())
	}
	info.LogSize = logSize
	info.LogFiles = logFiles

	info.TotalSize = info.DeviceSize + info.LogSize
	return info, nil
}

func (m *Manager) put(subdir, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "encoding cache entry")
	}
	data, err := json.Marshal(envelope{StoredAt: m.now(), Payload: payload})
	if err != nil {
		return errors.Wrap(err, "encoding cache envelope")
	}

	dir := filepath.Join(m.directory, subdir)
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}
	return os.WriteFile(filepath.Join(dir, key+".json"), data, fsutil.FileModeSecure)
}

func (m *Manager) get(subdir, key string, dest interface{}) error {
	path := filepath.Join(m.directory, subdir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrCacheMiss
		}
		return errors.Wrapf(err, "reading cache entry %s", path)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A corrupt entry reads as a miss; the next put overwrites it.
		return errors.ErrCacheMiss
	}
	if m.ttl > 0 && m.now().Sub(env.StoredAt) > m.ttl {
		return errors.ErrCacheMiss
	}
	return json.Unmarshal(env.Payload, dest)
}

func (m *Manager) cleanSubdir(subdir string) (int64, error) {
	dir := filepath.Join(m.directory, subdir)

	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return size, err
	}
	return size, nil
}

// logKey hashes the window so arbitrary time ranges map to filesystem-safe
// names.
func logKey(deviceID, windowKey string) string {
	sum := sha256.Sum256([]byte(windowKey))
	return deviceID + "-" + hex.EncodeToString(sum[:8])
}

// getDirSizeAndFiles calculates directory size and file count.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	return size, count, err
}
