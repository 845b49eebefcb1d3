// Package model provides the shared data structures for devices, status
// reports, and log events, independent of the cloud wire format.
package model

import (
	"strings"
	"time"

	"github.com/Mause/tuya-graphing/pkg/errors"
)

// DeviceStatus is a single status data point reported by a device, e.g.
// {code: "va_temperature", value: 215}.
type DeviceStatus struct {
	Code  string      `json:"code"`
	Value interface{} `json:"value"`
}

// Device describes a cloud-registered device and its current status set.
type Device struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ProductName string         `json:"product_name"`
	Model       string         `json:"model"`
	Status      []DeviceStatus `json:"status"`
}

// HasStatus reports whether the device publishes any status codes at all.
// Devices without status entries cannot produce report logs.
func (d *Device) HasStatus() bool {
	return len(d.Status) > 0
}

// StatusCodes returns the status codes the device reports, in order.
func (d *Device) StatusCodes() []string {
	codes := make([]string, len(d.Status))
	for i, s := range d.Status {
		codes[i] = s.Code
	}
	return codes
}

// Event is one report-log entry for a device: a status code, the time it was
// reported, and the raw value as the cloud delivered it.
type Event struct {
	Code      string    `json:"code"`
	EventTime time.Time `json:"event_time"`
	Value     string    `json:"value"`
}

// LogWindow is the half-open time span [Start, End) a log query covers.
type LogWindow struct {
	Start time.Time
	End   time.Time
}

// TodayWindow returns a window from local midnight until now, matching the
// default reporting span of the CLI.
func TodayWindow(now time.Time) LogWindow {
	year, month, day := now.Date()
	return LogWindow{
		Start: time.Date(year, month, day, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Validate checks that the window is non-empty and correctly ordered.
func (w LogWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return errors.ErrInvalidTimeSpan
	}
	return nil
}

// ResolveRequest selects which devices a pipeline run should cover.
// An empty request matches every device.
type ResolveRequest struct {
	// DeviceID selects a single device by cloud id.
	DeviceID string
	// NameFilter selects devices whose name contains the given substring.
	NameFilter string
}

// Matches reports whether the device satisfies the request.
func (r ResolveRequest) Matches(d Device) bool {
	if r.DeviceID != "" && d.ID != r.DeviceID {
		return false
	}
	if r.NameFilter != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(r.NameFilter)) {
		return false
	}
	return true
}
