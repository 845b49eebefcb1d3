package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeviceStatusCodes(t *testing.T) {
	dev := &Device{
		ID:   "bf1",
		Name: "Heater",
		Status: []DeviceStatus{
			{Code: "switch", Value: true},
			{Code: "va_temperature", Value: 215},
		},
	}

	assert.True(t, dev.HasStatus())
	assert.Equal(t, []string{"switch", "va_temperature"}, dev.StatusCodes())
}

func TestDeviceWithoutStatus(t *testing.T) {
	dev := &Device{ID: "bf2", Name: "Hub"}
	assert.False(t, dev.HasStatus())
	assert.Empty(t, dev.StatusCodes())
}

func TestLogWindowValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		window  LogWindow
		wantErr bool
	}{
		{
			name:   "valid window",
			window: LogWindow{Start: now.Add(-time.Hour), End: now},
		},
		{
			name:    "reversed window",
			window:  LogWindow{Start: now, End: now.Add(-time.Hour)},
			wantErr: true,
		},
		{
			name:    "empty window",
			window:  LogWindow{Start: now, End: now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTodayWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	w := TodayWindow(now)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)
	assert.NoError(t, w.Validate())
}

func TestResolveRequestMatches(t *testing.T) {
	dev := Device{ID: "bf1", Name: "Living Room Plug"}

	tests := []struct {
		name string
		req  ResolveRequest
		want bool
	}{
		{name: "empty request matches", req: ResolveRequest{}, want: true},
		{name: "matching id", req: ResolveRequest{DeviceID: "bf1"}, want: true},
		{name: "other id", req: ResolveRequest{DeviceID: "bf2"}, want: false},
		{name: "name substring case-insensitive", req: ResolveRequest{NameFilter: "living"}, want: true},
		{name: "name mismatch", req: ResolveRequest{NameFilter: "bedroom"}, want: false},
		{name: "id and name must both match", req: ResolveRequest{DeviceID: "bf1", NameFilter: "bedroom"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Matches(dev))
		})
	}
}
