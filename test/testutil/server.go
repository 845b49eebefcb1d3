package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// FakeCloud is an in-memory stand-in for the Tuya OpenAPI. It answers the
// token grant, the associated-users device listing, and per-device report
// logs, and records every request it sees.
type FakeCloud struct {
	mu sync.Mutex

	server *httptest.Server

	// Devices is the device listing, served in pages of PageSize.
	Devices []FakeDevice
	// Logs maps device id to the report-log entries returned for it.
	Logs map[string][]FakeEvent
	// PageSize controls pagination of both listings. Zero means everything
	// in one page.
	PageSize int
	// TokenExpire is the expire_time reported by the token grant, in seconds.
	TokenExpire int64
	// FailNext makes the next n business requests answer HTTP 500.
	FailNext int
	// RejectToken makes business requests answer the token-invalid business
	// code until a new token is granted.
	RejectToken bool

	tokenSeq   int
	Requests   []string
	TokenCalls int
}

// FakeDevice is one device record of the fake listing.
type FakeDevice struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ProductName string       `json:"product_name"`
	Model       string       `json:"model"`
	Status      []FakeStatus `json:"status,omitempty"`
}

// FakeStatus is one status entry of a fake device.
type FakeStatus struct {
	Code  string      `json:"code"`
	Value interface{} `json:"value"`
}

// FakeEvent is one report-log entry of the fake logs.
type FakeEvent struct {
	Code      string `json:"code"`
	EventTime int64  `json:"event_time"`
	Value     string `json:"value"`
}

// NewFakeCloud starts the fake API and registers its shutdown with t.
func NewFakeCloud(t *testing.T) *FakeCloud {
	t.Helper()

	fc := &FakeCloud{
		Logs:        map[string][]FakeEvent{},
		TokenExpire: 7200,
	}
	fc.server = httptest.NewServer(http.HandlerFunc(fc.handle))
	t.Cleanup(fc.server.Close)
	return fc
}

// URL returns the base URL clients should use as their host.
func (fc *FakeCloud) URL() string {
	return fc.server.URL
}

func (fc *FakeCloud) handle(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.Requests = append(fc.Requests, r.URL.Path)

	if r.Header.Get("client_id") == "" || r.Header.Get("sign") == "" || r.Header.Get("t") == "" {
		writeEnvelope(w, false, 1004, "sign invalid", nil)
		return
	}

	if r.URL.Path == "/v1.0/token" {
		fc.TokenCalls++
		fc.tokenSeq++
		fc.RejectToken = false
		writeEnvelope(w, true, 0, "", map[string]interface{}{
			"access_token":  fmt.Sprintf("token-%d", fc.tokenSeq),
			"refresh_token": "refresh",
			"uid":           "uid",
			"expire_time":   fc.TokenExpire,
		})
		return
	}

	if fc.FailNext > 0 {
		fc.FailNext--
		http.Error(w, "upstream error", http.StatusInternalServerError)
		return
	}
	if fc.RejectToken || r.Header.Get("access_token") == "" {
		writeEnvelope(w, false, 1010, "token invalid", nil)
		return
	}

	switch {
	case r.URL.Path == "/v1.0/iot-01/associated-users/devices":
		fc.handleDevices(w, r)
	case strings.HasPrefix(r.URL.Path, "/v1.0/iot-03/devices/") && strings.HasSuffix(r.URL.Path, "/report-logs"):
		deviceID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1.0/iot-03/devices/"), "/report-logs")
		fc.handleLogs(w, r, deviceID)
	default:
		writeEnvelope(w, false, 1106, "permission deny", nil)
	}
}

func (fc *FakeCloud) handleDevices(w http.ResponseWriter, r *http.Request) {
	start := 0
	if key := r.URL.Query().Get("last_row_key"); key != "" {
		fmt.Sscanf(key, "row-%d", &start)
	}

	end := len(fc.Devices)
	if fc.PageSize > 0 && start+fc.PageSize < end {
		end = start + fc.PageSize
	}

	page := fc.Devices[start:end]
	hasMore := end < len(fc.Devices)
	result := map[string]interface{}{
		"devices":     page,
		"has_more":    hasMore,
		"total_pages": 1,
	}
	if hasMore {
		result["last_row_key"] = fmt.Sprintf("row-%d", end)
	}
	writeEnvelope(w, true, 0, "", result)
}

func (fc *FakeCloud) handleLogs(w http.ResponseWriter, r *http.Request, deviceID string) {
	events := fc.Logs[deviceID]

	start := 0
	if key := r.URL.Query().Get("last_row_key"); key != "" {
		fmt.Sscanf(key, "row-%d", &start)
	}

	end := len(events)
	if fc.PageSize > 0 && start+fc.PageSize < end {
		end = start + fc.PageSize
	}

	hasMore := end < len(events)
	result := map[string]interface{}{
		"device_id": deviceID,
		"list":      events[start:end],
		"has_more":  hasMore,
		"total":     len(events),
	}
	if hasMore {
		result["last_row_key"] = fmt.Sprintf("row-%d", end)
	}
	writeEnvelope(w, true, 0, "", result)
}

func writeEnvelope(w http.ResponseWriter, success bool, code int, msg string, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	envelope := map[string]interface{}{
		"success": success,
		"t":       time.Now().UnixMilli(),
	}
	if result != nil {
		envelope["result"] = result
	}
	if !success {
		envelope["code"] = code
		envelope["msg"] = msg
	}
	_ = json.NewEncoder(w).Encode(envelope)
}
