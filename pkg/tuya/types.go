package tuya

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Millis is a timestamp carried as epoch milliseconds on the wire, the only
// time representation the OpenAPI speaks.
type Millis struct {
	time.Time
}

// NewMillis wraps a time.Time.
func NewMillis(t time.Time) Millis {
	return Millis{Time: t}
}

// UnmarshalJSON accepts an integer millisecond timestamp.
func (m *Millis) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("timestamp must be epoch milliseconds: %w", err)
	}
	m.Time = time.UnixMilli(ms)
	return nil
}

// MarshalJSON emits the timestamp as epoch milliseconds.
func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.UnixMilli(), 10)), nil
}

// Param formats the timestamp for use as a query parameter.
func (m Millis) Param() string {
	return strconv.FormatInt(m.UnixMilli(), 10)
}

// FlexString decodes a JSON scalar of any type into its string form. Report
// logs deliver values as strings, but some firmwares emit raw numbers or
// booleans for the same codes.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("unsupported scalar value: %s", string(data))
}

// Response is the envelope every OpenAPI endpoint wraps its payload in.
type Response[T any] struct {
	Result  T      `json:"result"`
	Success bool   `json:"success"`
	T       Millis `json:"t"`
	Code    int    `json:"code,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// tokenResult is the payload of the token grant endpoint.
type tokenResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UID          string `json:"uid"`
	ExpireTime   int64  `json:"expire_time"` // seconds until expiry
}

// statusWire mirrors one entry of a device status array.
type statusWire struct {
	Code  string      `json:"code"`
	Value interface{} `json:"value"`
}

// deviceWire mirrors one device record of the device list endpoint.
type deviceWire struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ProductName string       `json:"product_name"`
	Model       string       `json:"model"`
	Status      []statusWire `json:"status"`
}

// devicePage is the paginated result of the associated-users device listing.
type devicePage struct {
	Devices    []deviceWire `json:"devices"`
	HasMore    bool         `json:"has_more"`
	LastRowKey string       `json:"last_row_key"`
	TotalPages int          `json:"total_pages"`
}

// eventWire mirrors one report-log entry.
type eventWire struct {
	Code      string     `json:"code"`
	EventTime Millis     `json:"event_time"`
	Value     FlexString `json:"value"`
}

// logPage is the paginated result of the report-logs endpoint.
type logPage struct {
	DeviceID   string      `json:"device_id"`
	HasMore    bool        `json:"has_more"`
	LastRowKey string      `json:"last_row_key"`
	Total      int         `json:"total"`
	List       []eventWire `json:"list"`
}
