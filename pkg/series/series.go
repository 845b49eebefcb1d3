package series

import (
	"sort"
	"strconv"
	"time"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/model"
)

// Kind is the inferred value type of a series.
type Kind int

const (
	// KindInt is a numeric series, e.g. cur_power or va_temperature.
	KindInt Kind = iota
	// KindBool is an on/off series. A series is boolean when any of its raw
	// values is the literal "true" or "false".
	KindBool
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindBool {
		return "bool"
	}
	return "int"
}

// Point is one sample of a series, localized to the builder's timezone.
// Boolean samples carry 0 or 1.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is all samples of one status code, in ascending time order.
type Series struct {
	Code   string  `json:"code"`
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
}

// Frame is the plottable data of one device.
type Frame struct {
	DeviceID   string   `json:"device_id"`
	DeviceName string   `json:"device_name"`
	Series     []Series `json:"series"`
}

// Empty reports whether the frame holds no series at all.
func (f *Frame) Empty() bool {
	return len(f.Series) == 0
}

// Builder turns raw report-log events into typed frames.
type Builder struct {
	loc      *time.Location
	excluded map[string]struct{}
}

// NewBuilder creates a builder that localizes samples to loc and drops the
// given status codes. A nil loc means UTC.
func NewBuilder(loc *time.Location, excludedCodes []string) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	excluded := make(map[string]struct{}, len(excludedCodes))
	for _, code := range excludedCodes {
		excluded[code] = struct{}{}
	}
	return &Builder{loc: loc, excluded: excluded}
}

// Excluded reports whether a status code is dropped from frames.
func (b *Builder) Excluded(code string) bool {
	_, ok := b.excluded[code]
	return ok
}

// Build groups a device's events by status code and converts each group into
// a typed series. Codes with no parseable events fail the whole build; a
// device with no plottable codes yields an empty frame.
func (b *Builder) Build(device model.Device, events []model.Event) (*Frame, error) {
	frame := &Frame{DeviceID: device.ID, DeviceName: device.Name}

	grouped := map[string][]model.Event{}
	order := []string{}
	for _, ev := range events {
		if b.Excluded(ev.Code) {
			continue
		}
		if _, seen := grouped[ev.Code]; !seen {
			order = append(order, ev.Code)
		}
		grouped[ev.Code] = append(grouped[ev.Code], ev)
	}

	for _, code := range order {
		s, err := b.buildSeries(code, grouped[code])
		if err != nil {
			return nil, err
		}
		if len(s.Points) == 0 {
			continue
		}
		frame.Series = append(frame.Series, s)
	}

	if frame.Empty() {
		logger.Debug("Device yielded no plottable series", logger.Fields{"device_id": device.ID})
	}
	return frame, nil
}

// buildSeries infers the value kind of one code's events and converts them.
func (b *Builder) buildSeries(code string, events []model.Event) (Series, error) {
	s := Series{Code: code, Kind: inferKind(events)}

	for _, ev := range events {
		var value float64
		switch s.Kind {
		case KindBool:
			// Mixed series happen when a firmware update changes a code's
			// type mid-window; treat everything that is not "true" as off.
			if ev.Value == "true" {
				value = 1
			}
		case KindInt:
			n, err := strconv.ParseInt(ev.Value, 10, 64)
			if err != nil {
				return Series{}, errors.Wrapf(errors.ErrUnparsableValue,
					"code %s value %q", code, ev.Value)
			}
			value = float64(n)
		}
		s.Points = append(s.Points, Point{Time: ev.EventTime.In(b.loc), Value: value})
	}

	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Time.Before(s.Points[j].Time)
	})
	return s, nil
}

// inferKind decides whether a series is boolean or numeric. A single
// boolean literal makes the whole series boolean.
func inferKind(events []model.Event) Kind {
	for _, ev := range events {
		if ev.Value == "true" || ev.Value == "false" {
			return KindBool
		}
	}
	return KindInt
}
