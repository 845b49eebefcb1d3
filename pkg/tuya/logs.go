package tuya

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/model"
)

const logPageSize = 100

// GetReportLogs fetches the status report log of one device for the given
// window, walking all pages. codes narrows the result to the given status
// codes; empty means all codes the device reported.
func (c *Client) GetReportLogs(ctx context.Context, deviceID string, codes []string, window model.LogWindow) ([]model.Event, error) {
	if deviceID == "" {
		return nil, errors.Wrap(errors.ErrDeviceNotFound, "empty device id")
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v1.0/iot-03/devices/%s/report-logs", deviceID)

	var events []model.Event
	lastRowKey := ""
	for {
		query := url.Values{
			"start_time": {NewMillis(window.Start).Param()},
			"end_time":   {NewMillis(window.End).Param()},
			"size":       {strconv.Itoa(logPageSize)},
		}
		if len(codes) > 0 {
			query.Set("codes", strings.Join(codes, ","))
		}
		if lastRowKey != "" {
			query.Set("last_row_key", lastRowKey)
		}

		resp, err := get[logPage](ctx, c, path, query)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching report logs for %s", deviceID)
		}

		for _, w := range resp.Result.List {
			events = append(events, model.Event{
				Code:      w.Code,
				EventTime: w.EventTime.Time,
				Value:     string(w.Value),
			})
		}

		if !resp.Result.HasMore || resp.Result.LastRowKey == "" {
			break
		}
		lastRowKey = resp.Result.LastRowKey
	}

	logger.Debug("Report logs fetched", logger.Fields{
		"device_id": deviceID,
		"events":    len(events),
	})
	return events, nil
}
