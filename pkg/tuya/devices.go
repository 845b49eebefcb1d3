package tuya

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/model"
)

const (
	devicesPath    = "/v1.0/iot-01/associated-users/devices"
	devicePageSize = 100
	devicePathByID = "/v1.0/iot-03/devices/"
)

// ListDevices returns every device associated with the project's linked
// users, walking all pages of the listing.
func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	lastRowKey := ""

	for {
		query := url.Values{"size": {strconv.Itoa(devicePageSize)}}
		if lastRowKey != "" {
			query.Set("last_row_key", lastRowKey)
		}

		resp, err := get[devicePage](ctx, c, devicesPath, query)
		if err != nil {
			return nil, errors.Wrap(err, "listing devices")
		}

		for _, w := range resp.Result.Devices {
			devices = append(devices, deviceFromWire(w))
		}

		if !resp.Result.HasMore || resp.Result.LastRowKey == "" {
			break
		}
		lastRowKey = resp.Result.LastRowKey
	}

	logger.Debug("Device listing complete", logger.Fields{"count": len(devices)})
	return devices, nil
}

// GetDevice fetches a single device by its id.
func (c *Client) GetDevice(ctx context.Context, deviceID string) (*model.Device, error) {
	resp, err := get[deviceWire](ctx, c, devicePathByID+deviceID, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching device %s", deviceID)
	}
	if resp.Result.ID == "" {
		return nil, errors.Wrapf(errors.ErrDeviceNotFound, "device %s", deviceID)
	}
	dev := deviceFromWire(resp.Result)
	return &dev, nil
}

// deviceFromWire converts a wire record into the local model.
func deviceFromWire(w deviceWire) model.Device {
	dev := model.Device{
		ID:          w.ID,
		Name:        w.Name,
		ProductName: w.ProductName,
		Model:       w.Model,
	}
	if len(w.Status) > 0 {
		dev.Status = make([]model.DeviceStatus, 0, len(w.Status))
		for _, s := range w.Status {
			dev.Status = append(dev.Status, model.DeviceStatus{Code: s.Code, Value: s.Value})
		}
	}
	return dev
}
