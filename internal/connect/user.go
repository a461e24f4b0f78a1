package connect

import (
	"context"
	"errors"
	"net/http"
)

// UserProfile is the account's social profile record.
type UserProfile struct {
	ID                   int64  `json:"id"`
	ProfileID            int64  `json:"profileId"`
	GarminGUID           string `json:"garminGUID,omitempty"`
	DisplayName          string `json:"displayName"`
	FullName             string `json:"fullName,omitempty"`
	UserName             string `json:"userName,omitempty"`
	Location             string `json:"location,omitempty"`
	ProfileImageURLLarge string `json:"profileImageUrlLarge,omitempty"`
	UserLevel            int    `json:"userLevel,omitempty"`
}

// Device is a registered tracker or watch.
type Device struct {
	DeviceID               int64  `json:"deviceId"`
	ProductDisplayName     string `json:"productDisplayName"`
	SerialNumber           int64  `json:"serialNumber,omitempty"`
	CurrentFirmwareVersion string `json:"currentFirmwareVersion,omitempty"`
	DeviceTypePk           int64  `json:"deviceTypePk,omitempty"`
	LastUploadTime         int64  `json:"lastUploadTime,omitempty"`
}

// FetchUserProfile retrieves the authenticated account's profile.
func (c *Client) FetchUserProfile(ctx context.Context) (*UserProfile, error) {
	var payload UserProfile
	if err := c.do(ctx, http.MethodGet, "/userprofile-service/socialProfile", &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}

// FetchDevices retrieves the devices registered to the account.
func (c *Client) FetchDevices(ctx context.Context) ([]Device, error) {
	var payload []Device
	if err := c.do(ctx, http.MethodGet, "/device-service/deviceregistration/devices", &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}
