package models

// DeviceType is the coarse platform classification of the running client.
type DeviceType string

const (
	DeviceTypeIOS     DeviceType = "ios"
	DeviceTypeAndroid DeviceType = "android"
	DeviceTypeWeb     DeviceType = "web"
	DeviceTypeUnknown DeviceType = "unknown"
)

// Device identifies one client installation. Created once, persisted under a
// global store key, and reused until an explicit reset.
type Device struct {
	ID   string     `json:"id"` // stable "device_" prefix
	Type DeviceType `json:"type"`
	Name string     `json:"name"`
}
