package adb

import "strings"

// ConnectionType indicates how a device is connected.
type ConnectionType string

const (
	USB  ConnectionType = "usb"
	WiFi ConnectionType = "wifi"
)

// mdnsConnectSuffix is the service type wireless-debugging devices
// advertise; such serials have no host:port separator.
const mdnsConnectSuffix = "._adb-tls-connect._tcp"

// Device represents a connected ADB device.
type Device struct {
	Serial      string         `json:"id"`
	State       string         `json:"status"` // "device", "offline", "unauthorized", etc.
	ConnType    ConnectionType `json:"connectionType"`
	Model       string         `json:"model,omitempty"`
	Product     string         `json:"product,omitempty"`
	TransportID string         `json:"transportId,omitempty"`
}

// IsOnline returns true if the device is in "device" state (ready).
func (d Device) IsOnline() bool {
	return d.State == "device"
}

// ConnTypeOf derives the connection kind from a serial.
func ConnTypeOf(serial string) ConnectionType {
	if strings.Contains(serial, ":") ||
		strings.HasSuffix(strings.TrimSuffix(serial, "."), mdnsConnectSuffix) {
		return WiFi
	}
	return USB
}

// DeviceInfo is a summary of build properties read from a device.
type DeviceInfo struct {
	Serial         string `json:"serialNumber"`
	Model          string `json:"model"`
	Manufacturer   string `json:"manufacturer"`
	Brand          string `json:"brand"`
	AndroidVersion string `json:"androidVersion"`
	SDKVersion     string `json:"sdkVersion"`
	SecurityPatch  string `json:"securityPatch"`
	BuildNumber    string `json:"buildNumber"`
	Board          string `json:"board"`
	CPU            string `json:"cpu"`
	Resolution     string `json:"resolution,omitempty"`
	KernelVersion  string `json:"kernelVersion,omitempty"`
}
