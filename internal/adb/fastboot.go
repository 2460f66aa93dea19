package adb

import (
	"context"
	"fmt"
	"strings"
)

// FastbootClient wraps fastboot calls. It shares adb's error types.
type FastbootClient struct {
	runner
}

// NewFastbootClient creates a client for the fastboot executable at path.
func NewFastbootClient(path string, opts ...Option) *FastbootClient {
	return &FastbootClient{runner: newRunner(path, opts)}
}

// Ready reports whether the executable exists.
func (f *FastbootClient) Ready() bool {
	return f.ready()
}

// Run invokes fastboot with args and returns standard output.
func (f *FastbootClient) Run(ctx context.Context, args ...string) (string, error) {
	return f.run(ctx, args)
}

// Devices lists devices in bootloader mode.
func (f *FastbootClient) Devices(ctx context.Context) ([]Device, error) {
	out, err := f.Run(ctx, "devices")
	if err != nil {
		return nil, fmt.Errorf("fastboot devices: %w", err)
	}
	return parseFastbootDevices(out), nil
}

// parseFastbootDevices parses `fastboot devices`, which has no header.
func parseFastbootDevices(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, Device{
			Serial:   fields[0],
			State:    fields[1],
			ConnType: ConnTypeOf(fields[0]),
		})
	}
	return devices
}
