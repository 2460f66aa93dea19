package adb

import (
	"regexp"
	"strings"
)

// ParseDevices parses `adb devices` output. The first line is the header
// and is always dropped; lines with fewer than two fields are skipped.
func ParseDevices(output string) []Device {
	var devices []Device
	lines := strings.Split(output, "\n")
	// lines[0] is the header
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{
			Serial:   fields[0],
			State:    fields[1],
			ConnType: ConnTypeOf(fields[0]),
		}
		// `devices -l` appends key:value pairs
		for _, f := range fields[2:] {
			key, value, ok := strings.Cut(f, ":")
			if !ok {
				continue
			}
			switch key {
			case "model":
				d.Model = value
			case "product":
				d.Product = value
			case "transport_id":
				d.TransportID = value
			}
		}
		devices = append(devices, d)
	}
	return devices
}

var getpropLine = regexp.MustCompile(`^\[([^\]]+)\]: \[(.*)\]$`)

// parseGetprop parses `getprop` output of the form `[key]: [value]`.
func parseGetprop(output string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		m := getpropLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		props[m[1]] = m[2]
	}
	return props
}

func deviceInfoFromProps(p map[string]string) DeviceInfo {
	return DeviceInfo{
		Serial:         p["ro.serialno"],
		Model:          p["ro.product.model"],
		Manufacturer:   p["ro.product.manufacturer"],
		Brand:          p["ro.product.brand"],
		AndroidVersion: p["ro.build.version.release"],
		SDKVersion:     p["ro.build.version.sdk"],
		SecurityPatch:  p["ro.build.version.security_patch"],
		BuildNumber:    p["ro.build.display.id"],
		Board:          p["ro.product.board"],
		CPU:            p["ro.product.cpu.abi"],
	}
}

// parseWmSize returns the effective resolution from `wm size`, preferring
// an override over the physical size.
func parseWmSize(output string) string {
	var physical, override string
	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Physical size":
			physical = strings.TrimSpace(value)
		case "Override size":
			override = strings.TrimSpace(value)
		}
	}
	if override != "" {
		return override
	}
	return physical
}
