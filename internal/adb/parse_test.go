package adb

import (
	"strings"
	"testing"
)

func TestParseDevices(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Device
	}{
		{
			name:   "single usb device",
			output: "List of devices attached\nserial123\tdevice\n",
			want:   []Device{{Serial: "serial123", State: "device", ConnType: USB}},
		},
		{
			name:   "network device",
			output: "List of devices attached\n192.168.1.5:5555\tdevice\n",
			want:   []Device{{Serial: "192.168.1.5:5555", State: "device", ConnType: WiFi}},
		},
		{
			name:   "mdns device",
			output: "List of devices attached\nadb-R58M-abc._adb-tls-connect._tcp\tdevice\n",
			want: []Device{{
				Serial:   "adb-R58M-abc._adb-tls-connect._tcp",
				State:    "device",
				ConnType: WiFi,
			}},
		},
		{
			name:   "header only",
			output: "List of devices attached\n\n",
			want:   nil,
		},
		{
			name:   "empty",
			output: "",
			want:   nil,
		},
		{
			name:   "truncated line is skipped",
			output: "List of devices attached\nabc\nserial9\tunauthorized\n",
			want:   []Device{{Serial: "serial9", State: "unauthorized", ConnType: USB}},
		},
		{
			name:   "header dropped even when not a header",
			output: "serial0\tdevice\nserial1\toffline\n",
			want:   []Device{{Serial: "serial1", State: "offline", ConnType: USB}},
		},
		{
			name:   "crlf and order preserved",
			output: "List of devices attached\r\nzzz\tdevice\r\naaa\toffline\r\n",
			want: []Device{
				{Serial: "zzz", State: "device", ConnType: USB},
				{Serial: "aaa", State: "offline", ConnType: USB},
			},
		},
		{
			name:   "long listing",
			output: "List of devices attached\nR58M\tdevice usb:1-1 product:a52 model:SM_A525F device:a52q transport_id:3\n",
			want: []Device{{
				Serial:      "R58M",
				State:       "device",
				ConnType:    USB,
				Model:       "SM_A525F",
				Product:     "a52",
				TransportID: "3",
			}},
		},
		{
			name:   "line longer than a scanner buffer",
			output: "List of devices attached\n" + strings.Repeat("x", 70*1024) + "\nserial2\tdevice\n",
			want:   []Device{{Serial: "serial2", State: "device", ConnType: USB}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDevices(tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d devices (%+v), want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("device %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConnTypeOf(t *testing.T) {
	tests := map[string]ConnectionType{
		"serial123":                         USB,
		"emulator-5554":                     USB,
		"192.168.1.5:5555":                  WiFi,
		"[fe80::1]:5555":                    WiFi,
		"adb-XYZ._adb-tls-connect._tcp":     WiFi,
		"adb-XYZ._adb-tls-connect._tcp.":    WiFi,
		"adb-XYZ._adb-tls-pairing._tcp-not": USB,
	}
	for serial, want := range tests {
		if got := ConnTypeOf(serial); got != want {
			t.Errorf("ConnTypeOf(%q) = %s, want %s", serial, got, want)
		}
	}
}

func TestParseGetprop(t *testing.T) {
	out := "[ro.product.model]: [Pixel 7]\n" +
		"[ro.product.brand]: [google]\n" +
		"[ro.build.version.release]: [14]\n" +
		"garbage line\n" +
		"[persist.sys.blob]: [" + strings.Repeat("a", 70*1024) + "]\n" +
		"[ro.empty]: []\n"
	props := parseGetprop(out)
	if props["ro.product.model"] != "Pixel 7" {
		t.Errorf("model = %q", props["ro.product.model"])
	}
	if len(props["persist.sys.blob"]) != 70*1024 {
		t.Errorf("long value truncated to %d bytes", len(props["persist.sys.blob"]))
	}
	if v, ok := props["ro.empty"]; !ok || v != "" {
		t.Errorf("empty value not kept: %q %v", v, ok)
	}
	info := deviceInfoFromProps(props)
	if info.Brand != "google" || info.AndroidVersion != "14" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestParseWmSize(t *testing.T) {
	if got := parseWmSize("Physical size: 1080x2400\n"); got != "1080x2400" {
		t.Errorf("physical = %q", got)
	}
	if got := parseWmSize("Physical size: 1080x2400\nOverride size: 720x1600\n"); got != "720x1600" {
		t.Errorf("override = %q", got)
	}
}

func TestParseFastbootDevices(t *testing.T) {
	got := parseFastbootDevices("ABC123\tfastboot\n\nshort\n")
	if len(got) != 1 || got[0].Serial != "ABC123" || got[0].State != "fastboot" {
		t.Errorf("unexpected devices %+v", got)
	}
}
