package app

import (
	"context"
	"errors"
	"strings"

	"github.com/FluidXR/sinodroid/internal/adb"
	"github.com/FluidXR/sinodroid/internal/debloat"
	"github.com/FluidXR/sinodroid/internal/history"
)

var errNoHistory = errors.New("history is not available")

// ConnectWiFi connects to host:port and remembers the address on success.
func (a *App) ConnectWiFi(host string, port int) (string, error) {
	if strings.TrimSpace(host) == "" {
		return "", errors.New("IP address is required")
	}
	if port <= 0 {
		port = 5555
	}
	c, err := a.bridge()
	if err != nil {
		return "", err
	}
	addr, err := c.Connect(a.context(), host, port)
	if err != nil {
		return "", fail("WiFi connection failed", err)
	}
	if a.history != nil {
		if err := a.history.RecordConnection(a.context(), addr); err != nil {
			a.log.Warn().Err(err).Str("address", addr).Msg("failed to save connection history")
		}
	}
	return addr, nil
}

// DisconnectWiFi disconnects addr, or every network device when empty.
func (a *App) DisconnectWiFi(addr string) (string, error) {
	c, err := a.bridge()
	if err != nil {
		return "", err
	}
	out, err := c.Disconnect(a.context(), addr)
	if err != nil {
		return "", fail("Disconnect failed", err)
	}
	return out, nil
}

// WiFiHistory returns recently connected addresses, newest first.
func (a *App) WiFiHistory() ([]history.Connection, error) {
	if a.history == nil {
		return nil, fail("Failed to load WiFi history", errNoHistory)
	}
	conns, err := a.history.RecentConnections(a.context(), a.cfg.HistoryLimit)
	if err != nil {
		return nil, fail("Failed to load WiFi history", err)
	}
	return conns, nil
}

// ForgetWiFi removes addr from the connection history.
func (a *App) ForgetWiFi(addr string) error {
	if a.history == nil {
		return fail("Failed to update WiFi history", errNoHistory)
	}
	if err := a.history.ForgetConnection(a.context(), addr); err != nil {
		return fail("Failed to update WiFi history", err)
	}
	return nil
}

// RecentCommands returns the most recent adb invocations.
func (a *App) RecentCommands(limit int) ([]adb.Invocation, error) {
	if a.history == nil {
		return nil, fail("Failed to load command log", errNoHistory)
	}
	if limit <= 0 {
		limit = 50
	}
	invs, err := a.history.RecentInvocations(a.context(), limit)
	if err != nil {
		return nil, fail("Failed to load command log", err)
	}
	return invs, nil
}

// GetDeviceInfo reads build properties from the device.
func (a *App) GetDeviceInfo(serial string) (adb.DeviceInfo, error) {
	if serial == "" {
		return adb.DeviceInfo{}, errors.New("no device selected")
	}
	c, err := a.bridge()
	if err != nil {
		return adb.DeviceInfo{}, err
	}
	info, err := c.DeviceInfo(a.context(), serial)
	if err != nil {
		return adb.DeviceInfo{}, fail("Failed to get device info", err)
	}
	return info, nil
}

// GetFastbootDevices lists devices in bootloader mode.
func (a *App) GetFastbootDevices() ([]adb.Device, error) {
	if _, err := a.bridge(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	fb := a.fastboot
	a.mu.Unlock()
	if !fb.Ready() {
		return nil, fail("Failed to list fastboot devices", adb.ErrNotInstalled)
	}
	devices, err := fb.Devices(a.context())
	if err != nil {
		return nil, fail("Failed to list fastboot devices", err)
	}
	return devices, nil
}

// DeviceOutput is the result of a command on one device.
type DeviceOutput struct {
	Serial string `json:"serial"`
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

// RunOnAllDevices runs `adb -s <serial> args...` on every online device.
func (a *App) RunOnAllDevices(args []string) ([]DeviceOutput, error) {
	c, err := a.bridge()
	if err != nil {
		return nil, err
	}
	devices, err := c.Devices(a.context())
	if err != nil {
		return nil, fail("Failed to list devices", err)
	}
	var serials []string
	for _, d := range devices {
		if d.IsOnline() {
			serials = append(serials, d.Serial)
		}
	}

	pool := NewPool[string](4)
	results := pool.Run(a.context(), serials, func(ctx context.Context, serial string) (string, error) {
		return c.Run(ctx, append([]string{"-s", serial}, args...)...)
	})

	outputs := make([]DeviceOutput, 0, len(results))
	for _, r := range results {
		o := DeviceOutput{Serial: r.Serial, Output: r.Value}
		if r.Err != nil {
			o.Error = r.Err.Error()
		}
		outputs = append(outputs, o)
	}
	return outputs, nil
}

// DebloatCatalog returns removable packages for brand, or all of them
// when brand is empty.
func (a *App) DebloatCatalog(brand string) []debloat.Package {
	if brand == "" {
		return a.catalog.All()
	}
	return a.catalog.ByBrand(brand)
}

// DebloatBrands lists the brands the catalog covers.
func (a *App) DebloatBrands() []string {
	return a.catalog.Brands()
}

// SearchDebloat matches keyword against the catalog.
func (a *App) SearchDebloat(keyword string) []debloat.Package {
	return a.catalog.Search(keyword)
}

// Debloat removes packages from the device. With no packages given, the
// catalog entries for the device's brand are used. Unknown package names
// are removed as given.
func (a *App) Debloat(serial string, packages []string) (debloat.Result, error) {
	if serial == "" {
		return debloat.Result{}, errors.New("no device selected")
	}
	c, err := a.bridge()
	if err != nil {
		return debloat.Result{}, err
	}

	var pkgs []debloat.Package
	if len(packages) == 0 {
		info, err := c.DeviceInfo(a.context(), serial)
		if err != nil {
			return debloat.Result{}, fail("Failed to get device info", err)
		}
		pkgs = a.catalog.ByBrand(info.Brand)
		if len(pkgs) == 0 {
			return debloat.Result{}, errors.New("no catalog entries for brand " + info.Brand)
		}
	} else {
		pkgs = a.resolvePackages(packages)
	}

	runner := &debloat.Runner{
		PM:        c,
		Log:       a.log.With().Str("component", "debloat").Logger(),
		OnOutcome: func(o debloat.Outcome) { a.emit("debloat:progress", o) },
	}
	return runner.Run(a.context(), serial, pkgs), nil
}

func (a *App) resolvePackages(names []string) []debloat.Package {
	known := make(map[string]debloat.Package)
	for _, p := range a.catalog.All() {
		known[p.Package] = p
	}
	pkgs := make([]debloat.Package, 0, len(names))
	for _, n := range names {
		if p, ok := known[n]; ok {
			pkgs = append(pkgs, p)
			continue
		}
		pkgs = append(pkgs, debloat.Package{Name: n, Package: n})
	}
	return pkgs
}
