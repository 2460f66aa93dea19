// Package adb runs the installed adb executable and parses its output.
package adb

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Client wraps ADB command-line calls against one executable path.
type Client struct {
	runner

	serverMu sync.Mutex
	serverUp bool
}

// NewClient creates a client for the adb executable at path.
func NewClient(path string, opts ...Option) *Client {
	return &Client{runner: newRunner(path, opts)}
}

// Path returns the executable path the client invokes.
func (c *Client) Path() string {
	return c.path
}

// Ready reports whether the executable exists. It only stats the file.
func (c *Client) Ready() bool {
	return c.ready()
}

// Run invokes adb with args and returns standard output.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if needsServer(args) {
		c.startServer(ctx)
	}
	out, err := c.run(ctx, args)
	if len(args) > 0 && args[0] == "kill-server" && err == nil {
		c.serverMu.Lock()
		c.serverUp = false
		c.serverMu.Unlock()
	}
	return out, err
}

// startServer runs start-server once so concurrent first calls don't each
// race to launch the daemon. Failure is left for the real call to report.
func (c *Client) startServer(ctx context.Context) {
	c.serverMu.Lock()
	defer c.serverMu.Unlock()
	if c.serverUp {
		return
	}
	if _, err := c.run(ctx, []string{"start-server"}); err != nil {
		c.log.Debug().Err(err).Msg("start-server")
		return
	}
	c.serverUp = true
}

func needsServer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "version", "help", "start-server", "kill-server":
		return false
	}
	return true
}

// Version returns the output of `adb version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.Run(ctx, "version")
}

// Devices returns all devices adb knows about, in adb's order.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.Run(ctx, "devices")
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", err)
	}
	return ParseDevices(out), nil
}

// DevicesLong is Devices with `-l`, which also fills Model, Product and
// TransportID.
func (c *Client) DevicesLong(ctx context.Context) ([]Device, error) {
	out, err := c.Run(ctx, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("adb devices -l: %w", err)
	}
	return ParseDevices(out), nil
}

// KillServer stops the adb daemon.
func (c *Client) KillServer(ctx context.Context) error {
	if _, err := c.Run(ctx, "kill-server"); err != nil {
		return fmt.Errorf("adb kill-server: %w", err)
	}
	return nil
}

// Shutdown stops the adb daemon. Failures are logged and swallowed so the
// caller can always exit.
func (c *Client) Shutdown(ctx context.Context) {
	if err := c.KillServer(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to stop adb server")
		return
	}
	c.log.Info().Msg("adb server stopped")
}

// Connect connects to a wireless ADB device at host:port.
func (c *Client) Connect(ctx context.Context, host string, port int) (string, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	out, err := c.Run(ctx, "connect", addr)
	if err != nil {
		return "", fmt.Errorf("adb connect %s: %w", addr, err)
	}
	// adb exits 0 on most connect failures; only the text tells.
	lower := strings.ToLower(out)
	if strings.Contains(lower, "connected") &&
		!strings.Contains(lower, "unable") &&
		!strings.Contains(lower, "cannot") {
		return addr, nil
	}
	return "", fmt.Errorf("adb connect %s: %w: %s", addr, ErrConnectFailed, strings.TrimSpace(out))
}

// Disconnect drops a wireless device, or all of them when addr is empty.
func (c *Client) Disconnect(ctx context.Context, addr string) (string, error) {
	args := []string{"disconnect"}
	if addr != "" {
		args = append(args, addr)
	}
	out, err := c.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("adb disconnect %s: %w", addr, err)
	}
	return strings.TrimSpace(out), nil
}

// Shell runs a shell command on the device with the given serial.
func (c *Client) Shell(ctx context.Context, serial string, cmd ...string) (string, error) {
	args := append([]string{"-s", serial, "shell"}, cmd...)
	return c.Run(ctx, args...)
}

// DeviceInfo reads build properties from a device. Resolution and kernel
// version are best-effort.
func (c *Client) DeviceInfo(ctx context.Context, serial string) (DeviceInfo, error) {
	out, err := c.Shell(ctx, serial, "getprop")
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("adb getprop %s: %w", serial, err)
	}
	info := deviceInfoFromProps(parseGetprop(out))
	if info.Serial == "" {
		info.Serial = serial
	}
	if out, err := c.Shell(ctx, serial, "wm", "size"); err == nil {
		info.Resolution = parseWmSize(out)
	}
	if out, err := c.Shell(ctx, serial, "uname", "-r"); err == nil {
		info.KernelVersion = strings.TrimSpace(out)
	}
	return info, nil
}

// PackageInstalled reports whether pkg is installed for any user. `pm path`
// prints one `package:<apk path>` line per split; the path need not
// contain the package name.
func (c *Client) PackageInstalled(ctx context.Context, serial, pkg string) (bool, error) {
	out, err := c.Shell(ctx, serial, "pm", "path", pkg)
	if err != nil {
		if IsExitError(err) {
			// pm exits 1 for unknown packages.
			return false, nil
		}
		return false, fmt.Errorf("adb pm path %s: %w", pkg, err)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "package:") {
			return true, nil
		}
	}
	return false, nil
}

// UninstallForUser removes pkg for user 0 without touching the system image.
func (c *Client) UninstallForUser(ctx context.Context, serial, pkg string) error {
	out, err := c.Shell(ctx, serial, "pm", "uninstall", "--user", "0", pkg)
	if err != nil {
		return fmt.Errorf("adb pm uninstall %s: %w", pkg, err)
	}
	if !strings.Contains(out, "Success") {
		return fmt.Errorf("adb pm uninstall %s: %s", pkg, strings.TrimSpace(out))
	}
	return nil
}
