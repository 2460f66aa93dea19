// Package app is the command surface the GUI, CLI and MCP server call.
// Every method returns plain-text errors and never panics into the caller.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/FluidXR/sinodroid/internal/adb"
	"github.com/FluidXR/sinodroid/internal/config"
	"github.com/FluidXR/sinodroid/internal/debloat"
	"github.com/FluidXR/sinodroid/internal/history"
	"github.com/FluidXR/sinodroid/internal/installer"
)

// Version of sinodroid.
const Version = "0.2.0"

var errNotReady = errors.New("platform-tools are not installed")

// EventFunc receives progress notifications for the UI.
type EventFunc func(name string, data any)

// App owns the installer and the adb bridge for one install root.
type App struct {
	ctx       context.Context
	cfg       *config.Config
	log       zerolog.Logger
	installer *installer.Installer
	history   *history.DB
	catalog   *debloat.Catalog

	mu       sync.Mutex
	client   *adb.Client
	fastboot *adb.FastbootClient
	onEvent  EventFunc
}

// New creates an App. hist may be nil, in which case nothing is recorded.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, hist *history.DB) (*App, error) {
	catalog, err := debloat.Builtin()
	if err != nil {
		return nil, err
	}
	return &App{
		ctx:       ctx,
		cfg:       cfg,
		log:       log,
		installer: installer.New(cfg.InstallRoot(), installer.DefaultResources(cfg.ResourceDir), log),
		history:   hist,
		catalog:   catalog,
	}, nil
}

// Startup replaces the base context; the GUI host calls it once its
// own context exists.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctx = ctx
}

// SetEventHandler registers where progress events are sent.
func (a *App) SetEventHandler(fn EventFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

func (a *App) context() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func (a *App) emit(name string, data any) {
	a.mu.Lock()
	fn := a.onEvent
	a.mu.Unlock()
	if fn != nil {
		fn(name, data)
	}
}

// InstallRoot returns the platform-tools directory.
func (a *App) InstallRoot() string {
	return a.installer.Root
}

// InitPlatformTools extracts platform-tools if they are not installed.
func (a *App) InitPlatformTools() error {
	if _, err := a.installer.Ensure(a.context()); err != nil {
		return fail("Failed to initialize platform-tools", err)
	}
	return nil
}

// ReinstallPlatformTools removes and re-extracts platform-tools.
func (a *App) ReinstallPlatformTools() error {
	a.Shutdown()
	if _, err := a.installer.Reinstall(a.context()); err != nil {
		return fail("Failed to reinstall platform-tools", err)
	}
	return nil
}

// IsPlatformToolsReady reports whether adb is on disk.
func (a *App) IsPlatformToolsReady() bool {
	return installer.IsReady(a.installer.Root)
}

// Toolset returns the located installation.
func (a *App) Toolset() (installer.Toolset, error) {
	ts, ok := installer.Locate(a.installer.Root)
	if !ok {
		return installer.Toolset{}, fail("Failed to get adb path", errNotReady)
	}
	return ts, nil
}

// GetAdbVersion returns `adb version` output.
func (a *App) GetAdbVersion() (string, error) {
	c, err := a.bridge()
	if err != nil {
		return "", err
	}
	out, err := c.Version(a.context())
	if err != nil {
		return "", fail("ADB command failed", err)
	}
	return out, nil
}

// GetDevices lists devices known to adb.
func (a *App) GetDevices() ([]adb.Device, error) {
	c, err := a.bridge()
	if err != nil {
		return nil, err
	}
	devices, err := c.Devices(a.context())
	if err != nil {
		return nil, fail("Failed to list devices", err)
	}
	if devices == nil {
		devices = []adb.Device{}
	}
	return devices, nil
}

// GetDevicesDetailed is GetDevices with the model and product adb
// reports for each device.
func (a *App) GetDevicesDetailed() ([]adb.Device, error) {
	c, err := a.bridge()
	if err != nil {
		return nil, err
	}
	devices, err := c.DevicesLong(a.context())
	if err != nil {
		return nil, fail("Failed to list devices", err)
	}
	if devices == nil {
		devices = []adb.Device{}
	}
	return devices, nil
}

// ExecuteAdbCommand runs adb with an arbitrary argument vector.
func (a *App) ExecuteAdbCommand(args []string) (string, error) {
	c, err := a.bridge()
	if err != nil {
		return "", err
	}
	out, err := c.Run(a.context(), args...)
	if err != nil {
		return "", fail("ADB command failed", err)
	}
	return out, nil
}

// Shutdown stops the adb server. It never fails.
func (a *App) Shutdown() {
	a.mu.Lock()
	c := a.client
	a.mu.Unlock()
	if c == nil {
		ts, ok := installer.Locate(a.installer.Root)
		if !ok {
			a.log.Debug().Msg("shutdown: platform-tools not installed")
			return
		}
		c = a.newClient(ts.AdbPath)
	}
	// The app context may already be cancelled while exiting.
	ctx := context.WithoutCancel(a.context())
	c.Shutdown(ctx)
}

// bridge returns a client for the currently installed adb. Installation
// is verified on every call so a deleted install is reported as such.
func (a *App) bridge() (*adb.Client, error) {
	ts, ok := installer.Locate(a.installer.Root)
	if !ok {
		return nil, fail("Failed to get adb path", errNotReady)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil || a.client.Path() != ts.AdbPath {
		a.client = a.newClient(ts.AdbPath)
		a.fastboot = adb.NewFastbootClient(ts.FastbootPath, a.clientOptions()...)
	}
	return a.client, nil
}

func (a *App) newClient(path string) *adb.Client {
	return adb.NewClient(path, a.clientOptions()...)
}

func (a *App) clientOptions() []adb.Option {
	opts := []adb.Option{
		adb.WithTimeout(a.cfg.CommandTimeout),
		adb.WithLogger(a.log),
	}
	if a.history != nil {
		opts = append(opts, adb.WithRecorder(a.history))
	}
	return opts
}

// fail flattens err into a plain message for UI callers.
func fail(prefix string, err error) error {
	return fmt.Errorf("%s: %s", prefix, err.Error())
}
