// Package gui hosts the app in a Wails window.
package gui

import (
	"context"
	"embed"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/FluidXR/sinodroid/internal/app"
	"github.com/FluidXR/sinodroid/internal/installer"
)

//go:embed all:frontend/dist
var assets embed.FS

// Event names emitted to the frontend.
const (
	EventReady   = "platform-tools:ready"
	EventError   = "platform-tools:error"
	EventRemoved = "platform-tools:removed"
)

// Run opens the main window and blocks until it is closed.
func Run(a *app.App, log zerolog.Logger) error {
	return wails.Run(&options.App{
		Title:     "Sinodroid",
		Width:     1024,
		Height:    720,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			a.Startup(ctx)
			a.SetEventHandler(func(name string, data any) {
				wailsRuntime.EventsEmit(ctx, name, data)
			})
			go startup(ctx, a, log)
		},
		OnShutdown: func(ctx context.Context) {
			a.Shutdown()
		},
		Bind: []interface{}{
			a,
		},
	})
}

// startup installs platform-tools off the UI thread and reports the
// adb version, or the failure, as an event.
func startup(ctx context.Context, a *app.App, log zerolog.Logger) {
	res := <-app.Go(ctx, func(context.Context) (string, error) {
		if err := a.InitPlatformTools(); err != nil {
			return "", err
		}
		return a.GetAdbVersion()
	})
	if res.Err != nil {
		log.Error().Err(res.Err).Msg("platform-tools init failed")
		wailsRuntime.EventsEmit(ctx, EventError, res.Err.Error())
		return
	}
	wailsRuntime.EventsEmit(ctx, EventReady, res.Value)

	err := installer.Watch(ctx, a.InstallRoot(), log, func() {
		wailsRuntime.EventsEmit(ctx, EventRemoved, a.InstallRoot())
	})
	if err != nil {
		log.Warn().Err(err).Msg("install watcher stopped")
	}
}
