package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"github.com/FluidXR/sinodroid/internal/config"
	"github.com/FluidXR/sinodroid/internal/history"
	"github.com/FluidXR/sinodroid/internal/platform"
)

const fakeAdb = `#!/bin/sh
case "$1" in
start-server) exit 0 ;;
version) echo "Android Debug Bridge version 1.0.41" ;;
devices)
	if [ "$2" = "-l" ]; then
		printf 'List of devices attached\nserial123 device product:panther model:Pixel_7 transport_id:1\n'
	else printf 'List of devices attached\nserial123\tdevice\nserial456\tdevice\nghost\toffline\n'; fi ;;
connect) echo "connected to $2" ;;
kill-server) exit 0 ;;
fail) echo "boom" >&2; exit 2 ;;
-s) echo "ran on $2: $3" ;;
*) exit 1 ;;
esac
`

// newTestApp returns an App whose resource dir holds an archive with the
// fake adb, but nothing installed yet.
func newTestApp(t *testing.T, withHistory bool) *App {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake adb is a shell script")
	}

	resDir := t.TempDir()
	f, err := os.Create(filepath.Join(resDir, platform.Current.ArchiveName))
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("platform-tools/adb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(fakeAdb)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ResourceDir = resDir
	cfg.CommandTimeout = 5 * time.Second

	var hist *history.DB
	if withHistory {
		hist, err = history.Open(cfg.DataDir)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { hist.Close() })
	}

	a, err := New(context.Background(), cfg, zerolog.Nop(), hist)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCommandsBeforeInstall(t *testing.T) {
	a := newTestApp(t, false)
	if a.IsPlatformToolsReady() {
		t.Fatal("should not be ready before install")
	}
	_, err := a.GetDevices()
	if err == nil || !strings.Contains(err.Error(), "Failed to get adb path") {
		t.Errorf("GetDevices before install = %v", err)
	}
	// Shutdown with nothing installed is a no-op.
	a.Shutdown()
}

func TestInstallThenUse(t *testing.T) {
	a := newTestApp(t, true)

	if err := a.InitPlatformTools(); err != nil {
		t.Fatalf("InitPlatformTools: %v", err)
	}
	if !a.IsPlatformToolsReady() {
		t.Fatal("should be ready after install")
	}
	ts, err := a.Toolset()
	if err != nil || !strings.HasSuffix(ts.AdbPath, filepath.Join("platform-tools", "platform-tools", "adb")) {
		t.Errorf("Toolset = %+v, %v", ts, err)
	}
	if err := a.InitPlatformTools(); err != nil {
		t.Fatalf("second InitPlatformTools: %v", err)
	}

	version, err := a.GetAdbVersion()
	if err != nil || !strings.Contains(version, "1.0.41") {
		t.Errorf("GetAdbVersion = %q, %v", version, err)
	}

	devices, err := a.GetDevices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 3 || devices[0].Serial != "serial123" {
		t.Errorf("GetDevices = %+v", devices)
	}
	detailed, err := a.GetDevicesDetailed()
	if err != nil || len(detailed) != 1 || detailed[0].Model != "Pixel_7" {
		t.Errorf("GetDevicesDetailed = %+v, %v", detailed, err)
	}

	_, err = a.ExecuteAdbCommand([]string{"fail"})
	if err == nil || err.Error() != "ADB command failed: command failed: boom" {
		t.Errorf("ExecuteAdbCommand error = %v", err)
	}

	outs, err := a.RunOnAllDevices([]string{"getprop"})
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 2 || outs[0].Serial != "serial123" || !strings.Contains(outs[1].Output, "ran on serial456") {
		t.Errorf("RunOnAllDevices = %+v", outs)
	}

	addr, err := a.ConnectWiFi("192.168.1.5", 0)
	if err != nil || addr != "192.168.1.5:5555" {
		t.Errorf("ConnectWiFi = %q, %v", addr, err)
	}
	conns, err := a.WiFiHistory()
	if err != nil || len(conns) != 1 || conns[0].Address != "192.168.1.5:5555" {
		t.Errorf("WiFiHistory = %+v, %v", conns, err)
	}

	invs, err := a.RecentCommands(100)
	if err != nil || len(invs) == 0 {
		t.Errorf("RecentCommands = %d, %v", len(invs), err)
	}

	a.Shutdown()
}

func TestWiFiHistoryWithoutStore(t *testing.T) {
	a := newTestApp(t, false)
	if _, err := a.WiFiHistory(); err == nil {
		t.Error("expected error without history store")
	}
	if _, err := a.ConnectWiFi("", 5555); err == nil {
		t.Error("expected error for empty host")
	}
}

func TestDebloatCatalog(t *testing.T) {
	a := newTestApp(t, false)
	if len(a.DebloatCatalog("")) == 0 {
		t.Error("catalog should not be empty")
	}
	for _, p := range a.DebloatCatalog("xiaomi") {
		if !strings.EqualFold(p.Brand, "Xiaomi") {
			t.Errorf("unexpected brand in xiaomi catalog: %+v", p)
		}
	}
	pkgs := a.resolvePackages([]string{"com.miui.analytics", "org.example.custom"})
	if pkgs[0].Brand != "Xiaomi" || pkgs[1].Package != "org.example.custom" {
		t.Errorf("resolvePackages = %+v", pkgs)
	}
}

func TestGoDeliversResult(t *testing.T) {
	ch := Go(context.Background(), func(context.Context) (int, error) { return 42, nil })
	select {
	case res := <-ch:
		if res.Value != 42 || res.Err != nil {
			t.Errorf("res = %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	ch = Go(context.Background(), func(context.Context) (int, error) { panic("oops") })
	if res := <-ch; res.Err == nil || !strings.Contains(res.Err.Error(), "oops") {
		t.Errorf("panic not reported: %+v", res)
	}
}

func TestPoolBoundsConcurrencyAndKeepsOrder(t *testing.T) {
	var running, peak int32
	pool := NewPool[string](2)
	serials := []string{"a", "b", "c", "d", "e"}
	results := pool.Run(context.Background(), serials, func(_ context.Context, s string) (string, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		if s == "c" {
			return "", errors.New("failed")
		}
		return strings.ToUpper(s), nil
	})

	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds 2", peak)
	}
	for i, r := range results {
		if r.Serial != serials[i] {
			t.Errorf("results[%d].Serial = %s", i, r.Serial)
		}
	}
	if results[2].Err == nil || results[4].Value != "E" {
		t.Errorf("unexpected results %+v", results)
	}
}
