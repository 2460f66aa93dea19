package installer

import (
	"os"
	"path/filepath"

	"github.com/FluidXR/sinodroid/internal/platform"
)

// nestedDir is the top-level directory Google's platform-tools archives
// unpack into. Repackaged archives are flat.
const nestedDir = "platform-tools"

// Toolset is an on-disk platform-tools installation.
type Toolset struct {
	Root         string
	AdbPath      string
	FastbootPath string
}

// Valid reports whether the adb executable is still present. The answer
// is computed on every call so an externally deleted install is noticed.
func (t Toolset) Valid() bool {
	if t.AdbPath == "" {
		return false
	}
	info, err := os.Stat(t.AdbPath)
	return err == nil && !info.IsDir()
}

// ResolveAdbPath returns where adb lives in a flat install under root.
// It performs no I/O.
func ResolveAdbPath(root string) string {
	return filepath.Join(root, platform.Exe("adb"))
}

// AdbCandidates returns every location adb may occupy under root, flat
// layout first.
func AdbCandidates(root string) []string {
	return []string{
		ResolveAdbPath(root),
		filepath.Join(root, nestedDir, platform.Exe("adb")),
	}
}

// Locate finds an existing installation under root.
func Locate(root string) (Toolset, bool) {
	for _, p := range AdbCandidates(root) {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		dir := filepath.Dir(p)
		return Toolset{
			Root:         root,
			AdbPath:      p,
			FastbootPath: filepath.Join(dir, platform.Exe("fastboot")),
		}, true
	}
	return Toolset{}, false
}

// IsReady reports whether adb is installed under root.
func IsReady(root string) bool {
	_, ok := Locate(root)
	return ok
}
