package installer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/FluidXR/sinodroid/internal/platform"
)

// Resources locates the bundled platform-tools archive.
type Resources struct {
	// Dirs are searched in order.
	Dirs []string
}

// DefaultResources searches override (if set), then the resources
// directory next to the executable, the executable's own directory and
// finally ./resources.
func DefaultResources(override string) Resources {
	var dirs []string
	if override != "" {
		dirs = append(dirs, override)
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		dirs = append(dirs, filepath.Join(dir, "resources"), dir)
	}
	dirs = append(dirs, "resources")
	return Resources{Dirs: dirs}
}

// Find returns the path of the first archive present.
func (r Resources) Find() (string, error) {
	names := platform.ArchiveNames()
	for _, dir := range r.Dirs {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
	}
	return "", installErr(ResourceNotFound, strings.Join(r.Dirs, string(os.PathListSeparator)), nil)
}
