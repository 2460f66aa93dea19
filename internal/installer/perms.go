package installer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/FluidXR/sinodroid/internal/platform"
)

// fixPermissions marks the shipped executables 0755 at both layouts.
// Files that are absent are not an error.
func fixPermissions(root string) error {
	if !platform.Current.POSIX {
		return nil
	}
	for _, name := range platform.Executables {
		for _, p := range []string{
			filepath.Join(root, nestedDir, platform.Exe(name)),
			filepath.Join(root, platform.Exe(name)),
		} {
			if err := os.Chmod(p, 0o755); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return installErr(FilesystemWrite, p, err)
			}
		}
	}
	return nil
}
