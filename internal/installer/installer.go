// Package installer unpacks the bundled Android platform-tools into a
// per-user data directory and reports where adb ended up.
package installer

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Installer owns one installation root.
type Installer struct {
	Root      string
	Resources Resources

	log zerolog.Logger
	mu  sync.Mutex
}

// New creates an Installer for root.
func New(root string, res Resources, log zerolog.Logger) *Installer {
	return &Installer{
		Root:      root,
		Resources: res,
		log:       log.With().Str("component", "installer").Logger(),
	}
}

// Ensure returns the installed toolset, extracting the bundled archive
// first if adb is not present. Concurrent callers wait for the first
// extraction to finish.
func (in *Installer) Ensure(ctx context.Context) (Toolset, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if ts, ok := Locate(in.Root); ok {
		in.log.Debug().Str("adb", ts.AdbPath).Msg("platform-tools already installed")
		return ts, nil
	}
	if err := ctx.Err(); err != nil {
		return Toolset{}, err
	}
	return in.install()
}

// Reinstall removes the installation root and extracts it again.
func (in *Installer) Reinstall(ctx context.Context) (Toolset, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if err := os.RemoveAll(in.Root); err != nil {
		return Toolset{}, installErr(FilesystemWrite, in.Root, err)
	}
	if err := ctx.Err(); err != nil {
		return Toolset{}, err
	}
	return in.install()
}

func (in *Installer) install() (Toolset, error) {
	start := time.Now()
	if err := os.MkdirAll(in.Root, 0o755); err != nil {
		return Toolset{}, installErr(FilesystemWrite, in.Root, err)
	}

	archive, err := in.Resources.Find()
	if err != nil {
		return Toolset{}, err
	}
	in.log.Info().Str("archive", archive).Str("root", in.Root).Msg("extracting platform-tools")

	n, err := extractArchive(archive, in.Root)
	if err != nil {
		return Toolset{}, err
	}
	if err := fixPermissions(in.Root); err != nil {
		return Toolset{}, err
	}

	ts, ok := Locate(in.Root)
	if !ok {
		return Toolset{}, installErr(ArchiveRead, archive, errors.New("archive does not contain adb"))
	}
	in.log.Info().
		Int("files", n).
		Str("adb", ts.AdbPath).
		Dur("took", time.Since(start)).
		Msg("platform-tools installed")
	return ts, nil
}
