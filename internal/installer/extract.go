package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// extractArchive unpacks every entry of the zip at src into dest and
// returns the number of files written.
func extractArchive(src, dest string) (int, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return 0, installErr(ArchiveRead, src, err)
	}
	defer zr.Close()

	files := 0
	for _, f := range zr.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return files, installErr(ArchiveRead, src, err)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, installErr(FilesystemWrite, target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return files, installErr(FilesystemWrite, filepath.Dir(target), err)
		}
		if err := writeEntry(f, target); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

// entryPath maps an archive entry name to a path under dest, rejecting
// names that would land outside it.
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes install directory", name)
	}
	return target, nil
}

func writeEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return installErr(ArchiveRead, f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode|0o600)
	if err != nil {
		return installErr(FilesystemWrite, target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return installErr(FilesystemWrite, target, err)
		}
		return installErr(ArchiveRead, f.Name, err)
	}
	if err := out.Close(); err != nil {
		return installErr(FilesystemWrite, target, err)
	}
	return nil
}
