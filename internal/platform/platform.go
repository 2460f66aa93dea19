// Package platform holds the per-OS facts needed to install and run
// platform-tools. The values are fixed at build time by the GOOS-specific
// files in this package; building for any other OS fails to compile.
package platform

// Target describes the operating system the binary was built for.
type Target struct {
	OS          string
	ExeSuffix   string
	ArchiveName string
	// POSIX is true when installed executables need their mode bits fixed.
	POSIX bool
}

// GenericArchiveName is the name the packaging step copies the
// OS-specific archive to.
const GenericArchiveName = "platform-tools.zip"

// Executables are the binaries shipped in platform-tools that must be
// runnable after extraction.
var Executables = []string{"adb", "fastboot"}

// Exe returns name with the executable suffix for the current target.
func Exe(name string) string {
	return name + Current.ExeSuffix
}

// ArchiveNames returns the bundled archive names to look for, most
// specific first.
func ArchiveNames() []string {
	return []string{Current.ArchiveName, GenericArchiveName}
}
