//go:build linux

package platform

var Current = Target{
	OS:          "linux",
	ArchiveName: "platform-tools-latest-linux.zip",
	POSIX:       true,
}
