//go:build darwin

package platform

var Current = Target{
	OS:          "darwin",
	ArchiveName: "platform-tools-latest-darwin.zip",
	POSIX:       true,
}
