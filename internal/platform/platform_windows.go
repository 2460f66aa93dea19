//go:build windows

package platform

var Current = Target{
	OS:          "windows",
	ExeSuffix:   ".exe",
	ArchiveName: "platform-tools-latest-windows.zip",
}
