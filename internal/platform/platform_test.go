package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestCurrentMatchesGOOS(t *testing.T) {
	if Current.OS != runtime.GOOS {
		t.Fatalf("Current.OS = %q, want %q", Current.OS, runtime.GOOS)
	}
	if !strings.HasPrefix(Current.ArchiveName, "platform-tools-latest-") {
		t.Errorf("unexpected archive name %q", Current.ArchiveName)
	}
}

func TestExe(t *testing.T) {
	got := Exe("adb")
	if runtime.GOOS == "windows" {
		if got != "adb.exe" {
			t.Errorf("Exe(adb) = %q, want adb.exe", got)
		}
		return
	}
	if got != "adb" {
		t.Errorf("Exe(adb) = %q, want adb", got)
	}
}

func TestArchiveNamesOrder(t *testing.T) {
	names := ArchiveNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0] != Current.ArchiveName || names[1] != GenericArchiveName {
		t.Errorf("unexpected order: %v", names)
	}
}
