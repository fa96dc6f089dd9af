package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanArchive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "users.json"), "[]")
	writeFile(t, filepath.Join(root, "channels.json"), "[]")
	writeFile(t, filepath.Join(root, "general", "2023-02-01.json"), "[]")
	writeFile(t, filepath.Join(root, "general", "2023-01-15.json"), "[]")
	writeFile(t, filepath.Join(root, "dev", "2023-01-01.json"), "[]")

	arch, err := ScanArchive(root)
	if err != nil {
		t.Fatalf("ScanArchive() error = %v", err)
	}

	if arch.UsersFile != filepath.Join(root, "users.json") {
		t.Errorf("UsersFile = %q", arch.UsersFile)
	}
	if len(arch.Channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(arch.Channels))
	}

	byName := make(map[string]ChannelDir)
	for _, ch := range arch.Channels {
		byName[ch.Name] = ch
	}

	general, ok := byName["general"]
	if !ok {
		t.Fatal("channel general not scanned")
	}
	if len(general.Files) != 2 {
		t.Fatalf("general has %d files, want 2", len(general.Files))
	}
	if filepath.Base(general.Files[0]) != "2023-01-15.json" ||
		filepath.Base(general.Files[1]) != "2023-02-01.json" {
		t.Errorf("general files out of order: %v", general.Files)
	}

	if _, ok := byName["dev"]; !ok {
		t.Error("channel dev not scanned")
	}
}

func TestScanArchive_MissingUserDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "general", "2023-01-01.json"), "[]")

	_, err := ScanArchive(root)
	if err == nil {
		t.Fatal("expected an error for a root without users.json")
	}
	var missing *MissingUserDirectoryError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T, want *MissingUserDirectoryError", err)
	}
}
