package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Archive describes a scanned Slack workspace export: one
// subdirectory per channel, one record-stream file per day, plus the
// users.json directory at the root.
type Archive struct {
	Root      string
	UsersFile string
	Channels  []ChannelDir
}

// ChannelDir is one channel's worth of day files. Files are absolute
// paths in filename-lexicographic order; filenames are dates, so this
// is chronological order and replay depends on it.
type ChannelDir struct {
	Name  string
	Files []string
}

// MissingUserDirectoryError means the archive root has no users.json.
// This is fatal to the whole run: nothing can be migrated without a
// user directory.
type MissingUserDirectoryError struct {
	Path string
}

func (e *MissingUserDirectoryError) Error() string {
	return fmt.Sprintf("archive has no user directory file: %s", e.Path)
}

// ScanArchive enumerates the export at root. Channel order is the
// directory listing order and callers must not assume anything about
// it; file order within a channel is lexicographic.
func ScanArchive(root string) (*Archive, error) {
	usersFile := filepath.Join(root, "users.json")
	if _, err := os.Stat(usersFile); err != nil {
		return nil, &MissingUserDirectoryError{Path: usersFile}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read archive root: %w", err)
	}

	arch := &Archive{Root: root, UsersFile: usersFile}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		files, err := listDayFiles(dir)
		if err != nil {
			return nil, err
		}
		arch.Channels = append(arch.Channels, ChannelDir{
			Name:  entry.Name(),
			Files: files,
		})
	}
	return arch, nil
}

func listDayFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read channel directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
