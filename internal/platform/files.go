package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File naming
const (
	TempSourcePrefix   = "tmp_"
	TempSourceExt      = ".mp4"
	FragmentNameFormat = "Screensaver %s #%d #shorts %d.mp4"
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// TempSourceName returns the temporary container file name for an identifier
func TempSourceName(videoID string) string {
	return TempSourcePrefix + videoID + TempSourceExt
}

// FragmentName returns the output file name of clip n (1-based)
func FragmentName(title string, n int, epoch int64) string {
	return fmt.Sprintf(FragmentNameFormat, title, n, epoch)
}

// TempSource is the scoped temporary download container of one video.
// Release removes it together with downloader leftovers and is safe to call twice.
type TempSource struct {
	dir      string
	name     string
	released bool
}

// AcquireTempSource reserves tmp_<id>.mp4 in dir, clearing stale leftovers
// from an earlier interrupted run.
func AcquireTempSource(dir, videoID string) (*TempSource, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, errors.New("empty video identifier")
	}
	if strings.ContainsAny(videoID, `/`+string(filepath.Separator)) {
		return nil, fmt.Errorf("video identifier %q contains a path separator", videoID)
	}
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}

	ts := &TempSource{dir: dir, name: TempSourceName(videoID)}
	if err := ts.removeAll(); err != nil {
		return nil, fmt.Errorf("clear stale temp file: %w", err)
	}
	return ts, nil
}

// Path returns the container path handed to the downloader
func (t *TempSource) Path() string {
	return filepath.Join(t.dir, t.name)
}

// Release deletes the container and any partial files next to it
func (t *TempSource) Release() error {
	if t == nil || t.released {
		return nil
	}
	t.released = true
	return t.removeAll()
}

// removeAll deletes the container and every tmp_<id>.* sibling. yt-dlp leaves
// tmp_<id>.f137.mp4, tmp_<id>.mp4.part and similar on failure.
func (t *TempSource) removeAll() error {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	prefix := strings.TrimSuffix(t.name, TempSourceExt) + "."
	var errList []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(t.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
