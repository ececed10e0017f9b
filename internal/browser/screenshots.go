package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotSink receives diagnostic captures. Implementations must be
// cheap to call and must not assume the bytes are a valid image.
type ScreenshotSink interface {
	Save(label string, png []byte) error
}

// DirSink writes screenshots under a directory, one timestamped PNG per
// capture.
type DirSink struct {
	Dir string
}

func (d DirSink) Save(label string, png []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s.png", time.Now().Format("20060102-150405"), label)
	return os.WriteFile(filepath.Join(d.Dir, name), png, 0o644)
}

// NopSink discards captures. Used in tests and when screenshots are
// disabled by config.
type NopSink struct{}

func (NopSink) Save(string, []byte) error { return nil }
