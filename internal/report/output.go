package report

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"panostitch/internal/fileutil"
	"panostitch/internal/imageio"
	"panostitch/internal/services"
)

// SaveComposite encodes img at path using the format implied by its
// extension. The file is replaced atomically while an exclusive lock on
// "<path>.lock" is held, so two runs targeting the same output cannot
// interleave.
func SaveComposite(path string, img image.Image) error {
	if img == nil {
		return services.Wrap(services.ErrOutput, "report", "save composite", "no composite to write", nil)
	}
	format, err := imageio.FormatFromPath(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "report", "save composite", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrOutput, "report", "create output dir", filepath.Dir(path), err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrOutput, "report", "lock output", path, err)
	}
	if !ok {
		return services.Wrap(services.ErrOutput, "report", "lock output", fmt.Sprintf("%s is being written by another run", path), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	err = fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return imageio.Encode(w, img, format)
	})
	if err != nil {
		return services.Wrap(services.ErrOutput, "report", "write composite", path, err)
	}
	return nil
}

// SaveText writes a rendered report to path atomically.
func SaveText(path string, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrOutput, "report", "create report dir", filepath.Dir(path), err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return services.Wrap(services.ErrOutput, "report", "write report", path, err)
	}
	return nil
}
