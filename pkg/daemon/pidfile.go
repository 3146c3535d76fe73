package daemon

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidPID = errors.New("invalid pid")

// PIDFile holds the decimal pid of the daemon followed by a newline.
type PIDFile struct {
	path string
}

func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

func (f *PIDFile) Path() string {
	return f.path
}

func (f *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, errors.WithMessagef(err, "failed to read pid file %s", f.path)
	}

	content := strings.TrimSpace(string(data))

	pid, err := strconv.Atoi(content)
	if err != nil || pid <= 0 {
		return 0, errors.WithMessagef(ErrInvalidPID, "pid file %s contains %q", f.path, content)
	}

	return pid, nil
}

func (f *PIDFile) Write(pid int) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.WithMessage(err, "failed to create pid file directory")
	}

	// Readers must never see a half written file.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return errors.WithMessagef(err, "failed to write pid file %s", f.path)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	_, err = fmt.Fprintf(tmp, "%d\n", pid)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), f.path)
	}
	if err != nil {
		return errors.WithMessagef(err, "failed to write pid file %s", f.path)
	}

	return nil
}

// Remove deletes the PID file. A file that is already gone is not an error.
func (f *PIDFile) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WithMessagef(err, "failed to remove pid file %s", f.path)
	}

	return nil
}

func (f *PIDFile) Exists() bool {
	_, err := os.Stat(f.path)

	return err == nil
}
