//go:build !linux && !darwin

package daemon

import (
	"context"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

var errUnsupported = errors.New("daemon mode is not supported on this platform")

var terminationSignals = []os.Signal{os.Interrupt}

func ReExec(_ ...string) SpawnFunc {
	return func(_ context.Context) (Child, error) {
		return Child{}, errUnsupported
	}
}

func prepareDaemon(workDir string) error {
	return os.Chdir(workDir)
}

func signalProcess(_ int, _ syscall.Signal) error {
	return errUnsupported
}

func isNoSuchProcess(err error) bool {
	return errors.Is(err, os.ErrProcessDone)
}
