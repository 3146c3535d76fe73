//go:build linux || darwin

package daemon

import (
	"context"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var terminationSignals = []os.Signal{unix.SIGTERM, unix.SIGINT, unix.SIGHUP}

// ReExec returns a SpawnFunc that starts the current executable with args
// in a new session, with "/" as working directory and the null device as
// standard streams.
func ReExec(args ...string) SpawnFunc {
	return func(_ context.Context) (Child, error) {
		exe, err := os.Executable()
		if err != nil {
			return Child{}, errors.WithMessage(err, "failed to find current executable")
		}

		devNull, err := os.Open(os.DevNull)
		if err != nil {
			return Child{}, errors.WithMessage(err, "failed to open null device")
		}
		defer func() {
			_ = devNull.Close()
		}()

		p, err := os.StartProcess(exe, append([]string{exe}, args...), &os.ProcAttr{
			Dir:   defaultWorkDir,
			Env:   os.Environ(),
			Files: []*os.File{devNull, devNull, devNull},
			Sys: &syscall.SysProcAttr{
				Setsid: true,
			},
		})
		if err != nil {
			return Child{}, errors.WithMessage(err, "failed to start process")
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = p.Wait()
		}()

		return Child{PID: p.Pid, Done: done}, nil
	}
}

func prepareDaemon(workDir string) error {
	unix.Umask(0)

	return os.Chdir(workDir)
}

func signalProcess(pid int, sig syscall.Signal) error {
	return unix.Kill(pid, sig)
}

func isNoSuchProcess(err error) bool {
	return errors.Is(err, unix.ESRCH)
}
