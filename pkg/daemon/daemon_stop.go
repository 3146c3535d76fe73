package daemon

import (
	"context"
	"log"
	"syscall"

	"github.com/pkg/errors"
)

// Stop sends SIGTERM to the daemon every poll interval until the process is
// gone and then removes the PID file. Without a PID file there is nothing to
// stop and Stop returns nil.
func (s *Supervisor) Stop(ctx context.Context) error {
	pid, err := s.GetPID()
	if err != nil {
		if IsNotRunning(err) {
			log.Printf("Pid file %s does not exist, daemon not running?\n", s.pidFile.Path())

			return nil
		}

		return err
	}

	for attempt := 1; ; attempt++ {
		err = s.signal(pid, syscall.SIGTERM)
		if err != nil {
			if isNoSuchProcess(err) {
				log.Printf("Process %d terminated after %d signal(s)\n", pid, attempt)

				break
			}

			return NewSignalError(pid, syscall.SIGTERM, err)
		}

		if err = s.wait(ctx, s.pollInterval); err != nil {
			return errors.WithMessagef(err, "waiting for process %d to terminate", pid)
		}
	}

	return s.pidFile.Remove()
}
