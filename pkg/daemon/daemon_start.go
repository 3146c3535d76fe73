package daemon

import (
	"context"
	"log"
	"os/signal"
	"time"

	"github.com/pkg/errors"
)

var ErrExitedBeforeReady = errors.New("daemon exited before writing pid file")

// Start spawns the daemon unless the PID file names one already.
// It returns once the daemon has written its PID file or the start timeout
// has passed; the daemon keeps running in both cases.
func (s *Supervisor) Start(ctx context.Context) error {
	pid, err := s.GetPID()
	if err == nil {
		return NewAlreadyRunningError(pid, s.pidFile.Path())
	}
	if !IsNotRunning(err) {
		return err
	}

	child, err := s.spawn(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to spawn daemon")
	}

	log.Printf("Daemon process spawned with pid %d\n", child.PID)

	return s.waitReady(ctx, child)
}

func (s *Supervisor) waitReady(ctx context.Context, child Child) error {
	if s.startTimeout <= 0 {
		return nil
	}

	deadline := time.NewTimer(s.startTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		if s.pidFile.Exists() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-child.Done:
			if s.pidFile.Exists() {
				return nil
			}

			return ErrExitedBeforeReady
		case <-deadline.C:
			log.Printf("Daemon has not written pid file %s within %s\n", s.pidFile.Path(), s.startTimeout)

			return nil
		case <-ticker.C:
		}
	}
}

// Run is the daemon side of Start. It records the current process in the
// PID file, runs the launch hook and removes the PID file when the hook
// returns. A termination signal cancels the hook's context.
func (s *Supervisor) Run(ctx context.Context) error {
	if s.prepare != nil {
		if err := s.prepare(s.workDir); err != nil {
			return errors.WithMessage(err, "failed to prepare daemon environment")
		}
	}

	ctx, stop := signal.NotifyContext(ctx, terminationSignals...)
	defer stop()

	if err := s.pidFile.Write(currentPID()); err != nil {
		return err
	}
	defer func() {
		if err := s.pidFile.Remove(); err != nil {
			log.Println(err)
		}
	}()

	log.Printf("Daemon running with pid %d\n", currentPID())

	err := s.launch(ctx)
	if err != nil {
		return errors.WithMessage(err, "launch failed")
	}

	log.Println("Daemon finished")

	return nil
}
