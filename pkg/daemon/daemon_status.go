package daemon

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

type State string

const (
	StateNotRunning State = "not running"
	StateRunning    State = "running"
	// StateStale means the PID file names a process that no longer exists.
	StateStale State = "stale"
)

type Status struct {
	State     State
	PID       int
	PIDFile   string
	Name      string
	StartedAt time.Time
}

func (s Status) String() string {
	switch s.State {
	case StateRunning:
		if s.StartedAt.IsZero() {
			return fmt.Sprintf("running (pid %d)", s.PID)
		}

		return fmt.Sprintf("running (pid %d, %s, since %s)", s.PID, s.Name, s.StartedAt.Format(time.RFC3339))
	case StateStale:
		return fmt.Sprintf("stale pid file %s (pid %d not found)", s.PIDFile, s.PID)
	default:
		return string(s.State)
	}
}

// Status inspects the process named by the PID file. Only that pid is looked
// up, the process table is never scanned.
func (s *Supervisor) Status(ctx context.Context) (Status, error) {
	status := Status{State: StateNotRunning, PIDFile: s.pidFile.Path()}

	pid, err := s.GetPID()
	if err != nil {
		if IsNotRunning(err) {
			return status, nil
		}

		return status, err
	}

	status.PID = pid

	if pid > math.MaxInt32 {
		status.State = StateStale

		return status, nil
	}

	exists, err := process.PidExistsWithContext(ctx, int32(pid))
	if err != nil {
		return status, errors.WithMessagef(err, "failed to check process %d", pid)
	}
	if !exists {
		status.State = StateStale

		return status, nil
	}

	status.State = StateRunning

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return status, nil //nolint:nilerr
	}

	if name, err := p.NameWithContext(ctx); err == nil {
		status.Name = name
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		status.StartedAt = time.UnixMilli(created)
	}

	return status, nil
}
