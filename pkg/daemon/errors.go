package daemon

import (
	"fmt"
	"syscall"
)

type AlreadyRunningError struct {
	PID     int
	PIDFile string
}

func NewAlreadyRunningError(pid int, pidFile string) *AlreadyRunningError {
	return &AlreadyRunningError{PID: pid, PIDFile: pidFile}
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("pid file %s already exists, daemon already running with pid %d?", e.PIDFile, e.PID)
}

// SignalError is a failure to signal the daemon for any reason other than
// the process being gone.
type SignalError struct {
	PID    int
	Signal syscall.Signal
	Err    error
}

func NewSignalError(pid int, sig syscall.Signal, err error) *SignalError {
	return &SignalError{PID: pid, Signal: sig, Err: err}
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("failed to send %s to process %d: %s", e.Signal, e.PID, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}
