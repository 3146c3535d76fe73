// Package daemon supervises a single long running process in the background.
//
// Start detaches a new daemon process from the controlling terminal and
// session. The daemon records its pid in a PID file, runs the launch hook and
// removes the PID file when the hook returns or a termination signal arrives.
// Stop signals the pid from the PID file until the process is gone.
//
// The PID file is the only source of truth: it is advisory and not locked,
// so two concurrent Start calls may race.
package daemon

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultStartTimeout = 5 * time.Second
	defaultWorkDir      = "/"
)

var errNoSpawner = errors.New("no spawner configured")

// LaunchFunc runs the supervised program and blocks until it exits. The
// context is cancelled when the daemon receives a termination signal.
type LaunchFunc func(ctx context.Context) error

// SpawnFunc starts the detached daemon process.
type SpawnFunc func(ctx context.Context) (Child, error)

type SignalFunc func(pid int, sig syscall.Signal) error

// Child is a freshly spawned daemon process. Done is closed when the
// process exits while the spawning process is still alive.
type Child struct {
	PID  int
	Done <-chan struct{}
}

type Supervisor struct {
	pidFile      *PIDFile
	launch       LaunchFunc
	spawn        SpawnFunc
	signal       SignalFunc
	prepare      func(workDir string) error
	pollInterval time.Duration
	startTimeout time.Duration
	workDir      string
}

type Option func(s *Supervisor)

// WithSpawner sets how Start detaches the daemon, usually ReExec.
func WithSpawner(spawn SpawnFunc) Option {
	return func(s *Supervisor) {
		s.spawn = spawn
	}
}

func WithSignaler(signal SignalFunc) Option {
	return func(s *Supervisor) {
		s.signal = signal
	}
}

// WithPollInterval sets the pause between termination signals in Stop.
func WithPollInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.pollInterval = d
	}
}

// WithStartTimeout bounds how long Start waits for the daemon to write its
// PID file. Zero disables the wait.
func WithStartTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		s.startTimeout = d
	}
}

func New(pidFilePath string, launch LaunchFunc, opts ...Option) *Supervisor {
	s := &Supervisor{
		pidFile:      NewPIDFile(pidFilePath),
		launch:       launch,
		spawn:        noSpawn,
		signal:       signalProcess,
		prepare:      prepareDaemon,
		pollInterval: defaultPollInterval,
		startTimeout: defaultStartTimeout,
		workDir:      defaultWorkDir,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func noSpawn(_ context.Context) (Child, error) {
	return Child{}, errNoSpawner
}

func (s *Supervisor) PIDFile() string {
	return s.pidFile.Path()
}

func (s *Supervisor) PIDFileExists() bool {
	return s.pidFile.Exists()
}

// GetPID reads the PID file. A missing or unreadable file is reported as an
// I/O error (see IsNotRunning); malformed contents wrap ErrInvalidPID.
func (s *Supervisor) GetPID() (int, error) {
	return s.pidFile.Read()
}

// IsNotRunning reports whether err from GetPID means that there is no
// daemon, as opposed to a corrupt PID file.
func IsNotRunning(err error) bool {
	return err != nil && !errors.Is(err, ErrInvalidPID)
}

func (s *Supervisor) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func currentPID() int {
	return os.Getpid()
}
