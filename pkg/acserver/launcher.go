package acserver

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hmehta/acdsc/pkg/shellquote"
	"github.com/pkg/errors"
)

const defaultStopTimeout = 10 * time.Second

// Launcher runs the dedicated server executable in its installation
// directory. It is the launch hook of the server daemon.
type Launcher struct {
	WorkDir string
	Command []string
	// StopTimeout is how long the server gets to exit after SIGTERM before
	// it is killed.
	StopTimeout time.Duration
}

// NewLauncher splits commandLine with shell quoting rules. A relative
// executable path is resolved against workDir.
func NewLauncher(workDir, commandLine string) (*Launcher, error) {
	name, args, err := shellquote.SplitCommand(commandLine)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse server executable")
	}

	return &Launcher{
		WorkDir:     workDir,
		Command:     append([]string{name}, args...),
		StopTimeout: defaultStopTimeout,
	}, nil
}

func (l *Launcher) executable() string {
	name := l.Command[0]
	if filepath.IsAbs(name) || !strings.ContainsRune(name, filepath.Separator) {
		return name
	}

	return filepath.Join(l.WorkDir, name)
}

// Run starts the server and waits for it. The server inherits the standard
// streams of the current process. Cancelling ctx stops the server; a server
// stopped that way is not reported as an error.
func (l *Launcher) Run(ctx context.Context) error {
	if len(l.Command) == 0 {
		return shellquote.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, l.executable(), l.Command[1:]...)
	cmd.Dir = l.WorkDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = l.StopTimeout

	log.Printf("Starting %s in %s\n", cmd.String(), l.WorkDir)

	err := cmd.Run()
	if ctx.Err() != nil {
		log.Println("Server stopped")

		return nil
	}
	if err != nil {
		return errors.WithMessage(err, "server exited")
	}

	log.Println("Server exited")

	return nil
}
