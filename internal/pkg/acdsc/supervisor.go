package acdsc

import (
	"context"

	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/daemon"
)

// DaemonArgs are the arguments the detached server daemon is started with.
func DaemonArgs(configPath string) []string {
	return []string{"--config", configPath, "server", "daemon"}
}

// NewSupervisor returns the supervisor of the dedicated server process.
// Start re-executes the current binary with DaemonArgs.
func NewSupervisor(cfg Config, configPath string, opts ...daemon.Option) *daemon.Supervisor {
	launch := func(ctx context.Context) error {
		launcher, err := acserver.NewLauncher(cfg.ServerPath, cfg.ServerExecutable)
		if err != nil {
			return err
		}

		return launcher.Run(ctx)
	}

	opts = append([]daemon.Option{
		daemon.WithSpawner(daemon.ReExec(DaemonArgs(configPath)...)),
		daemon.WithStartTimeout(cfg.StartTimeoutDuration()),
	}, opts...)

	return daemon.New(cfg.PIDFile, launch, opts...)
}
