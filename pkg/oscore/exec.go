package oscore

import (
	"context"
	"log"
	"os/exec"
	"slices"

	"github.com/hmehta/acdsc/pkg/shellquote"
	"github.com/pkg/errors"
)

const redacted = "REDACTED"

type execOptions struct {
	dir     string
	secrets []string
}

type ExecOption func(o *execOptions)

func WithDir(dir string) ExecOption {
	return func(o *execOptions) {
		o.dir = dir
	}
}

// WithSecrets hides the given arguments in the logged command line.
func WithSecrets(secrets ...string) ExecOption {
	return func(o *execOptions) {
		o.secrets = append(o.secrets, secrets...)
	}
}

func applyExecOptions(opts ...ExecOption) *execOptions {
	o := &execOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func ExecCommand(ctx context.Context, command string, args []string, opts ...ExecOption) error {
	o := applyExecOptions(opts...)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = o.dir
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()
	log.Println('\n', CommandLine(command, args, o.secrets...))

	err := cmd.Run()
	if err != nil {
		return errors.Wrapf(err, "failed to run command %s", command)
	}

	return nil
}

// CommandLine renders a shell-quoted command line with every argument equal
// to one of the secrets replaced.
func CommandLine(command string, args []string, secrets ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, command)

	for _, arg := range args {
		if arg != "" && slices.Contains(secrets, arg) {
			arg = redacted
		}
		words = append(words, arg)
	}

	return shellquote.Join(words...)
}
