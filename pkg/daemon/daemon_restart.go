package daemon

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Supervisor) Restart(ctx context.Context) error {
	if err := s.Stop(ctx); err != nil {
		return errors.WithMessage(err, "failed to stop daemon")
	}

	if err := s.Start(ctx); err != nil {
		return errors.WithMessage(err, "failed to start daemon")
	}

	return nil
}
