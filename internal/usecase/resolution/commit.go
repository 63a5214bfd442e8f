package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
	"modpanel/internal/ports"
)

// ErrAuditNotRecorded marks a resolution whose server store write committed
// while the central store phase failed. The punishment is mutated but the
// appeal or report is unresolved and has no audit record.
var ErrAuditNotRecorded = errors.New("server store committed but audit record was not written")

// PartialCommitError is returned for the window between the two store commits.
// It matches both ErrAuditNotRecorded and the central store failure.
type PartialCommitError struct {
	Operation string
	ServerID  string
	Err       error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%s on server %q: %v: %v", e.Operation, e.ServerID, ErrAuditNotRecorded, e.Err)
}

func (e *PartialCommitError) Unwrap() []error {
	return []error{ErrAuditNotRecorded, e.Err}
}

// commitTwoPhase commits serverPhase in the server store and only then runs
// centralPhase in the central store. There is no compensation: a failing
// central phase leaves the server commit in place and is reported as a
// *PartialCommitError.
// TODO: pass an idempotency key to the audit insert so a retried central phase cannot record twice.
func (s *Service) commitTwoPhase(
	ctx context.Context,
	op string,
	server ports.Server,
	serverPhase func(txCtx context.Context) error,
	centralPhase func(txCtx context.Context) error,
) error {
	if err := server.UoW.WithTx(ctx, serverPhase); err != nil {
		return err
	}

	if err := s.central.UoW.WithTx(ctx, centralPhase); err != nil {
		partialCommitsCounter.WithLabelValues(op).Inc()
		logging.Error(ctx, "server store committed but central store phase failed",
			slog.Bool("consistency_hazard", true),
			slog.String("server_id", server.Config.ServerID),
			slog.Any("err", errs.Loggable(err)),
		)
		return &PartialCommitError{Operation: op, ServerID: server.Config.ServerID, Err: err}
	}
	return nil
}
