package resolution

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/domain/moderation"
	"modpanel/internal/errs"
)

const (
	opUpdateMuteFromAppeal    = "update_mute_from_appeal"
	opUpdateWarningFromAppeal = "update_warning_from_appeal"
	opUpdateBanFromAppeal     = "update_ban_from_appeal"
	opDeleteMuteFromAppeal    = "delete_mute_from_appeal"
	opDeleteWarningFromAppeal = "delete_warning_from_appeal"
	opDeleteBanFromAppeal     = "delete_ban_from_appeal"
	opResolveReportMute       = "resolve_report_mute"
	opResolveReportWarning    = "resolve_report_warning"
	opResolveReportBan        = "resolve_report_ban"
)

const (
	outcomeOK       = "ok"
	outcomeDenied   = "denied"
	outcomeRejected = "rejected"
	outcomePartial  = "partial"
	outcomeError    = "error"
)

var tracer = otel.Tracer("modpanel/resolution")

// begin opens the span and log context of one operation. The returned
// function must be deferred with a pointer to the operation's error.
func begin(ctx context.Context, op string, session Session, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	start := time.Now()

	attrs = append(attrs, attribute.String("actor_id", session.PlayerID.String()))
	ctx, span := tracer.Start(ctx, "resolution."+op, trace.WithAttributes(attrs...))

	ctx = logging.WithAttrs(ctx,
		slog.String("component", "usecase.resolution"),
		slog.String("operation", op),
		slog.String("actor_id", session.PlayerID.String()),
	)
	if sc := span.SpanContext(); sc.IsValid() {
		ctx = logging.WithTelemetry(ctx, sc.TraceID().String(), sc.SpanID().String())
	}

	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}

		outcome := outcomeOf(err)
		resolutionsCounter.WithLabelValues(op, outcome).Inc()
		resolutionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

		span.SetAttributes(attribute.String("outcome", outcome))
		switch outcome {
		case outcomeOK:
			logging.Info(ctx, "resolution completed")
		case outcomeDenied, outcomeRejected:
			logging.Warn(ctx, "resolution rejected", slog.String("outcome", outcome), slog.String("reason", err.Error()))
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logging.Error(ctx, "resolution failed", slog.String("outcome", outcome), slog.Any("err", errs.Loggable(err)))
		}
		span.End()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case moderation.IsPermissionDenied(err):
		return outcomeDenied
	case moderation.IsExposed(err), errors.Is(err, ErrInvalidInput):
		return outcomeRejected
	case errors.Is(err, ErrAuditNotRecorded):
		return outcomePartial
	default:
		return outcomeError
	}
}
