package services

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// track opens a span for one service operation. The returned func ends it and,
// when *errp is set, records the error and logs it once: rejections at warn,
// storage and internal failures at error.
func track(ctx context.Context, operation string) (context.Context, func(errp *error)) {
	ctx, span := observability.StartSpan(ctx, operation)
	return ctx, func(errp *error) {
		defer span.End()
		if errp == nil || *errp == nil {
			return
		}
		err := *errp
		observability.RecordError(span, err)

		logger := observability.LoggerFromContext(ctx)
		switch {
		case apperrors.IsValidation(err),
			apperrors.IsConflict(err),
			apperrors.IsNotFound(err),
			apperrors.IsType(err, apperrors.ErrorTypeUnauthorized),
			apperrors.IsType(err, apperrors.ErrorTypeForbidden):
			logger.Warn().
				Err(err).
				Str("operation", operation).
				Interface("fields", apperrors.FieldErrors(err)).
				Msg("request rejected")
		default:
			logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
		}
	}
}

// invalid converts a non-empty validation result into an error
func invalid(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return apperrors.NewFieldValidationError(errs)
}

// updateFields copies an update map without the key column so a partial
// update can never retarget another row.
func updateFields(fields entities.Fields) entities.Fields {
	out := make(entities.Fields, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
