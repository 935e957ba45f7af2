package estimate

import apperrors "feecalc/internal/errors"

var ErrHistoryUnavailable = &apperrors.DomainError{
	Code:    apperrors.CodeNotFound,
	Message: "calculation history is not available",
}
