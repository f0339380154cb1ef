package query

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/core"
)

func queryDependencyError(message string) error {
	return core.NewDependencyError(message)
}

func queryValidation(err error) error {
	if err == nil {
		return nil
	}
	if validationErr, ok := core.AsValidationError(err); ok {
		return validationErr.Envelope()
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "query: validation failed").
		WithTextCode(core.ServiceErrorBadInput)
}
