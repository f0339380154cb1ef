package command

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/core"
)

func commandDependencyError(message string) error {
	return core.NewDependencyError(message)
}

// commandValidation lifts a field validation failure into the rich envelope
// returned from message Validate.
func commandValidation(err error) error {
	if err == nil {
		return nil
	}
	if validationErr, ok := core.AsValidationError(err); ok {
		return validationErr.Envelope()
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command: validation failed").
		WithTextCode(core.ServiceErrorBadInput)
}
