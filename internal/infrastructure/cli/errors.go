package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/portal"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// CLIError wraps lower-level errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var missing *config.MissingError
	if errors.As(err, &missing) {
		return NewCLIError(
			missing.Error(),
			fmt.Sprintf("export %s before running", missing.Name),
			err,
		)
	}

	var request *portal.RequestError
	if errors.As(err, &request) {
		return NewCLIError(
			request.Error(),
			"check portal availability and the API key; the run is retried at the next scheduled invocation",
			err,
		)
	}

	var parse *domain.ParseError
	if errors.As(err, &parse) {
		return NewCLIError(
			parse.Error(),
			fmt.Sprintf("fix or remove the status file '%s' in the data repository", parse.Path),
			err,
		)
	}

	return err
}
