package editor

import "errors"

// ValidationError marks user-correctable failures: generation was not
// attempted and no state changed. Handlers map these to 400s instead of the
// generic failure path.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

var (
	ErrNoImageLoaded      = &ValidationError{msg: "please upload an image first"}
	ErrEmptyPrompt        = &ValidationError{msg: "please provide a prompt"}
	ErrMaskUnavailable    = &ValidationError{msg: "could not read mask data from canvas"}
	ErrGenerationInFlight = &ValidationError{msg: "a generation is already in progress"}
)

var ErrNoSession = errors.New("no editor session open for project")

// IsValidation reports whether err is a user-input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
