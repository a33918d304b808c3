package tutor

import "errors"

var (
	// ErrUnknownSession is returned for a session ID that was never issued
	// or has been closed.
	ErrUnknownSession = errors.New("unknown session")

	// ErrNotAssessed is returned by equation operations before the
	// diagnostic quiz has been scored.
	ErrNotAssessed = errors.New("diagnostic quiz not completed")

	// ErrNoOpenEquation is returned when submitting or asking for a hint
	// without an open equation of that kind.
	ErrNoOpenEquation = errors.New("no open equation")

	// ErrLocked is returned when opening an equation whose predecessor is
	// not completed.
	ErrLocked = errors.New("equation is locked")

	// ErrBlankName is returned by Login for an empty name.
	ErrBlankName = errors.New("name must not be blank")

	// ErrExplainUnavailable is returned when no LLM provider is configured.
	ErrExplainUnavailable = errors.New("explanations are not available")
)
