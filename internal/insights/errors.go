package insights

import "errors"

var (
	// ErrUpstreamUnavailable marks a transport-level failure of the
	// text-generation service. The pipeline recovers by substituting the
	// default insight record; the error never reaches the end caller.
	ErrUpstreamUnavailable = errors.New("insight generation service unavailable")

	// ErrMalformedPayload marks response text that did not decode as JSON
	// after sanitization. This is the single hard-failure boundary of the
	// parsing pipeline; recovery is the same default substitution.
	ErrMalformedPayload = errors.New("malformed insight payload")
)
