package insights

import (
	"encoding/json"
	"fmt"
)

// Decode parses the sanitized candidate string into a generic structured
// value. It is the only stage allowed to fail hard: everything downstream
// assumes decoding already succeeded. The original parse error is carried
// in the message for logging.
func Decode(candidate string) (any, error) {
	var decoded any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return decoded, nil
}
