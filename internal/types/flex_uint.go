package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexUint is a uint that can be unmarshaled from either a JSON number or a
// JSON string. Record ids arrive both ways from form-driven clients.
type FlexUint uint

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexUint) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	// Try unmarshaling as a number first
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexUint(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexUint: invalid uint string %q: %w", s, err)
		}
		*f = FlexUint(val)
		return nil
	}

	return fmt.Errorf("FlexUint: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexUint) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint(f))
}

// Uint converts FlexUint back to uint.
func (f FlexUint) Uint() uint {
	return uint(f)
}
