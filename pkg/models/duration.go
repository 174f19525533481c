package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON config may carry either a number of
// nanoseconds or a human string such as "5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}

		*d = Duration(parsed)

		return nil
	default:
		return fmt.Errorf("invalid duration type %T", v)
	}
}

// Duration converts back to the standard library type.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
