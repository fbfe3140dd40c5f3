package vessels

import (
	"fmt"

	"github.com/antonholmquist/jason"
)

// firstRecord returns the first object of a registry array payload, or nil
// when the array is empty.
func firstRecord(registry string, body []byte) (*jason.Object, error) {
	root, err := jason.NewValueFromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", registry, ErrMalformed, err)
	}

	records, err := root.Array()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", registry, ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	r, err := records[0].Object()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", registry, ErrMalformed, err)
	}
	return r, nil
}

// scalar returns the string or number at the key path as text, or "" when
// the field is absent, null, or not a scalar.
func scalar(o *jason.Object, keys ...string) string {
	v, err := o.GetValue(keys...)
	if err != nil {
		return ""
	}
	if s, err := v.String(); err == nil {
		return s
	}
	if n, err := v.Number(); err == nil {
		return n.String()
	}
	return ""
}

// withUnit appends unit to a non-empty measurement.
func withUnit(value, unit string) string {
	if value == "" {
		return ""
	}
	return value + unit
}
