package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query holds flat key/value pairs appended to a request URL.
// Values must be scalars; nil values are skipped.
type Query map[string]any

// Encode returns the URL-encoded query string without a leading "?".
func (q Query) Encode() (string, error) {
	if len(q) == 0 {
		return "", nil
	}
	params := url.Values{}
	for k, v := range q {
		if v == nil {
			continue
		}
		s, err := formatQueryValue(v)
		if err != nil {
			return "", fmt.Errorf("query %q: %w", k, err)
		}
		params.Set(k, s)
	}
	return params.Encode(), nil
}

func formatQueryValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedQuery, v)
	}
}
