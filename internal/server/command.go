package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrBadRequest is wrapped by every malformed or missing body field error.
var ErrBadRequest = errors.New("bad request")

// Command is one protocol request.
type Command struct {
	Method string
	URI    string
	Body   Body
}

// Response is the JSON object returned for a command.
type Response map[string]any

// Body is a decoded JSON request body.
type Body map[string]any

// ParseBody decodes a JSON object. An empty body is an empty object.
func ParseBody(data []byte) (Body, error) {
	b := Body{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: body is not a JSON object: %v", ErrBadRequest, err)
	}
	return b, nil
}

func (b Body) field(key string) (any, error) {
	v, ok := b[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing field %q", ErrBadRequest, key)
	}
	return v, nil
}

// String returns the string field key.
func (b Body) String(key string) (string, error) {
	v, err := b.field(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string", ErrBadRequest, key)
	}
	return s, nil
}

// Float returns the numeric field key.
func (b Body) Float(key string) (float64, error) {
	v, err := b.field(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %q: %v", ErrBadRequest, key, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: field %q must be a number", ErrBadRequest, key)
}

// Int64 returns the numeric field key truncated to an integer.
func (b Body) Int64(key string) (int64, error) {
	f, err := b.Float(key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
		return 0, fmt.Errorf("%w: field %q is out of range", ErrBadRequest, key)
	}
	return int64(f), nil
}

// Strings returns the string array field key.
func (b Body) Strings(key string) ([]string, error) {
	v, err := b.field(key)
	if err != nil {
		return nil, err
	}
	switch a := v.(type) {
	case []string:
		return a, nil
	case []any:
		out := make([]string, len(a))
		for i, item := range a {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: field %q[%d] must be a string", ErrBadRequest, key, i)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: field %q must be an array of strings", ErrBadRequest, key)
}
