package host

import (
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tsub/lang"
)

// LoadYAML reads a YAML mapping of variable names to values and binds each
// entry on the given Map, returning it for chaining. When m is nil a new
// empty Map is used.
//
// Scalars must be integers in 32-bit signed range or strings; sequences may
// nest and follow the same element rules. Floats, booleans, nulls, and
// nested mappings are rejected.
func LoadYAML(m *Map, r io.Reader) (*Map, error) {
	if m == nil {
		m = New()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read variables: %w", err)
	}

	var doc map[string]any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse variables: %w", err)
	}

	for name, raw := range doc {
		v, err := yamlValue(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}

		m.Bind(name, v)
	}

	return m, nil
}

func yamlValue(raw any) (lang.Value, error) {
	switch val := raw.(type) {
	case string:
		return lang.String(val), nil

	case int:
		return yamlNumber(int64(val))

	case int64:
		return yamlNumber(val)

	case uint64:
		if val > math.MaxInt32 {
			return lang.Null(), fmt.Errorf(
				"integer %d out of 32-bit range", val,
			)
		}

		return lang.Number(int32(val)), nil

	case []any:
		if len(val) == 0 {
			return lang.Null(), fmt.Errorf("lists must not be empty")
		}

		elems := make([]lang.Value, len(val))

		for i, e := range val {
			v, err := yamlValue(e)
			if err != nil {
				return lang.Null(), fmt.Errorf("element %d: %w", i, err)
			}

			elems[i] = v
		}

		return lang.List(elems...), nil

	case float64, float32:
		return lang.Null(), fmt.Errorf("floats are not supported")

	case bool:
		return lang.Null(), fmt.Errorf("booleans are not supported")

	case nil:
		return lang.Null(), fmt.Errorf("null is not supported")

	default:
		return lang.Null(), fmt.Errorf("unsupported value type %T", raw)
	}
}

func yamlNumber(n int64) (lang.Value, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return lang.Null(), fmt.Errorf("integer %d out of 32-bit range", n)
	}

	return lang.Number(int32(n)), nil
}
