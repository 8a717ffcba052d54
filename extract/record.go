package extract

import "time"

// Record is one extracted row keyed by field name. Values are nil, string,
// float64, bool or time.Time before coercion, and nil, string or float64
// after it.
type Record map[string]any

func (r Record) clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Float returns a numeric field, or nil when it is missing or not a number.
func (r Record) Float(name string) *float64 {
	if f, ok := r[name].(float64); ok {
		return &f
	}
	return nil
}

// FloatOr returns a numeric field, or def when it is missing.
func (r Record) FloatOr(name string, def float64) float64 {
	if f := r.Float(name); f != nil {
		return *f
	}
	return def
}

// Text returns a field as text. nil becomes the empty string.
func (r Record) Text(name string) string {
	switch v := r[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(isoDate)
	default:
		return cellText(v)
	}
}
