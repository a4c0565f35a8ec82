package server

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/swaggest/jsonschema-go"
)

// OptionalInt decodes leniently: a number or numeric string sets it, while
// null, an empty string, or anything unparseable leaves it unset.
type OptionalInt struct {
	Value int
	Set   bool
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	*o = OptionalInt{}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
		case v >= math.MaxInt:
			o.Value, o.Set = math.MaxInt, true
		case v <= math.MinInt:
			o.Value, o.Set = math.MinInt, true
		default:
			o.Value, o.Set = int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			o.Value, o.Set = n, true
		}
	}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil when unset.
func (o OptionalInt) Ptr() *int {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// JSONSchema describes the lenient wire form for the OpenAPI document.
func (OptionalInt) JSONSchema() (jsonschema.Schema, error) {
	var s jsonschema.Schema
	s.AddType(jsonschema.Integer)
	s.AddType(jsonschema.String)
	s.AddType(jsonschema.Null)
	s.WithDescription("Numbers and numeric strings set the value; null, empty or unparseable values leave it unset.")
	return s, nil
}
