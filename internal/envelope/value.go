package envelope

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/garrettladley/healthmesh/internal/xopt"
)

// Object is Present only for a JSON object with at least one key. An empty body, null, {} and
// non-objects all collapse to Missing.
func Object(raw []byte) xopt.Value[gjson.Result] {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return xopt.Missing[gjson.Result]()
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return xopt.Missing[gjson.Result]()
	}
	empty := true
	root.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	if empty {
		return xopt.Missing[gjson.Result]()
	}
	return xopt.Present(root)
}

// Number accepts JSON numbers and numeric strings. Everything else, including null, booleans and
// empty strings, is Missing.
func Number(r gjson.Result) xopt.Value[float64] {
	switch r.Type {
	case gjson.Number:
		return xopt.Present(r.Num)
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return xopt.Missing[float64]()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return xopt.Missing[float64]()
		}
		return xopt.Present(f)
	default:
		return xopt.Missing[float64]()
	}
}

// Field is Number applied to the value at path.
func Field(obj gjson.Result, path string) xopt.Value[float64] {
	return Number(obj.Get(path))
}

// String is Present for a non-empty JSON string.
func String(r gjson.Result) xopt.Value[string] {
	if r.Type != gjson.String || r.Str == "" {
		return xopt.Missing[string]()
	}
	return xopt.Present(r.Str)
}
