// Package envelope extracts a canonical array or object from the varying payload envelopes the
// gateway returns: a bare array, {"data": [...]} or {"result": {"data": [...]}}.
package envelope

import (
	"bytes"

	go_json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Extractor pulls the payload array out of one envelope shape.
type Extractor interface {
	Extract(root gjson.Result) (gjson.Result, bool)
}

type ExtractorFunc func(root gjson.Result) (gjson.Result, bool)

func (f ExtractorFunc) Extract(root gjson.Result) (gjson.Result, bool) { return f(root) }

// RootArray matches a payload that is already an array.
func RootArray() Extractor {
	return ExtractorFunc(func(root gjson.Result) (gjson.Result, bool) {
		return root, root.IsArray()
	})
}

// Path matches when the value at path is an array.
func Path(path string) Extractor {
	return ExtractorFunc(func(root gjson.Result) (gjson.Result, bool) {
		if !root.IsObject() {
			return gjson.Result{}, false
		}
		v := root.Get(path)
		return v, v.IsArray()
	})
}

// Chain evaluates extractors in order and stops at the first match.
type Chain []Extractor

// Default is the envelope order every trend endpoint is read with.
var Default = Chain{
	RootArray(),
	Path("data"),
	Path("result.data"),
}

func (c Chain) Items(raw []byte) []gjson.Result {
	if !gjson.ValidBytes(raw) {
		return []gjson.Result{}
	}
	root := gjson.ParseBytes(raw)
	for _, e := range c {
		if v, ok := e.Extract(root); ok {
			return v.Array()
		}
	}
	return []gjson.Result{}
}

// Canonical re-encodes the extracted items as a compact JSON array.
func (c Chain) Canonical(raw []byte) []byte {
	items := c.Items(raw)
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(item.Raw)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func Items(raw []byte) []gjson.Result {
	return Default.Items(raw)
}

func Canonical(raw []byte) []byte {
	return Default.Canonical(raw)
}

// Decode normalizes raw and decodes each item into T. Items that do not decode are skipped and
// counted rather than failing the whole series.
func Decode[T any](raw []byte) (items []T, skipped int) {
	results := Items(raw)
	items = make([]T, 0, len(results))
	for _, r := range results {
		var v T
		if err := go_json.Unmarshal([]byte(r.Raw), &v); err != nil {
			skipped++
			continue
		}
		items = append(items, v)
	}
	return items, skipped
}
