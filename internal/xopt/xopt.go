// Package xopt provides a Missing | Present(T) value used wherever upstream data may be absent.
package xopt

import (
	"bytes"
	"reflect"

	go_json "github.com/goccy/go-json"
)

var null = []byte("null")

// Value holds either a present T or nothing. The zero Value is Missing.
type Value[T any] struct {
	value   T
	present bool
}

func Present[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

func Missing[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr is Present(*p) for non-nil p, Missing otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Missing[T]()
	}
	return Present(*p)
}

// FromOK adapts the comma-ok idiom.
func FromOK[T any](v T, ok bool) Value[T] {
	if !ok {
		return Missing[T]()
	}
	return Present(v)
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

func (v Value[T]) IsPresent() bool {
	return v.present
}

func (v Value[T]) IsMissing() bool {
	return !v.present
}

func (v Value[T]) OrElse(def T) T {
	if !v.present {
		return def
	}
	return v.value
}

// Ptr returns a pointer to a copy of the value, or nil when Missing.
func (v Value[T]) Ptr() *T {
	if !v.present {
		return nil
	}
	out := v.value
	return &out
}

// Equal reports whether both values are missing or both hold deeply equal values.
func (v Value[T]) Equal(o Value[T]) bool {
	if v.present != o.present {
		return false
	}
	return !v.present || reflect.DeepEqual(v.value, o.value)
}

func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.present {
		return Missing[U]()
	}
	return Present(fn(v.value))
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present {
		return null, nil
	}
	return go_json.Marshal(v.value)
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), null) {
		*v = Missing[T]()
		return nil
	}
	var out T
	if err := go_json.Unmarshal(data, &out); err != nil {
		return err
	}
	*v = Present(out)
	return nil
}
