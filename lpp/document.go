package lpp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the structured output of a decode. It is a string-keyed
// container that preserves insertion order, holding numbers, strings,
// booleans and nested *Document values.
//
// Setting an existing key overwrites its value in place without changing
// the key's position. A Document is not safe for concurrent mutation.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		values: make(map[string]any),
	}
}

// Set stores value under key. If the key already exists its value is
// replaced and its original position is kept.
func (d *Document) Set(key string, value any) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Contains reports whether key is present.
func (d *Document) Contains(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the document as compact JSON for logging and debugging.
func (d *Document) String() string {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf("Document{marshal error: %v}", err)
	}
	return string(data)
}
