// Package wirelite decodes protocol buffer wire data without schemas or
// generated code. The wire package holds the field-level reader; this
// package adds a schema-less parser that walks every field in a payload.
package wirelite

import (
	"fmt"
	"io"

	"github.com/wirelite/wirelite/wire"
)

// Parse decodes wire-format bytes into a map of raw fields keyed by
// "field_<number>". Each entry is a map with "type" and "value"; repeated
// occurrences of the same field number accumulate into a slice. Without a
// schema, length-delimited payloads are surfaced as raw bytes. Group fields
// are returned as nested maps parsed up to the matching end-group tag.
func Parse(data []byte) (map[string]interface{}, error) {
	return parseFields(wire.NewBytesReader(data))
}

// ParseReader decodes wire-format bytes from a sequential stream.
func ParseReader(r io.Reader) (map[string]interface{}, error) {
	return parseFields(wire.NewStreamReader(r))
}

func parseFields(r *wire.Reader) (map[string]interface{}, error) {
	fields, end, err := parseScope(r, 0)
	if err != nil {
		return nil, err
	}
	if end != 0 {
		return nil, fmt.Errorf("%w: end-group tag %d outside any group", wire.ErrGroupMismatch, end)
	}
	return fields, nil
}

// parseScope reads fields until the current scope runs out or an end-group
// tag appears, returning that tag (0 when the scope simply ran out).
func parseScope(r *wire.Reader, depth int) (map[string]interface{}, wire.FieldNumber, error) {
	if depth > wire.RecursionLimit {
		return nil, 0, fmt.Errorf("%w: groups nested deeper than %d", wire.ErrRecursionLimit, wire.RecursionLimit)
	}

	result := make(map[string]interface{})
	for {
		more, err := r.HasNext()
		if err != nil {
			return nil, 0, err
		}
		if !more {
			return result, 0, nil
		}

		num, err := r.ReadTag()
		if err != nil {
			return nil, 0, err
		}

		wt := r.PeekType()
		var value interface{}
		switch wt {
		case wire.WireVarint:
			value, err = r.ReadVarint64()
		case wire.WireFixed32:
			value, err = r.ReadFixed32()
		case wire.WireFixed64:
			value, err = r.ReadFixed64()
		case wire.WireBytes:
			value, err = r.ReadBytes()
		case wire.WireStartGroup:
			var inner map[string]interface{}
			var end wire.FieldNumber
			inner, end, err = parseScope(r, depth+1)
			if err == nil && end != num {
				err = fmt.Errorf("%w: group %d ended by tag %d", wire.ErrGroupMismatch, num, end)
			}
			value = inner
		case wire.WireEndGroup:
			return result, num, nil
		}
		if err != nil {
			return nil, 0, err
		}

		addField(result, num, wt, value)
	}
}

// addField stores a decoded field, promoting repeats to a slice.
func addField(result map[string]interface{}, num wire.FieldNumber, wt wire.WireType, value interface{}) {
	key := fmt.Sprintf("field_%d", num)
	typeName := wt.String()
	if wt == wire.WireStartGroup {
		typeName = "group"
	}
	entry := map[string]interface{}{
		"type":  typeName,
		"value": value,
	}

	switch existing := result[key].(type) {
	case nil:
		result[key] = entry
	case []interface{}:
		result[key] = append(existing, entry)
	default:
		result[key] = []interface{}{existing, entry}
	}
}
