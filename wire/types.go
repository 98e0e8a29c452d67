package wire

import "fmt"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // start marker of a group (deprecated framing)
	WireEndGroup   WireType = 4 // end marker of a group (deprecated framing)
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// tagTypeBits is the number of low bits of a tag that hold the wire type.
const tagTypeBits = 3

// Valid reports whether wt is one of the six known wire type codes.
// The 3-bit tag space leaves codes 6 and 7 unassigned.
func (wt WireType) Valid() bool {
	return wt >= WireVarint && wt <= WireFixed32
}

// String returns a short name for the wire type.
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireStartGroup:
		return "start_group"
	case WireEndGroup:
		return "end_group"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("unknown(%d)", int32(wt))
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<tagTypeBits | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> tagTypeBits), WireType(tag & 0x7)
}
