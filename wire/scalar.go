package wire

import "math"

// Scalar reinterpretation helpers layered on the raw readers. These cover
// the wire-level representations only; mapping values onto schema types is
// the caller's business.

// ReadSfixed32 reads a fixed32 value as a signed integer.
func (r *Reader) ReadSfixed32() (int32, error) {
	v, err := r.ReadFixed32()
	return int32(v), err
}

// ReadSfixed64 reads a fixed64 value as a signed integer.
func (r *Reader) ReadSfixed64() (int64, error) {
	v, err := r.ReadFixed64()
	return int64(v), err
}

// ReadFloat32 reads a fixed32 value as an IEEE 754 single-precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a fixed64 value as an IEEE 754 double-precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint32) int32 {
	return int32((encoded >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}
