package wire

import (
	"fmt"
	"io"
	"math"
)

// RecursionLimit is the standard number of levels of message nesting to allow.
const RecursionLimit = 64

// Reader decodes protobuf wire format data field by field from a ByteSource.
//
// A Reader is a pull cursor: callers loop on HasNext and ReadTag, inspect
// PeekType, then read or skip the value. Nested messages narrow the reader
// through BeginLengthDelimited/EndLengthDelimited, which must be strictly
// paired. A Reader decodes one stream once; it is not resettable and not
// safe for concurrent use.
type Reader struct {
	src ByteSource

	// pos is the absolute number of bytes consumed so far.
	pos int64
	// limit is the absolute position at which the current section ends.
	limit int64
	// limits holds the enclosing sections' limits, innermost last. Its
	// length is the current nesting depth; the top entry validates that
	// sections are closed in the order they were opened.
	limits []int64
	// nextType is the wire type set by the last ReadTag.
	nextType WireType
	hasTag   bool
}

// NewReader creates a reader decoding from src.
func NewReader(src ByteSource) *Reader {
	return &Reader{src: src, limit: math.MaxInt64}
}

// NewBytesReader creates a reader over an in-memory buffer.
func NewBytesReader(data []byte) *Reader {
	return NewReader(NewBufferSource(data))
}

// NewStreamReader creates a reader over a sequential byte stream.
func NewStreamReader(r io.Reader) *Reader {
	return NewReader(NewStreamSource(r))
}

// HasNext reports whether there is more data to process in the current
// section. Its result is narrowed by calls to BeginLengthDelimited.
func (r *Reader) HasNext() (bool, error) {
	if r.pos >= r.limit {
		return false, nil
	}
	done, err := r.src.Exhausted()
	if err != nil {
		return false, err
	}
	return !done, nil
}

// BeginLengthDelimited begins a length-delimited section of the current
// message by reading its length prefix. Afterwards HasNext returns false
// once the section is complete. The returned token must be handed back to
// the matching EndLengthDelimited call, which resumes using it as the limit.
func (r *Reader) BeginLengthDelimited() (int64, error) {
	if len(r.limits)+1 > RecursionLimit {
		return 0, fmt.Errorf("%w: more than %d nested sections", ErrRecursionLimit, RecursionLimit)
	}
	length, err := r.ReadVarint32()
	if err != nil {
		return 0, err
	}
	if int32(length) < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, int32(length))
	}
	newLimit := r.pos + int64(length)
	oldLimit := r.limit
	if newLimit > oldLimit {
		return 0, fmt.Errorf("%w: section of %d bytes overruns enclosing message", ErrUnexpectedEOF, length)
	}
	r.limits = append(r.limits, oldLimit)
	r.limit = newLimit
	return oldLimit, nil
}

// EndLengthDelimited ends a length-delimited section. Calls must be
// symmetric with BeginLengthDelimited: the innermost open section is closed
// with the token its begin call returned. An unpaired or out-of-order close
// is a caller bug and panics; a section closed with bytes left over (or
// overrun) is a data error and returns ErrFramingMismatch.
func (r *Reader) EndLengthDelimited(token int64) error {
	if r.pos != r.limit {
		return fmt.Errorf("%w: expected to end at %d but was %d", ErrFramingMismatch, r.limit, r.pos)
	}
	if len(r.limits) == 0 {
		panic("wire: EndLengthDelimited without corresponding BeginLengthDelimited")
	}
	if token != r.limits[len(r.limits)-1] {
		panic("wire: EndLengthDelimited called with token of a non-innermost section")
	}
	r.limits = r.limits[:len(r.limits)-1]
	r.limit = token
	return nil
}

// ReadTag reads the tag of the next field and returns its field number.
// Use PeekType after calling this method to query the field's wire type.
func (r *Reader) ReadTag() (FieldNumber, error) {
	tagAndType, err := r.ReadVarint32()
	if err != nil {
		return 0, err
	}
	if tagAndType == 0 {
		return 0, ErrZeroTag
	}
	num, wt := ParseTag(Tag(tagAndType))
	if !wt.Valid() {
		return 0, fmt.Errorf("%w: code %d on field %d", ErrInvalidWireType, int32(wt), num)
	}
	r.nextType = wt
	r.hasTag = true
	return num, nil
}

// PeekType returns the wire type of the field whose tag was most recently
// read. ReadTag must be called before this method; peeking before any tag
// has been read is a caller bug and panics.
func (r *Reader) PeekType() WireType {
	if !r.hasTag {
		panic("wire: PeekType called before ReadTag")
	}
	return r.nextType
}

// SkipGroup skips a section of the input delimited by START_GROUP/END_GROUP
// type markers. It returns the field number of the terminating end-group
// tag, or 0 if the current section ran out of data first.
func (r *Reader) SkipGroup() (FieldNumber, error) {
	for {
		more, err := r.HasNext()
		if err != nil {
			return 0, err
		}
		if !more {
			return 0, nil
		}
		tag, err := r.ReadTag()
		if err != nil {
			return 0, err
		}
		end, err := r.SkipField(tag)
		if err != nil {
			return 0, err
		}
		if end {
			return tag, nil
		}
	}
}

// SkipField skips the value of the field whose tag was most recently read.
// It returns true when that field was an END_GROUP marker, signalling the
// end of the group identified by tag.
func (r *Reader) SkipField(tag FieldNumber) (bool, error) {
	switch r.PeekType() {
	case WireVarint:
		_, err := r.ReadVarint64()
		return false, err
	case WireFixed32:
		_, err := r.ReadFixed32()
		return false, err
	case WireFixed64:
		_, err := r.ReadFixed64()
		return false, err
	case WireBytes:
		count, err := r.ReadVarint32()
		if err != nil {
			return false, err
		}
		return false, r.skip(int64(count))
	case WireStartGroup:
		end, err := r.SkipGroup()
		if err != nil {
			return false, err
		}
		if end != tag {
			return false, fmt.Errorf("%w: group %d ended by tag %d", ErrGroupMismatch, tag, end)
		}
		return false, nil
	case WireEndGroup:
		return true, nil
	default:
		// ReadTag rejects unknown codes, so this cannot be reached.
		panic(fmt.Sprintf("wire: SkipField on invalid wire type %d", r.nextType))
	}
}

// ReadBytes reads a bytes field value from the stream. The length prefix is
// read from the stream before the payload.
func (r *Reader) ReadBytes() ([]byte, error) {
	count, err := r.ReadVarint32()
	if err != nil {
		return nil, err
	}
	data, err := r.src.ReadN(int(count))
	if err != nil {
		return nil, err
	}
	r.pos += int64(count)
	return data, nil
}

// ReadString reads a string field value from the stream.
func (r *Reader) ReadString() (string, error) {
	count, err := r.ReadVarint32()
	if err != nil {
		return "", err
	}
	str, err := r.src.ReadString(int(count))
	if err != nil {
		return "", err
	}
	r.pos += int64(count)
	return str, nil
}

// ReadVarint32 reads a raw varint from the stream. If the encoding is
// larger than 32 bits, the upper bits are discarded: a writer may emit a
// 32-bit field using the full 64-bit varint representation and a 32-bit
// reader must still consume and truncate it rather than fail.
func (r *Reader) ReadVarint32() (uint32, error) {
	tmp, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if tmp < 0x80 {
		return uint32(tmp), nil
	}
	result := uint32(tmp & 0x7f)
	if tmp, err = r.readByte(); err != nil {
		return 0, err
	}
	if tmp < 0x80 {
		return result | uint32(tmp)<<7, nil
	}
	result |= uint32(tmp&0x7f) << 7
	if tmp, err = r.readByte(); err != nil {
		return 0, err
	}
	if tmp < 0x80 {
		return result | uint32(tmp)<<14, nil
	}
	result |= uint32(tmp&0x7f) << 14
	if tmp, err = r.readByte(); err != nil {
		return 0, err
	}
	if tmp < 0x80 {
		return result | uint32(tmp)<<21, nil
	}
	result |= uint32(tmp&0x7f) << 21
	if tmp, err = r.readByte(); err != nil {
		return 0, err
	}
	// The whole fifth byte lands at bit 28; anything past bit 31
	// (including the continuation bit) falls off the top.
	result |= uint32(tmp) << 28
	if tmp < 0x80 {
		return result, nil
	}
	// Overlong encoding: the cursor must still move past the remaining
	// continuation bytes of a 64-bit-shaped varint.
	for i := 0; i < 5; i++ {
		if tmp, err = r.readByte(); err != nil {
			return 0, err
		}
		if tmp < 0x80 {
			return result, nil
		}
	}
	return 0, ErrMalformedVarint
}

// ReadVarint64 reads a raw varint up to 64 bits in length from the stream.
func (r *Reader) ReadVarint64() (uint64, error) {
	var result uint64
	for shift := uint(0); shift < 64; shift += 7 {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return result, nil
		}
	}
	return 0, ErrMalformedVarint
}

// ReadFixed32 reads a 32-bit little-endian integer from the stream.
func (r *Reader) ReadFixed32() (uint32, error) {
	v, err := r.src.ReadUint32LE()
	if err != nil {
		return 0, err
	}
	r.pos += 4
	return v, nil
}

// ReadFixed64 reads a 64-bit little-endian integer from the stream.
func (r *Reader) ReadFixed64() (uint64, error) {
	v, err := r.src.ReadUint64LE()
	if err != nil {
		return 0, err
	}
	r.pos += 8
	return v, nil
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

func (r *Reader) skip(n int64) error {
	if err := r.src.Skip(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}
