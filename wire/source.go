package wire

import (
	"bufio"
	"encoding/binary"
	"io"
)

// ByteSource is the sequential byte stream a Reader decodes from. Any
// implementation satisfying this contract is interchangeable: an in-memory
// buffer, a file, a network socket. Reads that cannot supply the requested
// bytes fail with ErrUnexpectedEOF.
type ByteSource interface {
	// Exhausted reports whether no more bytes are available.
	Exhausted() (bool, error)

	// ReadByte consumes and returns a single byte.
	ReadByte() (byte, error)

	// ReadN consumes exactly n bytes. The returned slice is owned by the
	// caller and does not alias the source's internal storage.
	ReadN(n int) ([]byte, error)

	// ReadString consumes exactly n bytes and returns them as UTF-8 text.
	ReadString(n int) (string, error)

	// Skip discards exactly n bytes.
	Skip(n int64) error

	// ReadUint32LE consumes 4 bytes as a little-endian integer.
	ReadUint32LE() (uint32, error)

	// ReadUint64LE consumes 8 bytes as a little-endian integer.
	ReadUint64LE() (uint64, error)
}

// BufferSource reads from an in-memory byte slice.
type BufferSource struct {
	buf []byte
	pos int
}

// NewBufferSource creates a source over data. The data is not copied; the
// caller must not mutate it while decoding.
func NewBufferSource(data []byte) *BufferSource {
	return &BufferSource{buf: data}
}

// Exhausted reports whether the cursor reached the end of the buffer.
func (s *BufferSource) Exhausted() (bool, error) {
	return s.pos >= len(s.buf), nil
}

// ReadByte consumes and returns a single byte.
func (s *BufferSource) ReadByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, ErrUnexpectedEOF
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadN consumes exactly n bytes, copied out of the buffer.
func (s *BufferSource) ReadN(n int) ([]byte, error) {
	if err := s.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s.buf[s.pos:])
	s.pos += n
	return out, nil
}

// ReadString consumes exactly n bytes as UTF-8 text.
func (s *BufferSource) ReadString(n int) (string, error) {
	if err := s.require(n); err != nil {
		return "", err
	}
	str := string(s.buf[s.pos : s.pos+n])
	s.pos += n
	return str, nil
}

// Skip discards exactly n bytes.
func (s *BufferSource) Skip(n int64) error {
	if n < 0 || n > int64(len(s.buf)-s.pos) {
		return ErrUnexpectedEOF
	}
	s.pos += int(n)
	return nil
}

// ReadUint32LE consumes 4 bytes as a little-endian integer.
func (s *BufferSource) ReadUint32LE() (uint32, error) {
	if err := s.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(s.buf[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadUint64LE consumes 8 bytes as a little-endian integer.
func (s *BufferSource) ReadUint64LE() (uint64, error) {
	if err := s.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(s.buf[s.pos:])
	s.pos += 8
	return v, nil
}

func (s *BufferSource) require(n int) error {
	if n < 0 || n > len(s.buf)-s.pos {
		return ErrUnexpectedEOF
	}
	return nil
}

// StreamSource reads from an io.Reader with internal buffering. It never
// seeks, so sockets and pipes work the same as files.
type StreamSource struct {
	r *bufio.Reader
}

// NewStreamSource creates a source reading sequentially from r.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{r: bufio.NewReader(r)}
}

// Exhausted reports whether the stream has no more bytes. It may block to
// buffer one byte but consumes nothing.
func (s *StreamSource) Exhausted() (bool, error) {
	_, err := s.r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReadByte consumes and returns a single byte.
func (s *StreamSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, mapEOF(err)
	}
	return b, nil
}

// ReadN consumes exactly n bytes.
func (s *StreamSource) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrUnexpectedEOF
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(s.r, out); err != nil {
		return nil, mapEOF(err)
	}
	return out, nil
}

// ReadString consumes exactly n bytes as UTF-8 text.
func (s *StreamSource) ReadString(n int) (string, error) {
	out, err := s.ReadN(n)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Skip discards exactly n bytes.
func (s *StreamSource) Skip(n int64) error {
	if n < 0 {
		return ErrUnexpectedEOF
	}
	for n > 0 {
		step := n
		if step > 1<<20 {
			step = 1 << 20
		}
		d, err := s.r.Discard(int(step))
		n -= int64(d)
		if err != nil {
			return mapEOF(err)
		}
	}
	return nil
}

// ReadUint32LE consumes 4 bytes as a little-endian integer.
func (s *StreamSource) ReadUint32LE() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, mapEOF(err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadUint64LE consumes 8 bytes as a little-endian integer.
func (s *StreamSource) ReadUint64LE() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, mapEOF(err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// mapEOF converts io EOF conditions into the decoder's truncation error.
// Other stream failures pass through untouched.
func mapEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrUnexpectedEOF
	}
	return err
}
