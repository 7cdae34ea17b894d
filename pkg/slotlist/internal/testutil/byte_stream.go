package testutil

// ByteStream reads bytes sequentially from a byte slice.
//
// When the stream is exhausted, all reads return zero values. The same
// input always produces the same sequence of values, which the fuzzer
// needs to minimize failing inputs.
type ByteStream struct {
	bytes []byte
	pos   int
}

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteStream) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextUint16 reads 2 bytes as a little-endian uint16.
func (s *ByteStream) NextUint16() uint16 {
	return uint16(s.NextByte()) | uint16(s.NextByte())<<8
}

// NextIntN returns a value in [0, n). n <= 0 yields 0.
func (s *ByteStream) NextIntN(n int) int {
	if n <= 0 {
		return 0
	}

	return int(s.NextUint16()) % n
}
