package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"

	"github.com/containerd/errdefs"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// chunkOverhead is the number of framing bytes around the chunk data.
	chunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is a single length-prefixed, CRC-suffixed PNG chunk. Chunks are
// immutable; use NewChunk or ParseChunk to obtain one.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// Checksum returns the CRC-32 (ISO-HDLC, as used by PNG and zip) of the type
// code followed by data.
func Checksum(t ChunkType, data []byte) uint32 {
	code := t.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// NewChunk builds a chunk of type t holding a copy of data.
func NewChunk(t ChunkType, data []byte) *Chunk {
	d := bytes.Clone(data)
	if d == nil {
		d = []byte{}
	}
	return &Chunk{
		typ:  t,
		data: d,
		crc:  Checksum(t, d),
	}
}

// ParseChunk decodes the chunk at the start of b. It returns the chunk and
// the number of bytes it occupied, so callers can continue with b[n:].
// Trailing bytes after the chunk are ignored.
func ParseChunk(b []byte) (*Chunk, int, error) {
	if len(b) < chunkOverhead {
		return nil, 0, fmt.Errorf("%w: need at least %d bytes for chunk framing, have %d",
			ErrChunkParse, chunkOverhead, len(b))
	}

	length := binary.BigEndian.Uint32(b[:lengthSize])
	if uint64(length) > uint64(len(b)-chunkOverhead) {
		return nil, 0, fmt.Errorf("%w: declared length %d exceeds the %d bytes available",
			ErrChunkParse, length, len(b)-chunkOverhead)
	}

	var code [4]byte
	copy(code[:], b[lengthSize:lengthSize+typeSize])
	t, err := NewChunkType(code)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrChunkParse, err)
	}

	dataStart := lengthSize + typeSize
	dataEnd := dataStart + int(length)
	data := b[dataStart:dataEnd]

	stored := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize])
	if computed := Checksum(t, data); computed != stored {
		return nil, 0, fmt.Errorf("%w: crc mismatch for %s chunk: stored %#08x, computed %#08x: %w",
			ErrChunkParse, t, stored, computed, errdefs.ErrDataLoss)
	}

	return &Chunk{
		typ:  t,
		data: bytes.Clone(data),
		crc:  stored,
	}, dataEnd + crcSize, nil
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

func (c *Chunk) Type() ChunkType {
	return c.typ
}

// Data returns a copy of the chunk payload.
func (c *Chunk) Data() []byte {
	return bytes.Clone(c.data)
}

func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the payload as text. It fails with ErrTextDecode when
// the payload is not valid UTF-8.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", ErrTextDecode, c.typ)
	}
	return string(c.data), nil
}

// Size returns the number of bytes the chunk occupies when serialized.
func (c *Chunk) Size() int {
	return chunkOverhead + len(c.data)
}

// Bytes serializes the chunk: length, type, data, crc.
func (c *Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.Size()))
}

func (c *Chunk) appendTo(dst []byte) []byte {
	code := c.typ.Bytes()
	dst = binary.BigEndian.AppendUint32(dst, c.Length())
	dst = append(dst, code[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// Equal reports whether both chunks have the same type, data and crc.
func (c *Chunk) Equal(other *Chunk) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.typ == other.typ && c.crc == other.crc && bytes.Equal(c.data, other.data)
}

func (c *Chunk) String() string {
	var sb strings.Builder
	sb.WriteString("Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.typ)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.crc)
	sb.WriteString("}\n")
	return sb.String()
}
