// Package png reads, edits and writes PNG files at the chunk level.
//
// A PNG file is an eight byte signature followed by a sequence of chunks.
// This package does not interpret chunk contents; it only enforces the
// framing and the CRC of every chunk, which is enough to add, find and
// remove chunks without disturbing the image.
package png

import (
	"bytes"
	"fmt"
	"strings"
)

// Signature is the fixed header of every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG is a parsed PNG file: the signature and its ordered chunks.
// A PNG is not safe for concurrent mutation.
type PNG struct {
	chunks []*Chunk
}

// New returns a PNG holding chunks in the given order.
// Nil chunks are skipped.
func New(chunks ...*Chunk) *PNG {
	p := &PNG{chunks: make([]*Chunk, 0, len(chunks))}
	for _, c := range chunks {
		p.Append(c)
	}
	return p
}

// Parse decodes a complete PNG file. Any chunk error aborts the parse; the
// returned error keeps the underlying sentinel (ErrChunkParse,
// ErrInvalidChunkType) so callers can match it with errors.Is.
func Parse(b []byte) (*PNG, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrInvalidSignature
	}

	p := New()
	offset := len(Signature)
	for offset < len(b) {
		c, n, err := ParseChunk(b[offset:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), offset, err)
		}
		p.chunks = append(p.chunks, c)
		offset += n
	}
	return p, nil
}

// Chunks returns the chunks in file order. The slice is a copy; the chunks
// themselves are immutable.
func (p *PNG) Chunks() []*Chunk {
	out := make([]*Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

// Append adds c after the last chunk. A nil chunk is ignored.
func (p *PNG) Append(c *Chunk) {
	if c == nil {
		return
	}
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type is exactly code.
func (p *PNG) ChunkByType(code string) (*Chunk, bool) {
	i, err := p.indexOf(code)
	if err != nil {
		return nil, false
	}
	return p.chunks[i], true
}

// RemoveChunk removes the first chunk whose type is exactly code and returns
// it. The order of the remaining chunks is kept. If no chunk matches, the
// PNG is left untouched and ErrChunkNotFound is returned.
func (p *PNG) RemoveChunk(code string) (*Chunk, error) {
	i, err := p.indexOf(code)
	if err != nil {
		return nil, err
	}
	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i:i], p.chunks[i+1:]...)
	return removed, nil
}

func (p *PNG) indexOf(code string) (int, error) {
	t, err := ParseChunkType(code)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrChunkNotFound, err)
	}
	for i, c := range p.chunks {
		if c.Type() == t {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no %s chunk", ErrChunkNotFound, t)
}

// Size returns the length in bytes of the serialized file.
func (p *PNG) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.Size()
	}
	return n
}

// Bytes serializes the signature followed by every chunk.
func (p *PNG) Bytes() []byte {
	out := make([]byte, 0, p.Size())
	out = append(out, Signature[:]...)
	for _, c := range p.chunks {
		out = c.appendTo(out)
	}
	return out
}

// Equal reports whether both files hold equal chunks in the same order.
func (p *PNG) Equal(other *PNG) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.chunks) != len(other.chunks) {
		return false
	}
	for i := range p.chunks {
		if !p.chunks[i].Equal(other.chunks[i]) {
			return false
		}
	}
	return true
}

func (p *PNG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PNG (%d chunks) [\n", len(p.chunks))
	for _, c := range p.chunks {
		sb.WriteString(c.String())
	}
	sb.WriteString("]\n")
	return sb.String()
}
