package png

import (
	"bytes"
	"fmt"
)

// Critical chunk types that open and close every PNG file.
var (
	TypeIHDR = MustChunkType("IHDR")
	TypeIEND = MustChunkType("IEND")
)

// ChunkType is the four byte type code of a chunk. Bit 5 of each byte (the
// ASCII letter case) carries a property flag:
//
//	byte 0: ancillary    (uppercase = critical)
//	byte 1: private      (uppercase = public)
//	byte 2: reserved     (must be uppercase)
//	byte 3: safe-to-copy (lowercase = safe to copy)
//
// A ChunkType can only be created from four ASCII letters. Whether the
// reserved bit is set correctly is a separate question answered by IsValid.
type ChunkType struct {
	code [4]byte
}

// NewChunkType returns the chunk type for b. It fails with
// ErrInvalidChunkType unless every byte is an ASCII letter.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is %#02x, not an ASCII letter", ErrInvalidChunkType, i, c)
		}
	}
	return ChunkType{code: b}, nil
}

// ParseChunkType returns the chunk type spelled by s, which must be exactly
// four ASCII letters.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q must be 4 characters long", ErrInvalidChunkType, s)
	}
	var b [4]byte
	copy(b[:], s)
	t, err := NewChunkType(b)
	if err != nil {
		return ChunkType{}, fmt.Errorf("%w (in %q)", err, s)
	}
	return t, nil
}

// MustChunkType is like ParseChunkType but panics on error. It is intended
// for package level variables.
func MustChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Bytes returns the raw type code.
func (t ChunkType) Bytes() [4]byte {
	return t.code
}

func (t ChunkType) String() string {
	return string(t.code[:])
}

// IsCritical reports whether decoders must understand the chunk.
func (t ChunkType) IsCritical() bool {
	return isUpper(t.code[0])
}

// IsPublic reports whether the type is part of the public registry.
func (t ChunkType) IsPublic() bool {
	return isUpper(t.code[1])
}

func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t.code[2])
}

// IsSafeToCopy reports whether editors may copy the chunk without knowing
// its contents even when critical chunks were modified.
func (t ChunkType) IsSafeToCopy() bool {
	return isLower(t.code[3])
}

// IsValid reports full structural validity: all four bytes are letters and
// the reserved byte is uppercase. A ChunkType returned by the constructors
// can still report false here.
func (t ChunkType) IsValid() bool {
	return isLetter(t.code[0]) &&
		isLetter(t.code[1]) &&
		isUpper(t.code[2]) &&
		isLetter(t.code[3])
}

// Compare orders chunk types byte by byte. It returns -1, 0 or +1.
func (t ChunkType) Compare(other ChunkType) int {
	return bytes.Compare(t.code[:], other.code[:])
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isLetter(c byte) bool {
	return isUpper(c) || isLower(c)
}
