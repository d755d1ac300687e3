package png

import (
	"encoding/binary"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = "This is where your secret message will be!"

// testChunkBytes frames message as a RuSt chunk with the given crc.
func testChunkBytes(message string, crc uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(message)))
	b = append(b, "RuSt"...)
	b = append(b, message...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func TestNewChunk(t *testing.T) {
	c := NewChunk(MustChunkType("RuSt"), []byte(testMessage))

	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, uint32(2882656334), c.CRC())
	assert.Equal(t, "RuSt", c.Type().String())
	assert.Equal(t, []byte(testMessage), c.Data())
}

func TestNewChunkCopiesData(t *testing.T) {
	data := []byte("hidden")
	c := NewChunk(MustChunkType("ruSt"), data)
	data[0] = 'H'
	assert.Equal(t, "hidden", string(c.Data()))

	out := c.Data()
	out[0] = 'X'
	assert.Equal(t, "hidden", string(c.Data()))
}

func TestNewChunkEmptyData(t *testing.T) {
	c := NewChunk(TypeIEND, nil)
	assert.Equal(t, uint32(0), c.Length())
	assert.Equal(t, uint32(0xAE426082), c.CRC())
	assert.Equal(t, []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82}, c.Bytes())
}

func TestParseChunk(t *testing.T) {
	raw := testChunkBytes(testMessage, 2882656334)

	c, n, err := ParseChunk(raw)
	require.NoError(t, err)
	assert.Equal(t, len(raw), n)
	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, "RuSt", c.Type().String())
	assert.Equal(t, uint32(2882656334), c.CRC())

	s, err := c.DataString()
	require.NoError(t, err)
	assert.Equal(t, testMessage, s)

	assert.Equal(t, raw, c.Bytes())
}

func TestParseChunkIgnoresTrailingBytes(t *testing.T) {
	raw := testChunkBytes(testMessage, 2882656334)
	withTail := append(raw, NewChunk(TypeIEND, nil).Bytes()...)

	c, n, err := ParseChunk(withTail)
	require.NoError(t, err)
	assert.Equal(t, len(raw), n)
	assert.Equal(t, testMessage, string(c.Data()))
}

func TestParseChunkErrors(t *testing.T) {
	valid := testChunkBytes(testMessage, 2882656334)

	badType := testChunkBytes(testMessage, 2882656334)
	copy(badType[4:8], "Ru1t")

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"empty", nil, ErrChunkParse},
		{"shorter than framing", valid[:11], ErrChunkParse},
		{"length exceeds buffer", valid[:len(valid)-1], ErrChunkParse},
		{"huge length", append([]byte{0xff, 0xff, 0xff, 0xff}, valid[4:]...), ErrChunkParse},
		{"bad crc", testChunkBytes(testMessage, 2882656333), ErrChunkParse},
		{"bad type", badType, ErrInvalidChunkType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, n, err := ParseChunk(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, c)
			assert.Zero(t, n)
		})
	}
}

func TestParseChunkDetectsAnyFlippedByte(t *testing.T) {
	raw := NewChunk(MustChunkType("ruSt"), []byte("hidden")).Bytes()

	for i := 8; i < len(raw)-4; i++ {
		corrupt := append([]byte(nil), raw...)
		corrupt[i] ^= 0x01
		_, _, err := ParseChunk(corrupt)
		require.ErrorIs(t, err, ErrChunkParse, "flipped data byte %d", i)
		assert.True(t, errdefs.IsDataLoss(err))
	}
}

func TestChunkRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("hidden"),
		{0x00, 0xff, 0x10, 0x80},
		make([]byte, 4096),
	}
	for _, data := range payloads {
		c := NewChunk(MustChunkType("ruSt"), data)
		parsed, n, err := ParseChunk(c.Bytes())
		require.NoError(t, err)
		assert.Equal(t, c.Size(), n)
		assert.True(t, c.Equal(parsed))
		assert.Equal(t, Checksum(c.Type(), data), parsed.CRC())
	}
}

func TestChunkDataStringInvalidUTF8(t *testing.T) {
	c := NewChunk(MustChunkType("ruSt"), []byte{0xff, 0xfe, 0xfd})
	_, err := c.DataString()
	require.ErrorIs(t, err, ErrTextDecode)
}

func TestChunkString(t *testing.T) {
	c := NewChunk(MustChunkType("RuSt"), []byte(testMessage))
	want := "Chunk {\n" +
		"  Length: 42\n" +
		"  Type: RuSt\n" +
		"  Data: 42 bytes\n" +
		"  Crc: 2882656334\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestParseChunkDataLossOnlyForChecksum(t *testing.T) {
	valid := testChunkBytes(testMessage, 2882656334)

	_, _, err := ParseChunk(valid[:len(valid)-1])
	require.ErrorIs(t, err, ErrChunkParse)
	assert.False(t, errdefs.IsDataLoss(err), "truncation is a framing error")

	badType := testChunkBytes(testMessage, 2882656334)
	copy(badType[4:8], "Ru1t")
	_, _, err = ParseChunk(badType)
	require.ErrorIs(t, err, ErrChunkParse)
	assert.False(t, errdefs.IsDataLoss(err), "a bad type is a framing error")

	_, _, err = ParseChunk(testChunkBytes(testMessage, 2882656333))
	require.ErrorIs(t, err, ErrChunkParse)
	assert.True(t, errdefs.IsDataLoss(err))
}
