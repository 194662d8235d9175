package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRemove(t *testing.T) {
	c := NewContainer(testChunks(t))

	chunk, err := Encode(c, "ruSt", []byte("hidden"))
	require.NoError(t, err)
	assert.Equal(t, "ruSt", chunk.Type().String())
	assert.Equal(t, 4, c.Len())

	msg, err := Decode(c, "ruSt")
	require.NoError(t, err)
	assert.Equal(t, "hidden", msg)
	assert.Equal(t, 4, c.Len(), "decode must not mutate")

	removed, err := Remove(c, "ruSt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hidden"), removed.Data())
	assert.Equal(t, 3, c.Len())

	_, err = Decode(c, "ruSt")
	assert.ErrorIs(t, err, ErrChunkNotFound)
	_, err = Remove(c, "ruSt")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestEncodeCopiesMessage(t *testing.T) {
	c := NewContainer(nil)
	msg := []byte("abc")
	chunk, err := Encode(c, "ruSt", msg)
	require.NoError(t, err)
	msg[0] = 'x'
	assert.Equal(t, []byte("abc"), chunk.Data())
}

func TestEncodeBadTag(t *testing.T) {
	c := NewContainer(testChunks(t))
	_, err := Encode(c, "ru5t", []byte("x"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Encode(c, "toolong", []byte("x"))
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, 3, c.Len())
}

func TestInspect(t *testing.T) {
	c := NewContainer(testChunks(t))
	infos := Inspect(c)
	require.Len(t, infos, 3)

	assert.Equal(t, ChunkInfo{
		Index:      1,
		Type:       "miDl",
		Length:     len("I am another chunk"),
		CRC:        c.Chunks()[1].CRC(),
		Valid:      true,
		Critical:   false,
		Public:     false,
		SafeToCopy: true,
	}, infos[1])
	assert.True(t, infos[2].Critical)
	assert.True(t, infos[2].Public)
	assert.True(t, infos[0].Critical)
	assert.False(t, infos[0].Public)
}
