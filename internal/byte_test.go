package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUInt32BigEndian(t *testing.T) {
	original := uint32(0x01020304)
	bytes := UInt32ToBytesBigEndian(original)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, bytes[:])
	assert.Equal(t, original, BytesToUInt32BigEndian(bytes[:]))

	// only the first 4 bytes are read
	assert.Equal(t, uint32(42), BytesToUInt32BigEndian([]byte{0, 0, 0, 42, 0xFF}))
}
