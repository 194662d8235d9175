package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFromBytes(t *testing.T) {
	expected := [4]byte{82, 117, 83, 116}
	tag, err := TagFromBytes([]byte{82, 117, 83, 116})
	require.NoError(t, err)
	assert.Equal(t, expected, tag.Bytes())

	_, err = TagFromBytes([]byte{82, 117, 83})
	assert.ErrorIs(t, err, ErrFormat)
	_, err = TagFromBytes([]byte{82, 117, 83, 116, 0})
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseTag(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Mixed Case", "RuSt", ""},
		{"Reserved Bit Set", "Rust", ""},
		{"Too Short", "Rus", "not 4 bytes"},
		{"Too Long", "RuStt", "not 4 bytes"},
		{"Digit", "Ru1t", "not ASCII alphabetic"},
		{"Space", "Ru t", "not ASCII alphabetic"},
		{"Non ASCII", "Rüs", "not ASCII alphabetic"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tag, err := ParseTag(tc.input)
			if tc.wantErr != "" {
				assert.ErrorIs(t, err, ErrFormat)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, tag.String())
		})
	}
}

func TestTagProperties(t *testing.T) {
	rust, err := ParseTag("RuSt")
	require.NoError(t, err)
	assert.True(t, rust.IsCritical())
	assert.False(t, rust.IsPublic())
	assert.True(t, rust.IsReservedBitValid())
	assert.True(t, rust.IsSafeToCopy())
	assert.True(t, rust.IsValid())

	lower, err := ParseTag("Rust")
	require.NoError(t, err)
	assert.False(t, lower.IsReservedBitValid())
	assert.False(t, lower.IsValid())

	ruSt := NewTag([4]byte{'r', 'U', 'S', 'T'})
	assert.False(t, ruSt.IsCritical())
	assert.True(t, ruSt.IsPublic())
	assert.False(t, ruSt.IsSafeToCopy())
}

func TestTagPropertiesIgnoreValidity(t *testing.T) {
	// bit 5 set on every byte, but not alphabetic
	tag := NewTag([4]byte{'1', '2', '3', '4'})
	assert.False(t, tag.IsValid())
	assert.False(t, tag.IsCritical())
	assert.False(t, tag.IsPublic())
	assert.False(t, tag.IsReservedBitValid())
	assert.True(t, tag.IsSafeToCopy())

	tag = NewTag([4]byte{0x00, 0x00, 0x00, 0x00})
	assert.False(t, tag.IsValid())
	assert.True(t, tag.IsCritical())
	assert.True(t, tag.IsPublic())
	assert.True(t, tag.IsReservedBitValid())
	assert.False(t, tag.IsSafeToCopy())
}

func TestTagStringRoundTrip(t *testing.T) {
	for _, s := range []string{"IHDR", "IDAT", "IEND", "tEXt", "RuSt", "aaaa", "ZZZZ"} {
		tag, err := ParseTag(s)
		require.NoError(t, err)
		again, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, again)
	}
}

func TestTagStringLossy(t *testing.T) {
	tag := NewTag([4]byte{'R', 0xFF, 'S', 't'})
	assert.Equal(t, "R�St", tag.String())

	tag = NewTag([4]byte{0xFF, 0xFE, 'S', 't'})
	assert.Equal(t, "\uFFFD\uFFFDSt", tag.String())
}

func TestTagEquality(t *testing.T) {
	a, _ := ParseTag("RuSt")
	b := NewTag([4]byte{82, 117, 83, 116})
	c, _ := ParseTag("Rust")
	assert.True(t, a == b)
	assert.False(t, a == c)
}
