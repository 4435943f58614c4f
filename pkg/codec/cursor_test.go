package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Reads(t *testing.T) {
	buf := cat([]byte{0xff}, le16(0x0102), le32(math.Float32bits(1.5)), []byte("hi\x00"))
	c := NewCursor(buf)

	i8, err := c.Int8()
	require.NoError(t, err)
	assert.Equal(t, int8(-1), i8)
	assert.Equal(t, 1, c.Offset())

	u16, err := c.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)

	f, err := c.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	s, err := c.CString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	assert.True(t, c.Done())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursor_FailedReadDoesNotAdvance(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})

	_, err := c.Uint32()
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 0, c.Offset())

	_, err = c.CString()
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 0, c.Offset())

	u16, err := c.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), u16)
	assert.Equal(t, 1, c.Remaining())
}

func TestCursor_Int32LittleEndian(t *testing.T) {
	c := NewCursor([]byte{0xe1, 0xfd, 0xff, 0xff})
	v, err := c.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-543), v)
}
