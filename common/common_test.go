package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32(nil)))

	b := SliceToBytes([]float32{1.5, -2})
	assert.Len(t, b, 8)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.NativeEndian.Uint32(b[0:4])))
	assert.Equal(t, float32(-2), math.Float32frombits(binary.NativeEndian.Uint32(b[4:8])))

	assert.Len(t, SliceToBytes([]uint32{1, 2, 3}), 12)
}
