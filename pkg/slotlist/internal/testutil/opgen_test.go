package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectOps(data []byte, cfg OpGenConfig, lenWithHoles int) []Op {
	gen := NewOpGenerator(data, cfg)

	var ops []Op

	for {
		op, ok := gen.Next(lenWithHoles)
		if !ok {
			return ops
		}

		ops = append(ops, op)
	}
}

func Test_OpGenerator_Is_Deterministic_When_Input_Repeats(t *testing.T) {
	t.Parallel()

	data := []byte("the same bytes always decode to the same operations")

	first := collectOps(data, DefaultOpGenConfig(), 7)
	second := collectOps(data, DefaultOpGenConfig(), 7)

	require.NotEmpty(t, first)
	assert.Empty(t, cmp.Diff(first, second))
}

func Test_OpGenerator_Stops_When_Input_Exhausted(t *testing.T) {
	t.Parallel()

	assert.Empty(t, collectOps(nil, DefaultOpGenConfig(), 3))
}

func Test_OpGenerator_Keeps_Positions_Near_Bounds(t *testing.T) {
	t.Parallel()

	data := make([]byte, 2048)
	for i := range data {
		data[i] = byte(i * 31)
	}

	for _, op := range collectOps(data, DefaultOpGenConfig(), 5) {
		assert.GreaterOrEqual(t, op.Pos, -1, op.String())
		assert.LessOrEqual(t, op.Pos, 5, op.String())
	}
}

func Test_OpGenerator_Only_Emits_Weighted_Kinds(t *testing.T) {
	t.Parallel()

	var cfg OpGenConfig

	cfg.Weights[OpAdd] = 1
	cfg.ValueAlphabet = 3

	for _, op := range collectOps([]byte("0123456789abcdef"), cfg, 0) {
		assert.Equal(t, OpAdd, op.Kind)
	}
}

func Test_ByteStream_Returns_Zero_When_Exhausted(t *testing.T) {
	t.Parallel()

	s := NewByteStream([]byte{0x01, 0x02})

	assert.Equal(t, uint16(0x0201), s.NextUint16())
	assert.False(t, s.HasMore())
	assert.Equal(t, byte(0), s.NextByte())
	assert.Equal(t, 0, s.NextIntN(10))
	assert.Equal(t, 0, s.NextIntN(0))
}
