package textrec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// frames builds a one-hot probability sequence from class indices.
func frames(classes int, seq ...int) [][]float32 {
	out := make([][]float32, len(seq))
	for i, c := range seq {
		row := make([]float32, classes)
		row[c] = 1
		out[i] = row
	}
	return out
}

func TestDecodeGreedy_CollapsesRepeats(t *testing.T) {
	charset := []rune{'a', 'b'}
	// blank=0, a=1, b=2: "aa b b" -> "ab"
	text, conf := DecodeGreedy(frames(3, 1, 1, 0, 2), charset)
	assert.Equal(t, "ab", text)
	assert.InDelta(t, 1.0, conf, 1e-6)
}

func TestDecodeGreedy_BlankSeparatesRepeats(t *testing.T) {
	charset := []rune{'a'}
	text, _ := DecodeGreedy(frames(2, 1, 0, 1), charset)
	assert.Equal(t, "aa", text)
}

func TestDecodeGreedy_AllBlank(t *testing.T) {
	text, conf := DecodeGreedy(frames(2, 0, 0, 0), []rune{'a'})
	assert.Equal(t, "", text)
	assert.Zero(t, conf)
}

func TestDecodeGreedy_OutOfRangeClassIgnored(t *testing.T) {
	// Class index beyond the charset emits nothing.
	text, _ := DecodeGreedy(frames(3, 2), []rune{'a'})
	assert.Equal(t, "", text)
}

func TestDecodeGreedy_Empty(t *testing.T) {
	text, conf := DecodeGreedy(nil, []rune{'a'})
	assert.Equal(t, "", text)
	assert.Zero(t, conf)
}

func TestArgmax(t *testing.T) {
	idx, score := argmax([]float32{0.1, 0.6, 0.3})
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.6, float64(score), 1e-6)

	idx, _ = argmax(nil)
	assert.Equal(t, -1, idx)
}
