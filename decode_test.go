package mbqcirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResult(t *testing.T) {
	raw := map[string]int{"01": 10, "10": 5}
	registerMap := map[int]int{0: 0, 1: 1}

	got, err := FormatResult(raw, registerMap, []int{0, 1}, 2)
	require.NoError(t, err)

	// Register r lives at string index size-1-r, so both keys flip.
	assert.Equal(t, map[string]int{"10": 10, "01": 5}, got)
}

func TestFormatResultRestriction(t *testing.T) {
	raw := map[string]int{"01": 10, "10": 5, "11": 2}
	registerMap := map[int]int{0: 0, 1: 1}

	got, err := FormatResult(raw, registerMap, []int{1}, 2)
	require.NoError(t, err)

	// Keys "10" and "11" collide on register 1 and their counts are summed.
	assert.Equal(t, map[string]int{"0": 10, "1": 7}, got)

	total := 0
	for _, c := range got {
		total += c
	}
	assert.Equal(t, 17, total)
}

func TestFormatResultMissingRegister(t *testing.T) {
	raw := map[string]int{"00": 1}
	_, err := FormatResult(raw, map[int]int{0: 0}, []int{3}, 2)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestFormatResultBadLength(t *testing.T) {
	raw := map[string]int{"010": 1}
	_, err := FormatResult(raw, map[int]int{0: 0}, []int{0}, 2)
	assert.Error(t, err)
}

func TestFormatResultEmptyOutputs(t *testing.T) {
	raw := map[string]int{"01": 3, "10": 4}
	got, err := FormatResult(raw, map[int]int{}, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"": 7}, got)
}
