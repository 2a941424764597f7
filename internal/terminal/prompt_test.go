package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_YesInput(t *testing.T) {
	input := strings.NewReader("y\n")
	output := &strings.Builder{}

	approved, err := ConfirmWithIO(input, output)
	require.NoError(t, err)

	assert.True(t, approved)
	assert.Contains(t, output.String(), "Execute? (y/n)")
}

func TestConfirm_Answers(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"y", true},
		{"n\n", false},
		{"N\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
		{"q\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			approved, err := ConfirmWithIO(strings.NewReader(tt.input), &strings.Builder{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, approved)
		})
	}
}

func TestConfirm_OnlyFirstLineCounts(t *testing.T) {
	approved, err := ConfirmWithIO(strings.NewReader("n\ny\n"), &strings.Builder{})
	require.NoError(t, err)
	assert.False(t, approved)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stdin closed")
}

func TestConfirm_ReadError(t *testing.T) {
	approved, err := ConfirmWithIO(failingReader{}, &strings.Builder{})
	require.Error(t, err)
	assert.False(t, approved)
	assert.Contains(t, err.Error(), "stdin closed")
}
