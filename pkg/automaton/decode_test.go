package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/searchlight/pkg/automaton"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantRune rune
		wantSize int
	}{
		{"ascii", "abc", 'a', 1},
		{"two byte", "ößx", 'ö', 2},
		{"replacement char is valid", "�", '�', 3},
		{"malformed byte", "\xffabc", 0xDCFF, 1},
		{"truncated sequence", "\xe2\x82", 0xDCE2, 1},
		{"empty", "", '�', 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			r, size := automaton.Decode(testCase.input)
			assert.Equal(t, testCase.wantRune, r)
			assert.Equal(t, testCase.wantSize, size)
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 'a', automaton.Fold('A'))
	assert.Equal(t, 'z', automaton.Fold('z'))
	assert.Equal(t, '1', automaton.Fold('1'))
	assert.Equal(t, 'é', automaton.Fold('É'))
	assert.Equal(t, rune(0xDC41), automaton.Fold(0xDC41))
}

func TestMalformedBytesMatchOnlyThemselves(t *testing.T) {
	t.Parallel()

	a := automaton.Compile([]string{"a\xffb"}, false)

	assert.Equal(t, []hit{{End: 3, Length: 3}}, scan(a, "a\xffb"))
	assert.Empty(t, scan(a, "a�b"))
	assert.Empty(t, scan(a, "a\xfeb"))
}
