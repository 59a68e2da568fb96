package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/searchlight/pkg/highlight"
)

func TestStyle_Markup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		style     highlight.Style
		wantOpen  []string
		wantClose []string
	}{
		{
			name:      "default",
			style:     highlight.DefaultStyle(),
			wantOpen:  []string{`<font color="red">`},
			wantClose: []string{"</font>"},
		},
		{
			name:      "zero value falls back to red",
			style:     highlight.Style{},
			wantOpen:  []string{`<font color="red">`},
			wantClose: []string{"</font>"},
		},
		{
			name:      "bold with custom color",
			style:     highlight.Style{Color: "#ffcc00", Bold: true},
			wantOpen:  []string{`<font color="#ffcc00">`, "<b>"},
			wantClose: []string{"</b>", "</font>"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.wantOpen, testCase.style.OpenMarkup())
			assert.Equal(t, testCase.wantClose, testCase.style.CloseMarkup())
		})
	}
}

func TestStyle_QuotesColor(t *testing.T) {
	t.Parallel()

	style := highlight.Style{Color: `a"b`}
	assert.Equal(t, []string{`<font color="a\"b">`}, style.OpenMarkup())
}
