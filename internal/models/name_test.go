package models

import (
	"testing"

	"github.com/desertthunder/rankr/internal/shared"
	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tc := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "simple", input: "Games", ok: true},
		{name: "spaces", input: "Best Movies 2024", ok: true},
		{name: "unicode", input: "Jeux vidéo", ok: true},
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "dot", input: "."},
		{name: "dot dot", input: ".."},
		{name: "slash", input: "a/b"},
		{name: "backslash", input: `a\b`},
		{name: "newline", input: "a\nb"},
		{name: "invalid utf8", input: "a\xffb"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, shared.ErrInvalidBoardName)
			}
		})
	}
}
