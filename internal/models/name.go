package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/desertthunder/rankr/internal/shared"
)

// ValidateName checks that name can be used as a leaderboard key.
//
// Names double as file names in the file store, so path separators, control characters
// and the "." and ".." entries are refused. Spaces are fine.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", shared.ErrInvalidBoardName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", shared.ErrInvalidBoardName, name)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: name is not valid UTF-8", shared.ErrInvalidBoardName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", shared.ErrInvalidBoardName, name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: %q contains a control character", shared.ErrInvalidBoardName, name)
	}
	return nil
}
