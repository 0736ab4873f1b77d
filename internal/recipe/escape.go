package recipe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape interprets Go string escapes such as \n, \t and \u2500 in s.
// Everything outside an escape sequence is copied byte for byte.
func Unescape(s string) (string, error) {
	var sb strings.Builder
	rest := s
	for len(rest) > 0 {
		if rest[0] != '\\' {
			sb.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}
		r, multibyte, tail, err := strconv.UnquoteChar(rest, '"')
		if err != nil {
			return "", fmt.Errorf("invalid escape sequence in %q: %w", s, err)
		}
		if r < utf8.RuneSelf || !multibyte {
			sb.WriteByte(byte(r))
		} else {
			sb.WriteRune(r)
		}
		rest = tail
	}
	return sb.String(), nil
}
