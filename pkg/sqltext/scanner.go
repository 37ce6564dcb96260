package sqltext

import "strings"

// closers maps each opening delimiter to the character that ends its span.
var closers = map[byte]byte{
	'(':  ')',
	'"':  '"',
	'\'': '\'',
}

// scan walks text once with a single pending-delimiter slot. It returns the
// text found outside quoted and parenthesized spans and the delimiter still
// open at end of input (0 if none).
//
// Only one delimiter can be pending at a time, so nested parentheses of the
// same kind are not depth-tracked: "(a (b) c)" closes at the first ')' and
// leaves " c)" in the output.
func scan(text string) (string, byte) {
	var out strings.Builder
	out.Grow(len(text))

	var waiting byte
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case waiting != 0:
			if !escaped && ch == closers[waiting] {
				waiting = 0
			}
		case !escaped && isOpener(ch):
			waiting = ch
		default:
			out.WriteByte(ch)
		}
		// A backslash escapes the next character, but never itself when escaped.
		escaped = ch == '\\' && !escaped
	}
	return out.String(), waiting
}

func isOpener(ch byte) bool {
	_, ok := closers[ch]
	return ok
}

// Mask removes every quoted ('...', "...") and parenthesized span from text,
// keeping everything outside them. Keyword searches run against the masked
// text so literals and sub-expressions never produce clause boundaries.
func Mask(text string) string {
	masked, _ := scan(text)
	return masked
}

// IsBalanced reports whether text leaves no delimiter open and contains no
// unmatched ')' after masking.
func IsBalanced(text string) bool {
	masked, open := scan(text)
	return open == 0 && !strings.Contains(masked, ")")
}
