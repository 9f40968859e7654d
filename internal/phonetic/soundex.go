// Package phonetic encodes words as four-character Soundex codes.
//
// The variant implemented here keeps the word's first character verbatim and
// suppresses a digit only when it equals the last character already in the
// code. Vowels, h and w contribute nothing and do not separate repeats, so
// "tact" and "tct" share a code. Any '0' left in the code (only possible
// when the word starts with one) is removed before padding. This differs from textbook Soundex, which
// digit-encodes the first letter for comparison purposes.
package phonetic

import (
	"slices"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

const codeLen = 4

var digits = map[rune]rune{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Encode returns the Soundex code of word. It fails with ErrInvalidArgument
// when word is empty.
func Encode(word string) (string, error) {
	if word == "" {
		return "", apperrors.New(apperrors.ErrInvalidArgument, "soundex of empty word")
	}
	runes := []rune(strings.ToLower(word))

	code := make([]rune, 1, len(runes))
	code[0] = runes[0]
	for _, r := range runes[1:] {
		d, ok := digits[r]
		if !ok {
			continue
		}
		if d == code[len(code)-1] {
			continue
		}
		code = append(code, d)
	}
	// A literal '0' can only come from the first character; it is dropped
	// before padding so it never reads as padding itself.
	code = slices.DeleteFunc(code, func(r rune) bool { return r == '0' })

	if len(code) > codeLen {
		code = code[:codeLen]
	}
	for len(code) < codeLen {
		code = append(code, '0')
	}
	return strings.ToUpper(string(code)), nil
}
