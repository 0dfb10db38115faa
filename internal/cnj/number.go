// Package cnj finds CNJ process numbers in free text and maps them to the
// DataJud index of the court that owns them.
package cnj

import (
	"regexp"
	"strings"
)

// NumberLength is the digit count of a normalized CNJ number
// (NNNNNNN-DD.YYYY.J.TR.OOOO without separators).
const NumberLength = 20

var (
	// Anything that cannot be part of a number, separators included.
	noise = regexp.MustCompile(`[^0-9.\-]`)

	// Canonical layout with every separator optional.
	numberPattern = regexp.MustCompile(`\d{7}-?\d{2}\.?\d{4}\.?\d{1}\.?\d{2}\.?\d{4}`)

	separators = strings.NewReplacer("-", "", ".", "")
)

// Extract returns the first process number found in text with its separators
// removed. The second result is false when nothing in text has the CNJ shape.
// Check digits are not validated.
func Extract(text string) (string, bool) {
	cleaned := noise.ReplaceAllString(text, "")

	match := numberPattern.FindString(cleaned)
	if match == "" {
		return "", false
	}

	return separators.Replace(match), true
}

// Format renders a normalized number in the dotted CNJ layout. Numbers that
// are not exactly NumberLength digits are returned unchanged.
func Format(number string) string {
	if len(number) != NumberLength {
		return number
	}
	return number[0:7] + "-" + number[7:9] + "." + number[9:13] + "." +
		number[13:14] + "." + number[14:16] + "." + number[16:20]
}
