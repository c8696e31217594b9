package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF     = regexp.MustCompile(`\r\n?`)
	reBoxNoise = regexp.MustCompile(`(?m)^[ \t]*[_\-=|.]{3,}[ \t]*$`)
	reFormFeed = regexp.MustCompile(`[\f\v\x{00A0}]`)
)

// Normalize strips layout debris tesseract emits for label borders and
// cut lines: CR line endings, form feeds, and lines made only of rule
// characters. Words and digits are untouched.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reFormFeed.ReplaceAllString(s, " ")
	s = reBoxNoise.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
