package extract

import "strings"

var amazonKeywords = []string{"amazon", "itsc", "delivery station"}

// IsAmazonPage decides whether a page must be routed to the OCR path.
// The same check serves text-layer and recognized text.
func IsAmazonPage(text, fileName string) bool {
	t := strings.ToLower(CollapseSpace(text) + " " + fileName)
	for _, k := range amazonKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return amazonRunRe.MatchString(StripSpace(text))
}
