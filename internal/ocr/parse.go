package ocr

import (
	"strings"

	"github.com/joseph-ayodele/labelscan/constants"
	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// ParseText pulls label identifiers out of recognized text.
// Nothing found is not an error: the corresponding fields stay empty,
// except Courier which falls back to constants.CourierAmazon.
func ParseText(text string) extract.Fields {
	text = Normalize(text)
	clean := extract.CollapseSpace(text)
	compressed := extract.Compress(text)

	var f extract.Fields
	f.AWB, _ = extract.MatchAWB(extract.OCRAWBRules, clean, compressed)
	f.SourceID, _ = extract.MatchSourceID(clean, compressed)
	if m := extract.OrderIDRule.Pattern.FindString(clean); m != "" {
		f.OrderID = m
	}
	f.Courier = detectCourier(clean)
	return f
}

func detectCourier(clean string) string {
	t := strings.ToLower(clean)
	for _, c := range constants.OCRCourierPriority {
		if strings.Contains(t, strings.ToLower(c)) {
			return c
		}
	}
	return constants.CourierAmazon
}
