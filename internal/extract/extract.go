package extract

import (
	"strings"

	"github.com/joseph-ayodele/labelscan/constants"
)

// ExtractSourceID returns the first source identifier found in text, upper-cased with whitespace removed.
func ExtractSourceID(text string) (string, bool) {
	return MatchSourceID(text)
}

// ExtractAWB returns the first AWB code found in text or in its alphanumeric-only form.
func ExtractAWB(text string) (string, bool) {
	return MatchAWB(AWBRules, text, Compress(text))
}

// ExtractCourier resolves the courier by substring, falling back to the DTDC code prefix.
func ExtractCourier(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, a := range constants.TextCourierAliases {
		if strings.Contains(t, a.Needle) {
			return a.Courier, true
		}
	}
	if dtdcCodeRe.MatchString(text) {
		return constants.CourierDTDC, true
	}
	return "", false
}

// ExtractPage builds the text-path record for one page.
func ExtractPage(page int, fullText, fileName string) PageRecord {
	clean := CollapseSpace(fullText)

	var f Fields
	f.SourceID, _ = ExtractSourceID(fullText)
	f.Courier, _ = ExtractCourier(fullText)
	f.AWB, _ = ExtractAWB(fullText)

	amazon := IsAmazonPage(clean, fileName)
	if amazon {
		if f.Courier == "" {
			f.Courier = constants.CourierAmazon
		}
		if f.AWB == "" {
			f.AWB, _ = MatchAWB([]Rule{AmazonFlexibleRule}, clean)
		}
	}

	r := NewRecord(page, fileName, fileName, f)
	r.Text = fullText
	r.IsAmazon = amazon
	return r
}
