package extract

import (
	"regexp"
	"strings"
)

// Rule is one entry of an ordered, first-match-wins pattern list.
// The value is capture group 1 when the pattern has one and it is non-empty,
// otherwise the whole match.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

func rule(name, expr string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(expr)}
}

// Find returns the value this rule extracts from text.
func (r Rule) Find(text string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}

// MinAWBLength is the hard lower bound on a stripped AWB candidate.
const MinAWBLength = 10

// spaceChars is the whitespace set used by every rule. RE2's \s is ASCII
// only; label text layers also carry no-break and other Unicode spaces.
const spaceChars = `\t\n\v\f\r\p{Z}\x{FEFF}`

const ws = `[` + spaceChars + `]`

// SourceIDRules are tried in order; explicit labels come before bare heuristics.
var SourceIDRules = []Rule{
	rule("ref-no-label", `(?i)Ref\.?`+ws+`*No\.?[:`+spaceChars+`]*(S\d{5,12})`),
	rule("order-suffix", `(?i)Order`+ws+`*[#:]?`+ws+`*[^`+spaceChars+`]+-(S\d{5,12})`),
	rule("bare-token", `(?i)\b(S\d{6,10})\b`),
	rule("spaced-token", `(?i)S`+ws+`*\d{5,10}`),
	rule("order-id", `\d{3}-\d{7}-\d{7}`),
}

// AWBRules are the text-layer tracking code rules.
var AWBRules = []Rule{
	rule("awb-label", `(?i)AWB[#:]?`+ws+`*([A-Z0-9]{10,20})`),
	rule("7x-prefix", `(?i)\b(7X\d{7,12})\b`),
	rule("amazon-12", `\b([34]\d{11})\b`),
	rule("amazon-flexible", `([34][\d`+spaceChars+`\-]{11,15})`),
	rule("alpha3-num8", `([A-Z]{3}\d{8}[A-Z]\d)`),
	rule("alpha2-num9-alpha2", `([A-Z]{2}\d{9}[A-Z]{2})`),
	rule("generic-digits", `\b(\d{10,16})\b`),
}

// OCRAWBRules are the tracking code rules for recognized label images.
var OCRAWBRules = []Rule{
	rule("tba", `(?i)TBA\d{12}`),
	rule("amazon-12", `\b([34]\d{11})\b`),
	rule("amazon-flexible", `([34][\d`+spaceChars+`\-]{11,15})`),
	rule("tracking-id-label", `(?i)Tracking`+ws+`*ID[:`+spaceChars+`]*([A-Z0-9]{10,22})`),
	rule("awb-label", `(?i)AWB[:`+spaceChars+`]*([A-Z0-9]{10,22})`),
	rule("long-digits", `\d{12,18}`),
}

// AmazonFlexibleRule recovers a spaced or dashed Amazon tracking number.
var AmazonFlexibleRule = AWBRules[3]

// OrderIDRule matches the dash-delimited marketplace order id.
var OrderIDRule = SourceIDRules[4]

var (
	whitespaceRe = regexp.MustCompile(ws + `+`)
	nonAlnumRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
	dtdcCodeRe   = regexp.MustCompile(`(?i)\b7X\d{7,12}\b`)
	amazonRunRe  = regexp.MustCompile(`\b[34]\d{11}\b`)
)

// CollapseSpace replaces every whitespace run with one space.
func CollapseSpace(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}

// StripSpace removes all whitespace.
func StripSpace(s string) string {
	return whitespaceRe.ReplaceAllString(s, "")
}

// Compress keeps only ASCII letters and digits.
func Compress(s string) string {
	return nonAlnumRe.ReplaceAllString(s, "")
}

// MatchSourceID applies SourceIDRules to each variant in turn.
func MatchSourceID(variants ...string) (string, bool) {
	for _, text := range variants {
		for _, r := range SourceIDRules {
			if v, ok := r.Find(text); ok {
				return strings.ToUpper(StripSpace(v)), true
			}
		}
	}
	return "", false
}

// MatchAWB walks rules in order. For each rule the variants are tried left to
// right and the first variant that matches supplies the candidate; a candidate
// shorter than MinAWBLength after stripping is dropped and the next rule runs.
func MatchAWB(rules []Rule, variants ...string) (string, bool) {
	for _, r := range rules {
		for _, text := range variants {
			v, ok := r.Find(text)
			if !ok {
				continue
			}
			if val := Compress(v); len(val) >= MinAWBLength {
				return strings.ToUpper(val), true
			}
			break
		}
	}
	return "", false
}
