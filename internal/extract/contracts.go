package extract

import (
	"github.com/joseph-ayodele/labelscan/constants"
)

// PageRecord is the outcome of extracting one label page.
// Fields hold placeholders (constants.NoSourceID, constants.UnknownAWB,
// constants.UnknownValue) rather than empty strings when nothing matched.
type PageRecord struct {
	Page     int                  `json:"page"`
	SourceID string               `json:"sourceId"`
	AWB      string               `json:"awbCode"`
	Courier  string               `json:"courierName"`
	FileName string               `json:"fileName"`
	Origin   string               `json:"origin"` // input file the page came from; equals FileName on the text path
	Text     string               `json:"-"`
	IsAmazon bool                 `json:"isAmazon"`
	OCR      bool                 `json:"ocr"`
	Status   constants.PageStatus `json:"status"`
}

// HasSourceID reports whether a genuine source identifier was found.
func (r PageRecord) HasSourceID() bool {
	return r.SourceID != "" && r.SourceID != constants.NoSourceID
}

// HasAWB reports whether a genuine AWB code was found.
func (r PageRecord) HasAWB() bool {
	return r.AWB != "" && r.AWB != constants.UnknownAWB
}

// Fields are the raw identifiers recognized on one page; empty means not found.
type Fields struct {
	SourceID string
	AWB      string
	Courier  string
	OrderID  string
}

// NewRecord fills placeholders and derives Status: Success iff a source id or an AWB is present.
func NewRecord(page int, fileName, origin string, f Fields) PageRecord {
	r := PageRecord{
		Page:     page,
		SourceID: orDefault(f.SourceID, constants.NoSourceID),
		AWB:      orDefault(f.AWB, constants.UnknownAWB),
		Courier:  orDefault(f.Courier, constants.UnknownValue),
		FileName: fileName,
		Origin:   orDefault(origin, fileName),
		Status:   constants.PageStatusManualReview,
	}
	if r.HasSourceID() || r.HasAWB() {
		r.Status = constants.PageStatusSuccess
	}
	return r
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
