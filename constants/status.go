package constants

// PageStatus is the extraction outcome of a single label page.
type PageStatus string

const (
	PageStatusSuccess      PageStatus = "Success"
	PageStatusManualReview PageStatus = "Manual Review" // nothing matched; needs a human
)

// RowStatus is the reconciliation verdict written into the packing master.
type RowStatus string

const (
	RowStatusReceived RowStatus = "RECEIVED"
	RowStatusPending  RowStatus = "PENDING"
)

// StatusHeader is the literal header cell of the appended status column.
const StatusHeader = "Status"

// Placeholders stored in PageRecord fields when nothing was found.
const (
	NoSourceID   = "N/A"
	UnknownAWB   = "Unknown"
	UnknownValue = "Unknown"
)

// AmazonPrefix is prepended to the name of a derived OCR sub-document.
const AmazonPrefix = "amazon_"
