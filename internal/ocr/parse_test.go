package ocr

import (
	"testing"

	"github.com/joseph-ayodele/labelscan/constants"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		awb  string
		src  string
		ord  string
		cour string
	}{
		{
			name: "tba with ref no",
			text: "Tracking ID: TBA123456789012\nDelhivery  Ref No S123456",
			awb:  "TBA123456789012",
			src:  "S123456",
			cour: constants.CourierDelhivery,
		},
		{
			name: "awb label",
			text: "AWB: ABCD123456789 DTDC",
			awb:  "ABCD123456789",
			cour: constants.CourierDTDC,
		},
		{
			name: "source id only in compressed text",
			text: "S 1 2 3 4 5 6 7",
			src:  "S1234567",
			cour: constants.CourierAmazon,
		},
		{
			name: "empty text",
			text: "",
			cour: constants.CourierAmazon,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseText(tt.text)
			if f.AWB != tt.awb {
				t.Errorf("AWB = %q, want %q", f.AWB, tt.awb)
			}
			if f.SourceID != tt.src {
				t.Errorf("SourceID = %q, want %q", f.SourceID, tt.src)
			}
			if f.OrderID != tt.ord {
				t.Errorf("OrderID = %q, want %q", f.OrderID, tt.ord)
			}
			if f.Courier != tt.cour {
				t.Errorf("Courier = %q, want %q", f.Courier, tt.cour)
			}
		})
	}
}

func TestParseTextOrderID(t *testing.T) {
	f := ParseText("Order 403-1234567-7654321\nBlue Dart")
	if f.OrderID != "403-1234567-7654321" {
		t.Errorf("OrderID = %q", f.OrderID)
	}
	if f.SourceID != "403-1234567-7654321" {
		t.Errorf("SourceID = %q", f.SourceID)
	}
	if f.Courier != constants.CourierBlueDart {
		t.Errorf("Courier = %q", f.Courier)
	}
}

func TestNormalize(t *testing.T) {
	in := "AMAZON\r\n-----------\r\nTBA123456789012\f\n| | |\n____\nS 12345"
	want := "AMAZON\n\nTBA123456789012 \n| | |\n\nS 12345"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}
