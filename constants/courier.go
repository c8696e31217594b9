package constants

const (
	CourierDelhivery   = "Delhivery"
	CourierDTDC        = "DTDC"
	CourierEkart       = "Ekart"
	CourierAmazon      = "Amazon Shipping"
	CourierEcomExpress = "Ecom Express"
	CourierBlueDart    = "Blue Dart"
	CourierXpressBees  = "XpressBees"
	CourierShiprocket  = "Shiprocket"
)

// CourierAlias maps a lower-case substring found on a label to its canonical courier.
type CourierAlias struct {
	Needle  string
	Courier string
}

// TextCourierAliases is consulted in order on text-layer pages; first hit wins.
var TextCourierAliases = []CourierAlias{
	{"delhivery", CourierDelhivery},
	{"dtdc", CourierDTDC},
	{"ekart", CourierEkart},
	{"amazon", CourierAmazon},
	{"ecom express", CourierEcomExpress},
	{"bluedart", CourierBlueDart},
	{"blue dart", CourierBlueDart},
	{"xpressbees", CourierXpressBees},
}

// OCRCourierPriority is consulted in order on recognized text; CourierAmazon is the fallback.
var OCRCourierPriority = []string{
	CourierDelhivery,
	CourierBlueDart,
	CourierEcomExpress,
	CourierXpressBees,
	CourierDTDC,
	CourierShiprocket,
	CourierEkart,
}
