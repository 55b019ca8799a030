package advisor

// sectorOther is the label for assets outside the known universe.
const sectorOther = "Other"

// sectors maps asset display names (price file column headers, verbatim) to
// sector labels. Static data, not logic; unknown assets fall back to Other.
var sectors = map[string]string{
	"SBI Life Insurance":        "Financials",
	"HDFC Life Insurance":       "Financials",
	"NTPC":                      "Energy",
	"Britannia Industries":      "Consumer Goods",
	"UltraTech Cement":          "Materials",
	"Grasim Industries":         "Materials",
	"Cipla":                     "Healthcare",
	"Axis Bank":                 "Financials",
	"ITC":                       "Consumer Goods",
	"HCL Technologies":          "Technology",
	"Reliance Industries":       "Energy",
	"Tata Consultancy Services": "Technology",
	"Infosys":                   "Technology",
	"HDFC Bank":                 "Financials",
	"ICICI Bank":                "Financials",
	"Hindustan Unilever":        "Consumer Goods",
	"Bharti Airtel":             "Telecom",
	"Kotak Mahindra Bank":       "Financials",
	"Larsen & Toubro":           "Infrastructure",
	"Maruti Suzuki":             "Automotive",
}

// SectorFor returns the sector label for an asset, defaulting to Other.
func SectorFor(asset string) string {
	if sector, ok := sectors[asset]; ok {
		return sector
	}
	return sectorOther
}
