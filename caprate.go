package proforma

// CapRate returns noi over price, 0 when price is not positive.
func CapRate(noi, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return noi / price
}

// ValueFromCapRate returns the property value implied by noi at capRate, 0
// when capRate is not positive.
func ValueFromCapRate(noi, capRate float64) float64 {
	if capRate <= 0 {
		return 0
	}
	return noi / capRate
}

// CapRateAnalysis qualifies a capitalization rate.
type CapRateAnalysis struct {
	CapRate        float64 `json:"capRate"`
	Value          float64 `json:"value"`
	Tier           string  `json:"tier"`
	Interpretation string  `json:"interpretation"`
}

// AnalyzeCapRate computes the cap rate of a property bought at price and
// places it in a market tier.
func AnalyzeCapRate(noi, price float64) CapRateAnalysis {
	a := CapRateAnalysis{CapRate: CapRate(noi, price), Value: price}
	switch r := a.CapRate; {
	case r <= 0:
		a.Tier = "Negative"
		a.Interpretation = "The property does not produce positive operating income at this price."
	case r < 0.04:
		a.Tier = "Low"
		a.Interpretation = "Typical of prime locations priced for appreciation rather than income."
	case r < 0.07:
		a.Tier = "Moderate"
		a.Interpretation = "A balanced trade-off between income and stability, common for stabilized properties."
	case r < 0.10:
		a.Tier = "High"
		a.Interpretation = "Strong income relative to price, often with more tenant or location risk."
	default:
		a.Tier = "Very High"
		a.Interpretation = "Exceptional income relative to price; verify the income and expense assumptions."
	}
	return a
}

// ValidateCapRateInputs returns the list of problems found in the cap rate inputs.
func ValidateCapRateInputs(noi, price float64) []string {
	var msgs []string
	if price <= 0 {
		msgs = append(msgs, "Property value must be greater than zero.")
	}
	if noi == 0 {
		msgs = append(msgs, "Net operating income is required.")
	}
	return msgs
}
