package proforma

// NOIInputs are the annual income and expense figures of a property.
//
// When ExpenseRate is positive, operating expenses are ExpenseRate times the
// effective gross income (after vacancy) and the itemized fields are ignored.
type NOIInputs struct {
	PotentialRentalIncome float64
	OtherIncome           float64
	VacancyRate           float64 // fraction of potential rent

	ExpenseRate float64

	OperatingExpenses  float64
	PropertyTaxes      float64
	Insurance          float64
	Maintenance        float64
	PropertyManagement float64
	Utilities          float64
	OtherExpenses      float64
}

// NOIResult breaks down the net operating income.
type NOIResult struct {
	GrossPotentialIncome float64 `json:"grossPotentialIncome"`
	VacancyLoss          float64 `json:"vacancyLoss"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome"`
	OperatingExpenses    float64 `json:"operatingExpenses"`
	NOI                  float64 `json:"noi"`
	ExpenseRatio         float64 `json:"expenseRatio"` // operating expenses over EGI, 0 without income
}

// CalculateNOI computes the net operating income of one year.
func CalculateNOI(in NOIInputs) NOIResult {
	var r NOIResult
	r.GrossPotentialIncome = in.PotentialRentalIncome + in.OtherIncome
	r.VacancyLoss = in.PotentialRentalIncome * in.VacancyRate
	r.EffectiveGrossIncome = r.GrossPotentialIncome - r.VacancyLoss
	if in.ExpenseRate > 0 {
		r.OperatingExpenses = r.EffectiveGrossIncome * in.ExpenseRate
	} else {
		r.OperatingExpenses = in.OperatingExpenses + in.PropertyTaxes + in.Insurance +
			in.Maintenance + in.PropertyManagement + in.Utilities + in.OtherExpenses
	}
	r.NOI = r.EffectiveGrossIncome - r.OperatingExpenses
	if r.EffectiveGrossIncome > 0 {
		r.ExpenseRatio = r.OperatingExpenses / r.EffectiveGrossIncome
	}
	return r
}

// ValidateNOIInputs returns the list of problems found in in.
func ValidateNOIInputs(in NOIInputs) []string {
	var msgs []string
	if in.PotentialRentalIncome < 0 || in.OtherIncome < 0 {
		msgs = append(msgs, "Income cannot be negative.")
	}
	if in.VacancyRate < 0 || in.VacancyRate > 1 {
		msgs = append(msgs, "Vacancy rate must be between 0% and 100%.")
	}
	if in.ExpenseRate < 0 || in.ExpenseRate > 1 {
		msgs = append(msgs, "Expense ratio must be between 0% and 100%.")
	}
	for _, v := range []float64{in.OperatingExpenses, in.PropertyTaxes, in.Insurance, in.Maintenance, in.PropertyManagement, in.Utilities, in.OtherExpenses} {
		if v < 0 {
			msgs = append(msgs, "Expenses cannot be negative.")
			break
		}
	}
	return msgs
}
