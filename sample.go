package proforma

// SampleAssumptions returns a five year leveraged residential deal. It is
// the starting point written by "pf template" and used across the
// documentation.
func SampleAssumptions() PropertyAssumptions {
	return PropertyAssumptions{
		PurchasePrice:    1000000,
		AcquisitionCosts: Cost{Type: Percentage, Percentage: 0.02},
		AcquisitionMonth: 1,

		PotentialRentalIncome: []float64{120000, 123600, 127308, 131127, 135061},
		OtherIncome:           []float64{2400, 2400, 2400, 2400, 2400},
		VacancyRates:          []float64{0.05, 0.05, 0.05, 0.05, 0.05},

		ExpenseMode:        ItemizedExpenses,
		PropertyTaxes:      []float64{12000, 12360, 12731, 13113, 13506},
		Insurance:          []float64{3000, 3090, 3183, 3278, 3377},
		Maintenance:        []float64{6000, 6180, 6365, 6556, 6753},
		PropertyManagement: []float64{7200, 7416, 7638, 7868, 8104},
		Utilities:          []float64{2400, 2472, 2546, 2623, 2701},

		Financing: LTVFinancing{
			TargetLTV: 0.70,
			Terms: LoanTerms{
				InterestRate:      0.065,
				TermYears:         10,
				AmortizationYears: 30,
				PaymentsPerYear:   12,
				Costs:             Cost{Type: Percentage, Percentage: 0.01},
			},
		},

		PropertyType:              Residential,
		LandPercentage:            0.20,
		ImprovementsPercentage:    0.80,
		OrdinaryIncomeTaxRate:     0.32,
		CapitalGainsTaxRate:       0.15,
		DepreciationRecaptureRate: 0.25,

		HoldPeriodYears: 5,
		Disposition:     CapRateDisposition{CapRate: 0.065},
		CostOfSale:      Cost{Type: Percentage, Percentage: 0.06},
	}
}
