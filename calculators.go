package proforma

import (
	"fmt"
	"slices"
)

// Calculator describes one calculator offered to users.
type Calculator struct {
	ID          string // stable identifier, also the CLI subcommand name
	Name        string
	Description string
	Topic       string // documentation topic explaining it
}

// Catalog is an immutable, ordered set of calculators indexed by ID.
//
// Build one with NewCatalog and pass it to whatever needs it.
type Catalog struct {
	calculators []Calculator
	byID        map[string]int
}

// NewCatalog returns a catalog of calculators in the given order.
//
// It fails on an empty or duplicate ID.
func NewCatalog(calculators ...Calculator) (*Catalog, error) {
	c := &Catalog{
		calculators: slices.Clone(calculators),
		byID:        make(map[string]int, len(calculators)),
	}
	for i, calc := range c.calculators {
		if calc.ID == "" {
			return nil, fmt.Errorf("calculator #%d has no ID", i)
		}
		if _, exists := c.byID[calc.ID]; exists {
			return nil, fmt.Errorf("duplicate calculator ID %q", calc.ID)
		}
		c.byID[calc.ID] = i
	}
	return c, nil
}

// Lookup returns the calculator with id.
func (c *Catalog) Lookup(id string) (Calculator, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Calculator{}, false
	}
	return c.calculators[i], true
}

// All returns a copy of the calculators in catalog order.
func (c *Catalog) All() []Calculator { return slices.Clone(c.calculators) }

// Len returns the number of calculators.
func (c *Catalog) Len() int { return len(c.calculators) }

// DefaultCatalog returns a new catalog of the calculators this package
// implements.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Calculator{ID: "proforma", Name: "Pro-Forma", Topic: "proforma",
			Description: "Projects a property investment year by year and computes IRR, equity multiple and cash on cash return."},
		Calculator{ID: "amortize", Name: "Loan Amortization", Topic: "amortization",
			Description: "Computes the periodic payment and the full amortization schedule of a loan, with optional extra payments."},
		Calculator{ID: "dscr", Name: "DSCR", Topic: "dscr",
			Description: "Computes the debt service coverage ratio of a property and classifies the lender risk."},
		Calculator{ID: "maxloan", Name: "DSCR Loan Sizing", Topic: "dscr",
			Description: "Computes the largest loan a property NOI supports at a target DSCR."},
		Calculator{ID: "caprate", Name: "Cap Rate", Topic: "caprate",
			Description: "Computes the capitalization rate of a property, or its value from a cap rate."},
		Calculator{ID: "noi", Name: "Net Operating Income", Topic: "noi",
			Description: "Computes effective gross income, operating expenses and NOI from income and expense items."},
		Calculator{ID: "tvm", Name: "Time Value of Money", Topic: "tvm",
			Description: "Solves for future value, present value, payment, number of periods or rate."},
		Calculator{ID: "irr", Name: "IRR / NPV", Topic: "tvm",
			Description: "Computes the internal rate of return and net present value of a cashflow series."},
	)
	if err != nil {
		panic(err) // IDs above are unique
	}
	return c
}
