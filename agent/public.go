package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/date"
	"github.com/etnz/proforma/docs"
	"github.com/etnz/proforma/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is evaluating real-estate investments: a property to buy, how to finance it,
			what it yields and what it sells for at the end of the hold period.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Never make up figures: every amount or ratio in your response comes from the Analyst.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates the expert grounded on Google Search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is a real-estate market researcher,
		aware of the local markets, typical cap rates, rents, vacancy and interest rates.
		Ask the Researcher whenever you need recent or grounding information about a market.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in real-estate markets, you can search and find about anything related to
			property prices, rents, cap rates, vacancy, lending conditions and interest rates. You leverage
			Google Search to ground your assertions in a solid truth, and you cite the period your figures are from.
				`}}},
		},
	}
}

// NewAnalyst creates the expert running the calculators. assumptionsFile is
// the deal it analyzes when no assumptions are given, amounts are in
// currency.
func NewAnalyst(assumptionsFile, currency string) *Expert {
	lib := Calculators(assumptionsFile, currency)

	var catalog strings.Builder
	for _, c := range proforma.DefaultCatalog().All() {
		fmt.Fprintf(&catalog, "  - %s: %s\n", c.Name, c.Description)
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It runs the financial calculators on the user's deal:
		pro-forma projections, loan amortization and sizing, debt service coverage, cap rates, NOI,
		time value of money and IRR. Ask it for any figure.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a real-estate financial analyst.
				You know how to use the Tools to compute the figures of the user's deal, never compute them yourself.
				You are part of a team of experts, yours is every figure about the deal. They might ask
				you questions in an approximative language, figure out what they meant.

				Available calculators:
				` + catalog.String()}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// calculator declares the catalog calculator id as a function returning a
// markdown report.
func calculator(id, details string, properties map[string]*genai.Schema, required []string, run func(args map[string]any) (string, error)) *Func {
	c, ok := proforma.DefaultCatalog().Lookup(id)
	if !ok {
		panic(fmt.Sprintf("unknown calculator %q", id))
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        c.ID,
			Description: c.Description + "\n\n" + details,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report of the " + c.Name + ".",
			},
		},
		Func: func(ctx context.Context, callID string, args map[string]any) *genai.FunctionResponse {
			out, err := run(args)
			if err != nil {
				return errorResponse(callID, c.ID, err)
			}
			return &genai.FunctionResponse{
				ID:       callID,
				Name:     c.ID,
				Response: map[string]any{"output": out},
			}
		},
	}
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func numberSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: description}
}

// Calculators returns the calculator functions.
func Calculators(assumptionsFile, currency string) []Function {
	return []Function{
		calculator("proforma", `The deal is read from the user's assumptions file unless 'assumptions' is given.
		Below is the documentation of the assumptions:

		`+must(docs.GetTopic("assumptions")),
			map[string]*genai.Schema{
				"assumptions": {
					Type:        genai.TypeString,
					Description: "Optional. The property assumptions as a JSON object, to analyze a variant of the deal.",
				},
			}, nil,
			func(args map[string]any) (string, error) {
				a, err := assumptions(args, assumptionsFile)
				if err != nil {
					return "", err
				}
				r := proforma.Calculate(a)
				return renderer.RenderProForma(renderer.NewProForma("", a, r, currency)), nil
			}),

		calculator("amortize", "Rates are fractions, 0.065 for 6.5%.",
			map[string]*genai.Schema{
				"principal": numberSchema("The loan amount."),
				"rate":      numberSchema("The annual interest rate as a fraction."),
				"years":     numberSchema("The amortization period in years."),
				"extra":     numberSchema("Optional. Extra principal paid every month."),
			}, []string{"principal", "rate", "years"},
			func(args map[string]any) (string, error) {
				var loan proforma.Loan
				if err := numbers(args, map[string]*float64{"principal": &loan.Principal, "rate": &loan.AnnualRate, "years": &loan.AmortizationYears}); err != nil {
					return "", err
				}
				loan.ExtraPayment = optional(args, "extra")
				loan.Frequency = date.Monthly
				if msgs := proforma.ValidateLoan(loan); len(msgs) > 0 {
					return "", fmt.Errorf("invalid inputs: %s", strings.Join(msgs, " "))
				}
				return renderer.ScheduleMarkdown(proforma.Schedule(loan, date.Today()), currency, true), nil
			}),

		calculator("dscr", "Rates are fractions, 0.065 for 6.5%. Give either 'debtService' or the loan.",
			map[string]*genai.Schema{
				"noi":         numberSchema("The annual net operating income."),
				"debtService": numberSchema("Optional. The annual debt service."),
				"loan":        numberSchema("Optional. The loan amount."),
				"rate":        numberSchema("Optional. The annual interest rate of the loan as a fraction."),
				"years":       numberSchema("Optional. The amortization period of the loan in years."),
			}, []string{"noi"},
			func(args map[string]any) (string, error) {
				var in proforma.DSCRInputs
				if err := numbers(args, map[string]*float64{"noi": &in.NOI}); err != nil {
					return "", err
				}
				if v, ok := args["debtService"].(float64); ok {
					in.AnnualDebtService = &v
				}
				if _, ok := args["loan"]; ok {
					in.Loan = &proforma.DSCRLoan{Amount: optional(args, "loan"), InterestRate: optional(args, "rate"), AmortizationYears: optional(args, "years")}
				}
				if msgs := proforma.ValidateDSCRInputs(in); len(msgs) > 0 {
					return "", fmt.Errorf("invalid inputs: %s", strings.Join(msgs, " "))
				}
				a, err := proforma.AnalyzeDSCR(in)
				if err != nil {
					return "", err
				}
				return renderer.DSCRMarkdown(in.NOI, a, currency), nil
			}),

		calculator("caprate", "",
			map[string]*genai.Schema{
				"noi":   numberSchema("The annual net operating income."),
				"price": numberSchema("The property value or purchase price."),
			}, []string{"noi", "price"},
			func(args map[string]any) (string, error) {
				var noi, price float64
				if err := numbers(args, map[string]*float64{"noi": &noi, "price": &price}); err != nil {
					return "", err
				}
				if msgs := proforma.ValidateCapRateInputs(noi, price); len(msgs) > 0 {
					return "", fmt.Errorf("invalid inputs: %s", strings.Join(msgs, " "))
				}
				return renderer.CapRateMarkdown(noi, proforma.AnalyzeCapRate(noi, price), currency), nil
			}),

		calculator("maxloan", "Rates are fractions, 0.065 for 6.5%. Payments are monthly.",
			map[string]*genai.Schema{
				"noi":   numberSchema("The annual net operating income."),
				"dscr":  numberSchema("Optional. The target DSCR, 1.25 by default."),
				"rate":  numberSchema("The annual interest rate as a fraction."),
				"years": numberSchema("The amortization period in years."),
			}, []string{"noi", "rate", "years"},
			func(args map[string]any) (string, error) {
				var noi, rate, years float64
				if err := numbers(args, map[string]*float64{"noi": &noi, "rate": &rate, "years": &years}); err != nil {
					return "", err
				}
				target := 1.25
				if _, ok := args["dscr"]; ok {
					target = optional(args, "dscr")
				}
				var msgs []string
				if !(noi > 0) {
					msgs = append(msgs, "Net operating income must be greater than zero.")
				}
				if !(target > 0) {
					msgs = append(msgs, "Target DSCR must be greater than zero.")
				}
				if !(rate >= 0) {
					msgs = append(msgs, "Interest rate cannot be negative.")
				}
				if !(years > 0 && years <= proforma.MaxAmortizationYears) {
					msgs = append(msgs, fmt.Sprintf("Amortization period must be between 0 and %d years.", proforma.MaxAmortizationYears))
				}
				if len(msgs) > 0 {
					return "", fmt.Errorf("invalid inputs: %s", strings.Join(msgs, " "))
				}
				loan := proforma.MaxLoanForDSCR(noi, target, rate, years, 12)
				payment := proforma.PeriodicPayment(loan, rate, years, 12)
				return renderer.MaxLoanMarkdown(noi, target, rate, years, loan, payment, currency), nil
			}),

		calculator("noi", "Rates are fractions, 0.05 for 5%. Give either the expense items or 'expenseRate'.",
			map[string]*genai.Schema{
				"rent":          numberSchema("The annual potential rental income."),
				"otherIncome":   numberSchema("Optional. Other annual income: parking, laundry."),
				"vacancy":       numberSchema("Optional. The vacancy rate as a fraction of the rent."),
				"expenseRate":   numberSchema("Optional. Operating expenses as a fraction of the effective gross income."),
				"taxes":         numberSchema("Optional. Annual property taxes."),
				"insurance":     numberSchema("Optional. Annual insurance."),
				"maintenance":   numberSchema("Optional. Annual maintenance."),
				"management":    numberSchema("Optional. Annual property management."),
				"utilities":     numberSchema("Optional. Annual utilities."),
				"otherExpenses": numberSchema("Optional. Other annual operating expenses."),
			}, []string{"rent"},
			func(args map[string]any) (string, error) {
				in := proforma.NOIInputs{
					OtherIncome:        optional(args, "otherIncome"),
					VacancyRate:        optional(args, "vacancy"),
					ExpenseRate:        optional(args, "expenseRate"),
					PropertyTaxes:      optional(args, "taxes"),
					Insurance:          optional(args, "insurance"),
					Maintenance:        optional(args, "maintenance"),
					PropertyManagement: optional(args, "management"),
					Utilities:          optional(args, "utilities"),
					OtherExpenses:      optional(args, "otherExpenses"),
				}
				if err := numbers(args, map[string]*float64{"rent": &in.PotentialRentalIncome}); err != nil {
					return "", err
				}
				if msgs := proforma.ValidateNOIInputs(in); len(msgs) > 0 {
					return "", fmt.Errorf("invalid inputs: %s", strings.Join(msgs, " "))
				}
				return renderer.NOIMarkdown(proforma.CalculateNOI(in), currency), nil
			}),

		calculator("tvm", "The rate is per period, as a fraction. Amounts are positive.",
			map[string]*genai.Schema{
				"solve": {
					Type:        genai.TypeString,
					Enum:        []string{"fv", "pv", "pmt", "n", "rate"},
					Description: "The variable to solve for.",
				},
				"pv":      numberSchema("Optional. The present value."),
				"fv":      numberSchema("Optional. The future value."),
				"pmt":     numberSchema("Optional. The payment at the end of each period."),
				"rate":    numberSchema("Optional. The rate per period as a fraction."),
				"periods": numberSchema("Optional. The number of periods."),
			}, []string{"solve"},
			func(args map[string]any) (string, error) {
				name, _ := args["solve"].(string)
				solve, err := proforma.ParseTVMUnknown(name)
				if err != nil {
					return "", err
				}
				in := proforma.TVMInputs{
					Solve:        solve,
					PresentValue: optional(args, "pv"),
					FutureValue:  optional(args, "fv"),
					Payment:      optional(args, "pmt"),
					Rate:         optional(args, "rate"),
					Periods:      optional(args, "periods"),
				}
				value, err := proforma.SolveTVM(in)
				if err != nil {
					return "", err
				}
				return renderer.TVMMarkdown(in, value, currency), nil
			}),

		calculator("irr", "",
			map[string]*genai.Schema{
				"cashflows": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeNumber},
					Description: "The cashflows, the first one today then one per period. Outflows are negative.",
				},
				"discountRate": numberSchema("Optional. The discount rate of the NPV as a fraction, 0.1 by default."),
			}, []string{"cashflows"},
			func(args map[string]any) (string, error) {
				list, ok := args["cashflows"].([]any)
				if !ok {
					return "", fmt.Errorf("argument 'cashflows' is not a list as expected but %T", args["cashflows"])
				}
				cashflows := make([]float64, 0, len(list))
				for i, v := range list {
					f, ok := v.(float64)
					if !ok {
						return "", fmt.Errorf("cashflow #%d is not a number but %T", i+1, v)
					}
					cashflows = append(cashflows, f)
				}
				discount := 0.1
				if _, ok := args["discountRate"]; ok {
					discount = optional(args, "discountRate")
				}
				return renderer.IRRMarkdown(cashflows, discount, currency), nil
			}),
	}
}

// numbers reads the required numeric arguments into their destination.
func numbers(args map[string]any, dst map[string]*float64) error {
	for name, p := range dst {
		v, ok := args[name]
		if !ok {
			return fmt.Errorf("argument %q is required", name)
		}
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("argument %q is not a number as expected but %T", name, v)
		}
		*p = f
	}
	return nil
}

// optional returns the numeric argument name, or 0.
func optional(args map[string]any, name string) float64 {
	f, _ := args[name].(float64)
	return f
}

// assumptions decodes the 'assumptions' argument, or the assumptions file.
func assumptions(args map[string]any, assumptionsFile string) (proforma.PropertyAssumptions, error) {
	if s, ok := args["assumptions"].(string); ok && strings.TrimSpace(s) != "" {
		return proforma.DecodeAssumptions(strings.NewReader(s), proforma.JSON)
	}
	f, err := os.Open(assumptionsFile)
	if err != nil {
		return proforma.PropertyAssumptions{}, fmt.Errorf("could not open assumptions file %q: %w", assumptionsFile, err)
	}
	defer f.Close()
	return proforma.DecodeAssumptions(f, proforma.FormatOf(assumptionsFile))
}
