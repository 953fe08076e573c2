package date

import (
	"fmt"
	"strings"
)

// Frequency is the spacing between two consecutive loan payments.
type Frequency int

const (
	Monthly Frequency = iota
	BiWeekly
	Weekly
	Quarterly
	Annually
)

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case BiWeekly:
		return "biweekly"
	case Weekly:
		return "weekly"
	case Quarterly:
		return "quarterly"
	case Annually:
		return "annually"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// PerYear returns the number of payments per year at this frequency.
func (f Frequency) PerYear() int {
	switch f {
	case BiWeekly:
		return 26
	case Weekly:
		return 52
	case Quarterly:
		return 4
	case Annually:
		return 1
	default:
		return 12
	}
}

// Advance returns the date n payments after d.
func (f Frequency) Advance(d Date, n int) Date {
	switch f {
	case BiWeekly:
		return d.Add(14 * n)
	case Weekly:
		return d.Add(7 * n)
	case Quarterly:
		return d.AddMonths(3 * n)
	case Annually:
		return d.AddMonths(12 * n)
	default:
		return d.AddMonths(n)
	}
}

// ParseFrequency parses a payment frequency name.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "monthly", "month", "":
		return Monthly, nil
	case "biweekly", "bi-weekly", "fortnightly":
		return BiWeekly, nil
	case "weekly", "week":
		return Weekly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annually", "yearly", "year":
		return Annually, nil
	default:
		return Monthly, fmt.Errorf("unknown payment frequency %q", s)
	}
}

// FrequencyOf returns the frequency matching a number of payments per year.
func FrequencyOf(perYear int) (Frequency, bool) {
	for _, f := range []Frequency{Monthly, BiWeekly, Weekly, Quarterly, Annually} {
		if f.PerYear() == perYear {
			return f, true
		}
	}
	return Monthly, false
}

// MarshalText encodes the frequency by name.
func (f Frequency) MarshalText() ([]byte, error) {
	if f < Monthly || f > Annually {
		return nil, fmt.Errorf("unknown frequency %d", f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText parses a frequency name.
func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
