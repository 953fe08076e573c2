package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFrequencyAdvance(t *testing.T) {
	start := New(2025, time.January, 31)
	testCases := []struct {
		f    Frequency
		n    int
		want Date
	}{
		{Monthly, 1, New(2025, time.February, 28)},
		{Monthly, 2, New(2025, time.March, 31)},
		{BiWeekly, 1, New(2025, time.February, 14)},
		{Weekly, 2, New(2025, time.February, 14)},
		{Quarterly, 1, New(2025, time.April, 30)},
		{Annually, 1, New(2026, time.January, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.f.String(), func(t *testing.T) {
			if got := tc.f.Advance(start, tc.n); got != tc.want {
				t.Errorf("%v.Advance(%v, %d) = %v, want %v", tc.f, start, tc.n, got, tc.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	for _, f := range []Frequency{Monthly, BiWeekly, Weekly, Quarterly, Annually} {
		got, err := ParseFrequency(f.String())
		if err != nil {
			t.Fatalf("ParseFrequency(%q) error = %v", f, err)
		}
		if got != f {
			t.Errorf("ParseFrequency(%q) = %v", f, got)
		}
		back, ok := FrequencyOf(f.PerYear())
		if !ok || back != f {
			t.Errorf("FrequencyOf(%d) = %v, %v", f.PerYear(), back, ok)
		}
	}
	if _, err := ParseFrequency("hourly"); err == nil {
		t.Error("ParseFrequency(hourly) should fail")
	}
}

func TestFrequencyJSON(t *testing.T) {
	data, err := json.Marshal(struct{ F Frequency }{Quarterly})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `{"F":"quarterly"}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
	var v struct{ F Frequency }
	if err := json.Unmarshal([]byte(`{"F":"bi-weekly"}`), &v); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if v.F != BiWeekly {
		t.Errorf("json.Unmarshal() = %v, want %v", v.F, BiWeekly)
	}
	if err := json.Unmarshal([]byte(`{"F":"hourly"}`), &v); err == nil {
		t.Error("json.Unmarshal(hourly) succeeded, want an error")
	}
}

func TestFrequencyString_Unknown(t *testing.T) {
	f := Annually + 1
	if got, want := f.String(), "Frequency(5)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, err := f.MarshalText(); err == nil {
		t.Error("MarshalText() of an unknown frequency succeeded, want an error")
	}
}
