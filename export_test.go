package proforma

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeCSV(t *testing.T) {
	r := Calculate(PropertyAssumptions{
		PurchasePrice:         100000,
		PotentialRentalIncome: []float64{12000, 12000},
		HoldPeriodYears:       2,
		Disposition:           PriceDisposition{Price: 100000},
	})
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, r, "USD"); err != nil {
		t.Fatalf("EncodeCSV() error = %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("cannot read csv back: %v", err)
	}
	if diff := cmp.Diff(csvHeader, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if got := records[1][:4]; !cmp.Equal(got, []string{"1", "12000.00", "0.00", "12000.00"}) {
		t.Errorf("year 1 = %q, want [1 12000.00 0.00 12000.00]", got)
	}
	if got := records[2][0]; got != "2" {
		t.Errorf("second row year = %q, want 2", got)
	}

	summary := make(map[string]string)
	for _, rec := range records[3:] {
		if len(rec) == 2 {
			summary[rec[0]] = rec[1]
		}
	}
	want := map[string]string{
		"Total Equity Invested": "100000.00",
		"Total Cash Returned":   "124000.00",
		"Net Profit":            "24000.00",
		"IRR":                   "0.1200",
		"Equity Multiple":       "1.2400",
	}
	for k, v := range want {
		if summary[k] != v {
			t.Errorf("summary %q = %q, want %q", k, summary[k], v)
		}
	}
}

func TestEncodeCSV_NoIRR(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, Calculate(PropertyAssumptions{HoldPeriodYears: 1}), "USD"); err != nil {
		t.Fatalf("EncodeCSV() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("IRR,N/A")) {
		t.Errorf("EncodeCSV() = %s, want IRR,N/A", buf.String())
	}
}
