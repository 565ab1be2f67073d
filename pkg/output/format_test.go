package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/stockwatch-advisor/internal/advisor"
)

func testReport(verbose bool) Report {
	return Report{
		Advice: &advisor.Advice{
			NetWorth: 10,
			Positions: []advisor.Position{
				{Name: "Angela", Units: 2, CostBasis: 10, ProjectedValue: 12},
				{Name: "Tucker", Units: 0, CostBasis: 0, ProjectedValue: 0},
			},
			CashHeldCents: 0,
			ExpectedValue: 12,
		},
		Assets: []advisor.Asset{
			{Name: "Angela", Cost: 5, Projections: []float64{6}},
			{Name: "Tucker", Cost: 8, Projections: []float64{7}},
		},
		EvictionProbability: 0.5,
		Verbose:             verbose,
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	out := captureStdout(t, func() {
		PrettyFormat(testReport(false))
	})

	if !strings.Contains(out, "Net worth: $10.00") {
		t.Errorf("PrettyFormat missing net worth line:\n%s", out)
	}
	if !strings.Contains(out, "Angela: 2 ($10.00 -> $12.00)") {
		t.Errorf("PrettyFormat missing recommendation line:\n%s", out)
	}
	if strings.Contains(out, "Tucker") {
		t.Errorf("PrettyFormat listed a zero-unit asset without verbose:\n%s", out)
	}
	if strings.Contains(out, "Holdings:") {
		t.Errorf("PrettyFormat listed zero holdings without verbose:\n%s", out)
	}
	if !strings.Contains(out, "Expected Value: $12.00 (20.00%)") {
		t.Errorf("PrettyFormat missing expected value line:\n%s", out)
	}
	if !strings.Contains(out, "Eviction Probability: 0.5") {
		t.Errorf("PrettyFormat missing eviction probability line:\n%s", out)
	}
}

func TestPrettyFormatVerbose(t *testing.T) {
	out := captureStdout(t, func() {
		PrettyFormat(testReport(true))
	})

	if !strings.Contains(out, "Average Projection ($)") {
		t.Errorf("PrettyFormat verbose missing projection table header:\n%s", out)
	}
	if !strings.Contains(out, "Tucker: 0") {
		t.Errorf("PrettyFormat verbose missing zero-unit asset:\n%s", out)
	}
	if !strings.Contains(out, "Holdings: 0") {
		t.Errorf("PrettyFormat verbose missing holdings line:\n%s", out)
	}
}

func TestCsvFormat(t *testing.T) {
	out := captureStdout(t, func() {
		CsvFormat(testReport(false))
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != `"name","units","cost basis","projected value"` {
		t.Errorf("CsvFormat header = %q", lines[0])
	}
	if !strings.Contains(out, `"Angela","2","10.00","12.00"`) {
		t.Errorf("CsvFormat missing asset row:\n%s", out)
	}
	if !strings.Contains(out, `"holdings","0","0.00","0.00"`) {
		t.Errorf("CsvFormat missing holdings row:\n%s", out)
	}
	if !strings.Contains(out, `"eviction probability","0.5"`) {
		t.Errorf("CsvFormat missing eviction probability row:\n%s", out)
	}
}
