package report

import (
	"strings"
	"testing"
)

func TestFindFinancialTables_Boundaries(t *testing.T) {
	text := "CONSOLIDATED STATEMENTS OF OPERATIONS\n" +
		strings.Repeat("revenue line items ", 80) + // pushes the next heading past the 1000-char floor
		"\nCONSOLIDATED BALANCE SHEETS\n" +
		strings.Repeat("asset line items ", 80)

	sections := FindFinancialTables(text)

	income, ok := sections["income_statement"]
	if !ok {
		t.Fatal("expected income_statement to be found")
	}
	if strings.Contains(income, "CONSOLIDATED BALANCE SHEETS") {
		t.Error("income_statement should end where the balance sheet begins")
	}

	balance, ok := sections["balance_sheet"]
	if !ok {
		t.Fatal("expected balance_sheet to be found")
	}
	if !strings.HasPrefix(balance, "CONSOLIDATED BALANCE SHEETS") {
		t.Errorf("balance_sheet should start at its heading, got %q", balance[:40])
	}

	t.Log("✅ statement boundary detection passed")
}

func TestFindFinancialTables_NoneFound(t *testing.T) {
	sections := FindFinancialTables("plain prose with no statement headings")
	if len(sections) != 0 {
		t.Errorf("expected no sections, got %v", StatementNames(sections))
	}
}

func TestStatementNames_Order(t *testing.T) {
	sections := map[string]string{
		"cash_flow":        "x",
		"income_statement": "y",
	}

	names := StatementNames(sections)
	if len(names) != 2 || names[0] != "income_statement" || names[1] != "cash_flow" {
		t.Errorf("expected fixed scan order, got %v", names)
	}
}
