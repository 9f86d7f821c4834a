package parser

import (
	"testing"

	"ahorify-go-be/models"
)

func TestParseAmountAndCategory(t *testing.T) {
	p := New(DefaultTables())

	cases := []struct {
		name         string
		input        string
		wantAmount   string // "" means absent
		wantCategory string
		wantType     string
	}{
		{"amount before currency", "Pizza 15 euros", "15", "🍔 Comida", models.KindExpense},
		{"currency before amount", "euros 20 de taxi", "20", "🚗 Transporte", models.KindExpense},
		{"decimal comma", "Cena 15,50€", "15.5", "🍔 Comida", models.KindExpense},
		{"euro sign attached", "12.99€ netflix", "12.99", "🎮 Ocio", models.KindExpense},
		{"bare number fallback", "farmacia 8", "8", "💊 Salud", models.KindExpense},
		{"income keyword", "Salario 1200", "1200", "💼 Ingresos", models.KindIncome},
		{"income phrase", "pago recibido 300 euros", "300", "💼 Ingresos", models.KindIncome},
		{"no amount", "compré ropa nueva", "", "👗 Ropa", models.KindExpense},
		{"nothing matches", "qué día más raro", "", "❓ Otros", models.KindExpense},
		{"uppercase input", "ALQUILER 650 EUROS", "650", "🏠 Vivienda", models.KindExpense},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := p.Parse(tc.input)

			if tc.wantAmount == "" {
				if result.Amount != nil {
					t.Errorf("expected no amount, got %s", result.Amount)
				}
			} else {
				if result.Amount == nil {
					t.Fatalf("expected amount %s, got none", tc.wantAmount)
				}
				if result.Amount.String() != tc.wantAmount {
					t.Errorf("expected amount %s, got %s", tc.wantAmount, result.Amount)
				}
			}
			if result.Category != tc.wantCategory {
				t.Errorf("expected category %q, got %q", tc.wantCategory, result.Category)
			}
			if result.Type != tc.wantType {
				t.Errorf("expected type %q, got %q", tc.wantType, result.Type)
			}
		})
	}
}

func TestParseAmountPatternPriority(t *testing.T) {
	p := New(DefaultTables())

	// The amount next to a currency token wins over an earlier bare number.
	result := p.Parse("2 pizzas por 18 euros")
	if result.Amount == nil || result.Amount.String() != "18" {
		t.Errorf("expected amount 18, got %v", result.Amount)
	}
}

func TestParseZeroAmountIsAbsent(t *testing.T) {
	p := New(DefaultTables())

	result := p.Parse("0 euros en nada")
	if result.Amount != nil {
		t.Errorf("zero is not a valid amount, got %s", result.Amount)
	}
}

func TestParseFirstCategoryWins(t *testing.T) {
	p := New(DefaultTables())

	// "cena" (comida) appears and comida is ordered before ocio.
	result := p.Parse("cena y cine 40 euros")
	if result.Category != "🍔 Comida" {
		t.Errorf("expected first matching category, got %q", result.Category)
	}
}

func TestParseWithSubstitutedTables(t *testing.T) {
	p := New(Tables{
		AmountPatterns:  DefaultTables().AmountPatterns,
		IncomeKeywords:  []string{"refund"},
		Categories:      []CategoryRule{{"books", []string{"paperback"}}},
		DefaultCategory: "misc",
	})

	result := p.Parse("refund for a paperback 9.99")
	if result.Type != models.KindIncome {
		t.Errorf("expected income, got %q", result.Type)
	}
	if result.Category != "books" {
		t.Errorf("expected books, got %q", result.Category)
	}

	if got := p.Parse("anything else").Category; got != "misc" {
		t.Errorf("expected default category misc, got %q", got)
	}
}
