package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ahorify-go-be/models"
)

// Result holds the fields extracted from one free-text entry. Absent fields
// are a valid outcome: Amount stays nil and Category falls back to the
// default label when nothing matched.
type Result struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
	Type     string           `json:"type"`
}

// CategoryRule maps a category label to the keywords that select it.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// Tables is the immutable lookup data the parser runs on. Built once at
// startup and passed in, so tests can substitute their own.
type Tables struct {
	AmountPatterns  []*regexp.Regexp
	IncomeKeywords  []string
	Categories      []CategoryRule
	DefaultCategory string
}

// DefaultTables returns the production lookup tables.
func DefaultTables() Tables {
	return Tables{
		// Priority order: amount before currency token, currency token
		// before amount, then a bare number as last resort.
		AmountPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+[.,]?\d*)\s*(?:euros?|euro|eur|pesos?|€|\$)`),
			regexp.MustCompile(`(?:euros?|euro|eur|pesos?|€|\$)\s*(\d+[.,]?\d*)`),
			regexp.MustCompile(`(\d+[.,]?\d*)`),
		},
		IncomeKeywords: []string{"ingreso", "salario", "pago recibido", "dinero entrante"},
		Categories: []CategoryRule{
			{"🍔 Comida", []string{"comida", "pizza", "hamburguesa", "restaurante", "cena", "almuerzo", "desayuno", "cenas"}},
			{"🚗 Transporte", []string{"taxi", "uber", "gasolina", "parking", "metro", "bus", "transporte"}},
			{"🎮 Ocio", []string{"cine", "netflix", "spotify", "videojuegos", "juegos", "ocio", "entretenimiento"}},
			{"🏠 Vivienda", []string{"alquiler", "luz", "agua", "gas", "internet", "wifi", "hipoteca"}},
			{"👗 Ropa", []string{"ropa", "zapatos", "camisa", "pantalon", "vestido"}},
			{"💊 Salud", []string{"farmacia", "medico", "hospital", "salud", "medicina"}},
			{"📚 Educación", []string{"curso", "libro", "universidad", "educacion", "aprender"}},
			{"✈️ Viajes", []string{"viaje", "vuelo", "hotel", "vacaciones"}},
			{"🎁 Regalos", []string{"regalo", "cumpleaños", "aniversario"}},
			{"📱 Tecnología", []string{"telefono", "movil", "laptop", "iphone", "android", "tecnologia"}},
			{"💡 Servicios", []string{"servicio", "mantenimiento", "reparacion"}},
			{"💰 Ahorros", []string{"ahorro", "ahorrar", "deposito"}},
			{"💼 Ingresos", []string{"salario", "pago", "ingreso", "trabajo"}},
		},
		DefaultCategory: "❓ Otros",
	}
}

// Parser extracts amount, category and transaction kind from free text.
type Parser struct {
	tables Tables
}

// New creates a Parser running on the given lookup tables.
func New(tables Tables) *Parser {
	return &Parser{tables: tables}
}

// Parse extracts structured fields from raw user text such as
// "Pizza 15 euros". Unparseable text is not an error: partial or absent
// fields are expected and callers must tolerate them.
func (p *Parser) Parse(rawText string) Result {
	lower := strings.ToLower(rawText)

	result := Result{
		Amount:   p.parseAmount(lower),
		Category: p.tables.DefaultCategory,
		Type:     models.KindExpense,
	}

	for _, keyword := range p.tables.IncomeKeywords {
		if strings.Contains(lower, keyword) {
			result.Type = models.KindIncome
			break
		}
	}

	for _, rule := range p.tables.Categories {
		if containsAny(lower, rule.Keywords) {
			result.Category = rule.Label
			break
		}
	}

	return result
}

func (p *Parser) parseAmount(lower string) *decimal.Decimal {
	for _, pattern := range p.tables.AmountPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		normalized := strings.ReplaceAll(match[1], ",", ".")
		amount, err := decimal.NewFromString(normalized)
		if err != nil || !amount.IsPositive() {
			continue
		}
		return &amount
	}
	return nil
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
