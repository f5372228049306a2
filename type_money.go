package powermix

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of catalogs that do not specify one.
const DefaultCurrency = "USD"

var (
	million = decimal.New(1, 6)
	billion = decimal.New(1, 9)
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// ParseMoney parses a decimal amount with an optional magnitude suffix:
// "k" (thousand), "M" (million) or "B" (billion), e.g. "120M" or "1.5B".
func ParseMoney(s, currency string) (Money, error) {
	txt := strings.TrimSpace(s)
	var exp int32
	switch {
	case strings.HasSuffix(txt, "k"), strings.HasSuffix(txt, "K"):
		exp = 3
	case strings.HasSuffix(txt, "M"):
		exp = 6
	case strings.HasSuffix(txt, "B"):
		exp = 9
	}
	if exp > 0 {
		txt = strings.TrimSpace(txt[:len(txt)-1])
	}
	d, err := decimal.NewFromString(txt)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	return Money{value: d.Shift(exp), cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// String returns the string representation of the money value, e.g. "$1,200.00".
// Amounts too large for the currency formatter are written in compact form.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	if dec.GreaterThan(maxInt64) || dec.LessThan(minInt64) {
		return m.Compact()
	}
	return cur.Formatter().Format(dec.IntPart())
}

// Compact returns the value in millions or billions, the way budgets are
// discussed: "12.34 Million USD" or "1.234 Billion USD".
func (m Money) Compact() string {
	if m.value.GreaterThanOrEqual(billion) {
		return fmt.Sprintf("%s Billion %s", m.value.Div(billion).StringFixed(3), m.cur)
	}
	return fmt.Sprintf("%s Million %s", m.value.Div(million).StringFixed(2), m.cur)
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Times(n int) Money               { return m.Mul(Q(n)) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Fit returns how many whole 'price' fit in m, that is floor(m/price),
// saturated to the int64 range. price must be positive.
func (m Money) Fit(price Money) int64 {
	q, _ := m.value.QuoRem(price.value, 0)
	if m.value.IsNegative() && !q.Mul(price.value).Equal(m.value) {
		// QuoRem truncates toward zero
		q = q.Sub(decimal.NewFromInt(1))
	}
	switch {
	case q.GreaterThan(maxInt64):
		return math.MaxInt64
	case q.LessThan(minInt64):
		return math.MinInt64
	}
	return q.IntPart()
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
