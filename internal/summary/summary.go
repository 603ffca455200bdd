// Package summary condenses an application into the figures an adviser reads
// first: which steps are incomplete and the headline money totals.
package summary

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mortgage-portal/internal/model"
)

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

type Row struct {
	Step    int
	Key     string
	Title   string
	Missing []string
}

// Complete reports whether every required field of the step is filled.
func (r Row) Complete() bool { return len(r.Missing) == 0 }

func Sections(app *model.Application) []Row {
	rows := make([]Row, 0, model.StepCount)
	for i, s := range model.Sections {
		rows = append(rows, Row{Step: i, Key: s.Key, Title: s.Title, Missing: s.Missing(app)})
	}
	return rows
}

// Totals are the money figures of an application. Unset amounts count as zero.
type Totals struct {
	AnnualIncome       decimal.Decimal
	MonthlyCommitments decimal.Decimal
	OutstandingDebt    decimal.Decimal
	MortgageAmount     decimal.Decimal
	PortfolioValue     decimal.Decimal
	PortfolioMortgages decimal.Decimal
}

func Compute(app *model.Application) Totals {
	var t Totals
	for _, e := range app.Income.EmploymentDetails {
		if e.EndDate != nil && *e.EndDate != "" {
			continue
		}
		t.AnnualIncome = t.AnnualIncome.Add(amount(e.Income))
	}
	for _, a := range app.Income.AdditionalIncome {
		t.AnnualIncome = t.AnnualIncome.Add(Annualise(amount(a.Amount), a.Frequency))
	}
	for _, c := range app.CreditCommitments {
		t.MonthlyCommitments = t.MonthlyCommitments.Add(amount(c.MonthlyPayment))
		t.OutstandingDebt = t.OutstandingDebt.Add(amount(c.Balance))
	}
	for _, p := range app.PropertyPortfolio.Properties {
		t.MonthlyCommitments = t.MonthlyCommitments.Add(amount(p.MonthlyPayment))
		t.PortfolioValue = t.PortfolioValue.Add(amount(p.Value))
		t.PortfolioMortgages = t.PortfolioMortgages.Add(amount(p.Mortgage))
	}
	t.MortgageAmount = amount(app.MortgageRequirements.MortgageAmount)
	return t
}

// Annualise converts an amount paid weekly, monthly or annually to a yearly
// figure. Unknown frequencies are taken as annual.
func Annualise(v decimal.Decimal, frequency string) decimal.Decimal {
	switch frequency {
	case "weekly":
		return v.Mul(weeksPerYear)
	case "monthly":
		return v.Mul(monthsPerYear)
	}
	return v
}

func amount(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

// NewPrinter returns the printer used for money output.
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.BritishEnglish)
}

// Money renders v as pounds with thousands grouping, e.g. £250,000.00. The
// pennies come from the decimal itself; only the whole pounds go through p.
func Money(p *message.Printer, v decimal.Decimal) string {
	sign := ""
	if v.Round(2).IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	pounds, pence, _ := strings.Cut(v.StringFixed(2), ".")
	whole, ok := new(big.Int).SetString(pounds, 10)
	if !ok || !whole.IsInt64() {
		return sign + "£" + pounds + "." + pence
	}
	return sign + p.Sprintf("£%d", whole.Int64()) + "." + pence
}
