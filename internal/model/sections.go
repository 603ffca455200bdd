package model

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Section describes one wizard step: its key in the aggregate, its title and
// typed access to its slice of the record.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`

	get     func(*Application) any
	replace func(*Application, []byte) error
	missing func(*Application) []string
}

// Value returns a copy of the section's data.
func (s Section) Value(a *Application) any { return s.get(a) }

// Replace decodes raw into a fresh value of the section's type and swaps it
// into a. Fields absent from raw take their zero value. Sibling sections are
// left untouched.
func (s Section) Replace(a *Application, raw []byte) error {
	if err := s.replace(a, raw); err != nil {
		return fmt.Errorf("replace %s: %w", s.Key, err)
	}
	a.Normalize()
	return nil
}

// Missing lists the pointers of required fields that are still blank.
func (s Section) Missing(a *Application) []string {
	if s.missing == nil {
		return nil
	}
	return s.missing(a)
}

func section[T any](key, title string, field func(*Application) *T, missing func(*T, *gaps)) Section {
	s := Section{
		Key:   key,
		Title: title,
		get:   func(a *Application) any { return *field(a) },
		replace: func(a *Application, raw []byte) error {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*field(a) = v
			return nil
		},
	}
	if missing != nil {
		s.missing = func(a *Application) []string {
			g := &gaps{prefix: "/" + key}
			missing(field(a), g)
			return g.found
		}
	}
	return s
}

// Sections is indexed by wizard step.
var Sections = [StepCount]Section{
	section("personalDetails", "Personal Details", func(a *Application) *PersonalDetails { return &a.PersonalDetails }, missingPersonalDetails),
	section("dependents", "Dependents", func(a *Application) *[]Dependent { return &a.Dependents }, missingDependents),
	section("addressHistory", "Address History", func(a *Application) *[]Address { return &a.AddressHistory }, missingAddressHistory),
	section("income", "Income", func(a *Application) *Income { return &a.Income }, missingIncome),
	section[Adverse]("adverse", "Adverse", func(a *Application) *Adverse { return &a.Adverse }, nil),
	section[Insurance]("insurance", "Insurance", func(a *Application) *Insurance { return &a.Insurance }, nil),
	section("mortgageRequirements", "Mortgage Requirements", func(a *Application) *MortgageRequirements { return &a.MortgageRequirements }, missingMortgageRequirements),
	section("propertyInformation", "Property Information", func(a *Application) *PropertyInformation { return &a.PropertyInformation }, missingPropertyInformation),
	section("creditCommitments", "Credit Commitments", func(a *Application) *[]CreditCommitment { return &a.CreditCommitments }, missingCreditCommitments),
	section("propertyPortfolio", "Property Portfolio", func(a *Application) *PropertyPortfolio { return &a.PropertyPortfolio }, missingPropertyPortfolio),
	section("contacts", "Contacts", func(a *Application) *Contact { return &a.Contacts }, missingContacts),
	section("bankDetails", "Bank Details", func(a *Application) *BankDetails { return &a.BankDetails }, missingBankDetails),
	section[AdditionalInformation]("additionalInformation", "Additional Information", func(a *Application) *AdditionalInformation { return &a.AdditionalInformation }, nil),
}

// SectionByKey looks a section up by its aggregate key.
func SectionByKey(key string) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// gaps collects pointers to blank required fields under prefix.
type gaps struct {
	prefix string
	found  []string
}

func (g *gaps) text(path, v string) {
	if strings.TrimSpace(v) == "" {
		g.found = append(g.found, g.prefix+path)
	}
}

func (g *gaps) amount(path string, v decimal.NullDecimal) {
	if !v.Valid {
		g.found = append(g.found, g.prefix+path)
	}
}

func (g *gaps) count(path string, v int) {
	if v <= 0 {
		g.found = append(g.found, g.prefix+path)
	}
}

func missingPersonalDetails(p *PersonalDetails, g *gaps) {
	g.text("/firstName", p.FirstName)
	g.text("/surname", p.Surname)
	g.text("/dateOfBirth", p.DateOfBirth)
	g.text("/mobileNumber", p.MobileNumber)
	g.text("/emailAddress", p.EmailAddress)
}

func missingDependents(ds *[]Dependent, g *gaps) {
	for i, d := range *ds {
		at := fmt.Sprintf("/%d", i)
		g.text(at+"/name", d.Name)
		g.text(at+"/age", d.Age)
		g.text(at+"/relationship", d.Relationship)
	}
}

func missingAddress(at string, a Address, g *gaps, history bool) {
	if history {
		g.text(at+"/country", a.Country)
	}
	g.text(at+"/streetName", a.StreetName)
	g.text(at+"/town", a.Town)
	g.text(at+"/city", a.City)
	g.text(at+"/postcode", a.Postcode)
	if history {
		g.text(at+"/residencyStatus", a.ResidencyStatus)
		g.text(at+"/moveInDate", a.MoveInDate)
	}
}

func missingAddressHistory(as *[]Address, g *gaps) {
	for i, a := range *as {
		missingAddress(fmt.Sprintf("/%d", i), a, g, true)
	}
}

func missingIncome(in *Income, g *gaps) {
	g.text("/employmentStatus", in.EmploymentStatus)
	for i, e := range in.EmploymentDetails {
		at := fmt.Sprintf("/employmentDetails/%d", i)
		g.text(at+"/employerName", e.EmployerName)
		g.text(at+"/jobTitle", e.JobTitle)
		g.text(at+"/startDate", e.StartDate)
		g.amount(at+"/income", e.Income)
	}
	for i, x := range in.AdditionalIncome {
		at := fmt.Sprintf("/additionalIncome/%d", i)
		g.text(at+"/type", x.Type)
		g.amount(at+"/amount", x.Amount)
		g.text(at+"/frequency", x.Frequency)
	}
}

func missingMortgageRequirements(m *MortgageRequirements, g *gaps) {
	g.text("/type", m.Type)
	g.text("/propertyType", m.PropertyType)
	g.text("/productType", m.ProductType)
	g.count("/productTerm", m.ProductTerm)
	g.count("/mortgageTerm", m.MortgageTerm)
	g.amount("/mortgageAmount", m.MortgageAmount)
	g.amount("/maximumMonthlyBudget", m.MaximumMonthlyBudget)
	g.amount("/loanToValue", m.LoanToValue)
}

func missingPropertyInformation(p *PropertyInformation, g *gaps) {
	missingAddress("/address", p.Address, g, false)
	g.text("/propertyType", p.PropertyType)
	g.text("/propertyStyle", p.PropertyStyle)
	g.text("/tenure", p.Tenure)
	g.text("/buildDate", p.BuildDate)
	g.text("/wallConstruction", p.WallConstruction)
	g.text("/roofConstruction", p.RoofConstruction)
	g.text("/parkingFacilities", p.ParkingFacilities)
	g.text("/epcRating", p.EPCRating)
}

func missingCreditCommitments(cs *[]CreditCommitment, g *gaps) {
	for i, c := range *cs {
		at := fmt.Sprintf("/%d", i)
		g.text(at+"/type", c.Type)
		g.text(at+"/provider", c.Provider)
		g.text(at+"/accountNumber", c.AccountNumber)
		g.amount(at+"/balance", c.Balance)
		g.amount(at+"/monthlyPayment", c.MonthlyPayment)
	}
}

func missingPropertyPortfolio(p *PropertyPortfolio, g *gaps) {
	for i, prop := range p.Properties {
		at := fmt.Sprintf("/properties/%d", i)
		missingAddress(at+"/address", prop.Address, g, false)
		g.amount(at+"/value", prop.Value)
		g.amount(at+"/mortgage", prop.Mortgage)
		g.amount(at+"/monthlyPayment", prop.MonthlyPayment)
		g.amount(at+"/monthlyRent", prop.MonthlyRent)
	}
}

func missingContacts(c *Contact, g *gaps) {
	if c.EstateAgentInvolved {
		if c.EstateAgentDetails == nil {
			g.text("/estateAgentDetails", "")
		} else {
			g.text("/estateAgentDetails/name", c.EstateAgentDetails.Name)
			g.text("/estateAgentDetails/company", c.EstateAgentDetails.Company)
			g.text("/estateAgentDetails/phone", c.EstateAgentDetails.Phone)
			g.text("/estateAgentDetails/email", c.EstateAgentDetails.Email)
		}
	}
	g.text("/valuationAccessContact/name", c.ValuationAccessContact.Name)
	g.text("/valuationAccessContact/phone", c.ValuationAccessContact.Phone)
	g.text("/valuationAccessContact/email", c.ValuationAccessContact.Email)
}

func missingBankDetails(b *BankDetails, g *gaps) {
	g.text("/accountHolder", b.AccountHolder)
	if len(b.SortCode) != 8 {
		g.found = append(g.found, g.prefix+"/sortCode")
	}
	g.text("/accountNumber", b.AccountNumber)
	g.text("/bankName", b.BankName)
}
