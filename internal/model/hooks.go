package model

import (
	"errors"
	"strconv"
	"time"

	"mortgage-portal/internal/derive"
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrAccountNumberTooLong = errors.New("account number longer than 8 digits")
)

// InputFilter is implemented by records that mask raw input for some of their
// fields before it is stored.
type InputFilter interface {
	FilterInput(field, raw string) (string, error)
}

// Deriver is implemented by records holding computed fields. Derive runs after
// field changed and recomputes whatever depends on it.
type Deriver interface {
	Derive(field string, asOf time.Time) error
}

func (b *BankDetails) FilterInput(field, raw string) (string, error) {
	switch field {
	case "sortCode":
		return derive.SortCode(raw), nil
	case "accountNumber":
		digits, ok := derive.AccountNumber(raw)
		if !ok {
			return b.AccountNumber, ErrAccountNumberTooLong
		}
		return digits, nil
	}
	return raw, nil
}

func (a *Address) Derive(field string, asOf time.Time) error {
	if field != "moveInDate" {
		return nil
	}
	a.TimeAtAddress = ""
	if a.MoveInDate == "" {
		return nil
	}
	moveIn, ok := derive.ParseDate(a.MoveInDate)
	if !ok {
		return ErrInvalidDate
	}
	a.TimeAtAddress = derive.TimeAtAddress(moveIn, asOf)
	return nil
}

func (p *PersonalDetails) Derive(field string, asOf time.Time) error {
	if field != "dateOfBirth" && field != "anticipatedRetirementAge" {
		return nil
	}
	p.Age = ""
	p.TimeUntilRetirement = ""
	if p.DateOfBirth == "" {
		return nil
	}
	birth, ok := derive.ParseDate(p.DateOfBirth)
	if !ok {
		return ErrInvalidDate
	}
	p.Age = strconv.Itoa(derive.Age(birth, asOf))
	if retireAt, ok := derive.ParseCount(p.AnticipatedRetirementAge); ok && retireAt > 0 {
		p.TimeUntilRetirement = derive.TimeUntilRetirement(birth, retireAt, asOf)
	}
	return nil
}

func (c *Contact) Derive(field string, _ time.Time) error {
	if field != "estateAgentInvolved" {
		return nil
	}
	if !c.EstateAgentInvolved {
		c.EstateAgentDetails = nil
	} else if c.EstateAgentDetails == nil {
		c.EstateAgentDetails = &PartyDetails{}
	}
	return nil
}

// AllocField reports whether an absent optional record may be created by
// editing one of its fields.
func (c *Contact) AllocField(field string) bool {
	switch field {
	case "estateAgentDetails":
		return c.EstateAgentInvolved
	case "solicitorDetails":
		return true
	}
	return false
}
