// Package derive holds the computed-field rules of the application wizard:
// elapsed time at an address, applicant age, retirement countdown and the
// input masks used for bank details and numeric fields.
package derive

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	sortCodeDigits      = 6
	accountNumberDigits = 8

	maxMoneyDigits = 15
	maxMoneyScale  = 10
)

var maxMoney = decimal.New(1, maxMoneyDigits)

// ParseDate parses an HTML date input value ("YYYY-MM-DD").
// Returns zero time and false on invalid input, including impossible days such as 2023-02-30.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// MonthsBetween counts calendar months from start to end, ignoring the day of
// month. Negative spans are clamped to zero.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// TimeAtAddress renders the time elapsed since moveIn as "<years> years, <months> months".
func TimeAtAddress(moveIn, now time.Time) string {
	total := MonthsBetween(moveIn, now)
	return fmt.Sprintf("%d years, %d months", total/12, total%12)
}

// Age returns whole years between birth and now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// TimeUntilRetirement renders the years left before retirementAge as "<years> years".
func TimeUntilRetirement(birth time.Time, retirementAge int, now time.Time) string {
	left := retirementAge - Age(birth, now)
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%d years", left)
}

// Digits drops every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// SortCode masks raw input as XX-XX-XX. Digits past the sixth are dropped.
func SortCode(raw string) string {
	d := Digits(raw)
	if len(d) > sortCodeDigits {
		d = d[:sortCodeDigits]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "-" + d[2:]
	default:
		return d[:2] + "-" + d[2:4] + "-" + d[4:]
	}
}

// AccountNumber keeps the digits of raw. It reports false when more than eight
// digits remain; callers keep the previous value in that case.
func AccountNumber(raw string) (string, bool) {
	d := Digits(raw)
	if len(d) > accountNumberDigits {
		return "", false
	}
	return d, true
}

// ParseMoney reads a monetary amount typed by the user. Blank input is a valid
// "unset" value. Thousands separators and a leading pound sign are tolerated;
// exponent notation and amounts outside MoneyInRange are not.
func ParseMoney(raw string) (decimal.NullDecimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.NullDecimal{}, true
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.NullDecimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !MoneyInRange(d) {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// MoneyInRange reports whether d fits an amount of money: below 10^15 in
// magnitude with at most 10 decimal places. The exponent is checked before the
// value so huge exponents are never expanded.
func MoneyInRange(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp < -maxMoneyScale || exp > maxMoneyDigits {
		return false
	}
	return d.Abs().LessThan(maxMoney)
}

// ParseCount reads a whole number such as a room count or a term in years.
// Blank input is zero.
func ParseCount(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
