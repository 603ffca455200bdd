package fieldpath_test

import (
	"errors"
	"reflect"
	"testing"

	"mortgage-portal/internal/fieldpath"
	"mortgage-portal/internal/model"
)

func mustParse(t *testing.T, s string) fieldpath.Pointer {
	t.Helper()
	p, err := fieldpath.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return p
}

func setText(t *testing.T, app *model.Application, path, raw string) error {
	t.Helper()
	parent, name := mustParse(t, path).Split()
	owner, err := fieldpath.Resolve(app, parent)
	if err != nil {
		return err
	}
	fv, err := fieldpath.Field(owner, name)
	if err != nil {
		return err
	}
	return fieldpath.SetText(fv, raw)
}

func TestParse(t *testing.T) {
	p := mustParse(t, "/addressHistory/0/moveInDate")
	if len(p) != 3 || p[1] != "0" {
		t.Fatalf("unexpected pointer %#v", p)
	}
	if p.String() != "/addressHistory/0/moveInDate" {
		t.Fatalf("unexpected string %q", p.String())
	}
	for _, bad := range []string{"", "addressHistory", "/a//b"} {
		if _, err := fieldpath.Parse(bad); !errors.Is(err, fieldpath.ErrBadPointer) {
			t.Errorf("expected ErrBadPointer for %q, got %v", bad, err)
		}
	}
}

func TestSetTextCoercesByFieldType(t *testing.T) {
	app := model.NewApplication()

	if err := setText(t, &app, "/personalDetails/firstName", "Jane"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	if err := setText(t, &app, "/insurance/hasLifeInsurance", "true"); err != nil {
		t.Fatalf("set bool: %v", err)
	}
	if err := setText(t, &app, "/propertyInformation/bedrooms", "3"); err != nil {
		t.Fatalf("set int: %v", err)
	}
	if err := setText(t, &app, "/mortgageRequirements/mortgageAmount", "250000"); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	if err := setText(t, &app, "/mortgageRequirements/features/cashback", "true"); err != nil {
		t.Fatalf("set nested bool: %v", err)
	}

	if app.PersonalDetails.FirstName != "Jane" || !app.Insurance.HasLifeInsurance {
		t.Fatalf("unexpected personal/insurance state: %+v", app)
	}
	if app.PropertyInformation.Bedrooms != 3 {
		t.Fatalf("expected 3 bedrooms, got %d", app.PropertyInformation.Bedrooms)
	}
	if !app.MortgageRequirements.MortgageAmount.Valid || app.MortgageRequirements.MortgageAmount.Decimal.IntPart() != 250000 {
		t.Fatalf("unexpected amount %+v", app.MortgageRequirements.MortgageAmount)
	}
	if !app.MortgageRequirements.Features.Cashback {
		t.Fatal("expected cashback feature set")
	}
}

func TestSetTextInvalidNumberLeavesFieldUnset(t *testing.T) {
	app := model.NewApplication()
	if err := setText(t, &app, "/mortgageRequirements/mortgageAmount", "100"); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	err := setText(t, &app, "/mortgageRequirements/mortgageAmount", "abc")
	if !errors.Is(err, fieldpath.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if app.MortgageRequirements.MortgageAmount.Valid {
		t.Fatal("expected amount to be unset after invalid input")
	}

	err = setText(t, &app, "/propertyInformation/kitchens", "one")
	if !errors.Is(err, fieldpath.ErrInvalidValue) || app.PropertyInformation.Kitchens != 0 {
		t.Fatalf("expected invalid count to reset to 0, got %d (%v)", app.PropertyInformation.Kitchens, err)
	}
}

func TestResolveErrors(t *testing.T) {
	app := model.NewApplication()

	if err := setText(t, &app, "/personalDetails/nickname", "x"); !errors.Is(err, fieldpath.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := setText(t, &app, "/addressHistory/0/town", "Leeds"); !errors.Is(err, fieldpath.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := setText(t, &app, "/income", "x"); !errors.Is(err, fieldpath.ErrNotLeaf) {
		t.Fatalf("expected ErrNotLeaf, got %v", err)
	}
}

func TestResolveOptionalRecords(t *testing.T) {
	app := model.NewApplication()

	if err := setText(t, &app, "/contacts/estateAgentDetails/name", "Foxtons"); !errors.Is(err, fieldpath.ErrNotFound) {
		t.Fatalf("expected estate agent details to be unreachable, got %v", err)
	}
	if err := setText(t, &app, "/contacts/solicitorDetails/name", "Sam Law"); err != nil {
		t.Fatalf("expected solicitor details to be allocated: %v", err)
	}
	if app.Contacts.SolicitorDetails == nil || app.Contacts.SolicitorDetails.Name != "Sam Law" {
		t.Fatalf("unexpected solicitor details %+v", app.Contacts.SolicitorDetails)
	}

	app.Contacts.EstateAgentInvolved = true
	if err := setText(t, &app, "/contacts/estateAgentDetails/name", "Foxtons"); err != nil {
		t.Fatalf("expected estate agent details once involved: %v", err)
	}
}

func TestOptionalEndDate(t *testing.T) {
	app := model.NewApplication()
	p := mustParse(t, "/income/employmentDetails")
	if _, err := fieldpath.Append(&app, p); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := setText(t, &app, "/income/employmentDetails/0/endDate", "2024-01-31"); err != nil {
		t.Fatalf("set end date: %v", err)
	}
	if app.Income.EmploymentDetails[0].EndDate == nil || *app.Income.EmploymentDetails[0].EndDate != "2024-01-31" {
		t.Fatal("expected end date to be set")
	}
	if err := setText(t, &app, "/income/employmentDetails/0/endDate", ""); err != nil {
		t.Fatalf("clear end date: %v", err)
	}
	if app.Income.EmploymentDetails[0].EndDate != nil {
		t.Fatal("expected end date to be cleared")
	}
}

func TestAppendAndRemove(t *testing.T) {
	app := model.NewApplication()
	list := mustParse(t, "/addressHistory")

	for i, town := range []string{"Leeds", "York", "Hull"} {
		idx, err := fieldpath.Append(&app, list)
		if err != nil || idx != i {
			t.Fatalf("append %d: idx=%d err=%v", i, idx, err)
		}
		app.AddressHistory[idx].Town = town
	}

	before := app.AddressHistory
	if err := fieldpath.Remove(&app, mustParse(t, "/addressHistory/1")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(app.AddressHistory) != 2 || app.AddressHistory[0].Town != "Leeds" || app.AddressHistory[1].Town != "Hull" {
		t.Fatalf("unexpected addresses after remove: %+v", app.AddressHistory)
	}
	if before[1].Town != "York" {
		t.Fatal("remove must not rewrite the previous backing array")
	}

	if err := fieldpath.Remove(&app, mustParse(t, "/addressHistory/2")); !errors.Is(err, fieldpath.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if len(app.AddressHistory) != 2 {
		t.Fatal("out-of-range remove must leave the list unchanged")
	}

	if _, err := fieldpath.Append(&app, mustParse(t, "/bankDetails")); !errors.Is(err, fieldpath.ErrNotList) {
		t.Fatalf("expected ErrNotList, got %v", err)
	}
}

func TestWalkVisitsRecordsInOrder(t *testing.T) {
	app := model.NewApplication()
	app.AddressHistory = []model.Address{{Town: "Leeds"}, {Town: "York"}}
	app.Contacts.SolicitorDetails = &model.PartyDetails{}

	var seen []string
	visit := func(at fieldpath.Pointer, _ reflect.Value) { seen = append(seen, at.String()) }

	if err := fieldpath.Walk(&app, mustParse(t, "/addressHistory"), visit); err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(seen) != 2 || seen[0] != "/addressHistory/0" || seen[1] != "/addressHistory/1" {
		t.Fatalf("unexpected records %v", seen)
	}

	seen = nil
	if err := fieldpath.Walk(&app, mustParse(t, "/contacts"), visit); err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := map[string]bool{"/contacts": true, "/contacts/solicitorDetails": true, "/contacts/valuationAccessContact": true}
	if seen[0] != "/contacts" {
		t.Fatalf("parent must come first, got %v", seen)
	}
	for _, at := range seen {
		if !want[at] {
			t.Fatalf("unexpected record %s in %v", at, seen)
		}
		delete(want, at)
	}
	if len(want) != 0 {
		t.Fatalf("records not visited: %v", want)
	}

	seen = nil
	if err := fieldpath.Walk(&app, mustParse(t, "/mortgageRequirements"), visit); err != nil {
		t.Fatalf("walk: %v", err)
	}
	for _, at := range seen {
		if at == "/mortgageRequirements/mortgageAmount" {
			t.Fatal("amounts must not be visited as records")
		}
	}

	if err := fieldpath.Walk(&app, mustParse(t, "/nothing"), visit); !errors.Is(err, fieldpath.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
