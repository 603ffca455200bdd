package model

import "github.com/shopspring/decimal"

// Application is the aggregate record edited by the wizard. It always carries
// all thirteen sections; list sections are never nil.
type Application struct {
	PersonalDetails       PersonalDetails       `json:"personalDetails"`
	Dependents            []Dependent           `json:"dependents"`
	AddressHistory        []Address             `json:"addressHistory"`
	Income                Income                `json:"income"`
	Adverse               Adverse               `json:"adverse"`
	Insurance             Insurance             `json:"insurance"`
	MortgageRequirements  MortgageRequirements  `json:"mortgageRequirements"`
	PropertyInformation   PropertyInformation   `json:"propertyInformation"`
	CreditCommitments     []CreditCommitment    `json:"creditCommitments"`
	PropertyPortfolio     PropertyPortfolio     `json:"propertyPortfolio"`
	Contacts              Contact               `json:"contacts"`
	BankDetails           BankDetails           `json:"bankDetails"`
	AdditionalInformation AdditionalInformation `json:"additionalInformation"`
}

type PersonalDetails struct {
	NumberOfApplicants         string `json:"numberOfApplicants"`
	Title                      string `json:"title"`
	FirstName                  string `json:"firstName"`
	MiddleNames                string `json:"middleNames"`
	Surname                    string `json:"surname"`
	NameChanged                bool   `json:"nameChanged"`
	DateOfBirth                string `json:"dateOfBirth"`
	Age                        string `json:"age"`
	AnticipatedRetirementAge   string `json:"anticipatedRetirementAge"`
	TimeUntilRetirement        string `json:"timeUntilRetirement"`
	Gender                     string `json:"gender"`
	MaritalStatus              string `json:"maritalStatus"`
	CountryOfBirth             string `json:"countryOfBirth"`
	Nationality                string `json:"nationality"`
	Citizenship                string `json:"citizenship"`
	CountryOfResidence         string `json:"countryOfResidence"`
	NationalInsuranceNo        string `json:"nationalInsuranceNo"`
	MobileNumber               string `json:"mobileNumber"`
	WorkNumber                 string `json:"workNumber"`
	EmailAddress               string `json:"emailAddress"`
	PreferredContactMethod     string `json:"preferredContactMethod"`
	PreferredContactTime       string `json:"preferredContactTime"`
	FirstTimeBuyer             bool   `json:"firstTimeBuyer"`
	HasRentalProperty          bool   `json:"hasRentalProperty"`
	HasProminentPublicFunction bool   `json:"hasProminentPublicFunction"`
	HasPowerOfAttorney         bool   `json:"hasPowerOfAttorney"`
	HasLongTermCare            bool   `json:"hasLongTermCare"`
	HasCriminalConvictions     bool   `json:"hasCriminalConvictions"`
	HasWill                    bool   `json:"hasWill"`
	WantsProductUpdates        bool   `json:"wantsProductUpdates"`
}

type Dependent struct {
	Name         string `json:"name"`
	Age          string `json:"age"`
	Relationship string `json:"relationship"`
}

type Address struct {
	Country                string `json:"country"`
	BuildingName           string `json:"buildingName"`
	BuildingNumber         string `json:"buildingNumber"`
	StreetName             string `json:"streetName"`
	Town                   string `json:"town"`
	City                   string `json:"city"`
	Postcode               string `json:"postcode"`
	OnElectoralRegister    bool   `json:"onElectoralRegister"`
	BankAccountsRegistered bool   `json:"bankAccountsRegistered"`
	ResidencyStatus        string `json:"residencyStatus"`
	MoveInDate             string `json:"moveInDate"`
	TimeAtAddress          string `json:"timeAtAddress"`
}

type Income struct {
	EmploymentStatus  string             `json:"employmentStatus"`
	EmploymentDetails []EmploymentDetail `json:"employmentDetails"`
	AdditionalIncome  []AdditionalIncome `json:"additionalIncome"`
}

type EmploymentDetail struct {
	EmployerName string              `json:"employerName"`
	JobTitle     string              `json:"jobTitle"`
	StartDate    string              `json:"startDate"`
	EndDate      *string             `json:"endDate,omitempty"`
	Income       decimal.NullDecimal `json:"income"`
}

type AdditionalIncome struct {
	Type      string              `json:"type"`
	Amount    decimal.NullDecimal `json:"amount"`
	Frequency string              `json:"frequency"`
}

// Adverse answers the fixed credit-history questions, one flag each.
type Adverse struct {
	LatePayments        bool `json:"latePayments"`
	CurrentArrears      bool `json:"currentArrears"`
	MissedPayments      bool `json:"missedPayments"`
	PaydayLoans         bool `json:"paydayLoans"`
	CCJs                bool `json:"ccjs"`
	Defaults            bool `json:"defaults"`
	IVAOrDMP            bool `json:"ivaOrDmp"`
	PaymentArrangements bool `json:"paymentArrangements"`
	Bankruptcy          bool `json:"bankruptcy"`
	Repossession        bool `json:"repossession"`
	MortgageDeclined    bool `json:"mortgageDeclined"`
	ExceededCreditLimit bool `json:"exceededCreditLimit"`
	OtherCreditProblems bool `json:"otherCreditProblems"`
}

type Insurance struct {
	HasLifeInsurance        bool `json:"hasLifeInsurance"`
	HasCriticalIllnessCover bool `json:"hasCriticalIllnessCover"`
	HasIncomeProtection     bool `json:"hasIncomeProtection"`
	HasBuildingsInsurance   bool `json:"hasBuildingsInsurance"`
}

const (
	MortgageTypePurchase   = "Purchase"
	MortgageTypeRemortgage = "Remortgage"

	PropertyTypeResidential = "Residential"
	PropertyTypeBuyToLet    = "Buy-To-Let"
)

type MortgageRequirements struct {
	Type                 string              `json:"type"`
	PropertyType         string              `json:"propertyType"`
	ProductType          string              `json:"productType"`
	ProductTerm          int                 `json:"productTerm"`
	MortgageTerm         int                 `json:"mortgageTerm"`
	MortgageAmount       decimal.NullDecimal `json:"mortgageAmount"`
	MaximumMonthlyBudget decimal.NullDecimal `json:"maximumMonthlyBudget"`
	LoanToValue          decimal.NullDecimal `json:"loanToValue"`
	Features             MortgageFeatures    `json:"features"`
}

type MortgageFeatures struct {
	AddFeeToLoan              bool `json:"addFeeToLoan"`
	FreeValuation             bool `json:"freeValuation"`
	FreeConveyancing          bool `json:"freeConveyancing"`
	Cashback                  bool `json:"cashback"`
	NoEarlyRepaymentPenalties bool `json:"noEarlyRepaymentPenalties"`
	AllowOverpayments         bool `json:"allowOverpayments"`
}

type PropertyInformation struct {
	Address                 Address             `json:"address"`
	PropertyType            string              `json:"propertyType"`
	PropertyStyle           string              `json:"propertyStyle"`
	Tenure                  string              `json:"tenure"`
	IsExLocalAuthority      bool                `json:"isExLocalAuthority"`
	IsNewBuild              bool                `json:"isNewBuild"`
	BuildDate               string              `json:"buildDate"`
	WallConstruction        string              `json:"wallConstruction"`
	RoofConstruction        string              `json:"roofConstruction"`
	HasSprayFoamInsulation  bool                `json:"hasSprayFoamInsulation"`
	HasSolarPanels          bool                `json:"hasSolarPanels"`
	HasCommercialProperties bool                `json:"hasCommercialProperties"`
	Bedrooms                int                 `json:"bedrooms"`
	Bathrooms               int                 `json:"bathrooms"`
	WCs                     int                 `json:"wcs"`
	ReceptionRooms          int                 `json:"receptionRooms"`
	Kitchens                int                 `json:"kitchens"`
	ParkingFacilities       string              `json:"parkingFacilities"`
	EPCRating               string              `json:"epcRating"`
	GroundRent              decimal.NullDecimal `json:"groundRent"`
	ServiceCharge           decimal.NullDecimal `json:"serviceCharge"`
}

type CreditCommitment struct {
	Type           string              `json:"type"`
	Provider       string              `json:"provider"`
	AccountNumber  string              `json:"accountNumber"`
	Balance        decimal.NullDecimal `json:"balance"`
	MonthlyPayment decimal.NullDecimal `json:"monthlyPayment"`
	ToBeRepaid     bool                `json:"toBeRepaid"`
}

type PropertyPortfolio struct {
	Properties []Property `json:"properties"`
}

type Property struct {
	Address        Address             `json:"address"`
	Value          decimal.NullDecimal `json:"value"`
	Mortgage       decimal.NullDecimal `json:"mortgage"`
	MonthlyPayment decimal.NullDecimal `json:"monthlyPayment"`
	MonthlyRent    decimal.NullDecimal `json:"monthlyRent"`
}

// Contact holds the third parties involved in the purchase. Estate agent
// details exist only while an agent is involved; solicitor details appear on
// first edit.
type Contact struct {
	EstateAgentInvolved    bool                   `json:"estateAgentInvolved"`
	EstateAgentDetails     *PartyDetails          `json:"estateAgentDetails,omitempty"`
	SolicitorDetails       *PartyDetails          `json:"solicitorDetails,omitempty"`
	ValuationAccessContact ValuationAccessContact `json:"valuationAccessContact"`
}

type PartyDetails struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type ValuationAccessContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	SortCode      string `json:"sortCode"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

type AdditionalInformation struct {
	IncomeChanges       string `json:"incomeChanges"`
	EarlyRepaymentPlans string `json:"earlyRepaymentPlans"`
	PlanToMove          string `json:"planToMove"`
}

// NewApplication returns the blank record a wizard starts from.
func NewApplication() Application {
	return Application{
		Dependents:     []Dependent{},
		AddressHistory: []Address{},
		Income: Income{
			EmploymentDetails: []EmploymentDetail{},
			AdditionalIncome:  []AdditionalIncome{},
		},
		MortgageRequirements: MortgageRequirements{
			Type:         MortgageTypePurchase,
			PropertyType: PropertyTypeResidential,
		},
		CreditCommitments: []CreditCommitment{},
		PropertyPortfolio: PropertyPortfolio{Properties: []Property{}},
	}
}

// Normalize replaces nil lists with empty ones so the record always encodes
// every list as an array.
func (a *Application) Normalize() {
	if a.Dependents == nil {
		a.Dependents = []Dependent{}
	}
	if a.AddressHistory == nil {
		a.AddressHistory = []Address{}
	}
	if a.Income.EmploymentDetails == nil {
		a.Income.EmploymentDetails = []EmploymentDetail{}
	}
	if a.Income.AdditionalIncome == nil {
		a.Income.AdditionalIncome = []AdditionalIncome{}
	}
	if a.CreditCommitments == nil {
		a.CreditCommitments = []CreditCommitment{}
	}
	if a.PropertyPortfolio.Properties == nil {
		a.PropertyPortfolio.Properties = []Property{}
	}
}
