// internal/generator/entity.go
package generator

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Entity names double as file prefixes and metric labels.
const (
	EntityMerchants     = "merchants"
	EntityApplications  = "applications"
	EntityDisbursements = "disbursements"
	EntityPayments      = "payments"
)

// Application statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var (
	MerchantHeaders     = []string{"merchant_id", "business_name", "industry_code", "state_code", "annual_revenue", "employees_count", "risk_score", "onboarding_date"}
	ApplicationHeaders  = []string{"application_id", "merchant_id", "application_date", "requested_amount", "loan_purpose", "application_status", "credit_score", "processing_time"}
	DisbursementHeaders = []string{"disbursement_id", "application_id", "merchant_id", "disbursed_amount", "disbursement_date", "interest_rate", "term_months", "repayment_schedule"}
	PaymentHeaders      = []string{"payment_id", "disbursement_id", "merchant_id", "payment_date", "payment_amount", "payment_method", "is_scheduled", "days_from_due", "processing_timestamp"}
)

var (
	stateCodes    = []string{"CA", "TX", "FL", "NY", "IL", "WA", "MA", "GA", "CO", "AZ"}
	industryCodes = []string{"42310", "44512", "54161", "62120", "72251", "33411", "81111", "53111"}
	loanPurposes  = []string{"INVENTORY", "WORKING_CAPITAL", "EXPANSION", "EQUIPMENT", "PAYROLL"}
	schedules     = []string{"DAILY", "WEEKLY", "MONTHLY"}
	payMethods    = []string{"ACH", "CARD", "CHECK", "WIRE"}
	termMonths    = []int{6, 9, 12, 18}
)

// statusWeights drives application status sampling.
var statusWeights = []Weighted[string]{
	{Value: StatusPending, Weight: 0.25},
	{Value: StatusApproved, Weight: 0.55},
	{Value: StatusRejected, Weight: 0.20},
}

// daysFromDueWeights is the on-time/early/late mixture for payments; the
// separate 3% branch in the payment stage covers the [30,60] default proxy.
var daysFromDueWeights = []Weighted[int]{
	{Value: 0, Weight: 3},
	{Value: -2, Weight: 1},
	{Value: -1, Weight: 1},
	{Value: 1, Weight: 1},
	{Value: 3, Weight: 1},
	{Value: 7, Weight: 1},
	{Value: 12, Weight: 1},
}

// Merchant is one master record. Identity is stable; risk_score and
// annual_revenue drift over days (SCD2-style), so the same id shows up with
// different attribute snapshots across daily files.
type Merchant struct {
	ID             string
	BusinessName   string
	IndustryCode   string
	StateCode      string
	AnnualRevenue  decimal.Decimal
	EmployeesCount int
	RiskScore      float64
	OnboardingDate time.Time
}

func (m Merchant) Record() []string {
	return []string{
		m.ID,
		m.BusinessName,
		m.IndustryCode,
		m.StateCode,
		m.AnnualRevenue.StringFixed(2),
		strconv.Itoa(m.EmployeesCount),
		strconv.FormatFloat(m.RiskScore, 'f', 2, 64),
		m.OnboardingDate.Format(dateLayout),
	}
}

// Application is created once and may resurface on a later day with status
// transitioned PENDING→APPROVED and a refreshed processing time. Downstream
// consumers dedupe by id keeping the latest processing_time.
type Application struct {
	ID              string
	MerchantID      string
	ApplicationDate time.Time
	RequestedAmount decimal.Decimal
	LoanPurpose     string
	Status          string
	CreditScore     int
	ProcessingTime  time.Time
}

func (a Application) Record() []string {
	return []string{
		a.ID,
		a.MerchantID,
		a.ApplicationDate.Format(dateLayout),
		a.RequestedAmount.StringFixed(2),
		a.LoanPurpose,
		a.Status,
		strconv.Itoa(a.CreditScore),
		a.ProcessingTime.Format(timestampLayout),
	}
}

// Disbursement is derived from an APPROVED application emitted the same day
// and is never mutated afterwards.
type Disbursement struct {
	ID                string
	ApplicationID     string
	MerchantID        string
	DisbursedAmount   decimal.Decimal
	DisbursementDate  time.Time
	InterestRate      float64
	TermMonths        int
	RepaymentSchedule string
}

func (d Disbursement) Record() []string {
	return []string{
		d.ID,
		d.ApplicationID,
		d.MerchantID,
		d.DisbursedAmount.StringFixed(2),
		d.DisbursementDate.Format(dateLayout),
		strconv.FormatFloat(d.InterestRate, 'f', 4, 64),
		strconv.Itoa(d.TermMonths),
		d.RepaymentSchedule,
	}
}

// Payment lifecycle mirrors Application: it may resurface later with an
// adjusted amount and refreshed processing timestamp.
type Payment struct {
	ID                  string
	DisbursementID      string
	MerchantID          string
	PaymentDate         time.Time
	PaymentAmount       decimal.Decimal
	PaymentMethod       string
	IsScheduled         bool
	DaysFromDue         int
	ProcessingTimestamp time.Time
}

func (p Payment) Record() []string {
	scheduled := "FALSE"
	if p.IsScheduled {
		scheduled = "TRUE"
	}
	return []string{
		p.ID,
		p.DisbursementID,
		p.MerchantID,
		p.PaymentDate.Format(dateLayout),
		p.PaymentAmount.StringFixed(2),
		p.PaymentMethod,
		scheduled,
		strconv.Itoa(p.DaysFromDue),
		p.ProcessingTimestamp.Format(timestampLayout),
	}
}
