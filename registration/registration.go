package registration

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
)

const (
	ID_PREFIX   = "AM26"
	TICKET_TYPE = "Summit Pass"
)

var idPattern = regexp.MustCompile(`^` + ID_PREFIX + `-\d{6}$`)

type Repository interface {
	SaveRegistration(ctx context.Context, reg Registration) error
	GetRegistration(ctx context.Context, id string) (Registration, error)
	UpdateRegistrationPayment(ctx context.Context, id string, update PaymentUpdate) error
}

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "PENDING"
	PAYMENT_PAID    PaymentStatus = "PAID"
)

type Interest string

const (
	INTEREST_YES   Interest = "Yes"
	INTEREST_NO    Interest = "No"
	INTEREST_MAYBE Interest = "Maybe"
)

type Registration struct {
	ID string

	FullName string
	Gender   string
	Phone    string
	Email    string
	City     string
	State    string

	Organization string
	Designation  string
	OrgType      string
	OrgTypeOther string

	Domains       []string
	DomainsOther  string
	EcosystemRole string
	Purposes      []string
	QUCInterest   Interest

	StallType     pricing.StallType
	StallPrice    int64
	AttendeeCount int
	TotalAmount   int64

	PaymentStatus PaymentStatus
	PaymentID     *string
	OrderID       *string
	PaidAt        *time.Time

	RegistrationDate time.Time
	CheckedIn        bool
	TicketType       string
}

// PaymentUpdate is the set of fields a payment confirmation writes onto an existing registration.
type PaymentUpdate struct {
	PaymentStatus PaymentStatus
	PaymentID     string
	OrderID       string
	PaidAt        time.Time
}

func NewID() string {
	return fmt.Sprintf("%s-%06d", ID_PREFIX, rand.IntN(1_000_000))
}

func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewPendingRegistration builds the record written before payment from a completed draft.
func NewPendingRegistration(id string, draft Draft, now time.Time) Registration {
	return Registration{
		ID:               id,
		FullName:         draft.FullName,
		Gender:           draft.Gender,
		Phone:            draft.Phone,
		Email:            draft.Email,
		City:             draft.City,
		State:            draft.State,
		Organization:     draft.Organization,
		Designation:      draft.Designation,
		OrgType:          draft.OrgType,
		OrgTypeOther:     draft.OrgTypeOther,
		Domains:          append([]string{}, draft.Domains...),
		DomainsOther:     draft.DomainsOther,
		EcosystemRole:    draft.EcosystemRole,
		Purposes:         append([]string{}, draft.Purposes...),
		QUCInterest:      draft.QUCInterest,
		StallType:        draft.StallType,
		StallPrice:       pricing.StallPrice(draft.StallType),
		AttendeeCount:    draft.AttendeeCount,
		TotalAmount:      pricing.Total(draft.AttendeeCount, draft.StallType),
		PaymentStatus:    PAYMENT_PENDING,
		RegistrationDate: now,
		CheckedIn:        false,
		TicketType:       TICKET_TYPE,
	}
}

// SavePending validates a complete draft and persists it as a PENDING registration.
func SavePending(ctx context.Context, repo Repository, id string, draft Draft, now time.Time) (Registration, error) {
	if verr := ValidateAll(draft); verr != nil {
		return Registration{}, NewInvalidRegistrationError(verr)
	}

	reg := NewPendingRegistration(id, draft, now)

	err := repo.SaveRegistration(ctx, reg)
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}

// ExpectedTotal is the authoritative payable amount for a stored registration.
func (r Registration) ExpectedTotal() int64 {
	return pricing.Total(r.AttendeeCount, r.StallType)
}

func (r Registration) IsPaid() bool {
	return r.PaymentStatus == PAYMENT_PAID
}
