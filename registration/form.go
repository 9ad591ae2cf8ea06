package registration

import (
	"context"
	"regexp"
	"slices"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
)

const (
	FIRST_STEP  = 1
	REVIEW_STEP = 6
)

type Field string

const (
	FIELD_FULL_NAME      Field = "fullName"
	FIELD_GENDER         Field = "gender"
	FIELD_PHONE          Field = "phone"
	FIELD_EMAIL          Field = "email"
	FIELD_CITY           Field = "city"
	FIELD_STATE          Field = "state"
	FIELD_ATTENDEE_COUNT Field = "ticketCount"
	FIELD_STALL_TYPE     Field = "stallType"
	FIELD_ORGANIZATION   Field = "organization"
	FIELD_DESIGNATION    Field = "designation"
	FIELD_ORG_TYPE       Field = "orgType"
	FIELD_ORG_TYPE_OTHER Field = "orgTypeOther"
	FIELD_DOMAINS        Field = "domains"
	FIELD_DOMAINS_OTHER  Field = "domainsOther"
	FIELD_ECOSYSTEM_ROLE Field = "ecosystemRole"
	FIELD_PURPOSES       Field = "purposes"
	FIELD_QUC_INTEREST   Field = "qucInterest"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Draft is the in-progress form data, before it becomes a Registration.
type Draft struct {
	FullName string
	Gender   string
	Phone    string
	Email    string
	City     string
	State    string

	AttendeeCount int
	StallType     pricing.StallType

	Organization string
	Designation  string
	OrgType      string
	OrgTypeOther string

	Domains      []string
	DomainsOther string

	EcosystemRole string

	Purposes    []string
	QUCInterest Interest
}

// ValidateStep checks the fields owned by a step. It returns nil when the step is valid.
func ValidateStep(step int, d Draft) *ValidationError {
	var invalid []Field

	switch step {
	case 1:
		if d.FullName == "" {
			invalid = append(invalid, FIELD_FULL_NAME)
		}
		if d.Gender == "" {
			invalid = append(invalid, FIELD_GENDER)
		}
		if !phonePattern.MatchString(d.Phone) {
			invalid = append(invalid, FIELD_PHONE)
		}
		if !emailPattern.MatchString(d.Email) {
			invalid = append(invalid, FIELD_EMAIL)
		}
		if d.City == "" {
			invalid = append(invalid, FIELD_CITY)
		}
		if d.State == "" {
			invalid = append(invalid, FIELD_STATE)
		}
		if d.AttendeeCount < pricing.INCLUDED_ATTENDEES {
			invalid = append(invalid, FIELD_ATTENDEE_COUNT)
		}
		if _, ok := pricing.ParseStallType(string(d.StallType)); !ok {
			invalid = append(invalid, FIELD_STALL_TYPE)
		}
	case 2:
		if d.Organization == "" {
			invalid = append(invalid, FIELD_ORGANIZATION)
		}
		if d.Designation == "" {
			invalid = append(invalid, FIELD_DESIGNATION)
		}
		if d.OrgType == "" {
			invalid = append(invalid, FIELD_ORG_TYPE)
		}
		if d.OrgType == OTHER && d.OrgTypeOther == "" {
			invalid = append(invalid, FIELD_ORG_TYPE_OTHER)
		}
	case 3:
		if len(d.Domains) == 0 || len(d.Domains) > MAX_DOMAINS || hasDuplicates(d.Domains) {
			invalid = append(invalid, FIELD_DOMAINS)
		}
		if slices.Contains(d.Domains, OTHER) && d.DomainsOther == "" {
			invalid = append(invalid, FIELD_DOMAINS_OTHER)
		}
	case 4:
		if !isEcosystemRole(d.EcosystemRole) {
			invalid = append(invalid, FIELD_ECOSYSTEM_ROLE)
		}
	case 5:
		if len(d.Purposes) == 0 {
			invalid = append(invalid, FIELD_PURPOSES)
		}
		if !isInterest(d.QUCInterest) {
			invalid = append(invalid, FIELD_QUC_INTEREST)
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	return &ValidationError{Step: step, Fields: invalid}
}

// ValidateAll runs every data-entry step and merges the failures.
func ValidateAll(d Draft) *ValidationError {
	var all *ValidationError

	for step := FIRST_STEP; step < REVIEW_STEP; step++ {
		verr := ValidateStep(step, d)
		if verr == nil {
			continue
		}

		if all == nil {
			all = verr
			continue
		}
		all.Fields = append(all.Fields, verr.Fields...)
	}

	return all
}

// Form is the six step registration wizard.
type Form struct {
	id     string
	step   int
	draft  Draft
	errors []Field
	now    func() time.Time
}

func NewForm() *Form {
	return &Form{
		id:   NewID(),
		step: FIRST_STEP,
		draft: Draft{
			AttendeeCount: pricing.INCLUDED_ATTENDEES,
			StallType:     pricing.STALL_NONE,
		},
		now: time.Now,
	}
}

func (f *Form) ID() string {
	return f.id
}

func (f *Form) Step() int {
	return f.step
}

// Errors returns the fields that failed the last Advance.
func (f *Form) Errors() []Field {
	return slices.Clone(f.errors)
}

func (f *Form) HasError(field Field) bool {
	return slices.Contains(f.errors, field)
}

func (f *Form) Draft() Draft {
	d := f.draft
	d.Domains = slices.Clone(f.draft.Domains)
	d.Purposes = slices.Clone(f.draft.Purposes)
	return d
}

// Edit applies free-text changes to the draft.
func (f *Form) Edit(edit func(d *Draft)) {
	edit(&f.draft)
}

func (f *Form) Total() int64 {
	return pricing.Total(f.draft.AttendeeCount, f.draft.StallType)
}

// Advance validates the current step and moves forward when it passes.
func (f *Form) Advance() bool {
	if f.step >= REVIEW_STEP {
		return false
	}

	verr := ValidateStep(f.step, f.draft)
	if verr != nil {
		f.errors = verr.Fields
		return false
	}

	f.step++
	f.errors = nil
	return true
}

func (f *Form) Retreat() {
	if f.step > FIRST_STEP {
		f.step--
	}
}

// ToggleDomain adds or removes a domain. Adding beyond MAX_DOMAINS is ignored.
func (f *Form) ToggleDomain(domain string) {
	if i := slices.Index(f.draft.Domains, domain); i >= 0 {
		f.draft.Domains = slices.Delete(f.draft.Domains, i, i+1)
		return
	}

	if len(f.draft.Domains) < MAX_DOMAINS {
		f.draft.Domains = append(f.draft.Domains, domain)
	}
}

func (f *Form) TogglePurpose(purpose string) {
	if i := slices.Index(f.draft.Purposes, purpose); i >= 0 {
		f.draft.Purposes = slices.Delete(f.draft.Purposes, i, i+1)
		return
	}

	f.draft.Purposes = append(f.draft.Purposes, purpose)
}

func (f *Form) SetEcosystemRole(role string) {
	f.draft.EcosystemRole = role
}

func (f *Form) SetQUCInterest(interest Interest) {
	f.draft.QUCInterest = interest
}

func (f *Form) SetAttendeeCount(count int) {
	f.draft.AttendeeCount = max(pricing.INCLUDED_ATTENDEES, count)
}

func (f *Form) SetStall(stall pricing.StallType) bool {
	if _, ok := pricing.ParseStallType(string(stall)); !ok {
		return false
	}

	f.draft.StallType = stall
	return true
}

// Submit persists the draft as a PENDING registration and returns the id to pay for.
// A failed save leaves the form on the review step so it can be retried.
func (f *Form) Submit(ctx context.Context, repo Repository) (string, error) {
	if f.step != REVIEW_STEP {
		return "", NewNotOnReviewStepError(f.step)
	}

	reg, err := SavePending(ctx, repo, f.id, f.draft, f.now())
	if err != nil {
		return "", err
	}

	return reg.ID, nil
}

func hasDuplicates(values []string) bool {
	return len(slices.Compact(slices.Sorted(slices.Values(values)))) != len(values)
}
