package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime/types"
)

type ErrorCode string

const (
	InputValidationError ErrorCode = "InputValidationError"
	InternalError        ErrorCode = "InternalError"
	EmptyBody            ErrorCode = "EmptyBody"
	InvalidBody          ErrorCode = "InvalidBody"
	InvalidId            ErrorCode = "InvalidId"
	NotFound             ErrorCode = "NotFound"
	AlreadyPaid          ErrorCode = "AlreadyPaid"
	InvalidAmount        ErrorCode = "InvalidAmount"
	AmountMismatch       ErrorCode = "AmountMismatch"
	GatewayError         ErrorCode = "GatewayError"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type RegistrationValidationError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Step    int       `json:"step,omitempty"`
	Fields  []string  `json:"fields"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type RegistrationInput struct {
	Id            *string  `json:"id,omitempty"`
	FullName      string   `json:"fullName"`
	Gender        string   `json:"gender"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	TicketCount   int      `json:"ticketCount"`
	StallType     string   `json:"stallType"`
	Organization  string   `json:"organization"`
	Designation   string   `json:"designation"`
	OrgType       string   `json:"orgType"`
	OrgTypeOther  string   `json:"orgTypeOther"`
	Domains       []string `json:"domains"`
	DomainsOther  string   `json:"domainsOther"`
	EcosystemRole string   `json:"ecosystemRole"`
	Purposes      []string `json:"purposes"`
	QucInterest   string   `json:"qucInterest"`
}

type RegistrationCreated struct {
	Id          string `json:"id"`
	TotalAmount int64  `json:"totalAmount"`
}

type Registration struct {
	Id               string      `json:"id"`
	FullName         string      `json:"fullName"`
	Gender           string      `json:"gender"`
	Phone            string      `json:"phone"`
	Email            types.Email `json:"email"`
	City             string      `json:"city"`
	State            string      `json:"state"`
	Organization     string      `json:"organization"`
	Designation      string      `json:"designation"`
	OrgType          string      `json:"orgType"`
	OrgTypeOther     string      `json:"orgTypeOther,omitempty"`
	Domains          []string    `json:"domains"`
	DomainsOther     string      `json:"domainsOther,omitempty"`
	EcosystemRole    string      `json:"ecosystemRole"`
	Purposes         []string    `json:"purposes"`
	QucInterest      string      `json:"qucInterest"`
	StallType        string      `json:"stallType"`
	StallPrice       int64       `json:"stallPrice"`
	TicketCount      int         `json:"ticketCount"`
	TotalAmount      int64       `json:"totalAmount"`
	PaymentStatus    string      `json:"paymentStatus"`
	PaymentId        *string     `json:"paymentId,omitempty"`
	OrderId          *string     `json:"orderId,omitempty"`
	PaidAt           *time.Time  `json:"paidAt,omitempty"`
	RegistrationDate time.Time   `json:"registrationDate"`
	CheckedIn        bool        `json:"checkedIn"`
	TicketType       string      `json:"ticketType"`
}

type SponsorshipInput struct {
	Id           string            `json:"id"`
	ContactName  string            `json:"contactName"`
	Organization string            `json:"organization"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Tier         string            `json:"tier"`
	Message      string            `json:"message"`
	Details      map[string]string `json:"details,omitempty"`
}

type SponsorshipCreated struct {
	Id string `json:"id"`
}

type OrderInput struct {
	Amount         *float64 `json:"amount"`
	RegistrationId *string  `json:"registrationId,omitempty"`
}

type Order struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyId    string `json:"key_id"`
}

type OrderError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Error   string    `json:"error"`
}

type VerifyInput struct {
	RazorpayOrderId   string `json:"razorpay_order_id"`
	RazorpayPaymentId string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	RegistrationId    string `json:"registrationId"`
}

type VerifyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type VerifyError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PostApiRegistrationsRequestObject struct {
	Body *RegistrationInput
}

type GetApiRegistrationsIdRequestObject struct {
	Id string
}

type PostApiSponsorshipsRequestObject struct {
	Body *SponsorshipInput
}

type PostApiOrderRequestObject struct {
	Body *OrderInput
}

type PostApiVerifyRequestObject struct {
	Body *VerifyInput
}

// responseObject is implemented by every typed response an operation can return.
type responseObject interface {
	visit(w http.ResponseWriter) error
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(body)
}

type internalError500JSONResponse Error

func (r internalError500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}

type GetHealth200JSONResponse Health

func (r GetHealth200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type PostApiRegistrations200JSONResponse RegistrationCreated

func (r PostApiRegistrations200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type PostApiRegistrations400JSONResponse RegistrationValidationError

func (r PostApiRegistrations400JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusBadRequest, r)
}

type PostApiRegistrations409JSONResponse Error

func (r PostApiRegistrations409JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusConflict, r)
}

type PostApiRegistrations500JSONResponse Error

func (r PostApiRegistrations500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}

type GetApiRegistrationsId200JSONResponse Registration

func (r GetApiRegistrationsId200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type GetApiRegistrationsId400JSONResponse Error

func (r GetApiRegistrationsId400JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusBadRequest, r)
}

type GetApiRegistrationsId404JSONResponse Error

func (r GetApiRegistrationsId404JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, r)
}

type GetApiRegistrationsId500JSONResponse Error

func (r GetApiRegistrationsId500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}

type PostApiSponsorships200JSONResponse SponsorshipCreated

func (r PostApiSponsorships200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type PostApiSponsorships400JSONResponse Error

func (r PostApiSponsorships400JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusBadRequest, r)
}

type PostApiSponsorships500JSONResponse Error

func (r PostApiSponsorships500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}

type PostApiOrder200JSONResponse Order

func (r PostApiOrder200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type PostApiOrder400JSONResponse OrderError

func (r PostApiOrder400JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusBadRequest, r)
}

type PostApiOrder404JSONResponse OrderError

func (r PostApiOrder404JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, r)
}

type PostApiOrder409JSONResponse OrderError

func (r PostApiOrder409JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusConflict, r)
}

type PostApiOrder500JSONResponse OrderError

func (r PostApiOrder500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}

type PostApiVerify200JSONResponse VerifyResult

func (r PostApiVerify200JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, r)
}

type PostApiVerify400JSONResponse VerifyResult

func (r PostApiVerify400JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusBadRequest, r)
}

type PostApiVerify409JSONResponse VerifyResult

func (r PostApiVerify409JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusConflict, r)
}

type PostApiVerify500JSONResponse VerifyError

func (r PostApiVerify500JSONResponse) visit(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusInternalServerError, r)
}
