package api

import (
	"context"
	"errors"

	"github.com/ascent-matrix/summit-registration/pricing"
	"github.com/ascent-matrix/summit-registration/registration"
	"github.com/oapi-codegen/runtime/types"
)

func (a *API) PostApiRegistrations(ctx context.Context, request PostApiRegistrationsRequestObject) (responseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		logger.Warn("Nil body for registration")

		return PostApiRegistrations400JSONResponse{
			Code:    EmptyBody,
			Message: "Must specify a body",
			Fields:  []string{},
		}, nil
	}

	id := registration.NewID()
	if request.Body.Id != nil && *request.Body.Id != "" {
		if !registration.IsValidID(*request.Body.Id) {
			logger.Warn("Invalid registration id", "id", *request.Body.Id)

			return PostApiRegistrations400JSONResponse{
				Code:    InvalidId,
				Message: "Registration id must look like " + registration.ID_PREFIX + "-000000",
				Fields:  []string{"id"},
			}, nil
		}
		id = *request.Body.Id
	}

	reg, err := registration.SavePending(ctx, a.db, id, apiRegistrationToDraft(*request.Body), a.now())
	if err != nil {
		var validationErr *registration.ValidationError
		if errors.As(err, &validationErr) {
			logger.Warn("Registration failed validation", "error", err)

			return PostApiRegistrations400JSONResponse{
				Code:    InputValidationError,
				Message: "Registration failed validation",
				Step:    validationErr.Step,
				Fields:  fieldsToStrings(validationErr.Fields),
			}, nil
		}

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_ALREADY_PAID {
			logger.Warn("Registration is already paid", "error", err, "id", id)

			return PostApiRegistrations409JSONResponse{
				Code:    AlreadyPaid,
				Message: "Registration is already paid",
			}, nil
		}

		logger.Error("Failed to save registration", "error", err, "id", id)

		return PostApiRegistrations500JSONResponse{
			Code:    InternalError,
			Message: "Failed to save registration",
		}, nil
	}

	return PostApiRegistrations200JSONResponse{
		Id:          reg.ID,
		TotalAmount: reg.TotalAmount,
	}, nil
}

func (a *API) GetApiRegistrationsId(ctx context.Context, request GetApiRegistrationsIdRequestObject) (responseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	reg, err := a.db.GetRegistration(ctx, request.Id)
	if err != nil {
		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_REGISTRATION_DOES_NOT_EXIST {
			logger.Warn("Registration not found", "id", request.Id)

			return GetApiRegistrationsId404JSONResponse{
				Code:    NotFound,
				Message: "Registration not found",
			}, nil
		}

		logger.Error("Failed to get registration", "error", err, "id", request.Id)

		return GetApiRegistrationsId500JSONResponse{
			Code:    InternalError,
			Message: "Failed to get registration",
		}, nil
	}

	return GetApiRegistrationsId200JSONResponse(registrationToApiRegistration(reg)), nil
}

func apiRegistrationToDraft(apiReg RegistrationInput) registration.Draft {
	return registration.Draft{
		FullName:      apiReg.FullName,
		Gender:        apiReg.Gender,
		Phone:         apiReg.Phone,
		Email:         apiReg.Email,
		City:          apiReg.City,
		State:         apiReg.State,
		AttendeeCount: apiReg.TicketCount,
		StallType:     pricing.StallType(apiReg.StallType),
		Organization:  apiReg.Organization,
		Designation:   apiReg.Designation,
		OrgType:       apiReg.OrgType,
		OrgTypeOther:  apiReg.OrgTypeOther,
		Domains:       apiReg.Domains,
		DomainsOther:  apiReg.DomainsOther,
		EcosystemRole: apiReg.EcosystemRole,
		Purposes:      apiReg.Purposes,
		QUCInterest:   registration.Interest(apiReg.QucInterest),
	}
}

func registrationToApiRegistration(reg registration.Registration) Registration {
	return Registration{
		Id:               reg.ID,
		FullName:         reg.FullName,
		Gender:           reg.Gender,
		Phone:            reg.Phone,
		Email:            types.Email(reg.Email),
		City:             reg.City,
		State:            reg.State,
		Organization:     reg.Organization,
		Designation:      reg.Designation,
		OrgType:          reg.OrgType,
		OrgTypeOther:     reg.OrgTypeOther,
		Domains:          reg.Domains,
		DomainsOther:     reg.DomainsOther,
		EcosystemRole:    reg.EcosystemRole,
		Purposes:         reg.Purposes,
		QucInterest:      string(reg.QUCInterest),
		StallType:        string(reg.StallType),
		StallPrice:       reg.StallPrice,
		TicketCount:      reg.AttendeeCount,
		TotalAmount:      reg.TotalAmount,
		PaymentStatus:    string(reg.PaymentStatus),
		PaymentId:        reg.PaymentID,
		OrderId:          reg.OrderID,
		PaidAt:           reg.PaidAt,
		RegistrationDate: reg.RegistrationDate,
		CheckedIn:        reg.CheckedIn,
		TicketType:       reg.TicketType,
	}
}

func fieldsToStrings(fields []registration.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}
