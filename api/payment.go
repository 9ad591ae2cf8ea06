package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ascent-matrix/summit-registration/payment"
	"github.com/ascent-matrix/summit-registration/registration"
)

const (
	VERIFY_SUCCESS = "success"
	VERIFY_FAILURE = "failure"
)

func (a *API) PostApiOrder(ctx context.Context, request PostApiOrderRequestObject) (responseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		logger.Warn("Nil body for order")

		return PostApiOrder400JSONResponse{
			Code:    EmptyBody,
			Message: "Must specify a body",
			Error:   "Amount is required and must be a number",
		}, nil
	}

	req := payment.OrderRequest{Amount: request.Body.Amount}
	if request.Body.RegistrationId != nil {
		req.RegistrationID = *request.Body.RegistrationId
	}

	order, err := a.orders.CreateOrder(ctx, req)
	if err != nil {
		return orderErrorResponse(logger, err), nil
	}

	return PostApiOrder200JSONResponse{
		Id:       order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyId:    order.KeyID,
	}, nil
}

func orderErrorResponse(logger *slog.Logger, err error) responseObject {
	var paymentErr *payment.Error
	if !errors.As(err, &paymentErr) {
		logger.Error("Order creation failed", "error", err)

		return PostApiOrder500JSONResponse{Code: InternalError, Message: "Order creation failed", Error: "Internal error"}
	}

	switch paymentErr.Reason {
	case payment.REASON_INVALID_AMOUNT:
		logger.Warn("Invalid order amount", "error", err)

		return PostApiOrder400JSONResponse{Code: InvalidAmount, Message: "Invalid amount", Error: paymentErr.Message}
	case payment.REASON_AMOUNT_MISMATCH:
		logger.Warn("Order amount does not match registration", "error", err)

		return PostApiOrder400JSONResponse{Code: AmountMismatch, Message: "Amount does not match registration total", Error: paymentErr.Message}
	case payment.REASON_REGISTRATION_ALREADY_PAID:
		logger.Warn("Order for paid registration", "error", err)

		return PostApiOrder409JSONResponse{Code: AlreadyPaid, Message: "Registration is already paid", Error: paymentErr.Message}
	case payment.REASON_REGISTRATION_LOOKUP_FAILED:
		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_REGISTRATION_DOES_NOT_EXIST {
			logger.Warn("Order for unknown registration", "error", err)

			return PostApiOrder404JSONResponse{Code: NotFound, Message: "Registration not found", Error: paymentErr.Message}
		}
	case payment.REASON_GATEWAY_FAILURE:
		logger.Error("Payment gateway rejected order", "error", err)

		return PostApiOrder500JSONResponse{Code: GatewayError, Message: "Order creation failed", Error: paymentErr.Message}
	}

	logger.Error("Order creation failed", "error", err)

	return PostApiOrder500JSONResponse{Code: InternalError, Message: "Order creation failed", Error: paymentErr.Message}
}

func (a *API) PostApiVerify(ctx context.Context, request PostApiVerifyRequestObject) (responseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		logger.Warn("Nil body for verify")

		return PostApiVerify400JSONResponse{
			Status:  VERIFY_FAILURE,
			Message: "Must specify a body",
		}, nil
	}

	outcome, err := a.verifier.Verify(ctx, payment.VerifyRequest{
		OrderID:        request.Body.RazorpayOrderId,
		PaymentID:      request.Body.RazorpayPaymentId,
		Signature:      request.Body.RazorpaySignature,
		RegistrationID: request.Body.RegistrationId,
	})
	if err != nil {
		return verifyErrorResponse(logger, err), nil
	}

	switch outcome {
	case payment.OUTCOME_SIGNATURE_MISMATCH:
		logger.Warn("Payment signature mismatch",
			slog.String("orderId", request.Body.RazorpayOrderId),
			slog.String("registrationId", request.Body.RegistrationId),
		)

		return PostApiVerify400JSONResponse{
			Status:  VERIFY_FAILURE,
			Message: "Invalid signature",
		}, nil
	case payment.OUTCOME_VERIFIED:
		a.sendConfirmationEmail(ctx, request.Body.RegistrationId)
	}

	return PostApiVerify200JSONResponse{Status: VERIFY_SUCCESS}, nil
}

func verifyErrorResponse(logger *slog.Logger, err error) responseObject {
	var paymentErr *payment.Error
	if errors.As(err, &paymentErr) {
		switch paymentErr.Reason {
		case payment.REASON_MISSING_REGISTRATION_ID:
			logger.Warn("Verify without registration id")

			return PostApiVerify400JSONResponse{Status: VERIFY_FAILURE, Message: paymentErr.Message}
		case payment.REASON_FAILED_TO_UPDATE_REGISTRATION:
			var registrationErr *registration.Error
			if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_ALREADY_PAID {
				logger.Warn("Verify for registration paid by another payment", "error", err)

				return PostApiVerify409JSONResponse{Status: VERIFY_FAILURE, Message: "Registration is already paid"}
			}
		}

		logger.Error("Verification failed", "error", err)

		return PostApiVerify500JSONResponse{Error: "Verification failed", Message: paymentErr.Message}
	}

	logger.Error("Verification failed", "error", err)

	return PostApiVerify500JSONResponse{Error: "Verification failed", Message: "Internal error"}
}

// sendConfirmationEmail is best effort. The payment is already recorded when it runs.
func (a *API) sendConfirmationEmail(ctx context.Context, registrationID string) {
	logger := a.getLoggerOrBaseLogger(ctx)

	reg, err := a.db.GetRegistration(ctx, registrationID)
	if err != nil {
		logger.Error("Failed to get registration to send email with", slog.String("error", err.Error()), slog.String("registrationId", registrationID))
		return
	}

	err = registration.SendPaymentConfirmationEmail(ctx, a.emailSender, a.settings.EmailFrom, reg)
	if err != nil {
		logger.Error("Failed to send payment confirmation email", slog.String("error", err.Error()), slog.String("email", reg.Email))
	}
}
