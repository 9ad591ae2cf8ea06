package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ascent-matrix/summit-registration/payment"
	"github.com/ascent-matrix/summit-registration/registration"
)

const (
	RAZORPAY_SIGNATURE_HEADER = "X-Razorpay-Signature"
	maxWebhookBodyBytes       = 65536
)

// razorpayWebhookMiddleware serves the webhook ahead of request validation, which would consume the raw body.
func (a *API) razorpayWebhookMiddleware(path string) middlewareFunc {
	server := http.NewServeMux()

	server.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logger := a.getLoggerOrBaseLogger(ctx)

		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read razorpay webhook body", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		result, err := a.verifier.VerifyWebhook(ctx, payload, r.Header.Get(RAZORPAY_SIGNATURE_HEADER))
		if err != nil {
			var paymentErr *payment.Error
			if errors.As(err, &paymentErr) {
				switch paymentErr.Reason {
				case payment.REASON_INVALID_WEBHOOK_SIGNATURE, payment.REASON_INVALID_WEBHOOK_PAYLOAD:
					logger.Warn("Rejected razorpay webhook", slog.String("error", err.Error()))
					w.WriteHeader(http.StatusBadRequest)
					return
				case payment.REASON_MISSING_REGISTRATION_ID:
					// Payments made outside the registration flow carry no registration id.
					logger.Warn("Razorpay webhook without registration id", slog.String("error", err.Error()))
					w.WriteHeader(http.StatusOK)
					return
				case payment.REASON_FAILED_TO_UPDATE_REGISTRATION:
					var registrationErr *registration.Error
					if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_ALREADY_PAID {
						// A retry can never apply a second payment to a paid registration.
						logger.Warn("Razorpay webhook for registration paid by another payment", slog.String("error", err.Error()))
						w.WriteHeader(http.StatusOK)
						return
					}
				}
			}

			logger.Error("Failed to confirm registration payment from webhook", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if !result.Handled {
			logger.Info("Ignoring razorpay webhook event", slog.String("event", result.Event))
			w.WriteHeader(http.StatusOK)
			return
		}

		if result.Outcome == payment.OUTCOME_VERIFIED {
			a.sendConfirmationEmail(ctx, result.RegistrationID)
		}

		w.WriteHeader(http.StatusOK)
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler, matchedPath := server.Handler(r)

			if matchedPath == "" {
				next.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
