package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oapi-codegen/runtime"
)

const (
	RAZORPAY_WEBHOOK_PATH = "/api/webhooks/razorpay"
)

// Handler builds the routed, validated and logged http.Handler for the API.
func (a *API) Handler(swagger *openapi3.T) http.Handler {
	r := http.NewServeMux()

	r.HandleFunc("GET /health", a.serve(func(r *http.Request) (responseObject, error) {
		return a.GetHealth(r.Context())
	}))
	r.HandleFunc("POST /api/registrations", a.serve(func(r *http.Request) (responseObject, error) {
		body, err := decodeJSONBody[RegistrationInput](r)
		if err != nil {
			return PostApiRegistrations400JSONResponse{Code: InvalidBody, Message: "Invalid body", Fields: []string{}}, nil
		}
		return a.PostApiRegistrations(r.Context(), PostApiRegistrationsRequestObject{Body: body})
	}))
	r.HandleFunc("GET /api/registrations/{id}", a.serve(func(r *http.Request) (responseObject, error) {
		var id string
		err := runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
		if err != nil {
			return GetApiRegistrationsId400JSONResponse{Code: InvalidId, Message: "Invalid format for parameter id"}, nil
		}
		return a.GetApiRegistrationsId(r.Context(), GetApiRegistrationsIdRequestObject{Id: id})
	}))
	r.HandleFunc("POST /api/sponsorships", a.serve(func(r *http.Request) (responseObject, error) {
		body, err := decodeJSONBody[SponsorshipInput](r)
		if err != nil {
			return PostApiSponsorships400JSONResponse{Code: InvalidBody, Message: "Invalid body"}, nil
		}
		return a.PostApiSponsorships(r.Context(), PostApiSponsorshipsRequestObject{Body: body})
	}))
	r.HandleFunc("POST /api/order", a.serve(func(r *http.Request) (responseObject, error) {
		body, err := decodeJSONBody[OrderInput](r)
		if err != nil {
			return PostApiOrder400JSONResponse{Code: InvalidAmount, Message: "Invalid body", Error: "Amount is required and must be a number"}, nil
		}
		return a.PostApiOrder(r.Context(), PostApiOrderRequestObject{Body: body})
	}))
	r.HandleFunc("POST /api/verify", a.serve(func(r *http.Request) (responseObject, error) {
		body, err := decodeJSONBody[VerifyInput](r)
		if err != nil {
			return PostApiVerify400JSONResponse{Status: VERIFY_FAILURE, Message: "Invalid body"}, nil
		}
		return a.PostApiVerify(r.Context(), PostApiVerifyRequestObject{Body: body})
	}))

	middlewares := []middlewareFunc{a.openapiValidateMiddleware(swagger)}
	if a.settings.WebhooksEnabled {
		middlewares = append(middlewares, a.razorpayWebhookMiddleware(RAZORPAY_WEBHOOK_PATH))
	}
	middlewares = append(middlewares,
		a.loggingMiddleware(),
		a.requestLoggerMiddleware(),
		a.requestIdMiddleware(),
		a.corsMiddleware(),
	)

	return useMiddlewares(r, middlewares...)
}

func (a *API) serve(op func(r *http.Request) (responseObject, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := a.getLoggerOrBaseLogger(r.Context())

		resp, err := op(r)
		if err != nil {
			logger.Error("Operation failed", slog.String("error", err.Error()))
			resp = internalError500JSONResponse{Code: InternalError, Message: "Internal error"}
		}

		err = resp.visit(w)
		if err != nil {
			logger.Error("Failed to write response", slog.String("error", err.Error()))
		}
	}
}

// decodeJSONBody returns a nil body when the request has none.
func decodeJSONBody[T any](r *http.Request) (*T, error) {
	var body T

	err := json.NewDecoder(r.Body).Decode(&body)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &body, nil
}

func (a *API) GetHealth(ctx context.Context) (responseObject, error) {
	return GetHealth200JSONResponse{
		Status:  "online",
		Message: "Ascent Matrix Secure API is active",
		Mode:    a.settings.PaymentMode,
	}, nil
}
