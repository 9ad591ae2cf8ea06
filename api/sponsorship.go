package api

import (
	"context"
	"errors"

	"github.com/ascent-matrix/summit-registration/sponsorship"
)

func (a *API) PostApiSponsorships(ctx context.Context, request PostApiSponsorshipsRequestObject) (responseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		logger.Warn("Nil body for sponsorship")

		return PostApiSponsorships400JSONResponse{
			Code:    EmptyBody,
			Message: "Must specify a body",
		}, nil
	}

	inquiry, err := sponsorship.Submit(ctx, a.db, apiSponsorshipToInquiry(*request.Body), a.now())
	if err != nil {
		var sponsorshipErr *sponsorship.Error
		if errors.As(err, &sponsorshipErr) && sponsorshipErr.Reason == sponsorship.REASON_MISSING_ID {
			logger.Warn("Sponsorship without id")

			return PostApiSponsorships400JSONResponse{
				Code:    InvalidId,
				Message: "Sponsorship inquiry must have an id",
			}, nil
		}

		logger.Error("Failed to save sponsorship", "error", err)

		return PostApiSponsorships500JSONResponse{
			Code:    InternalError,
			Message: "Failed to save sponsorship inquiry",
		}, nil
	}

	return PostApiSponsorships200JSONResponse{Id: inquiry.ID}, nil
}

func apiSponsorshipToInquiry(apiInq SponsorshipInput) sponsorship.Inquiry {
	return sponsorship.Inquiry{
		ID:           apiInq.Id,
		ContactName:  apiInq.ContactName,
		Organization: apiInq.Organization,
		Email:        apiInq.Email,
		Phone:        apiInq.Phone,
		Tier:         apiInq.Tier,
		Message:      apiInq.Message,
		Details:      apiInq.Details,
	}
}
