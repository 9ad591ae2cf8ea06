package sponsorship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	SaveSponsorshipFunc func(ctx context.Context, inquiry Inquiry) error
	GetSponsorshipFunc  func(ctx context.Context, id string) (Inquiry, error)
}

func (m *mockRepository) SaveSponsorship(ctx context.Context, inquiry Inquiry) error {
	return m.SaveSponsorshipFunc(ctx, inquiry)
}

func (m *mockRepository) GetSponsorship(ctx context.Context, id string) (Inquiry, error) {
	return m.GetSponsorshipFunc(ctx, id)
}

func TestSubmit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stamps and saves the inquiry", func(t *testing.T) {
		var saved Inquiry
		repo := &mockRepository{
			SaveSponsorshipFunc: func(ctx context.Context, inquiry Inquiry) error {
				saved = inquiry
				return nil
			},
		}

		out, err := Submit(context.Background(), repo, Inquiry{ID: "SP-1", Organization: "Acme"}, now)
		require.NoError(t, err)
		assert.Equal(t, now, out.SubmittedAt)
		assert.Equal(t, out, saved)
	})

	t.Run("requires an id", func(t *testing.T) {
		_, err := Submit(context.Background(), &mockRepository{}, Inquiry{}, now)

		var sErr *Error
		require.ErrorAs(t, err, &sErr)
		assert.Equal(t, REASON_MISSING_ID, sErr.Reason)
	})

	t.Run("returns store errors", func(t *testing.T) {
		repo := &mockRepository{
			SaveSponsorshipFunc: func(ctx context.Context, inquiry Inquiry) error {
				return NewError(REASON_FAILED_TO_WRITE, "failed", errors.New("down"))
			},
		}

		_, err := Submit(context.Background(), repo, Inquiry{ID: "SP-1"}, now)

		var sErr *Error
		require.ErrorAs(t, err, &sErr)
		assert.Equal(t, REASON_FAILED_TO_WRITE, sErr.Reason)
	})
}
