package payments

import (
	"context"

	"github.com/bookify/bookify-api/internal/models"
)

// Checkout is an external payment session for a confirmed booking. Payment
// never participates in the admission decision; it is an integration point
// invoked separately after a booking exists.
type Checkout struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
}

type Provider interface {
	CreateCheckout(ctx context.Context, b *models.Booking, svc *models.Service) (*Checkout, error)
}
