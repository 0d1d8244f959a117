package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/bookify/bookify-api/internal/models"
)

type MercadoPago struct {
	preferences preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
	}, nil
}

func (p *MercadoPago) CreateCheckout(
	ctx context.Context,
	b *models.Booking,
	svc *models.Service,
) (*Checkout, error) {

	req := preference.Request{
		ExternalReference: b.Reference,
		Items: []preference.ItemRequest{
			{
				Title:       svc.Name,
				Description: fmt.Sprintf("%s on %s", svc.Name, b.StartTime.Format("2006-01-02 15:04")),
				Quantity:    1,
				CurrencyID:  svc.Currency,
				UnitPrice:   float64(svc.PriceCents) / 100,
			},
		},
	}

	resp, err := p.preferences.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		PreferenceID: resp.ID,
		URL:          resp.InitPoint,
	}, nil
}

// Compile-time check
var _ Provider = (*MercadoPago)(nil)
