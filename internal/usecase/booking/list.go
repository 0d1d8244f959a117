package booking

import (
	"context"

	domain "github.com/bookify/bookify-api/internal/domain/booking"
	"github.com/bookify/bookify-api/internal/models"
)

type ListBookingsInput struct {
	ActorID   uint
	ActorRole string
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns the actor's own bookings; admins see everyone's.
func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]models.Booking, error) {

	if in.ActorRole == domain.RoleAdmin {
		return uc.repo.ListAllBookings(ctx)
	}
	return uc.repo.ListBookingsForUser(ctx, in.ActorID)
}
