package reservations

import (
	"context"
	"time"

	"solstice/apperr"
	"solstice/inventory"
	"solstice/models"
)

// RestoreCapacity returns every unit a reservation had claimed to the
// ledger. Invoked by the reject path and the expiry sweeper, always inside
// a transaction whose status guard ensures at most one restoration per
// reservation.
func RestoreCapacity(ctx context.Context, res *models.Reservation) error {
	switch res.Kind {
	case models.KindMerch:
		for _, item := range res.Items {
			if err := inventory.IncrementStock(ctx, item.MerchID, item.Quantity); err != nil {
				return err
			}
		}
	case models.KindAccommodation:
		nights, err := stayNights(res)
		if err != nil {
			return err
		}
		for _, night := range nights {
			if err := inventory.IncrementNight(ctx, night, res.Gender); err != nil {
				return err
			}
		}
	default:
		return apperr.Validation("unknown reservation kind %q", res.Kind)
	}
	return nil
}

// stayNights lists the YYYY-MM-DD dates covered by a stored stay,
// check-out day excluded.
func stayNights(res *models.Reservation) ([]string, error) {
	in, err := time.Parse(dayLayout, res.CheckIn)
	if err != nil {
		return nil, err
	}
	out, err := time.Parse(dayLayout, res.CheckOut)
	if err != nil {
		return nil, err
	}

	var nights []string
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format(dayLayout))
	}
	return nights, nil
}
