package service

import (
	"context"
	"fmt"

	resModel "staysync/internal/domains/reservation/model"
	"staysync/internal/domains/sync/model"
	"staysync/shared/constant"
)

// detection classifies a candidate against committed PMS state. An empty kind
// with a nil incumbent means the candidate is clean to insert; an empty kind
// with an incumbent means the candidate is a modification of its own earlier
// commit and should update it in place.
type detection struct {
	kind      string
	incumbent *resModel.Reservation
}

func (s *serviceImpl) detect(ctx context.Context, cand resModel.Reservation) (det detection, err error) {
	if cand.ExternalRef != constant.Empty {
		existing, err := s.reservations.FindByExternalRef(ctx, cand.ExternalRef)
		if err != nil {
			return det, fmt.Errorf("failed to look up committed booking: %w", err)
		}

		if existing.ID != constant.Empty {
			det.incumbent = &existing
			if existing.Source != cand.Source && fieldsDiffer(existing, cand) {
				det.kind = model.KindDivergence
			}

			return det, nil
		}
	}

	// A cancellation frees inventory, so it cannot double-book.
	if cand.Status == resModel.StatusCancelled {
		return det, nil
	}

	overlapping, err := s.reservations.FindOverlapping(ctx, cand.RoomType, cand.CheckIn, cand.CheckOut)
	if err != nil {
		return det, fmt.Errorf("failed to check room availability: %w", err)
	}

	for i := range overlapping {
		if overlapping[i].ExternalRef != constant.Empty && overlapping[i].ExternalRef == cand.ExternalRef {
			continue
		}

		det.incumbent = &overlapping[i]
		// The same guest showing up from another source is the two sides
		// disagreeing about one booking, not a double-booking.
		if overlapping[i].GuestName == cand.GuestName {
			det.kind = model.KindDivergence
		} else {
			det.kind = model.KindOverlap
		}

		return det, nil
	}

	return det, nil
}

func fieldsDiffer(a, b resModel.Reservation) bool {
	return a.GuestName != b.GuestName ||
		a.RoomType != b.RoomType ||
		!a.CheckIn.Equal(b.CheckIn) ||
		!a.CheckOut.Equal(b.CheckOut) ||
		a.Adults != b.Adults ||
		a.Children != b.Children ||
		a.TotalAmount != b.TotalAmount ||
		a.Currency != b.Currency
}

// mergeSnapshots takes the fresher side by modification time and backfills any
// zero-valued field from the other side.
func mergeSnapshots(local, remote model.Snapshot) model.Snapshot {
	newer, older := local, remote
	if remote.ModifiedAt.After(local.ModifiedAt) {
		newer, older = remote, local
	}

	merged := newer
	if merged.GuestName == constant.Empty {
		merged.GuestName = older.GuestName
	}

	if merged.RoomType == constant.Empty {
		merged.RoomType = older.RoomType
	}

	if merged.CheckIn.IsZero() {
		merged.CheckIn = older.CheckIn
	}

	if merged.CheckOut.IsZero() {
		merged.CheckOut = older.CheckOut
	}

	if merged.Adults == 0 {
		merged.Adults = older.Adults
	}

	if merged.Children == 0 {
		merged.Children = older.Children
	}

	if merged.TotalAmount == 0 {
		merged.TotalAmount = older.TotalAmount
	}

	if merged.Currency == constant.Empty {
		merged.Currency = older.Currency
	}

	if merged.Status == constant.Empty {
		merged.Status = older.Status
	}

	return merged
}
