package model

import (
	"time"

	"staysync/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldRoomType    = "room_type"
	FieldGuestName   = "guest_name"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldAdults      = "adults"
	FieldChildren    = "children"
	FieldTotalAmount = "total_amount"
	FieldCurrency    = "currency"
	FieldStatus      = "status"
	FieldSource      = "source"
	FieldExternalRef = "external_ref"
)

const (
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

const (
	SourceChannel = "channel"
	SourceOffline = "offline"
	SourceDirect  = "direct"
)

// Reservation is the authoritative committed booking record in the PMS store.
type Reservation struct {
	ID          string    `db:"id"`
	RoomType    string    `db:"room_type"`
	GuestName   string    `db:"guest_name"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Adults      int       `db:"adults"`
	Children    int       `db:"children"`
	TotalAmount float64   `db:"total_amount"`
	Currency    string    `db:"currency"`
	Status      string    `db:"status"`
	Source      string    `db:"source"`
	ExternalRef string    `db:"external_ref"`
	model.Metadata
}

// Occupies reports whether the reservation still holds room inventory.
func (r *Reservation) Occupies() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCheckedIn
}
