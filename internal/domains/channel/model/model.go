package model

import (
	"time"

	"staysync/shared/model"
)

const (
	TableName  = "channel_reservations"
	EntityName = "channel_reservation"

	FieldID               = "id"
	FieldAgencyID         = "agency_id"
	FieldExternalID       = "external_id"
	FieldGuestName        = "guest_name"
	FieldRoomType         = "room_type"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldTotalAmount      = "total_amount"
	FieldCurrency         = "currency"
	FieldStatus           = "status"
	FieldPMSReservationID = "pms_reservation_id"
	FieldReceivedAt       = "received_at"
)

const (
	StatusConfirmed = "confirmed"
	StatusModified  = "modified"
	StatusCancelled = "cancelled"
)

// ChannelReservation is a booking event as reported by a partner, held in the
// channel buffer until the sync engine reconciles it into the PMS store.
// The (agency_id, external_id) pair is globally unique.
type ChannelReservation struct {
	ID               string    `db:"id"`
	AgencyID         string    `db:"agency_id"`
	ExternalID       string    `db:"external_id"`
	GuestName        string    `db:"guest_name"`
	RoomType         string    `db:"room_type"`
	CheckIn          time.Time `db:"check_in"`
	CheckOut         time.Time `db:"check_out"`
	Adults           int       `db:"adults"`
	Children         int       `db:"children"`
	TotalAmount      float64   `db:"total_amount"`
	Currency         string    `db:"currency"`
	Status           string    `db:"status"`
	PMSReservationID *string   `db:"pms_reservation_id"`
	ReceivedAt       time.Time `db:"received_at"`
	model.Metadata
}
