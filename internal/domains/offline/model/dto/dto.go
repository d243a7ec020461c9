package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"staysync/internal/domains/offline/model"
	"staysync/shared/constant"
	"staysync/shared/timezone"
)

type EnqueueOfflineRequest struct {
	GuestName   string  `json:"guestName"   validate:"required,max=100"`
	RoomType    string  `json:"roomType"    validate:"required,max=50"`
	CheckIn     string  `json:"checkIn"     validate:"required,datetime=2006-01-02"`
	CheckOut    string  `json:"checkOut"    validate:"required,datetime=2006-01-02"`
	Adults      int     `json:"adults"      validate:"required,gte=1"`
	Children    int     `json:"children"    validate:"omitempty,gte=0"`
	TotalAmount float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	Currency    string  `json:"currency"    validate:"omitempty,len=3"`
	Status      string  `json:"status"      validate:"omitempty,oneof=confirmed cancelled"`
	Source      string  `json:"source"      validate:"omitempty,max=50"`
}

func (c *EnqueueOfflineRequest) ToModel() (model.OfflineReservation, error) {
	checkIn, err := timezone.Parse(constant.StayDateFormat, c.CheckIn)
	if err != nil {
		return model.OfflineReservation{}, fmt.Errorf("invalid check-in date: %w", err)
	}

	checkOut, err := timezone.Parse(constant.StayDateFormat, c.CheckOut)
	if err != nil {
		return model.OfflineReservation{}, fmt.Errorf("invalid check-out date: %w", err)
	}

	status := c.Status
	if status == constant.Empty {
		status = model.StatusConfirmed
	}

	currency := c.Currency
	if currency == constant.Empty {
		currency = "USD"
	}

	source := c.Source
	if source == constant.Empty {
		source = model.DefaultSource
	}

	now := timezone.Now()

	return model.OfflineReservation{
		ID:          uuid.NewString(),
		GuestName:   c.GuestName,
		RoomType:    c.RoomType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      c.Adults,
		Children:    c.Children,
		TotalAmount: c.TotalAmount,
		Currency:    currency,
		Status:      status,
		Source:      source,
		SyncStatus:  model.SyncStatusPending,
		CreatedAt:   now,
		ModifiedAt:  now,
	}, nil
}

type RemoveOfflineRequest struct {
	ReservationID string `json:"reservationId" validate:"required"`
}

type OfflineReservationResponse struct {
	ID               string    `json:"id"`
	GuestName        string    `json:"guestName"`
	RoomType         string    `json:"roomType"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	Adults           int       `json:"adults"`
	Children         int       `json:"children"`
	TotalAmount      float64   `json:"totalAmount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Source           string    `json:"source"`
	SyncStatus       string    `json:"syncStatus"`
	RetryCount       int       `json:"retryCount"`
	LastError        string    `json:"lastError,omitempty"`
	PMSReservationID *string   `json:"pmsReservationId,omitempty"`
	ConflictID       *string   `json:"conflictId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	ModifiedAt       time.Time `json:"modifiedAt"`
}

func (r *OfflineReservationResponse) FromModel(model model.OfflineReservation) {
	r.ID = model.ID
	r.GuestName = model.GuestName
	r.RoomType = model.RoomType
	r.CheckIn = model.CheckIn
	r.CheckOut = model.CheckOut
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.Currency = model.Currency
	r.Status = model.Status
	r.Source = model.Source
	r.SyncStatus = model.SyncStatus
	r.RetryCount = model.RetryCount
	r.LastError = model.LastError
	r.PMSReservationID = model.PMSReservationID
	r.ConflictID = model.ConflictID
	r.CreatedAt = model.CreatedAt
	r.ModifiedAt = model.ModifiedAt
}

type GetOfflineReservationsResponse struct {
	Reservations []OfflineReservationResponse `json:"reservations"`
	TotalData    int                          `json:"total_data"`
}

func (r *GetOfflineReservationsResponse) FromModels(models []model.OfflineReservation) {
	r.TotalData = len(models)

	r.Reservations = make([]OfflineReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type EntryResult struct {
	ReservationID    string `json:"reservationId"`
	Outcome          string `json:"outcome"`
	PMSReservationID string `json:"pmsReservationId,omitempty"`
	ConflictID       string `json:"conflictId,omitempty"`
	Error            string `json:"error,omitempty"`
}

type ReconcileResponse struct {
	Processed int           `json:"processed"`
	Synced    int           `json:"synced"`
	Conflicts int           `json:"conflicts"`
	Errors    int           `json:"errors"`
	Results   []EntryResult `json:"results"`
}

type ClearSyncedResponse struct {
	Removed int `json:"removed"`
}
