package dto

import (
	"time"

	"github.com/google/uuid"

	"staysync/internal/domains/channel/model"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

type WebhookReservationData struct {
	GuestName   string  `json:"guestName"   validate:"required,max=100"`
	RoomType    string  `json:"roomType"    validate:"required,max=50"`
	CheckIn     string  `json:"checkIn"     validate:"required,datetime=2006-01-02"`
	CheckOut    string  `json:"checkOut"    validate:"required,datetime=2006-01-02"`
	Adults      int     `json:"adults"      validate:"omitempty,gte=0"`
	Children    int     `json:"children"    validate:"omitempty,gte=0"`
	TotalAmount float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	Currency    string  `json:"currency"    validate:"omitempty,len=3"`
	Status      string  `json:"status"      validate:"omitempty,oneof=confirmed modified cancelled"`
}

type WebhookPayload struct {
	Event      string                  `json:"event"      validate:"required,max=50"`
	AgencyID   string                  `json:"agencyId"   validate:"required,max=50"`
	ExternalID string                  `json:"externalId" validate:"required,max=100"`
	Data       *WebhookReservationData `json:"data"       validate:"required"`
}

func (p *WebhookPayload) ToModel(user string) (model.ChannelReservation, error) {
	checkIn, err := time.Parse(constant.StayDateFormat, p.Data.CheckIn)
	if err != nil {
		return model.ChannelReservation{}, err
	}

	checkOut, err := time.Parse(constant.StayDateFormat, p.Data.CheckOut)
	if err != nil {
		return model.ChannelReservation{}, err
	}

	status := model.StatusConfirmed
	if p.Data.Status != "" {
		status = p.Data.Status
	}

	currency := "USD"
	if p.Data.Currency != "" {
		currency = p.Data.Currency
	}

	return model.ChannelReservation{
		ID:          uuid.NewString(),
		AgencyID:    p.AgencyID,
		ExternalID:  p.ExternalID,
		GuestName:   p.Data.GuestName,
		RoomType:    p.Data.RoomType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      p.Data.Adults,
		Children:    p.Data.Children,
		TotalAmount: p.Data.TotalAmount,
		Currency:    currency,
		Status:      status,
		ReceivedAt:  timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type ChannelReservationResponse struct {
	ID               string  `json:"id"`
	AgencyID         string  `json:"agencyId"`
	ExternalID       string  `json:"externalId"`
	GuestName        string  `json:"guestName"`
	RoomType         string  `json:"roomType"`
	CheckIn          string  `json:"checkIn"`
	CheckOut         string  `json:"checkOut"`
	Adults           int     `json:"adults"`
	Children         int     `json:"children"`
	TotalAmount      float64 `json:"totalAmount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	PMSReservationID *string `json:"pmsReservationId,omitempty"`
	ReceivedAt       string  `json:"receivedAt"`
	gDto.Metadata
}

func (r *ChannelReservationResponse) FromModel(model model.ChannelReservation) {
	r.ID = model.ID
	r.AgencyID = model.AgencyID
	r.ExternalID = model.ExternalID
	r.GuestName = model.GuestName
	r.RoomType = model.RoomType
	r.CheckIn = model.CheckIn.Format(constant.StayDateFormat)
	r.CheckOut = model.CheckOut.Format(constant.StayDateFormat)
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.Currency = model.Currency
	r.Status = model.Status
	r.PMSReservationID = model.PMSReservationID
	r.ReceivedAt = timezone.Format(model.ReceivedAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type IngestResponse struct {
	Created     bool                       `json:"created"`
	Reservation ChannelReservationResponse `json:"reservation"`
}

type GetChannelReservationsResponse struct {
	Reservations []ChannelReservationResponse `json:"reservations"`
	TotalPage    int                          `json:"total_page"`
	TotalData    int                          `json:"total_data"`
}

func (r *GetChannelReservationsResponse) FromModels(models []model.ChannelReservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ChannelReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type TestConnectionRequest struct {
	AgencyID string `json:"agencyId" validate:"required"`
}

type TestConnectionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LatencyMs int64  `json:"latencyMs"`
}
