package dto

import (
	"encoding/json"
	"time"

	resModel "staysync/internal/domains/reservation/model"
	"staysync/internal/domains/sync/model"
	"staysync/shared"
	gDto "staysync/shared/dto"
)

type SyncRequest struct {
	ReservationID string `json:"channelReservationId" validate:"required"`
}

const (
	OutcomeSynced   = "synced"
	OutcomeConflict = "conflict"
)

// SyncResultResponse reports one reconciliation attempt. A conflict is a valid
// outcome, not an error.
type SyncResultResponse struct {
	Outcome          string `json:"outcome"`
	PMSReservationID string `json:"pmsReservationId,omitempty"`
	ConflictID       string `json:"conflictId,omitempty"`
	ConflictKind     string `json:"conflictKind,omitempty"`
	AlreadySynced    bool   `json:"alreadySynced,omitempty"`
}

type SyncLogResponse struct {
	ID                  string    `json:"id"`
	PartnerID           *string   `json:"partnerId,omitempty"`
	TargetReservationID string    `json:"targetReservationId"`
	Outcome             string    `json:"outcome"`
	Message             string    `json:"message"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (r *SyncLogResponse) FromModel(model model.SyncLog) {
	r.ID = model.ID
	r.PartnerID = model.PartnerID
	r.TargetReservationID = model.TargetReservationID
	r.Outcome = model.Outcome
	r.Message = model.Message
	r.CreatedAt = model.CreatedAt
}

type GetSyncLogsResponse struct {
	Logs      []SyncLogResponse `json:"logs"`
	TotalData int               `json:"total_data"`
}

func (r *GetSyncLogsResponse) FromModels(models []model.SyncLog, totalData int) {
	r.TotalData = totalData

	r.Logs = make([]SyncLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}

type ResolveConflictRequest struct {
	ConflictID string `json:"-"          validate:"required"`
	Resolution string `json:"resolution" validate:"required,oneof=keep-local keep-remote merge"`
}

type ConflictResponse struct {
	ID                   string          `json:"id"`
	Kind                 string          `json:"kind"`
	LocalSnapshot        json.RawMessage `json:"localSnapshot"`
	RemoteSnapshot       json.RawMessage `json:"remoteSnapshot"`
	OfflineReservationID *string         `json:"offlineReservationId,omitempty"`
	ChannelReservationID *string         `json:"channelReservationId,omitempty"`
	IncumbentPMSID       *string         `json:"incumbentPmsId,omitempty"`
	Resolved             bool            `json:"resolved"`
	Resolution           *string         `json:"resolution,omitempty"`
	DetectedAt           time.Time       `json:"detectedAt"`
	ResolvedAt           *time.Time      `json:"resolvedAt,omitempty"`
}

func (r *ConflictResponse) FromModel(model model.SyncConflict) {
	r.ID = model.ID
	r.Kind = model.Kind
	r.LocalSnapshot = model.LocalSnapshot
	r.RemoteSnapshot = model.RemoteSnapshot
	r.OfflineReservationID = model.OfflineReservationID
	r.ChannelReservationID = model.ChannelReservationID
	r.IncumbentPMSID = model.IncumbentPMSID
	r.Resolved = model.Resolved
	r.Resolution = model.Resolution
	r.DetectedAt = model.DetectedAt
	r.ResolvedAt = model.ResolvedAt
}

type GetConflictsResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
	TotalData int                `json:"total_data"`
}

func (r *GetConflictsResponse) FromModels(models []model.SyncConflict, totalData int) {
	r.TotalData = totalData

	r.Conflicts = make([]ConflictResponse, len(models))
	for i, mod := range models {
		r.Conflicts[i].FromModel(mod)
	}
}

type ReservationResponse struct {
	ID          string    `json:"id"`
	RoomType    string    `json:"roomType"`
	GuestName   string    `json:"guestName"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	TotalAmount float64   `json:"totalAmount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	ExternalRef string    `json:"externalRef,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model resModel.Reservation) {
	r.ID = model.ID
	r.RoomType = model.RoomType
	r.GuestName = model.GuestName
	r.CheckIn = model.CheckIn
	r.CheckOut = model.CheckOut
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.Currency = model.Currency
	r.Status = model.Status
	r.Source = model.Source
	r.ExternalRef = model.ExternalRef
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []resModel.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
