package model

import (
	"encoding/json"
	"time"

	resModel "staysync/internal/domains/reservation/model"
)

const (
	LogTableName  = "sync_logs"
	LogEntityName = "sync_log"

	LogFieldID                  = "id"
	LogFieldPartnerID           = "partner_id"
	LogFieldTargetReservationID = "target_reservation_id"
	LogFieldOutcome             = "outcome"
	LogFieldMessage             = "message"
	LogFieldCreatedAt           = "created_at"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeConflict = "conflict"
)

// SyncLog is an append-only audit record of one reconciliation attempt.
// Entries are written once and never mutated.
type SyncLog struct {
	ID                  string    `db:"id"`
	PartnerID           *string   `db:"partner_id"`
	TargetReservationID string    `db:"target_reservation_id"`
	Outcome             string    `db:"outcome"`
	Message             string    `db:"message"`
	CreatedAt           time.Time `db:"created_at"`
}

const (
	ConflictTableName  = "sync_conflicts"
	ConflictEntityName = "sync_conflict"

	ConflictFieldID                   = "id"
	ConflictFieldKind                 = "kind"
	ConflictFieldLocalSnapshot        = "local_snapshot"
	ConflictFieldRemoteSnapshot       = "remote_snapshot"
	ConflictFieldOfflineReservationID = "offline_reservation_id"
	ConflictFieldChannelReservationID = "channel_reservation_id"
	ConflictFieldIncumbentPMSID       = "incumbent_pms_id"
	ConflictFieldResolved             = "resolved"
	ConflictFieldResolution           = "resolution"
	ConflictFieldDetectedAt           = "detected_at"
	ConflictFieldResolvedAt           = "resolved_at"
)

const (
	KindOverlap    = "overlap"
	KindDivergence = "divergence"
)

const (
	ResolutionKeepLocal  = "keep-local"
	ResolutionKeepRemote = "keep-remote"
	ResolutionMerge      = "merge"
)

// SyncConflict materializes a detected disagreement between a candidate
// reservation and committed state. Created only by detection, mutated only by
// resolution, never deleted.
type SyncConflict struct {
	ID                   string          `db:"id"`
	Kind                 string          `db:"kind"`
	LocalSnapshot        json.RawMessage `db:"local_snapshot"`
	RemoteSnapshot       json.RawMessage `db:"remote_snapshot"`
	OfflineReservationID *string         `db:"offline_reservation_id"`
	ChannelReservationID *string         `db:"channel_reservation_id"`
	IncumbentPMSID       *string         `db:"incumbent_pms_id"`
	Resolved             bool            `db:"resolved"`
	Resolution           *string         `db:"resolution"`
	DetectedAt           time.Time       `db:"detected_at"`
	ResolvedAt           *time.Time      `db:"resolved_at"`
}

// Snapshot captures one side of a conflict at detection time. Both sides share
// this shape so resolution can compare and merge field by field.
type Snapshot struct {
	ReservationID string    `json:"reservationId,omitempty"`
	GuestName     string    `json:"guestName"`
	RoomType      string    `json:"roomType"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Adults        int       `json:"adults"`
	Children      int       `json:"children"`
	TotalAmount   float64   `json:"totalAmount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Source        string    `json:"source"`
	ExternalRef   string    `json:"externalRef,omitempty"`
	ModifiedAt    time.Time `json:"modifiedAt"`
}

func SnapshotFromReservation(res resModel.Reservation) Snapshot {
	return Snapshot{
		ReservationID: res.ID,
		GuestName:     res.GuestName,
		RoomType:      res.RoomType,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		Adults:        res.Adults,
		Children:      res.Children,
		TotalAmount:   res.TotalAmount,
		Currency:      res.Currency,
		Status:        res.Status,
		Source:        res.Source,
		ExternalRef:   res.ExternalRef,
		ModifiedAt:    res.ModifiedAt,
	}
}
