package model

import "time"

const EntityName = "offline_reservation"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// DefaultSource marks entries captured with no originating context given.
const DefaultSource = "offline"

const (
	SyncStatusPending  = "pending"
	SyncStatusSyncing  = "syncing"
	SyncStatusSynced   = "synced"
	SyncStatusConflict = "conflict"
	SyncStatusError    = "error"
)

// OfflineReservation is a booking captured while disconnected, held in the
// pending queue until a reconciliation pass commits it to the PMS store.
// Entries live in the namespaced key-value store, not in Postgres.
type OfflineReservation struct {
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

// transitions encodes the sync lifecycle. Progress is forward-only except for
// error, which re-enters the queue as pending on retry.
var transitions = map[string][]string{
	SyncStatusPending:  {SyncStatusSyncing},
	SyncStatusSyncing:  {SyncStatusSynced, SyncStatusConflict, SyncStatusError},
	SyncStatusConflict: {SyncStatusSynced},
	SyncStatusError:    {SyncStatusPending, SyncStatusSyncing},
}

// CanTransition reports whether the entry may move to the given sync status.
func (r *OfflineReservation) CanTransition(to string) bool {
	for _, next := range transitions[r.SyncStatus] {
		if next == to {
			return true
		}
	}

	return false
}

// AwaitsSync reports whether a reconciliation pass should pick the entry up.
func (r *OfflineReservation) AwaitsSync() bool {
	return r.SyncStatus == SyncStatusPending || r.SyncStatus == SyncStatusError
}
