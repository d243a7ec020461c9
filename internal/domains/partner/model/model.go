package model

import (
	"staysync/shared/model"
)

const (
	TableName  = "channel_partners"
	EntityName = "partner"

	FieldID             = "id"
	FieldAgencyID       = "agency_id"
	FieldName           = "name"
	FieldCredentials    = "credentials"
	FieldEndpoint       = "endpoint"
	FieldCommissionRate = "commission_rate"
	FieldEnabled        = "enabled"
	FieldStatus         = "status"
	FieldStatusDetail   = "status_detail"
)

const (
	StatusActive   = "active"
	StatusSyncing  = "syncing"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

type ChannelPartner struct {
	ID             string  `db:"id"`
	AgencyID       string  `db:"agency_id"`
	Name           string  `db:"name"`
	Credentials    string  `db:"credentials"`
	Endpoint       string  `db:"endpoint"`
	CommissionRate float64 `db:"commission_rate"`
	Enabled        bool    `db:"enabled"`
	Status         string  `db:"status"`
	StatusDetail   string  `db:"status_detail"`
	model.Metadata
}
