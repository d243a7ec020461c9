package dto

import (
	"github.com/google/uuid"

	"staysync/internal/domains/partner/model"
	"staysync/shared"
	gDto "staysync/shared/dto"
	gModel "staysync/shared/model"
	"staysync/shared/timezone"
)

type UpsertPartnerRequest struct {
	AgencyID       string  `json:"agencyId"       validate:"required,max=50"`
	Name           string  `json:"name"           validate:"required,max=100"`
	Credentials    string  `json:"credentials"    validate:"required"`
	Endpoint       string  `json:"endpoint"       validate:"omitempty,url"`
	CommissionRate float64 `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
}

func (c *UpsertPartnerRequest) ToModel(user string) model.ChannelPartner {
	return model.ChannelPartner{
		ID:             uuid.NewString(),
		AgencyID:       c.AgencyID,
		Name:           c.Name,
		Credentials:    c.Credentials,
		Endpoint:       c.Endpoint,
		CommissionRate: c.CommissionRate,
		Enabled:        true,
		Status:         model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

const (
	PatchActionToggle = "toggle"
	PatchActionStatus = "status"
)

type PatchPartnerRequest struct {
	PartnerID    string `json:"partnerId" validate:"required"`
	Action       string `json:"action"    validate:"required,oneof=toggle status"`
	Enabled      *bool  `json:"enabled"   validate:"omitempty"`
	Status       string `json:"status"    validate:"omitempty,oneof=active syncing error disabled"`
	StatusDetail string `json:"statusDetail" validate:"omitempty,max=255"`
}

type DeletePartnerRequest struct {
	PartnerID string `json:"partnerId" validate:"required"`
}

type PartnerResponse struct {
	ID             string  `json:"id"`
	AgencyID       string  `json:"agencyId"`
	Name           string  `json:"name"`
	Endpoint       string  `json:"endpoint"`
	CommissionRate float64 `json:"commissionRate"`
	Enabled        bool    `json:"enabled"`
	Status         string  `json:"status"`
	StatusDetail   string  `json:"statusDetail,omitempty"`
	gDto.Metadata
}

func (r *PartnerResponse) FromModel(model model.ChannelPartner) {
	r.ID = model.ID
	r.AgencyID = model.AgencyID
	r.Name = model.Name
	r.Endpoint = model.Endpoint
	r.CommissionRate = model.CommissionRate
	r.Enabled = model.Enabled
	r.Status = model.Status
	r.StatusDetail = model.StatusDetail
	r.Metadata.FromModel(model.Metadata)
}

type GetPartnersResponse struct {
	Partners  []PartnerResponse `json:"partners"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPartnersResponse) FromModels(models []model.ChannelPartner, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Partners = make([]PartnerResponse, len(models))
	for i, mod := range models {
		r.Partners[i].FromModel(mod)
	}
}
