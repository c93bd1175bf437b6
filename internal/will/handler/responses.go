package handler

import (
	"testament/internal/will/models"
	id "testament/pkg/domain"
)

type StateResponse struct {
	Owner id.Identity  `json:"owner"`
	State models.State `json:"state"`
}

type DigitalAssetsResponse struct {
	Owner         id.Identity `json:"owner"`
	DigitalAssets int64       `json:"digital_assets"`
}

type AllocationResponse struct {
	Beneficiary id.Identity `json:"beneficiary"`
	Percent     int         `json:"percent"`
}

type MembershipResponse struct {
	Identity id.Identity `json:"identity"`
	Member   bool        `json:"member"`
}

type BalanceResponse struct {
	Beneficiary id.Identity `json:"beneficiary"`
	Balance     int64       `json:"balance"`
}

// ReportResponse pairs the structured report with its text rendering.
type ReportResponse struct {
	Report models.Report `json:"report"`
	Text   string        `json:"text"`
}

type ProofsResponse struct {
	Owner  id.Identity                `json:"owner"`
	Proofs []models.DistributionProof `json:"proofs"`
}

type WillListResponse struct {
	Wills []*models.Will `json:"wills"`
}
