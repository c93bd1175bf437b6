package models

import (
	"strconv"
	"strings"

	id "testament/pkg/domain"
)

// Report is the structured view of a will. String renders the fixed text
// layout returned by the view endpoints.
type Report struct {
	Beneficiaries []Share        `json:"beneficiaries"`
	DigitalAssets int64          `json:"digital_assets"`
	Assets        []AssetSummary `json:"physical_assets"`
	State         State          `json:"state"`
}

// AssetSummary is the per-asset block of a Report.
type AssetSummary struct {
	ID            id.AssetID `json:"id"`
	Description   string     `json:"description"`
	Value         int64      `json:"value"`
	Beneficiaries []Share    `json:"beneficiaries"`
}

// NewReport builds the view of w. The residual beneficiary is implied by the
// listed shares and is not printed.
func NewReport(w *Will, assets []*PhysicalAsset) Report {
	r := Report{
		Beneficiaries: w.NamedBeneficiaries(),
		DigitalAssets: w.DigitalAssets,
		Assets:        make([]AssetSummary, 0, len(assets)),
		State:         w.State,
	}
	for _, a := range assets {
		r.Assets = append(r.Assets, AssetSummary{
			ID:            a.ID,
			Description:   a.Description,
			Value:         a.Value,
			Beneficiaries: a.Beneficiaries,
		})
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString("=== DIGITAL ASSETS ===\n")
	b.WriteString("Beneficiaries & Allocations:\n")
	writeShares(&b, r.Beneficiaries)
	b.WriteString("Total Digital Assets (Wei): ")
	b.WriteString(strconv.FormatInt(r.DigitalAssets, 10))
	b.WriteString("\n\n")

	b.WriteString("=== PHYSICAL ASSETS ===\n")
	for _, a := range r.Assets {
		b.WriteString("Asset ID: ")
		b.WriteString(a.ID.String())
		b.WriteString("\nDescription: ")
		b.WriteString(a.Description)
		b.WriteString("\nValue: ")
		b.WriteString(strconv.FormatInt(a.Value, 10))
		b.WriteString("\n")
		writeShares(&b, a.Beneficiaries)
		b.WriteString("\n")
	}
	return b.String()
}

func writeShares(b *strings.Builder, shares []Share) {
	for _, s := range shares {
		b.WriteString("- ")
		b.WriteString(DisplayIdentity(s.Beneficiary))
		b.WriteString(" -> ")
		b.WriteString(strconv.Itoa(s.Percent))
		b.WriteString("%\n")
	}
}

// DisplayIdentity renders account addresses as lower-case hex without the
// 0x prefix. Other identities print unchanged.
func DisplayIdentity(i id.Identity) string {
	s := string(i)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return strings.ToLower(s[2:])
	}
	return s
}
