package models

// ConfirmationOutcome reports whether a registry confirmation advanced the
// will. A missing registry match is not an error: Transitioned is false and
// Reason says why.
type ConfirmationOutcome struct {
	State        State  `json:"state"`
	Transitioned bool   `json:"transitioned"`
	Reason       string `json:"reason,omitempty"`
}

// Reasons reported when a confirmation or asset distribution is a no-op.
const (
	ReasonNoRegistryRecord  = "no_registry_record"
	ReasonNotToday          = "record_not_dated_today"
	ReasonWrongState        = "will_not_in_required_state"
	ReasonAlreadyConfirmed  = "already_confirmed"
	ReasonProbateNotGranted = "grant_of_probate_not_confirmed"
)

// AssetDistributionOutcome is the soft result of distributing one asset.
// Skipped is true, with Proof nil, when the will is not yet in
// GrantOfProbateConfirmed.
type AssetDistributionOutcome struct {
	Skipped bool               `json:"skipped"`
	Reason  string             `json:"reason,omitempty"`
	Proof   *DistributionProof `json:"proof,omitempty"`
}

// EstateDistribution is the result of settling a whole estate in one
// transaction: every undistributed asset followed by the digital balance.
type EstateDistribution struct {
	Digital DistributionRecord  `json:"digital"`
	Assets  []DistributionProof `json:"assets"`
}
