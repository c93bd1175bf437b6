package models

import (
	"math/bits"
	"time"

	id "testament/pkg/domain"
)

// Payout is the amount credited to one beneficiary at distribution.
type Payout struct {
	Beneficiary id.Identity `json:"beneficiary"`
	Percent     int         `json:"percent"`
	Amount      int64       `json:"amount"`
}

// DistributionRecord is the immutable result of a digital distribution.
type DistributionRecord struct {
	Owner         id.Identity `json:"owner"`
	Funds         int64       `json:"funds"`
	Payouts       []Payout    `json:"payouts"`
	Remainder     int64       `json:"remainder"`
	DistributedAt time.Time   `json:"distributed_at"`
}

// ComputePayouts splits funds by share with truncating division:
// payout_i = floor(funds * percent_i / 100). Whatever the truncation leaves
// is returned as remainder and stays with the will.
//
// The product is computed in 128 bits so large balances never overflow.
func ComputePayouts(funds int64, shares []Share) ([]Payout, int64) {
	payouts := make([]Payout, 0, len(shares))
	if funds <= 0 {
		for _, s := range shares {
			payouts = append(payouts, Payout{Beneficiary: s.Beneficiary, Percent: s.Percent})
		}
		return payouts, max(funds, 0)
	}
	var paid int64
	for _, s := range shares {
		amount := proportion(uint64(funds), uint64(s.Percent))
		payouts = append(payouts, Payout{Beneficiary: s.Beneficiary, Percent: s.Percent, Amount: amount})
		paid += amount
	}
	return payouts, funds - paid
}

func proportion(funds, percent uint64) int64 {
	hi, lo := bits.Mul64(funds, percent)
	q, _ := bits.Div64(hi, lo, FullAllocation)
	return int64(q)
}
