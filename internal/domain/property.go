package domain

import "blockpoly/internal/board"

// Property is the per-space ownership and development record.
// Spaces that can never be owned keep the bank as owner forever.
type Property struct {
	Space int `json:"space"`
	Owner int `json:"owner"` // seat index, BankOwner when unowned

	// Tier is the liquidity-pool level, 0 through 4.
	Tier int `json:"tier"`
	// FullProtocol marks the top development stage above tier 4.
	FullProtocol bool `json:"full_protocol"`

	Mortgaged bool `json:"mortgaged"`
}

// Owned reports whether a player holds this space.
func (p *Property) Owned() bool { return p.Owner != BankOwner }

// Developed reports whether any liquidity pools or a full protocol exist.
func (p *Property) Developed() bool { return p.Tier > 0 || p.FullProtocol }

// BuildingValue is the sale value returned when developments are
// force-liquidated: half of what was spent on them.
func (p *Property) BuildingValue() int64 {
	sp := board.At(p.Space)
	if sp.LPCost == 0 {
		return 0
	}
	units := int64(p.Tier)
	if p.FullProtocol {
		units = 5
	}
	return units * sp.LPCost / 2
}

// StripDevelopments removes all pools and protocol, returning the
// liquidation proceeds owed to the owner.
func (p *Property) StripDevelopments() int64 {
	v := p.BuildingValue()
	p.Tier = 0
	p.FullProtocol = false
	return v
}

// ResetToBank returns the space to the bank, clearing every flag.
func (p *Property) ResetToBank() {
	p.Owner = BankOwner
	p.Tier = 0
	p.FullProtocol = false
	p.Mortgaged = false
}
