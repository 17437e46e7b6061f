package domain

// TradeOffer is an open property/token swap between two seats. Each seat
// may hold at most one outstanding offer as proposer.
type TradeOffer struct {
	ID        string `json:"id"`
	Proposer  int    `json:"proposer"`
	Recipient int    `json:"recipient"`

	OfferedProperties   []int `json:"offered_properties"`
	OfferedAmount       int64 `json:"offered_amount"`
	RequestedProperties []int `json:"requested_properties"`
	RequestedAmount     int64 `json:"requested_amount"`

	// Immunity cards are tradeable alongside properties and tokens.
	OfferedImmunity   bool `json:"offered_immunity"`
	RequestedImmunity bool `json:"requested_immunity"`

	ExpiresTurn uint32 `json:"expires_turn"`
}

// Expired reports whether the offer lapsed before the given turn.
func (t *TradeOffer) Expired(turn uint32) bool { return turn >= t.ExpiresTurn }

// Empty reports whether the offer exchanges nothing in either direction.
func (t *TradeOffer) Empty() bool {
	return len(t.OfferedProperties) == 0 && len(t.RequestedProperties) == 0 &&
		t.OfferedAmount == 0 && t.RequestedAmount == 0 &&
		!t.OfferedImmunity && !t.RequestedImmunity
}
