package domain

import "blockpoly/internal/board"

// RentAt computes the rent owed for landing on a space, given the dice
// total of the landing roll. Mortgaged spaces and bank-owned spaces
// charge nothing.
//
// Bridges charge by the owner's bridge count, utilities by dice total,
// and properties by development level. An undeveloped property earns
// double during a monopoly or a Bull Run, but the two never stack.
func (g *Game) RentAt(space int, diceTotal int) int64 {
	prop := &g.Properties[space]
	if !prop.Owned() || prop.Mortgaged {
		return 0
	}
	sp := board.At(space)

	switch sp.Type {
	case board.TypeBridge:
		owned := g.CountOwnedOfType(prop.Owner, board.TypeBridge)
		idx := owned - 1
		if idx > 3 {
			idx = 3
		}
		if idx < 0 {
			idx = 0
		}
		return sp.BridgeRents[idx]

	case board.TypeUtility:
		mult := int64(4)
		if g.CountOwnedOfType(prop.Owner, board.TypeUtility) >= 2 {
			mult = 10
		}
		return int64(diceTotal) * 1_000_000 * mult

	case board.TypeProperty:
		if prop.FullProtocol {
			return sp.ProtocolRent
		}
		if prop.Tier > 0 {
			return sp.LPRents[prop.Tier-1]
		}
		rent := sp.BaseRent
		if g.HasMonopoly(prop.Owner, sp.Group) || g.bullRunLive() {
			rent *= 2
		}
		return rent
	}
	return 0
}

func (g *Game) bullRunLive() bool {
	return g.BullRunActive && g.Round <= g.BullRunEndsRound
}
