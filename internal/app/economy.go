package app

import (
	"blockpoly/internal/board"
	"blockpoly/internal/domain"
)

// BuyProperty purchases the space the current player stands on. An
// Airdrop Season discount halves the price for this decision only.
func (s *Service) BuyProperty(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseBuyDecision {
		return nil, ErrWrongPhase
	}
	sp := board.At(p.Position)
	if !sp.Purchasable() {
		return nil, ErrNotPurchasable
	}
	prop := &g.Properties[p.Position]
	if prop.Owned() {
		return nil, ErrAlreadyOwned
	}
	price := sp.Price
	if g.BuyDiscount {
		price /= 2
	}
	if !p.CanAfford(price) {
		return nil, ErrInsufficientFunds
	}

	payToBank(g, p, price)
	prop.Owner = p.Seat
	g.BuyDiscount = false

	events := []Event{{
		Kind:    EventPropertyPurchased,
		Payload: PropertyPayload{Seat: p.Seat, Space: p.Position, Price: price},
	}}
	events = append(events, s.endTurn(g)...)
	return events, nil
}

// DeclineBuy refuses the purchase and opens an auction for the space.
// The opening bid is a tenth of the list price.
func (s *Service) DeclineBuy(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseBuyDecision {
		return nil, ErrWrongPhase
	}
	sp := board.At(p.Position)
	if !sp.Purchasable() {
		return nil, ErrNotPurchasable
	}

	g.BuyDiscount = false
	g.Auction = &domain.Auction{
		Space:         p.Position,
		HighestBid:    sp.Price / 10,
		HighestBidder: -1,
	}
	g.Phase = domain.PhaseAuction

	return []Event{{
		Kind:    EventAuctionStarted,
		Payload: AuctionPayload{Space: p.Position, Bidder: -1, HighestBid: g.Auction.HighestBid},
	}}, nil
}

// AuctionBid raises the standing bid. Any live player may bid, and every
// bid must strictly exceed the current high.
func (s *Service) AuctionBid(g *domain.Game, wallet string, amount int64) ([]Event, error) {
	p, err := s.anyPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseAuction || g.Auction == nil {
		return nil, ErrNoAuction
	}
	if amount <= g.Auction.HighestBid {
		return nil, ErrBidTooLow
	}
	if !p.CanAfford(amount) {
		return nil, ErrInsufficientFunds
	}

	g.Auction.HighestBid = amount
	g.Auction.HighestBidder = p.Seat
	return []Event{{
		Kind:    EventAuctionBid,
		Payload: AuctionPayload{Space: g.Auction.Space, Bidder: p.Seat, HighestBid: amount},
	}}, nil
}

// CloseAuction settles the auction: the high bidder pays the bank and
// takes the space, or it stays with the bank when nobody bid. Only the
// current player (or the session layer on timeout) closes.
func (s *Service) CloseAuction(g *domain.Game, wallet string) ([]Event, error) {
	if wallet != "" {
		if _, err := s.actingPlayer(g, wallet); err != nil {
			return nil, err
		}
	}
	if g.Phase != domain.PhaseAuction || g.Auction == nil {
		return nil, ErrNoAuction
	}
	auc := g.Auction
	g.Auction = nil

	var events []Event
	if auc.HighestBidder >= 0 {
		winner := g.Players[auc.HighestBidder]
		if winner.CanAfford(auc.HighestBid) && !winner.Bankrupt {
			payToBank(g, winner, auc.HighestBid)
			g.Properties[auc.Space].Owner = winner.Seat
		}
	}
	events = append(events, Event{
		Kind:    EventAuctionClosed,
		Payload: AuctionPayload{Space: auc.Space, Bidder: auc.HighestBidder, HighestBid: auc.HighestBid},
	})
	events = append(events, s.endTurn(g)...)
	return events, nil
}

// groupTiers returns the tier level of every space in a group, keyed by
// space index. Full protocol counts as five for evenness checks.
func groupTiers(g *domain.Game, group board.Group) map[int]int {
	tiers := make(map[int]int)
	for _, s := range board.GroupSpaces(group) {
		t := g.Properties[s].Tier
		if g.Properties[s].FullProtocol {
			t = 5
		}
		tiers[s] = t
	}
	return tiers
}

// BuildTier adds one liquidity pool to an owned property. Building
// requires the full color group, and even development when enforced.
func (s *Service) BuildTier(g *domain.Game, wallet string, space int) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	prop, sp, err := s.ownedProperty(g, p, space)
	if err != nil {
		return nil, err
	}
	if sp.Type != board.TypeProperty {
		return nil, ErrNotPurchasable
	}
	if prop.Mortgaged {
		return nil, ErrMortgaged
	}
	if !g.HasMonopoly(p.Seat, sp.Group) {
		return nil, ErrIncompleteSet
	}
	if prop.FullProtocol || prop.Tier >= 4 {
		return nil, ErrMaxTier
	}
	if s.rules.EvenBuild {
		for sib, t := range groupTiers(g, sp.Group) {
			if sib != space && prop.Tier > t {
				return nil, ErrUnevenBuild
			}
		}
	}
	if !p.CanAfford(sp.LPCost) {
		return nil, ErrInsufficientFunds
	}

	payToBank(g, p, sp.LPCost)
	prop.Tier++
	return []Event{{
		Kind:    EventTierBuilt,
		Payload: BuildPayload{Seat: p.Seat, Space: space, Tier: prop.Tier, Cost: sp.LPCost},
	}}, nil
}

// BuildFullProtocol upgrades a tier-4 property to full protocol.
func (s *Service) BuildFullProtocol(g *domain.Game, wallet string, space int) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	prop, sp, err := s.ownedProperty(g, p, space)
	if err != nil {
		return nil, err
	}
	if sp.Type != board.TypeProperty {
		return nil, ErrNotPurchasable
	}
	if prop.Mortgaged {
		return nil, ErrMortgaged
	}
	if prop.FullProtocol {
		return nil, ErrProtocolBuilt
	}
	if prop.Tier < 4 {
		return nil, ErrMaxTier
	}
	if !g.HasMonopoly(p.Seat, sp.Group) {
		return nil, ErrIncompleteSet
	}
	if !p.CanAfford(sp.LPCost) {
		return nil, ErrInsufficientFunds
	}

	payToBank(g, p, sp.LPCost)
	prop.Tier = 0
	prop.FullProtocol = true
	return []Event{{
		Kind:    EventProtocolBuilt,
		Payload: BuildPayload{Seat: p.Seat, Space: space, Tier: 5, Cost: sp.LPCost},
	}}, nil
}

// SellTier liquidates developments one step at a time at half cost.
// A full protocol steps back down to four pools.
func (s *Service) SellTier(g *domain.Game, wallet string, space int) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	prop, sp, err := s.ownedProperty(g, p, space)
	if err != nil {
		return nil, err
	}
	if !prop.Developed() {
		return nil, ErrNoTiersToSell
	}
	if s.rules.EvenBuild && !prop.FullProtocol {
		for sib, t := range groupTiers(g, sp.Group) {
			if sib != space && prop.Tier < t {
				return nil, ErrUnevenBuild
			}
		}
	}

	proceeds := sp.LPCost / 2
	if prop.FullProtocol {
		prop.FullProtocol = false
		prop.Tier = 4
	} else {
		prop.Tier--
	}
	payFromBank(g, p, proceeds)
	return []Event{{
		Kind:    EventTierSold,
		Payload: BuildPayload{Seat: p.Seat, Space: space, Tier: prop.Tier, Cost: proceeds},
	}}, nil
}

// Mortgage pledges an undeveloped property for half its price.
func (s *Service) Mortgage(g *domain.Game, wallet string, space int) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	prop, sp, err := s.ownedProperty(g, p, space)
	if err != nil {
		return nil, err
	}
	if prop.Mortgaged {
		return nil, ErrMortgaged
	}
	if prop.Developed() {
		return nil, ErrDevelopedMortgage
	}

	prop.Mortgaged = true
	payFromBank(g, p, sp.MortgageValue)
	return []Event{{
		Kind:    EventPropertyMortgaged,
		Payload: PropertyPayload{Seat: p.Seat, Space: space, Price: sp.MortgageValue},
	}}, nil
}

// Unmortgage redeems a mortgage for its value plus ten percent interest.
func (s *Service) Unmortgage(g *domain.Game, wallet string, space int) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	prop, sp, err := s.ownedProperty(g, p, space)
	if err != nil {
		return nil, err
	}
	if !prop.Mortgaged {
		return nil, ErrNotMortgaged
	}
	cost := sp.MortgageValue + sp.MortgageValue/10
	if !p.CanAfford(cost) {
		return nil, ErrInsufficientFunds
	}

	payToBank(g, p, cost)
	prop.Mortgaged = false
	return []Event{{
		Kind:    EventPropertyUnmortgaged,
		Payload: PropertyPayload{Seat: p.Seat, Space: space, Price: cost},
	}}, nil
}

// ownedProperty validates a space index and the actor's ownership.
func (s *Service) ownedProperty(g *domain.Game, p *domain.Player, space int) (*domain.Property, board.Space, error) {
	if space < 0 || space >= board.Size {
		return nil, board.Space{}, ErrInvalidSpace
	}
	sp := board.At(space)
	if !sp.Purchasable() {
		return nil, board.Space{}, ErrNotPurchasable
	}
	prop := &g.Properties[space]
	if prop.Owner != p.Seat {
		return nil, board.Space{}, ErrNotOwner
	}
	return prop, sp, nil
}
