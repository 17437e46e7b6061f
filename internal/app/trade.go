package app

import (
	"blockpoly/internal/domain"
)

// TradeTerms are the caller-supplied terms of a trade proposal.
type TradeTerms struct {
	Recipient           int
	OfferedProperties   []int
	OfferedAmount       int64
	RequestedProperties []int
	RequestedAmount     int64
	OfferedImmunity     bool
	RequestedImmunity   bool
}

// ProposeTrade opens a trade offer toward another seat. A proposer holds
// at most one open offer; proposing again replaces it.
func (s *Service) ProposeTrade(g *domain.Game, wallet, tradeID string, terms TradeTerms) ([]Event, error) {
	p, err := s.anyPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if terms.Recipient < 0 || terms.Recipient >= len(g.Players) || terms.Recipient == p.Seat {
		return nil, ErrInvalidTrade
	}
	recipient := g.Players[terms.Recipient]
	if recipient.Bankrupt {
		return nil, ErrInvalidTrade
	}

	offer := &domain.TradeOffer{
		ID:                  tradeID,
		Proposer:            p.Seat,
		Recipient:           terms.Recipient,
		OfferedProperties:   terms.OfferedProperties,
		OfferedAmount:       terms.OfferedAmount,
		RequestedProperties: terms.RequestedProperties,
		RequestedAmount:     terms.RequestedAmount,
		OfferedImmunity:     terms.OfferedImmunity,
		RequestedImmunity:   terms.RequestedImmunity,
		ExpiresTurn:         g.Turn + s.rules.TradeExpiryTurns,
	}
	if offer.Empty() || terms.OfferedAmount < 0 || terms.RequestedAmount < 0 {
		return nil, ErrInvalidTrade
	}
	if err := s.validateTradeSides(g, offer); err != nil {
		return nil, err
	}

	g.Trades[p.Seat] = offer
	return []Event{{
		Kind:    EventTradeProposed,
		Payload: TradePayload{TradeID: tradeID, Proposer: p.Seat, Recipient: terms.Recipient},
	}}, nil
}

// AcceptTrade executes an open offer atomically. Every term is
// re-validated against current state before anything moves; either the
// whole exchange applies or none of it does.
func (s *Service) AcceptTrade(g *domain.Game, wallet, tradeID string) ([]Event, error) {
	p, err := s.anyPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	offer, ok := s.findTrade(g, tradeID)
	if !ok {
		return nil, ErrTradeNotFound
	}
	if offer.Recipient != p.Seat {
		return nil, ErrNotRecipient
	}
	if offer.Expired(g.Turn) {
		delete(g.Trades, offer.Proposer)
		return nil, ErrTradeExpired
	}
	proposer := g.Players[offer.Proposer]
	if proposer.Bankrupt {
		delete(g.Trades, offer.Proposer)
		return nil, ErrTradeNotFound
	}
	if err := s.validateTradeSides(g, offer); err != nil {
		return nil, err
	}
	if proposer.Balance < offer.OfferedAmount || p.Balance < offer.RequestedAmount {
		return nil, ErrInsufficientFunds
	}

	for _, space := range offer.OfferedProperties {
		g.Properties[space].Owner = p.Seat
	}
	for _, space := range offer.RequestedProperties {
		g.Properties[space].Owner = proposer.Seat
	}
	transfer(proposer, p, offer.OfferedAmount)
	transfer(p, proposer, offer.RequestedAmount)
	if offer.OfferedImmunity {
		proposer.ImmunityCards--
		p.ImmunityCards++
	}
	if offer.RequestedImmunity {
		p.ImmunityCards--
		proposer.ImmunityCards++
	}
	delete(g.Trades, offer.Proposer)

	return []Event{{
		Kind:    EventTradeAccepted,
		Payload: TradePayload{TradeID: tradeID, Proposer: offer.Proposer, Recipient: p.Seat},
	}}, nil
}

// RejectTrade withdraws an open offer. The recipient or the proposer
// may reject.
func (s *Service) RejectTrade(g *domain.Game, wallet, tradeID string) ([]Event, error) {
	p, err := s.anyPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	offer, ok := s.findTrade(g, tradeID)
	if !ok {
		return nil, ErrTradeNotFound
	}
	if offer.Recipient != p.Seat && offer.Proposer != p.Seat {
		return nil, ErrNotRecipient
	}
	delete(g.Trades, offer.Proposer)
	return []Event{{
		Kind:    EventTradeRejected,
		Payload: TradePayload{TradeID: tradeID, Proposer: offer.Proposer, Recipient: offer.Recipient},
	}}, nil
}

func (s *Service) findTrade(g *domain.Game, tradeID string) (*domain.TradeOffer, bool) {
	for _, offer := range g.Trades {
		if offer.ID == tradeID {
			return offer, true
		}
	}
	return nil, false
}

// validateTradeSides checks ownership, development, and immunity-card
// holdings behind every term of an offer.
func (s *Service) validateTradeSides(g *domain.Game, offer *domain.TradeOffer) error {
	proposer := g.Players[offer.Proposer]
	recipient := g.Players[offer.Recipient]

	check := func(spaces []int, seat int) error {
		for _, space := range spaces {
			if space < 0 || space >= len(g.Properties) {
				return ErrInvalidSpace
			}
			prop := &g.Properties[space]
			if prop.Owner != seat {
				return ErrNotOwner
			}
			// Developed properties must be liquidated before changing hands.
			if prop.Developed() {
				return ErrInvalidTrade
			}
		}
		return nil
	}
	if err := check(offer.OfferedProperties, offer.Proposer); err != nil {
		return err
	}
	if err := check(offer.RequestedProperties, offer.Recipient); err != nil {
		return err
	}
	if offer.OfferedImmunity && proposer.ImmunityCards == 0 {
		return ErrNoImmunityCard
	}
	if offer.RequestedImmunity && recipient.ImmunityCards == 0 {
		return ErrNoImmunityCard
	}
	return nil
}
