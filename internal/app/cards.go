package app

import (
	"blockpoly/internal/board"
	"blockpoly/internal/domain"
)

// DrawCard draws from the deck matching the space the player stands on.
// The card stays pending until ResolveCard applies it.
func (s *Service) DrawCard(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseDrawCard {
		return nil, ErrWrongPhase
	}
	if g.PendingCard != nil {
		return nil, ErrWrongPhase
	}

	var kind domain.DeckKind
	switch board.At(p.Position).Type {
	case board.TypeCardAlpha:
		kind = domain.DeckAlpha
		g.PendingCard = &domain.DrawnCard{Deck: kind, ID: g.AlphaDeck.Draw()}
	case board.TypeCardGovernance:
		kind = domain.DeckGovernance
		g.PendingCard = &domain.DrawnCard{Deck: kind, ID: g.GovernanceDeck.Draw()}
	default:
		return nil, ErrWrongPhase
	}

	card, _ := domain.CardAt(kind, g.PendingCard.ID)
	return []Event{{
		Kind: EventCardDrawn,
		Payload: CardPayload{
			Seat: p.Seat, Deck: kind, CardID: card.ID, Name: card.Name,
		},
	}}, nil
}

// ResolveCard applies the pending card's effect. Monetary effects settle
// immediately; movement effects re-enter landing resolution at the new
// position and can open buy decisions or rent obligations.
func (s *Service) ResolveCard(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseDrawCard || g.PendingCard == nil {
		return nil, ErrNoPendingCard
	}
	deck := g.PendingCard.Deck
	card, ok := domain.CardAt(deck, g.PendingCard.ID)
	if !ok {
		return nil, ErrNoPendingCard
	}
	g.PendingCard = nil

	events := []Event{{
		Kind: EventCardResolved,
		Payload: CardPayload{
			Seat: p.Seat, Deck: deck, CardID: card.ID, Name: card.Name,
		},
	}}

	switch card.Effect {
	case domain.EffectMoveTo:
		events = append(events, s.movePlayer(g, p, card.Target, true)...)
		return s.continueLanding(g, p, 1, events)

	case domain.EffectMoveToNearestBridge:
		events = append(events, s.movePlayer(g, p, board.NearestBridgeAhead(p.Position), true)...)
		return s.continueLanding(g, p, 2, events)

	case domain.EffectMoveRelative:
		events = append(events, s.movePlayer(g, p, p.Position+card.Steps, card.Steps > 0)...)
		return s.continueLanding(g, p, 1, events)

	case domain.EffectAdvanceToUnowned:
		target := board.NearestPropertyAhead(p.Position, func(space int) bool {
			return !g.Properties[space].Owned()
		})
		if target != p.Position {
			events = append(events, s.movePlayer(g, p, target, true)...)
			g.BuyDiscount = true
		}
		return s.continueLanding(g, p, 1, events)

	case domain.EffectCollect:
		events = append(events, s.collect(g, p, card.Amount, card.PerPlayer)...)

	case domain.EffectPay:
		more, err := s.payOut(g, p, card.Amount, card.PerPlayer)
		if err != nil {
			return nil, err
		}
		events = append(events, more...)

	case domain.EffectPayDiceToll:
		toll := card.Amount
		if g.Dice != nil {
			toll = int64(g.Dice.Total()) * card.Amount
		}
		more, err := s.chargeOrBankrupt(g, p, toll)
		if err != nil {
			return nil, err
		}
		events = append(events, more...)

	case domain.EffectLosePercent:
		loss := p.Balance * card.Percent / 100
		if loss > 0 {
			payToBank(g, p, loss)
		}

	case domain.EffectBullRun:
		g.BullRunActive = true
		g.BullRunEndsRound = g.Round + domain.BullRunRounds
		events = append(events, Event{
			Kind:    EventBullRunActivated,
			Payload: BullRunPayload{EndsRound: g.BullRunEndsRound},
		})

	case domain.EffectImmunity:
		p.ImmunityCards++

	case domain.EffectStealLastRent:
		if g.LastRentAmount > 0 && g.LastRentOwner >= 0 && g.LastRentOwner != p.Seat {
			owner := g.Players[g.LastRentOwner]
			stolen := g.LastRentAmount
			if owner.Balance < stolen {
				stolen = owner.Balance
			}
			transfer(owner, p, stolen)
			g.LastRentAmount = 0
			g.LastRentPayer = -1
			g.LastRentOwner = -1
		}

	case domain.EffectFlashLoan:
		if p.FlashLoanDue > 0 {
			return nil, ErrFlashLoanActive
		}
		payFromBank(g, p, domain.FlashLoanAmount)
		p.FlashLoanDue = domain.FlashLoanRepay
		events = append(events, Event{
			Kind:    EventFlashLoanTaken,
			Payload: AmountPayload{Seat: p.Seat, Amount: domain.FlashLoanAmount},
		})

	case domain.EffectLoseCheapestProperty:
		if space, ok := cheapestUndeveloped(g, p.Seat); ok {
			g.Properties[space].ResetToBank()
			events = append(events, Event{
				Kind:    EventPropertyRepossessed,
				Payload: PropertyPayload{Seat: p.Seat, Space: space},
			})
		}

	case domain.EffectForcedSale:
		if space, ok := mostExpensiveOwned(g, p.Seat); ok {
			prop := &g.Properties[space]
			proceeds := board.At(space).Price / 2
			if prop.Mortgaged {
				// The mortgage advance was already paid out.
				proceeds -= board.At(space).MortgageValue
			}
			proceeds += prop.StripDevelopments()
			prop.ResetToBank()
			payFromBank(g, p, proceeds)
			events = append(events, Event{
				Kind:    EventPropertyRepossessed,
				Payload: PropertyPayload{Seat: p.Seat, Space: space, Price: proceeds},
			})
		}

	case domain.EffectGoToRugpull:
		p.SendToRugpull(board.SpaceRugpullZone)
		g.DoublesPending = false
		events = append(events, Event{
			Kind:    EventRugpullEntered,
			Payload: RugpullPayload{Seat: p.Seat, Reason: "card"},
		})

	case domain.EffectPayPerBuilding:
		lps, protocols := holdingsOf(g, p.Seat)
		levy := int64(lps)*card.Amount + int64(protocols)*card.ProtocolAmount
		if levy > 0 {
			more, err := s.chargeOrBankrupt(g, p, levy)
			if err != nil {
				return nil, err
			}
			events = append(events, more...)
		}

	case domain.EffectCollectPerLP:
		lps, _ := holdingsOf(g, p.Seat)
		if lps > 0 {
			payFromBank(g, p, int64(lps)*card.Amount)
		}

	case domain.EffectCollectPerSet:
		sets := g.CompleteSetCount(p.Seat)
		if sets > 0 {
			payFromBank(g, p, int64(sets)*card.Amount)
		}

	case domain.EffectBridgeExploit:
		if space, ok := firstOwnedOfType(g, p.Seat, board.TypeBridge); ok {
			g.Properties[space].ResetToBank()
			events = append(events, Event{
				Kind:    EventPropertyRepossessed,
				Payload: PropertyPayload{Seat: p.Seat, Space: space},
			})
		} else {
			payFromBank(g, p, card.Amount)
		}

	case domain.EffectRugpullInsurance:
		if p.InRugpull() {
			p.Release()
			events = append(events, Event{
				Kind:    EventRugpullExited,
				Payload: RugpullPayload{Seat: p.Seat, Method: "card"},
			})
		} else {
			payFromBank(g, p, card.Amount)
		}
	}

	events = append(events, s.finishIfWon(g)...)
	events = append(events, s.endTurn(g)...)
	return events, nil
}

// continueLanding finishes a movement card by applying the landing
// effect of the destination.
func (s *Service) continueLanding(g *domain.Game, p *domain.Player, rentMultiplier int64, events []Event) ([]Event, error) {
	more, err := s.applyLanding(g, p, rentMultiplier)
	if err != nil {
		return nil, err
	}
	return append(events, more...), nil
}

// collect pays the drawer from the bank, or from every other live player.
// Short payers contribute what they have.
func (s *Service) collect(g *domain.Game, p *domain.Player, amount int64, perPlayer bool) []Event {
	if !perPlayer {
		payFromBank(g, p, amount)
		return nil
	}
	var events []Event
	for _, other := range g.Players {
		if other.Seat == p.Seat || other.Bankrupt {
			continue
		}
		pay := amount
		if other.Balance < pay {
			pay = other.Balance
		}
		transfer(other, p, pay)
	}
	return events
}

// payOut charges the drawer toward the bank, or toward every other live
// player. A drawer who cannot cover the total folds.
func (s *Service) payOut(g *domain.Game, p *domain.Player, amount int64, perPlayer bool) ([]Event, error) {
	if !perPlayer {
		return s.chargeOrBankrupt(g, p, amount)
	}
	others := make([]*domain.Player, 0, len(g.Players))
	for _, other := range g.Players {
		if other.Seat != p.Seat && !other.Bankrupt {
			others = append(others, other)
		}
	}
	total := amount * int64(len(others))
	if !p.CanAfford(total) {
		return s.resolveBankruptcy(g, p, domain.BankOwner)
	}
	for _, other := range others {
		transfer(p, other, amount)
	}
	return nil, nil
}

func holdingsOf(g *domain.Game, seat int) (lps, protocols int) {
	for _, prop := range g.Properties {
		if prop.Owner != seat {
			continue
		}
		lps += prop.Tier
		if prop.FullProtocol {
			protocols++
		}
	}
	return lps, protocols
}

func cheapestUndeveloped(g *domain.Game, seat int) (int, bool) {
	best, found := 0, false
	var bestPrice int64
	for _, prop := range g.Properties {
		if prop.Owner != seat || prop.Developed() {
			continue
		}
		price := board.At(prop.Space).Price
		if !found || price < bestPrice {
			best, bestPrice, found = prop.Space, price, true
		}
	}
	return best, found
}

func mostExpensiveOwned(g *domain.Game, seat int) (int, bool) {
	best, found := 0, false
	var bestPrice int64
	for _, prop := range g.Properties {
		if prop.Owner != seat {
			continue
		}
		price := board.At(prop.Space).Price
		if !found || price > bestPrice {
			best, bestPrice, found = prop.Space, price, true
		}
	}
	return best, found
}

func firstOwnedOfType(g *domain.Game, seat int, t board.SpaceType) (int, bool) {
	for _, prop := range g.Properties {
		if prop.Owner == seat && board.At(prop.Space).Type == t {
			return prop.Space, true
		}
	}
	return 0, false
}
