package app

import (
	"blockpoly/internal/board"
	"blockpoly/internal/domain"
)

// RequestRoll opens a randomness request for the current player's move.
// Dice values arrive later through ConsumeRandomness.
func (s *Service) RequestRoll(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseRollDice {
		if g.Phase == domain.PhaseAwaitingRandomness {
			return nil, ErrRandomnessPending
		}
		return nil, ErrWrongPhase
	}
	if p.InRugpull() {
		return nil, ErrInRugpull
	}
	g.Phase = domain.PhaseAwaitingRandomness
	return []Event{{
		Kind:    EventRollRequested,
		Payload: RollRequestedPayload{Seat: p.Seat},
	}}, nil
}

// ConsumeRandomness fulfills a pending roll with verified random bytes.
// The first two bytes derive the dice. Three consecutive doubles, or
// landing on SEC Investigation, send the player to the penalty zone.
func (s *Service) ConsumeRandomness(g *domain.Game, randomness []byte) ([]Event, error) {
	if g.Status != domain.StatusInProgress {
		return nil, ErrGameNotStarted
	}
	if g.Phase != domain.PhaseAwaitingRandomness {
		return nil, ErrNoRollRequested
	}
	if len(randomness) < 32 {
		return nil, ErrBadRandomness
	}
	p := g.CurrentPlayer()

	dice := domain.DiceRoll{
		Die1: int(randomness[0]%6) + 1,
		Die2: int(randomness[1]%6) + 1,
	}
	g.Dice = &dice
	events := []Event{{
		Kind: EventDiceRolled,
		Payload: DiceRolledPayload{
			Seat: p.Seat, Die1: dice.Die1, Die2: dice.Die2, Doubles: dice.IsDoubles(),
		},
	}}

	if g.RugpullAttempt {
		g.RugpullAttempt = false
		return s.resolveRugpullRoll(g, p, dice, events)
	}

	if dice.IsDoubles() {
		p.DoublesStreak++
		if p.DoublesStreak >= domain.MaxDoublesStreak {
			p.SendToRugpull(board.SpaceRugpullZone)
			events = append(events, Event{
				Kind:    EventRugpullEntered,
				Payload: RugpullPayload{Seat: p.Seat, Reason: "doubles"},
			})
			g.DoublesPending = false
			events = append(events, s.endTurn(g)...)
			return events, nil
		}
		g.DoublesPending = true
	} else {
		p.DoublesStreak = 0
		g.DoublesPending = false
	}

	events = append(events, s.movePlayer(g, p, p.Position+dice.Total(), true)...)

	if board.At(p.Position).Type == board.TypeGoToRugpull {
		p.SendToRugpull(board.SpaceRugpullZone)
		events = append(events, Event{
			Kind:    EventRugpullEntered,
			Payload: RugpullPayload{Seat: p.Seat, Reason: "landing"},
		})
		g.DoublesPending = false
		events = append(events, s.endTurn(g)...)
		return events, nil
	}

	g.Phase = domain.PhaseLandingEffect
	return events, nil
}

// resolveRugpullRoll applies an escape-attempt roll: doubles walk free and
// move immediately, anything else burns one held turn. A final failed
// attempt force-pays bail.
func (s *Service) resolveRugpullRoll(g *domain.Game, p *domain.Player, dice domain.DiceRoll, events []Event) ([]Event, error) {
	if dice.IsDoubles() {
		p.Release()
		events = append(events, Event{
			Kind:    EventRugpullExited,
			Payload: RugpullPayload{Seat: p.Seat, Method: "roll"},
		})
		// An escape roll never grants a bonus roll.
		g.DoublesPending = false
		p.DoublesStreak = 0
		events = append(events, s.movePlayer(g, p, p.Position+dice.Total(), true)...)
		g.Phase = domain.PhaseLandingEffect
		return events, nil
	}

	p.RugpullTurns--
	if p.RugpullTurns <= 0 {
		p.Release()
		more, err := s.chargeOrBankrupt(g, p, domain.RugpullBailAmount)
		if err != nil {
			return nil, err
		}
		events = append(events, more...)
		if !p.Bankrupt {
			events = append(events, Event{
				Kind:    EventRugpullExited,
				Payload: RugpullPayload{Seat: p.Seat, Method: "served"},
			})
		}
		events = append(events, s.finishIfWon(g)...)
	}
	events = append(events, s.endTurn(g)...)
	return events, nil
}

// ResolveLanding applies the landing effect of the current position.
// Card spaces park in the draw phase; ownable spaces either open a buy
// decision or post a rent obligation.
func (s *Service) ResolveLanding(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseLandingEffect {
		return nil, ErrWrongPhase
	}
	return s.applyLanding(g, p, 1)
}

// applyLanding runs the landing effect for the player's position.
// rentMultiplier inflates a posted rent obligation (bridge cards use 2).
func (s *Service) applyLanding(g *domain.Game, p *domain.Player, rentMultiplier int64) ([]Event, error) {
	sp := board.At(p.Position)
	var events []Event

	switch sp.Type {
	case board.TypeGenesis:
		payFromBank(g, p, domain.GenesisPayout)
		events = append(events, Event{
			Kind:    EventGenesisPayout,
			Payload: AmountPayload{Seat: p.Seat, Amount: domain.GenesisPayout},
		})
		events = append(events, s.endTurn(g)...)

	case board.TypeTax:
		more, err := s.chargeOrBankrupt(g, p, sp.BaseRent)
		if err != nil {
			return nil, err
		}
		events = append(events, more...)
		if !p.Bankrupt {
			events = append(events, Event{
				Kind:    EventTaxPaid,
				Payload: AmountPayload{Seat: p.Seat, Amount: sp.BaseRent},
			})
		}
		events = append(events, s.finishIfWon(g)...)
		events = append(events, s.endTurn(g)...)

	case board.TypeFreeParking, board.TypeRugpull:
		events = append(events, s.endTurn(g)...)

	case board.TypeGoToRugpull:
		// Normally intercepted at move time.
		p.SendToRugpull(board.SpaceRugpullZone)
		g.DoublesPending = false
		events = append(events, Event{
			Kind:    EventRugpullEntered,
			Payload: RugpullPayload{Seat: p.Seat, Reason: "landing"},
		})
		events = append(events, s.endTurn(g)...)

	case board.TypeCardAlpha, board.TypeCardGovernance:
		g.Phase = domain.PhaseDrawCard

	case board.TypeProperty, board.TypeBridge, board.TypeUtility:
		prop := &g.Properties[p.Position]
		switch {
		case !prop.Owned():
			g.Phase = domain.PhaseBuyDecision
		case prop.Owner == p.Seat, prop.Mortgaged:
			events = append(events, s.endTurn(g)...)
		default:
			diceTotal := 7
			if g.Dice != nil {
				diceTotal = g.Dice.Total()
			}
			g.RentDue = &domain.RentDue{
				Space:      p.Position,
				Owner:      prop.Owner,
				Multiplier: rentMultiplier,
			}
			g.Phase = domain.PhaseLandingEffect
			events = append(events, Event{
				Kind: EventRentDue,
				Payload: RentDuePayload{
					Seat:       p.Seat,
					Owner:      prop.Owner,
					Space:      p.Position,
					Amount:     g.RentAt(p.Position, diceTotal) * rentMultiplier,
					Multiplier: rentMultiplier,
				},
			})
		}

	default:
		events = append(events, s.endTurn(g)...)
	}
	return events, nil
}

// PayRent settles the posted rent obligation. A payer who cannot cover
// it must first mortgage or sell, or declare bankruptcy.
func (s *Service) PayRent(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.RentDue == nil {
		return nil, ErrNoRentDue
	}
	due := g.RentDue
	owner := g.Players[due.Owner]
	if owner.Bankrupt {
		// Creditor folded while the obligation was open.
		g.RentDue = nil
		return s.endTurn(g), nil
	}

	diceTotal := 7
	if g.Dice != nil {
		diceTotal = g.Dice.Total()
	}
	amount := g.RentAt(due.Space, diceTotal) * due.Multiplier
	if !p.CanAfford(amount) {
		return nil, ErrInsufficientFunds
	}

	transfer(p, owner, amount)
	g.RentDue = nil
	g.LastRentPayer = p.Seat
	g.LastRentOwner = due.Owner
	g.LastRentAmount = amount

	events := []Event{{
		Kind: EventRentPaid,
		Payload: RentPaidPayload{
			Payer: p.Seat, Owner: due.Owner, Space: due.Space, Amount: amount,
		},
	}}
	events = append(events, s.endTurn(g)...)
	return events, nil
}

// RugpullPayBail buys the current player out of the penalty zone and
// lets them roll this turn.
func (s *Service) RugpullPayBail(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseRugpullDecision {
		return nil, ErrWrongPhase
	}
	if !p.InRugpull() {
		return nil, ErrNotInRugpull
	}
	if !p.CanAfford(domain.RugpullBailAmount) {
		return nil, ErrInsufficientFunds
	}
	payToBank(g, p, domain.RugpullBailAmount)
	p.Release()
	g.Phase = domain.PhaseRollDice
	return []Event{{
		Kind:    EventRugpullExited,
		Payload: RugpullPayload{Seat: p.Seat, Method: "bail"},
	}}, nil
}

// RugpullUseCard spends a banked immunity card to exit the penalty zone.
func (s *Service) RugpullUseCard(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseRugpullDecision {
		return nil, ErrWrongPhase
	}
	if !p.InRugpull() {
		return nil, ErrNotInRugpull
	}
	if p.ImmunityCards == 0 {
		return nil, ErrNoImmunityCard
	}
	p.ImmunityCards--
	p.Release()
	g.Phase = domain.PhaseRollDice
	return []Event{{
		Kind:    EventRugpullExited,
		Payload: RugpullPayload{Seat: p.Seat, Method: "card"},
	}}, nil
}

// RugpullAttemptRoll requests an escape roll: doubles walk free.
func (s *Service) RugpullAttemptRoll(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.actingPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	if g.Phase != domain.PhaseRugpullDecision {
		return nil, ErrWrongPhase
	}
	if !p.InRugpull() {
		return nil, ErrNotInRugpull
	}
	g.Phase = domain.PhaseAwaitingRandomness
	g.RugpullAttempt = true
	return []Event{{
		Kind:    EventRollRequested,
		Payload: RollRequestedPayload{Seat: p.Seat, RugpullAttempt: true},
	}}, nil
}
