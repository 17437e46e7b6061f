package app

import (
	"blockpoly/internal/domain"
)

// DeclareBankruptcy folds the acting player. Assets settle toward the
// rent creditor when an unpaid obligation is open, to the bank otherwise.
func (s *Service) DeclareBankruptcy(g *domain.Game, wallet string) ([]Event, error) {
	p, err := s.anyPlayer(g, wallet)
	if err != nil {
		return nil, err
	}
	creditor := domain.BankOwner
	if g.RentDue != nil && p.Seat == g.Current {
		creditor = g.RentDue.Owner
	}
	events, err := s.resolveBankruptcy(g, p, creditor)
	if err != nil {
		return nil, err
	}
	if g.Status == domain.StatusInProgress && p.Seat == g.Current {
		g.DoublesPending = false
		g.AdvanceTurn()
		events = append(events, s.turnAdvancedEvent(g))
		events = append(events, s.settleFlashLoan(g)...)
	}
	return events, nil
}

// resolveBankruptcy liquidates a seat. Cash and holdings pass to the
// creditor seat, or back to the bank when the bank is owed. The win
// detector runs afterwards.
func (s *Service) resolveBankruptcy(g *domain.Game, p *domain.Player, creditor int) ([]Event, error) {
	if p.Bankrupt {
		return nil, ErrPlayerBankrupt
	}
	p.Bankrupt = true
	p.FlashLoanDue = 0
	p.Release()
	if g.RentDue != nil && g.Current == p.Seat {
		g.RentDue = nil
	}
	delete(g.Trades, p.Seat)
	for seat, offer := range g.Trades {
		if offer.Recipient == p.Seat {
			delete(g.Trades, seat)
		}
	}
	if g.Auction != nil && g.Auction.HighestBidder == p.Seat {
		g.Auction.HighestBidder = -1
	}

	events := []Event{{
		Kind:    EventPlayerBankrupt,
		Payload: BankruptcyPayload{Seat: p.Seat, Creditor: creditor},
	}}

	if creditor == domain.BankOwner || g.Players[creditor].Bankrupt {
		g.BankReserve += p.Balance
		p.Balance = 0
		for i := range g.Properties {
			if g.Properties[i].Owner == p.Seat {
				g.Properties[i].ResetToBank()
			}
		}
	} else {
		to := g.Players[creditor]
		transfer(p, to, p.Balance)
		to.ImmunityCards += p.ImmunityCards
		p.ImmunityCards = 0
		for i := range g.Properties {
			prop := &g.Properties[i]
			if prop.Owner != p.Seat {
				continue
			}
			// Developments liquidate to the bank; the creditor takes the
			// deed, keeping any mortgage in place.
			payFromBank(g, to, prop.StripDevelopments())
			prop.Owner = creditor
		}
	}

	events = append(events, s.finishIfWon(g)...)
	return events, nil
}
