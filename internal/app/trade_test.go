package app

import (
	"testing"

	"blockpoly/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestProposeTradeValidation(t *testing.T) {
	svc, g := startedGame(t, 2)

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{Recipient: 0})
	require.ErrorIs(t, err, ErrInvalidTrade)

	_, err = svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{Recipient: 1})
	require.ErrorIs(t, err, ErrInvalidTrade) // empty offer

	_, err = svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.ErrorIs(t, err, ErrNotOwner)

	g.Properties[3].Owner = 0
	g.Properties[3].Tier = 1
	_, err = svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.ErrorIs(t, err, ErrInvalidTrade) // developed holdings stay put

	g.Properties[3].Tier = 0
	evs, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3}, RequestedAmount: 40_000_000,
	})
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventTradeProposed))
	require.Equal(t, g.Turn+domain.TradeExpiryTurns, g.Trades[0].ExpiresTurn)
}

func TestAcceptTradeSwapsAtomically(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[3].Owner = 0
	g.Properties[6].Owner = 1
	g.Players[0].ImmunityCards = 1
	p0Before, p1Before := g.Players[0].Balance, g.Players[1].Balance

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient:           1,
		OfferedProperties:   []int{3},
		OfferedAmount:       25_000_000,
		OfferedImmunity:     true,
		RequestedProperties: []int{6},
		RequestedAmount:     10_000_000,
	})
	require.NoError(t, err)

	_, err = svc.AcceptTrade(g, wallet(0), "t1")
	require.ErrorIs(t, err, ErrNotRecipient)

	evs, err := svc.AcceptTrade(g, wallet(1), "t1")
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventTradeAccepted))
	require.Equal(t, 1, g.Properties[3].Owner)
	require.Equal(t, 0, g.Properties[6].Owner)
	require.Equal(t, p0Before-25_000_000+10_000_000, g.Players[0].Balance)
	require.Equal(t, p1Before+25_000_000-10_000_000, g.Players[1].Balance)
	require.Zero(t, g.Players[0].ImmunityCards)
	require.Equal(t, 1, g.Players[1].ImmunityCards)
	require.Empty(t, g.Trades)
}

func TestAcceptTradeRevalidatesOwnership(t *testing.T) {
	svc, g := startedGame(t, 3)
	g.Properties[3].Owner = 0

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.NoError(t, err)

	// The property changes hands before acceptance; nothing may move.
	g.Properties[3].Owner = 2
	p1Before := g.Players[1].Balance

	_, err = svc.AcceptTrade(g, wallet(1), "t1")
	require.ErrorIs(t, err, ErrNotOwner)
	require.Equal(t, 2, g.Properties[3].Owner)
	require.Equal(t, p1Before, g.Players[1].Balance)
}

func TestAcceptExpiredTrade(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[3].Owner = 0

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.NoError(t, err)

	g.Turn = g.Trades[0].ExpiresTurn + 1
	_, err = svc.AcceptTrade(g, wallet(1), "t1")
	require.ErrorIs(t, err, ErrTradeExpired)
	require.Empty(t, g.Trades)
}

func TestProposeReplacesOpenOffer(t *testing.T) {
	svc, g := startedGame(t, 3)
	g.Properties[3].Owner = 0
	g.Properties[1].Owner = 0

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.NoError(t, err)
	_, err = svc.ProposeTrade(g, wallet(0), "t2", TradeTerms{
		Recipient: 2, OfferedProperties: []int{1},
	})
	require.NoError(t, err)

	require.Len(t, g.Trades, 1)
	require.Equal(t, "t2", g.Trades[0].ID)
	_, err = svc.AcceptTrade(g, wallet(1), "t1")
	require.ErrorIs(t, err, ErrTradeNotFound)
}

func TestRejectTrade(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[3].Owner = 0

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.NoError(t, err)

	evs, err := svc.RejectTrade(g, wallet(1), "t1")
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventTradeRejected))
	require.Empty(t, g.Trades)
	require.Equal(t, 0, g.Properties[3].Owner)
}

func TestProposerMayWithdraw(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[3].Owner = 0

	_, err := svc.ProposeTrade(g, wallet(0), "t1", TradeTerms{
		Recipient: 1, OfferedProperties: []int{3},
	})
	require.NoError(t, err)

	_, err = svc.RejectTrade(g, wallet(0), "t1")
	require.NoError(t, err)
	require.Empty(t, g.Trades)
}
