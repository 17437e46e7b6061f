package app

import (
	"testing"

	"blockpoly/internal/board"
	"blockpoly/internal/domain"

	"github.com/stretchr/testify/require"
)

// atBuyDecision parks seat 0 on the given space with the buy decision open.
func atBuyDecision(g *domain.Game, space int) {
	g.Players[0].Position = space
	g.Phase = domain.PhaseBuyDecision
}

func TestBuyProperty(t *testing.T) {
	svc, g := startedGame(t, 2)
	atBuyDecision(g, 1)
	balBefore := g.Players[0].Balance

	evs, err := svc.BuyProperty(g, wallet(0))
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventPropertyPurchased))
	require.Equal(t, 0, g.Properties[1].Owner)
	require.Equal(t, balBefore-board.At(1).Price, g.Players[0].Balance)
	require.Equal(t, 1, g.Current)
}

func TestBuyPropertyDiscounted(t *testing.T) {
	svc, g := startedGame(t, 2)
	atBuyDecision(g, 1)
	g.BuyDiscount = true
	balBefore := g.Players[0].Balance

	_, err := svc.BuyProperty(g, wallet(0))
	require.NoError(t, err)
	require.Equal(t, balBefore-board.At(1).Price/2, g.Players[0].Balance)
	require.False(t, g.BuyDiscount)
}

func TestBuyPropertyInsufficientFunds(t *testing.T) {
	svc, g := startedGame(t, 2)
	atBuyDecision(g, 39)
	g.Players[0].Balance = 1_000_000

	_, err := svc.BuyProperty(g, wallet(0))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, domain.BankOwner, g.Properties[39].Owner)
}

func TestDeclineOpensAuction(t *testing.T) {
	svc, g := startedGame(t, 3)
	atBuyDecision(g, 19)

	evs, err := svc.DeclineBuy(g, wallet(0))
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventAuctionStarted))
	require.Equal(t, domain.PhaseAuction, g.Phase)
	require.NotNil(t, g.Auction)
	require.Equal(t, board.At(19).Price/10, g.Auction.HighestBid)
	require.Equal(t, -1, g.Auction.HighestBidder)
}

func TestAuctionBidding(t *testing.T) {
	svc, g := startedGame(t, 3)
	atBuyDecision(g, 19)
	_, err := svc.DeclineBuy(g, wallet(0))
	require.NoError(t, err)
	opening := g.Auction.HighestBid

	_, err = svc.AuctionBid(g, wallet(1), opening)
	require.ErrorIs(t, err, ErrBidTooLow)

	// Any live seat may bid, including the decliner.
	_, err = svc.AuctionBid(g, wallet(1), opening+5_000_000)
	require.NoError(t, err)
	_, err = svc.AuctionBid(g, wallet(0), opening+10_000_000)
	require.NoError(t, err)
	require.Equal(t, 0, g.Auction.HighestBidder)

	g.Players[2].Balance = 1_000_000
	_, err = svc.AuctionBid(g, wallet(2), opening+20_000_000)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCloseAuctionAwardsHighBidder(t *testing.T) {
	svc, g := startedGame(t, 3)
	atBuyDecision(g, 19)
	_, err := svc.DeclineBuy(g, wallet(0))
	require.NoError(t, err)

	bid := g.Auction.HighestBid + 30_000_000
	_, err = svc.AuctionBid(g, wallet(1), bid)
	require.NoError(t, err)
	balBefore := g.Players[1].Balance

	evs, err := svc.CloseAuction(g, wallet(0))
	require.NoError(t, err)
	require.True(t, hasEvent(evs, EventAuctionClosed))
	require.Equal(t, 1, g.Properties[19].Owner)
	require.Equal(t, balBefore-bid, g.Players[1].Balance)
	require.Nil(t, g.Auction)
	require.Equal(t, 1, g.Current)
}

func TestCloseAuctionWithoutBidsLeavesSpaceWithBank(t *testing.T) {
	svc, g := startedGame(t, 2)
	atBuyDecision(g, 19)
	_, err := svc.DeclineBuy(g, wallet(0))
	require.NoError(t, err)

	// Empty wallet means the session layer closed on idle timeout.
	_, err = svc.CloseAuction(g, "")
	require.NoError(t, err)
	require.Equal(t, domain.BankOwner, g.Properties[19].Owner)
	require.Equal(t, 1, g.Current)
}

func TestBuildRequiresMonopoly(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0

	_, err := svc.BuildTier(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrIncompleteSet)
}

func TestBuildEvenAcrossGroup(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0

	_, err := svc.BuildTier(g, wallet(0), 1)
	require.NoError(t, err)
	require.Equal(t, 1, g.Properties[1].Tier)

	// A second pool on BONK would leave dogwifhat behind.
	_, err = svc.BuildTier(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrUnevenBuild)

	_, err = svc.BuildTier(g, wallet(0), 3)
	require.NoError(t, err)
	_, err = svc.BuildTier(g, wallet(0), 1)
	require.NoError(t, err)
	require.Equal(t, 2, g.Properties[1].Tier)
}

func TestBuildUnevenAllowedWhenDisabled(t *testing.T) {
	svc := NewService(Rules{EvenBuild: false, TradeExpiryTurns: domain.TradeExpiryTurns})
	g, err := svc.CreateGame("game-1", wallet(0), 2, 0, "")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := svc.Join(g, wallet(i), "p")
		require.NoError(t, err)
	}
	_, err = svc.Start(g, wallet(0), [32]byte{})
	require.NoError(t, err)

	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	for i := 0; i < 3; i++ {
		_, err = svc.BuildTier(g, wallet(0), 1)
		require.NoError(t, err)
	}
	require.Equal(t, 3, g.Properties[1].Tier)
	require.Equal(t, 0, g.Properties[3].Tier)
}

func TestBuildFullProtocol(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	g.Properties[1].Tier = 4
	g.Properties[3].Tier = 4

	_, err := svc.BuildFullProtocol(g, wallet(0), 1)
	require.NoError(t, err)
	require.True(t, g.Properties[1].FullProtocol)
	require.Equal(t, 0, g.Properties[1].Tier)

	_, err = svc.BuildFullProtocol(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrProtocolBuilt)

	_, err = svc.BuildTier(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrMaxTier)
}

func TestBuildProtocolRequiresTierFour(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	g.Properties[1].Tier = 3

	_, err := svc.BuildFullProtocol(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrMaxTier)
}

func TestSellTierStepsDown(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	g.Properties[1].FullProtocol = true
	balBefore := g.Players[0].Balance

	_, err := svc.SellTier(g, wallet(0), 1)
	require.NoError(t, err)
	require.False(t, g.Properties[1].FullProtocol)
	require.Equal(t, 4, g.Properties[1].Tier)
	require.Equal(t, balBefore+board.At(1).LPCost/2, g.Players[0].Balance)
}

func TestSellTierEvenRule(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	g.Properties[1].Tier = 1
	g.Properties[3].Tier = 2

	// Selling from BONK first would widen the gap.
	_, err := svc.SellTier(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrUnevenBuild)

	_, err = svc.SellTier(g, wallet(0), 3)
	require.NoError(t, err)
	require.Equal(t, 1, g.Properties[3].Tier)
}

func TestMortgageAndUnmortgage(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	balBefore := g.Players[0].Balance
	mv := board.At(1).MortgageValue

	_, err := svc.Mortgage(g, wallet(0), 1)
	require.NoError(t, err)
	require.True(t, g.Properties[1].Mortgaged)
	require.Equal(t, balBefore+mv, g.Players[0].Balance)

	_, err = svc.Mortgage(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrMortgaged)

	// Redemption costs the advance plus ten percent interest.
	_, err = svc.Unmortgage(g, wallet(0), 1)
	require.NoError(t, err)
	require.False(t, g.Properties[1].Mortgaged)
	require.Equal(t, balBefore-mv/10, g.Players[0].Balance)
}

func TestMortgageDevelopedPropertyRejected(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[1].Tier = 1

	_, err := svc.Mortgage(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrDevelopedMortgage)
}

func TestBuildOnMortgagedPropertyRejected(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 0
	g.Properties[3].Owner = 0
	g.Properties[1].Mortgaged = true

	_, err := svc.BuildTier(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrMortgaged)
}

func TestOwnershipValidation(t *testing.T) {
	svc, g := startedGame(t, 2)
	g.Properties[1].Owner = 1

	_, err := svc.Mortgage(g, wallet(0), 1)
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Mortgage(g, wallet(0), 40)
	require.ErrorIs(t, err, ErrInvalidSpace)

	_, err = svc.Mortgage(g, wallet(0), 4)
	require.ErrorIs(t, err, ErrNotPurchasable)
}
