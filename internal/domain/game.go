package domain

import "blockpoly/internal/board"

// Status represents the lifecycle stage of a game session.
type Status string

const (
	// StatusWaiting indicates the game is waiting for players to join.
	StatusWaiting Status = "waiting_for_players"
	// StatusInProgress indicates the game is actively being played.
	StatusInProgress Status = "in_progress"
	// StatusFinished indicates the game has concluded with a winner.
	StatusFinished Status = "finished"
)

// TurnPhase is the step of the turn state machine the game is parked in.
type TurnPhase string

const (
	PhaseRollDice            TurnPhase = "roll_dice"
	PhaseAwaitingRandomness  TurnPhase = "awaiting_randomness"
	PhaseLandingEffect       TurnPhase = "landing_effect"
	PhaseBuyDecision         TurnPhase = "buy_decision"
	PhaseDrawCard            TurnPhase = "draw_card"
	PhaseAuction             TurnPhase = "auction"
	PhaseRugpullDecision     TurnPhase = "rugpull_decision"
	PhaseFinished            TurnPhase = "finished"
)

// DiceRoll holds the two die values produced by randomness consumption.
type DiceRoll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// Total returns the combined pip count.
func (d DiceRoll) Total() int { return d.Die1 + d.Die2 }

// IsDoubles reports whether both dice show the same value.
func (d DiceRoll) IsDoubles() bool { return d.Die1 == d.Die2 }

// DrawnCard identifies a card drawn but not yet resolved.
type DrawnCard struct {
	Deck DeckKind `json:"deck"`
	ID   int      `json:"id"`
}

// Auction is the inline auction state for a declined property.
type Auction struct {
	Space         int   `json:"space"`
	HighestBid    int64 `json:"highest_bid"`
	HighestBidder int   `json:"highest_bidder"` // seat index, -1 while no bid
}

// RentDue marks an unresolved rent obligation created by landing on an
// owned space. It is cleared by the explicit pay-rent action.
type RentDue struct {
	Space      int   `json:"space"`
	Owner      int   `json:"owner"`
	Multiplier int64 `json:"multiplier"` // card-imposed multiplier, normally 1
}

// Game holds the complete authoritative state for one game session.
// It is owned by the engine and mutated only through validated actions.
type Game struct {
	ID            string `json:"id"`
	Host          string `json:"host"`
	Status        Status `json:"status"`
	Phase         TurnPhase `json:"phase"`
	MaxPlayers    int    `json:"max_players"`
	EntryFee      int64  `json:"entry_fee"`
	CollectionRef string `json:"collection_ref"`

	// Players is index-stable: seats are assigned at join and never move.
	Players []*Player `json:"players"`
	Current int       `json:"current"`
	Turn    uint32    `json:"turn"`
	Round   uint32    `json:"round"`

	Dice           *DiceRoll `json:"dice,omitempty"`
	DoublesPending bool      `json:"doubles_pending"`
	// RugpullAttempt marks the pending roll as a penalty-zone escape attempt.
	RugpullAttempt bool `json:"rugpull_attempt"`

	AlphaDeck      Deck       `json:"alpha_deck"`
	GovernanceDeck Deck       `json:"governance_deck"`
	PendingCard    *DrawnCard `json:"pending_card,omitempty"`

	BullRunActive    bool   `json:"bull_run_active"`
	BullRunEndsRound uint32 `json:"bull_run_ends_round"`

	Auction *Auction           `json:"auction,omitempty"`
	Trades  map[int]*TradeOffer `json:"trades,omitempty"`

	RentDue        *RentDue `json:"rent_due,omitempty"`
	LastRentPayer  int   `json:"last_rent_payer"` // seat index, -1 none
	LastRentOwner  int   `json:"last_rent_owner"` // seat index, -1 none
	LastRentAmount int64 `json:"last_rent_amount"`

	// BuyDiscount halves the purchase price for the current BuyDecision.
	BuyDiscount bool `json:"buy_discount"`

	Properties  [board.Size]Property `json:"properties"`
	BankReserve int64                `json:"bank_reserve"`
	PrizePool   int64                `json:"prize_pool"`
	Winner      int                  `json:"winner"` // seat index, -1 until finished
}

// NewGame creates a game record in the waiting state.
func NewGame(id, host string, maxPlayers int, entryFee int64, collectionRef string) *Game {
	g := &Game{
		ID:            id,
		Host:          host,
		Status:        StatusWaiting,
		Phase:         PhaseRollDice,
		MaxPlayers:    maxPlayers,
		EntryFee:      entryFee,
		CollectionRef: collectionRef,
		Trades:        make(map[int]*TradeOffer),
		BankReserve:   BankTreasury,
		LastRentPayer: -1,
		LastRentOwner: -1,
		Winner:        -1,
	}
	for i := range g.Properties {
		g.Properties[i] = Property{Space: i, Owner: BankOwner}
	}
	return g
}

// CurrentPlayer returns the player whose turn it is, or nil before start.
func (g *Game) CurrentPlayer() *Player {
	if g.Current < 0 || g.Current >= len(g.Players) {
		return nil
	}
	return g.Players[g.Current]
}

// PlayerByWallet resolves a wallet identity to its player record.
func (g *Game) PlayerByWallet(wallet string) (*Player, bool) {
	for _, p := range g.Players {
		if p.Wallet == wallet {
			return p, true
		}
	}
	return nil, false
}

// ActiveCount returns the number of non-bankrupt players.
func (g *Game) ActiveCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.Bankrupt {
			n++
		}
	}
	return n
}

// NextActiveIndex returns the next non-bankrupt seat after from, wrapping.
// It panics only if no active player exists, which the win detector prevents.
func (g *Game) NextActiveIndex(from int) int {
	for i := 1; i <= len(g.Players); i++ {
		idx := (from + i) % len(g.Players)
		if !g.Players[idx].Bankrupt {
			return idx
		}
	}
	panic("no active players")
}

// AdvanceTurn moves control to the next non-bankrupt player and resets
// per-turn state. The round counter increments when the rotation wraps.
func (g *Game) AdvanceTurn() {
	next := g.NextActiveIndex(g.Current)
	if next <= g.Current {
		g.Round++
	}
	g.Current = next
	g.Turn++
	g.beginTurn()
}

// RepeatTurn hands the same player another roll (doubles bonus) without
// advancing the turn number or rotation.
func (g *Game) RepeatTurn() {
	g.Dice = nil
	g.DoublesPending = false
	g.RentDue = nil
	g.PendingCard = nil
	g.BuyDiscount = false
	g.Phase = PhaseRollDice
}

func (g *Game) beginTurn() {
	g.Dice = nil
	g.DoublesPending = false
	g.RugpullAttempt = false
	g.RentDue = nil
	g.PendingCard = nil
	g.BuyDiscount = false
	if g.BullRunActive && g.Round > g.BullRunEndsRound {
		g.BullRunActive = false
	}
	if p := g.CurrentPlayer(); p != nil {
		p.DoublesStreak = 0
		if p.InRugpull() {
			g.Phase = PhaseRugpullDecision
			return
		}
	}
	g.Phase = PhaseRollDice
}

// CountOwnedOfType counts spaces of a given type held by a seat.
func (g *Game) CountOwnedOfType(seat int, t board.SpaceType) int {
	n := 0
	for _, prop := range g.Properties {
		if prop.Owner == seat && board.At(prop.Space).Type == t {
			n++
		}
	}
	return n
}

// HasMonopoly reports whether a seat owns every space in a color group.
func (g *Game) HasMonopoly(seat int, group board.Group) bool {
	members := board.GroupSpaces(group)
	if len(members) == 0 {
		return false
	}
	for _, s := range members {
		if g.Properties[s].Owner != seat {
			return false
		}
	}
	return true
}

// CompleteSetCount counts the full property color groups a seat owns.
// Bridge and utility groups do not count as sets.
func (g *Game) CompleteSetCount(seat int) int {
	n := 0
	for _, grp := range []board.Group{
		board.GroupBrown, board.GroupLightBlue, board.GroupPink,
		board.GroupOrange, board.GroupRed, board.GroupYellow,
		board.GroupGreen, board.GroupDarkBlue,
	} {
		if g.HasMonopoly(seat, grp) {
			n++
		}
	}
	return n
}
