package app

import "blockpoly/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined  EventKind = "player_joined"
	EventPlayerLeft    EventKind = "player_left"
	EventGameStarted   EventKind = "game_started"
	EventRollRequested EventKind = "roll_requested"
	EventDiceRolled    EventKind = "dice_rolled"
	EventPlayerMoved   EventKind = "player_moved"
	EventGenesisPayout EventKind = "genesis_payout"
	EventTaxPaid       EventKind = "tax_paid"

	EventRentDue           EventKind = "rent_due"
	EventRentPaid          EventKind = "rent_paid"
	EventPropertyPurchased EventKind = "property_purchased"
	EventAuctionStarted    EventKind = "auction_started"
	EventAuctionBid        EventKind = "auction_bid"
	EventAuctionClosed     EventKind = "auction_closed"

	EventCardDrawn        EventKind = "card_drawn"
	EventCardResolved     EventKind = "card_resolved"
	EventBullRunActivated EventKind = "bull_run_activated"
	EventFlashLoanTaken   EventKind = "flash_loan_taken"
	EventFlashLoanSettled EventKind = "flash_loan_settled"

	EventRugpullEntered EventKind = "rugpull_entered"
	EventRugpullExited  EventKind = "rugpull_exited"

	EventTierBuilt           EventKind = "tier_built"
	EventTierSold            EventKind = "tier_sold"
	EventProtocolBuilt       EventKind = "protocol_built"
	EventPropertyMortgaged   EventKind = "property_mortgaged"
	EventPropertyUnmortgaged EventKind = "property_unmortgaged"
	EventPropertyRepossessed EventKind = "property_repossessed"

	EventTradeProposed EventKind = "trade_proposed"
	EventTradeAccepted EventKind = "trade_accepted"
	EventTradeRejected EventKind = "trade_rejected"

	EventPlayerBankrupt EventKind = "player_bankrupt"
	EventTurnAdvanced   EventKind = "turn_advanced"
	EventGameEnded      EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // wallet IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	Wallet   string `json:"wallet"`
	Username string `json:"username"`
	Seat     int    `json:"seat"`
}

type PlayerLeftPayload struct {
	Wallet string `json:"wallet"`
}

type GameStartedPayload struct {
	GameID    string `json:"game_id"`
	Players   int    `json:"players"`
	FirstSeat int    `json:"first_seat"`
	EntryFee  int64  `json:"entry_fee"`
}

type RollRequestedPayload struct {
	Seat           int  `json:"seat"`
	RugpullAttempt bool `json:"rugpull_attempt"`
}

type DiceRolledPayload struct {
	Seat    int  `json:"seat"`
	Die1    int  `json:"die1"`
	Die2    int  `json:"die2"`
	Doubles bool `json:"doubles"`
}

type PlayerMovedPayload struct {
	Seat     int  `json:"seat"`
	From     int  `json:"from"`
	To       int  `json:"to"`
	PassedGo bool `json:"passed_go"`
}

// AmountPayload covers simple one-seat monetary events such as genesis
// payouts, taxes, and flash loan settlement.
type AmountPayload struct {
	Seat   int   `json:"seat"`
	Amount int64 `json:"amount"`
}

type RentDuePayload struct {
	Seat       int   `json:"seat"`
	Owner      int   `json:"owner"`
	Space      int   `json:"space"`
	Amount     int64 `json:"amount"`
	Multiplier int64 `json:"multiplier"`
}

type RentPaidPayload struct {
	Payer  int   `json:"payer"`
	Owner  int   `json:"owner"`
	Space  int   `json:"space"`
	Amount int64 `json:"amount"`
}

type PropertyPayload struct {
	Seat  int   `json:"seat"`
	Space int   `json:"space"`
	Price int64 `json:"price,omitempty"`
}

type AuctionPayload struct {
	Space      int   `json:"space"`
	Bidder     int   `json:"bidder"`
	HighestBid int64 `json:"highest_bid"`
}

type CardPayload struct {
	Seat   int             `json:"seat"`
	Deck   domain.DeckKind `json:"deck"`
	CardID int             `json:"card_id"`
	Name   string          `json:"name"`
}

type BullRunPayload struct {
	EndsRound uint32 `json:"ends_round"`
}

type RugpullPayload struct {
	Seat   int    `json:"seat"`
	Reason string `json:"reason,omitempty"` // entered: landing, card, doubles
	Method string `json:"method,omitempty"` // exited: bail, card, roll, served
}

type BuildPayload struct {
	Seat  int   `json:"seat"`
	Space int   `json:"space"`
	Tier  int   `json:"tier"`
	Cost  int64 `json:"cost"`
}

type TradePayload struct {
	TradeID   string `json:"trade_id"`
	Proposer  int    `json:"proposer"`
	Recipient int    `json:"recipient"`
}

type BankruptcyPayload struct {
	Seat     int `json:"seat"`
	Creditor int `json:"creditor"` // seat index, -1 for the bank
}

type TurnAdvancedPayload struct {
	Seat  int              `json:"seat"`
	Turn  uint32           `json:"turn"`
	Round uint32           `json:"round"`
	Phase domain.TurnPhase `json:"phase"`
}

type GameEndedPayload struct {
	Winner    int   `json:"winner"`
	PrizePool int64 `json:"prize_pool"`
}
