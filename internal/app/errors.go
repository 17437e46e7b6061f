package app

import "errors"

// Rule violations surfaced to the session layer. Each maps onto a wire
// error code in the Nakama adapter.
var (
	ErrGameNotWaiting    = errors.New("game is not waiting for players")
	ErrGameFull          = errors.New("game is full")
	ErrGameNotStarted    = errors.New("game has not started")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrWrongPhase        = errors.New("wrong turn phase for this action")
	ErrRandomnessPending = errors.New("randomness request is pending")
	ErrNoRollRequested   = errors.New("no roll has been requested")
	ErrBadRandomness     = errors.New("randomness payload is malformed")

	ErrNotPurchasable    = errors.New("space is not available for purchase")
	ErrAlreadyOwned      = errors.New("property is already owned")
	ErrMortgaged         = errors.New("property is mortgaged")
	ErrNotMortgaged      = errors.New("property is not mortgaged")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNotOwner          = errors.New("actor does not own this property")
	ErrIncompleteSet     = errors.New("complete color group required to build")
	ErrUnevenBuild       = errors.New("must build evenly across the color group")
	ErrMaxTier           = errors.New("maximum liquidity pool tier reached")
	ErrProtocolBuilt     = errors.New("full protocol already built")
	ErrNoTiersToSell     = errors.New("no liquidity pools to sell")
	ErrDevelopedMortgage = errors.New("cannot mortgage a developed property")

	ErrBankDepleted = errors.New("bank reserve cannot cover another seat")

	ErrHostOnly        = errors.New("only the host can perform this action")
	ErrTooFewPlayers   = errors.New("not enough players to start")
	ErrAlreadyJoined   = errors.New("player already joined this game")
	ErrUnknownPlayer   = errors.New("player not found")
	ErrPlayerBankrupt  = errors.New("player has declared bankruptcy")
	ErrInRugpull       = errors.New("player is held in the penalty zone")
	ErrNotInRugpull    = errors.New("player is not in the penalty zone")
	ErrNoImmunityCard  = errors.New("no immunity card held")
	ErrFlashLoanActive = errors.New("a flash loan is already active")

	ErrNoAuction      = errors.New("no auction is active")
	ErrBidTooLow      = errors.New("bid must exceed the current highest bid")
	ErrNoRentDue      = errors.New("no rent is due")
	ErrNoPendingCard  = errors.New("no card is pending resolution")
	ErrInvalidTrade   = errors.New("invalid trade offer")
	ErrTradeNotFound  = errors.New("trade offer not found")
	ErrTradeExpired   = errors.New("trade offer has expired")
	ErrNotRecipient   = errors.New("actor is not the trade recipient")
	ErrInvalidSpace   = errors.New("invalid board space index")
)
