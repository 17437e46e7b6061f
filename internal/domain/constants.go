package domain

// Game parameters, amounts in micro-BPOLY (6 decimals).
const (
	MaxPlayers = 8

	// StartingBalance is transferred from the bank to each player at join.
	StartingBalance int64 = 1_500_000_000 // 1500 BPOLY
	// GenesisPayout is credited when a player passes or lands on Genesis Block.
	GenesisPayout int64 = 200_000_000 // 200 BPOLY
	// BankTreasury seeds the bank reserve at game creation. Every later
	// balance movement is a transfer, so player sum + reserve stays constant.
	BankTreasury int64 = 50_000_000_000 // 50000 BPOLY

	// Rug Pull Zone (jail).
	RugpullMaxTurns       = 3
	RugpullBailAmount int64 = 50_000_000 // 50 BPOLY

	// Flash loan card.
	FlashLoanAmount  int64 = 200_000_000 // 200 BPOLY
	FlashLoanRepay   int64 = 210_000_000 // 210 BPOLY
	FlashLoanPenalty int64 = 50_000_000  // 50 BPOLY late penalty

	DeckSize = 16

	// BankOwner is the sentinel seat index for bank-owned spaces.
	BankOwner = -1

	// MaxDoublesStreak is the number of consecutive doubles that sends a
	// player straight to the penalty zone instead of granting another roll.
	MaxDoublesStreak = 3

	// BullRunRounds is how many additional full rounds a Bull Run lasts.
	BullRunRounds = 1

	// TradeExpiryTurns is how many turns an open trade offer stays valid.
	TradeExpiryTurns = 8
)
