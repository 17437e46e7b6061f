package domain

// Player is the authoritative per-seat record for one participant.
type Player struct {
	Seat     int    `json:"seat"`
	Wallet   string `json:"wallet"`
	Username string `json:"username"`

	Position int   `json:"position"`
	Balance  int64 `json:"balance"`
	Bankrupt bool  `json:"bankrupt"`

	// RugpullTurns counts remaining turns stuck in the penalty zone.
	// Zero means the player is free.
	RugpullTurns int `json:"rugpull_turns"`

	// ImmunityCards are banked get-out-free cards, spendable instead of bail.
	ImmunityCards int `json:"immunity_cards"`

	// FlashLoanDue is the outstanding repayment owed to the bank at the
	// start of the player's next turn. Zero means no loan is open.
	FlashLoanDue int64 `json:"flash_loan_due"`

	// DoublesStreak counts consecutive doubles within the current turn.
	DoublesStreak int `json:"doubles_streak"`
}

// NewPlayer seats a wallet identity with the standard starting balance.
func NewPlayer(seat int, wallet, username string) *Player {
	return &Player{
		Seat:     seat,
		Wallet:   wallet,
		Username: username,
		Balance:  StartingBalance,
	}
}

// InRugpull reports whether the player is held in the penalty zone.
func (p *Player) InRugpull() bool { return p.RugpullTurns > 0 }

// CanAfford reports whether the player holds at least amount.
func (p *Player) CanAfford(amount int64) bool { return p.Balance >= amount }

// SendToRugpull moves the player to the penalty zone and starts the clock.
func (p *Player) SendToRugpull(zoneSpace int) {
	p.Position = zoneSpace
	p.RugpullTurns = RugpullMaxTurns
	p.DoublesStreak = 0
}

// Release clears the penalty-zone hold without moving the player.
func (p *Player) Release() { p.RugpullTurns = 0 }
