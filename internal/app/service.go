package app

import (
	"fmt"

	"blockpoly/internal/board"
	"blockpoly/internal/domain"
)

// Rules are the tunable rule toggles the engine honors.
type Rules struct {
	// EvenBuild enforces even tier development across a color group.
	EvenBuild bool
	// TradeExpiryTurns is how many turns a trade offer stays open.
	TradeExpiryTurns uint32
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		EvenBuild:        true,
		TradeExpiryTurns: domain.TradeExpiryTurns,
	}
}

// Service contains the game use-cases operating on domain state.
// Methods validate an action against the current state, mutate it, and
// return the events the session layer should dispatch.
type Service struct {
	rules Rules
}

// NewService constructs a Service with the provided rules.
func NewService(rules Rules) *Service {
	return &Service{rules: rules}
}

// CreateGame builds a fresh game record in the waiting state.
func (s *Service) CreateGame(id, host string, maxPlayers int, entryFee int64, collectionRef string) (*domain.Game, error) {
	if maxPlayers < MinPlayersToStart || maxPlayers > domain.MaxPlayers {
		return nil, fmt.Errorf("max players %d: %w", maxPlayers, ErrTooFewPlayers)
	}
	if entryFee < 0 {
		return nil, fmt.Errorf("entry fee %d: %w", entryFee, ErrInsufficientFunds)
	}
	return domain.NewGame(id, host, maxPlayers, entryFee, collectionRef), nil
}

// Join seats a wallet in a waiting game.
func (s *Service) Join(g *domain.Game, wallet, username string) ([]Event, error) {
	if g.Status != domain.StatusWaiting {
		return nil, ErrGameNotWaiting
	}
	if len(g.Players) >= g.MaxPlayers {
		return nil, ErrGameFull
	}
	if _, ok := g.PlayerByWallet(wallet); ok {
		return nil, ErrAlreadyJoined
	}
	if g.BankReserve < domain.StartingBalance {
		return nil, ErrBankDepleted
	}
	seat := len(g.Players)
	g.Players = append(g.Players, domain.NewPlayer(seat, wallet, username))
	// The starting balance is a transfer out of the reserve, not a mint.
	g.BankReserve -= domain.StartingBalance
	g.PrizePool += g.EntryFee

	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{Wallet: wallet, Username: username, Seat: seat},
	}}, nil
}

// Leave removes a wallet from a waiting game, or forfeits it mid-game.
func (s *Service) Leave(g *domain.Game, wallet string) ([]Event, error) {
	p, ok := g.PlayerByWallet(wallet)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.Status == domain.StatusWaiting {
		g.BankReserve += p.Balance
		g.Players = append(g.Players[:p.Seat], g.Players[p.Seat+1:]...)
		for i, pl := range g.Players {
			pl.Seat = i
		}
		g.PrizePool -= g.EntryFee
		return []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{Wallet: wallet}}}, nil
	}
	if g.Status != domain.StatusInProgress || p.Bankrupt {
		return nil, ErrGameFinished
	}
	events := []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{Wallet: wallet}}}
	more, err := s.resolveBankruptcy(g, p, domain.BankOwner)
	if err != nil {
		return nil, err
	}
	events = append(events, more...)
	if g.Status == domain.StatusInProgress && g.Players[g.Current].Bankrupt {
		// The leaver held the turn; hand it on.
		g.AdvanceTurn()
		events = append(events, s.turnAdvancedEvent(g))
	}
	return events, nil
}

// Start launches a waiting game. Only the host may start, and the seed
// drives both deck shuffles.
func (s *Service) Start(g *domain.Game, wallet string, seed [32]byte) ([]Event, error) {
	if g.Status != domain.StatusWaiting {
		return nil, ErrGameNotWaiting
	}
	if wallet != g.Host {
		return nil, ErrHostOnly
	}
	if len(g.Players) < MinPlayersToStart {
		return nil, ErrTooFewPlayers
	}

	g.AlphaDeck = domain.NewDeck(seed, domain.DeckAlpha)
	g.GovernanceDeck = domain.NewDeck(seed, domain.DeckGovernance)
	g.Status = domain.StatusInProgress
	g.Phase = domain.PhaseRollDice
	g.Current = 0

	return []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:    g.ID,
			Players:   len(g.Players),
			FirstSeat: 0,
			EntryFee:  g.EntryFee,
		},
	}}, nil
}

// actingPlayer validates that wallet holds the current turn of a live game.
func (s *Service) actingPlayer(g *domain.Game, wallet string) (*domain.Player, error) {
	switch g.Status {
	case domain.StatusWaiting:
		return nil, ErrGameNotStarted
	case domain.StatusFinished:
		return nil, ErrGameFinished
	}
	p, ok := g.PlayerByWallet(wallet)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if p.Bankrupt {
		return nil, ErrPlayerBankrupt
	}
	if p.Seat != g.Current {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// anyPlayer validates that wallet is a live participant, turn or not.
func (s *Service) anyPlayer(g *domain.Game, wallet string) (*domain.Player, error) {
	if g.Status != domain.StatusInProgress {
		return nil, ErrGameNotStarted
	}
	p, ok := g.PlayerByWallet(wallet)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if p.Bankrupt {
		return nil, ErrPlayerBankrupt
	}
	return p, nil
}

// payToBank moves amount from a player into the bank reserve.
// The caller must have checked affordability.
func payToBank(g *domain.Game, p *domain.Player, amount int64) {
	p.Balance -= amount
	g.BankReserve += amount
}

// payFromBank moves amount from the bank reserve to a player.
func payFromBank(g *domain.Game, p *domain.Player, amount int64) {
	g.BankReserve -= amount
	p.Balance += amount
}

// transfer moves amount directly between two players.
func transfer(from, to *domain.Player, amount int64) {
	from.Balance -= amount
	to.Balance += amount
}

// chargeOrBankrupt charges a mandatory amount to the bank. A player who
// cannot cover it is liquidated on the spot: the whole remaining balance
// and every holding go to the bank, and the seat folds.
func (s *Service) chargeOrBankrupt(g *domain.Game, p *domain.Player, amount int64) ([]Event, error) {
	if p.CanAfford(amount) {
		payToBank(g, p, amount)
		return nil, nil
	}
	return s.resolveBankruptcy(g, p, domain.BankOwner)
}

// movePlayer relocates a player, crediting the Genesis payout when the
// move wraps past (or lands on) Genesis Block while travelling forward.
func (s *Service) movePlayer(g *domain.Game, p *domain.Player, to int, forward bool) []Event {
	from := p.Position
	to = board.Normalize(to)
	passed := forward && to < from
	p.Position = to

	events := []Event{{
		Kind:    EventPlayerMoved,
		Payload: PlayerMovedPayload{Seat: p.Seat, From: from, To: to, PassedGo: passed},
	}}
	if passed && to != board.SpaceGenesis {
		payFromBank(g, p, domain.GenesisPayout)
		events = append(events, Event{
			Kind:    EventGenesisPayout,
			Payload: AmountPayload{Seat: p.Seat, Amount: domain.GenesisPayout},
		})
	}
	return events
}

// endTurn closes out the current player's action window. Doubles grant a
// bonus roll to the same seat; otherwise the turn rotates. Flash loans of
// the incoming player settle before they act.
func (s *Service) endTurn(g *domain.Game) []Event {
	if g.Status == domain.StatusFinished {
		return nil
	}
	p := g.CurrentPlayer()
	if g.DoublesPending && p != nil && !p.Bankrupt && !p.InRugpull() {
		g.RepeatTurn()
		return []Event{s.turnAdvancedEvent(g)}
	}

	g.AdvanceTurn()
	events := []Event{s.turnAdvancedEvent(g)}

	events = append(events, s.settleFlashLoan(g)...)
	return events
}

// settleFlashLoan collects an outstanding flash loan from the incoming
// player. A debtor who cannot cover the repayment owes it plus the late
// penalty, and the shortfall resolves through bankruptcy.
func (s *Service) settleFlashLoan(g *domain.Game) []Event {
	p := g.CurrentPlayer()
	if p == nil || p.FlashLoanDue == 0 {
		return nil
	}
	due := p.FlashLoanDue
	p.FlashLoanDue = 0

	settled := due
	if !p.CanAfford(due) {
		settled = due + domain.FlashLoanPenalty
	}
	events, _ := s.chargeOrBankrupt(g, p, settled)
	events = append(events, Event{
		Kind:    EventFlashLoanSettled,
		Payload: AmountPayload{Seat: p.Seat, Amount: settled},
	})
	if p.Bankrupt {
		events = append(events, s.endTurn(g)...)
	}
	return events
}

func (s *Service) turnAdvancedEvent(g *domain.Game) Event {
	return Event{
		Kind: EventTurnAdvanced,
		Payload: TurnAdvancedPayload{
			Seat:  g.Current,
			Turn:  g.Turn,
			Round: g.Round,
			Phase: g.Phase,
		},
	}
}

// finishIfWon ends the game when a single active player remains.
func (s *Service) finishIfWon(g *domain.Game) []Event {
	if g.Status != domain.StatusInProgress || g.ActiveCount() > 1 {
		return nil
	}
	for _, p := range g.Players {
		if !p.Bankrupt {
			g.Winner = p.Seat
			break
		}
	}
	g.Status = domain.StatusFinished
	g.Phase = domain.PhaseFinished
	return []Event{{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Winner: g.Winner, PrizePool: g.PrizePool},
	}}
}
