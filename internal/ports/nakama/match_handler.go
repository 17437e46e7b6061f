package nakama

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"

	"blockpoly/internal/app"
	"blockpoly/internal/board"
	"blockpoly/internal/config"
	"blockpoly/internal/domain"
	"blockpoly/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the queryable JSON label kept current on the match.
type MatchLabel struct {
	Open     int    `json:"open"`
	State    string `json:"state"`
	EntryFee int64  `json:"entry_fee"`
	Game     string `json:"game"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // UserID -> Presence for targeted messaging

	App  *app.Service  `json:"-"`
	Game *domain.Game  `json:"-"`
	Cfg  config.Config `json:"-"`

	Economy ports.EconomyPort    `json:"-"`
	Store   ports.GameStorePort  `json:"-"`
	Random  ports.RandomnessPort `json:"-"`

	// AuctionActivityTick is the tick of the last auction bid, for the
	// idle auto-close.
	AuctionActivityTick int64 `json:"auction_activity_tick"`
	// EmptySinceTick is the tick the last presence left, 0 while occupied.
	EmptySinceTick int64 `json:"empty_since_tick"`
	// Settled marks that the prize pool has been paid out.
	Settled bool `json:"settled"`
}

func (ms *MatchState) openSeats() int {
	if ms.Game == nil || ms.Game.Status != domain.StatusWaiting {
		return 0
	}
	return ms.Game.MaxPlayers - len(ms.Game.Players)
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. Creation params may
// carry an entry fee, a seat cap, and an NFT collection reference.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.FromEnv(env)
	if err != nil {
		logger.Error("MatchInit: Invalid runtime environment: %v", err)
		return nil, 0, ""
	}

	entryFee := cfg.DefaultEntryFee
	if v, ok := params["entry_fee"].(float64); ok && v >= 0 {
		entryFee = int64(v)
	}
	maxPlayers := domain.MaxPlayers
	if v, ok := params["max_players"].(float64); ok && int(v) >= app.MinPlayersToStart && int(v) <= domain.MaxPlayers {
		maxPlayers = int(v)
	}
	collectionRef, _ := params["collection"].(string)

	service := app.NewService(app.Rules{
		EvenBuild:        cfg.EvenBuild,
		TradeExpiryTurns: cfg.TradeExpiryTurns,
	})
	store := NewNakamaGameStoreAdapter(nk, cfg.SnapshotCollection)

	game, err := service.CreateGame(uuid.NewString(), "", maxPlayers, entryFee, collectionRef)
	if err != nil {
		logger.Error("MatchInit: Failed to create game: %v", err)
		return nil, 0, ""
	}
	if resumeID, ok := params["resume_game"].(string); ok && resumeID != "" {
		stored, found, err := store.LoadSnapshot(ctx, resumeID)
		switch {
		case err != nil:
			logger.Error("MatchInit: Failed to load snapshot %s: %v", resumeID, err)
		case !found:
			logger.Warn("MatchInit: No snapshot for game %s, starting fresh.", resumeID)
		default:
			game = stored
			logger.Info("MatchInit: Resumed game %s from snapshot.", resumeID)
		}
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       service,
		Game:      game,
		Cfg:       cfg,
		Economy:   NewNakamaEconomyAdapter(nk),
		Store:     store,
		Random:    NewCryptoRandomAdapter(),
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:     state.openSeats(),
		State:    string(game.Status),
		EntryFee: entryFee,
		Game:     game.ID,
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, cfg.TickRate, string(labelBytes)
}

// MatchJoinAttempt gates entry: open seats while waiting, reconnection
// only once play starts, and the wallet must cover the entry fee.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	game := matchState.Game

	if _, seated := game.PlayerByWallet(presence.GetUserId()); seated {
		// Reconnection is always allowed.
		return state, true, ""
	}
	switch game.Status {
	case domain.StatusFinished:
		return state, false, "game finished"
	case domain.StatusInProgress:
		return state, false, "game in progress"
	}
	if matchState.openSeats() <= 0 {
		return state, false, "match full"
	}
	if game.EntryFee > 0 {
		balance, err := matchState.Economy.GetBalance(ctx, presence.GetUserId())
		if err != nil {
			logger.Error("MatchJoinAttempt: Failed to read balance for %s: %v", presence.GetUserId(), err)
			return state, false, "wallet unavailable"
		}
		if balance < game.EntryFee {
			return state, false, "insufficient entry fee"
		}
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	matchState.EmptySinceTick = 0

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if _, seated := matchState.Game.PlayerByWallet(p.GetUserId()); seated {
			logger.Debug("MatchJoin: %s reconnected.", p.GetUserId())
			continue
		}

		events, err := matchState.App.Join(matchState.Game, p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: %s joined but could not be seated: %v", p.GetUserId(), err)
			continue
		}
		if matchState.Game.Host == "" {
			matchState.Game.Host = p.GetUserId()
			logger.Debug("MatchJoin: Host set to %s.", p.GetUserId())
		}
		mh.chargeEntryFee(ctx, matchState, logger, p.GetUserId())
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// chargeEntryFee debits the wallet stake backing a seat.
func (mh *matchHandler) chargeEntryFee(ctx context.Context, state *MatchState, logger runtime.Logger, wallet string) {
	if state.Game.EntryFee == 0 {
		return
	}
	err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{{
		UserID: wallet,
		Amount: -state.Game.EntryFee,
		Metadata: map[string]interface{}{
			"game_id": state.Game.ID,
			"reason":  "entry_fee",
		},
	}})
	if err != nil {
		logger.Error("chargeEntryFee: Failed to debit %s: %v", wallet, err)
	}
}

// MatchLeave is called when one or more players leave the match.
// A leaver in a waiting game frees the seat and gets the fee back; a
// leaver mid-game forfeits.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		events, err := matchState.App.Leave(matchState.Game, p.GetUserId())
		if err != nil {
			logger.Debug("MatchLeave: %s left without a live seat: %v", p.GetUserId(), err)
			continue
		}
		if matchState.Game.Status == domain.StatusWaiting {
			mh.refundEntryFee(ctx, matchState, logger, p.GetUserId())
			if matchState.Game.Host == p.GetUserId() {
				matchState.Game.Host = ""
				for _, pl := range matchState.Game.Players {
					matchState.Game.Host = pl.Wallet
					break
				}
			}
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	mh.settleIfFinished(ctx, matchState, dispatcher, logger)

	if len(matchState.Presences) == 0 {
		if matchState.Game.Status != domain.StatusInProgress {
			logger.Info("MatchLeave: Terminating empty match.")
			return nil
		}
		matchState.EmptySinceTick = tick
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) refundEntryFee(ctx context.Context, state *MatchState, logger runtime.Logger, wallet string) {
	if state.Game.EntryFee == 0 {
		return
	}
	err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{{
		UserID: wallet,
		Amount: state.Game.EntryFee,
		Metadata: map[string]interface{}{
			"game_id": state.Game.ID,
			"reason":  "entry_fee_refund",
		},
	}})
	if err != nil {
		logger.Error("refundEntryFee: Failed to credit %s: %v", wallet, err)
	}
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	mh.closeIdleAuction(ctx, matchState, dispatcher, logger)

	if matchState.EmptySinceTick > 0 && tick-matchState.EmptySinceTick >= int64(matchState.Cfg.EmptyMatchTicks) {
		logger.Info("MatchLoop: Terminating abandoned match %s.", matchState.Game.ID)
		if matchState.Game.Status == domain.StatusWaiting {
			// A lobby that never started has nothing worth keeping.
			mh.discardSnapshot(ctx, matchState, logger)
		} else {
			mh.saveSnapshot(ctx, matchState, logger)
		}
		return nil
	}

	return matchState
}

// handleMessage routes one client frame into the app service.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	wallet := msg.GetUserId()
	game := state.Game

	var events []app.Event
	var err error

	switch msg.GetOpCode() {
	case OpStartGame:
		events, err = mh.handleStart(state, wallet)
	case OpRequestRoll:
		events, err = mh.handleRoll(state, wallet, false)
	case OpRugpullRoll:
		events, err = mh.handleRoll(state, wallet, true)
	case OpResolveLanding:
		events, err = state.App.ResolveLanding(game, wallet)
	case OpBuyProperty:
		events, err = state.App.BuyProperty(game, wallet)
	case OpDeclineBuy:
		events, err = state.App.DeclineBuy(game, wallet)
		if err == nil {
			state.AuctionActivityTick = state.Tick
		}
	case OpAuctionBid:
		var req BidRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.AuctionBid(game, wallet, req.Amount)
			if err == nil {
				state.AuctionActivityTick = state.Tick
			}
		}
	case OpCloseAuction:
		events, err = state.App.CloseAuction(game, wallet)
	case OpPayRent:
		events, err = state.App.PayRent(game, wallet)
	case OpDrawCard:
		events, err = state.App.DrawCard(game, wallet)
	case OpResolveCard:
		events, err = state.App.ResolveCard(game, wallet)
	case OpBuildTier:
		var req SpaceRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			if err = checkSiblingTiers(game, req); err == nil {
				events, err = state.App.BuildTier(game, wallet, req.Space)
			}
		}
	case OpBuildProtocol:
		var req SpaceRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.BuildFullProtocol(game, wallet, req.Space)
		}
	case OpSellTier:
		var req SpaceRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.SellTier(game, wallet, req.Space)
		}
	case OpMortgage:
		var req SpaceRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.Mortgage(game, wallet, req.Space)
		}
	case OpUnmortgage:
		var req SpaceRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.Unmortgage(game, wallet, req.Space)
		}
	case OpProposeTrade:
		var req TradeRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.ProposeTrade(game, wallet, uuid.NewString(), app.TradeTerms{
				Recipient:           req.Recipient,
				OfferedProperties:   req.OfferedProperties,
				OfferedAmount:       req.OfferedAmount,
				RequestedProperties: req.RequestedProperties,
				RequestedAmount:     req.RequestedAmount,
				OfferedImmunity:     req.OfferedImmunity,
				RequestedImmunity:   req.RequestedImmunity,
			})
		}
	case OpAcceptTrade:
		var req TradeRefRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.AcceptTrade(game, wallet, req.TradeID)
		}
	case OpRejectTrade:
		var req TradeRefRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.RejectTrade(game, wallet, req.TradeID)
		}
	case OpRugpullBail:
		events, err = state.App.RugpullPayBail(game, wallet)
	case OpRugpullCard:
		events, err = state.App.RugpullUseCard(game, wallet)
	case OpDeclareBankruptcy:
		events, err = state.App.DeclareBankruptcy(game, wallet)
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Warn("MatchLoop: %s op %d rejected: %v", wallet, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, wallet, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.settleIfFinished(ctx, state, dispatcher, logger)
	mh.saveSnapshot(ctx, state, logger)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(state, dispatcher, logger)
}

var errStaleSiblingTiers = errors.New("sibling tier counts do not match the current records")

// checkSiblingTiers cross-checks a client-supplied view of the color
// group's development against the authoritative records. An omitted view
// passes; a stale one is rejected before the build mutates anything.
func checkSiblingTiers(game *domain.Game, req SpaceRequest) error {
	if req.SiblingTiers == nil {
		return nil
	}
	if req.Space < 0 || req.Space >= len(game.Properties) {
		return app.ErrInvalidSpace
	}
	siblings := board.GroupSpaces(board.At(req.Space).Group)
	if len(req.SiblingTiers) != len(siblings) {
		return errStaleSiblingTiers
	}
	for i, space := range siblings {
		if req.SiblingTiers[i] != game.Properties[space].Tier {
			return errStaleSiblingTiers
		}
	}
	return nil
}

// handleStart seeds the decks from the randomness port and launches.
func (mh *matchHandler) handleStart(state *MatchState, wallet string) ([]app.Event, error) {
	raw, err := state.Random.Randomness()
	if err != nil {
		return nil, err
	}
	var seed [32]byte
	copy(seed[:], raw)
	return state.App.Start(state.Game, wallet, seed)
}

// handleRoll opens the roll request and, unless an external oracle is
// configured, fulfills it in the same tick from the randomness port.
func (mh *matchHandler) handleRoll(state *MatchState, wallet string, rugpull bool) ([]app.Event, error) {
	var events []app.Event
	var err error
	if rugpull {
		events, err = state.App.RugpullAttemptRoll(state.Game, wallet)
	} else {
		events, err = state.App.RequestRoll(state.Game, wallet)
	}
	if err != nil {
		return nil, err
	}
	if state.Cfg.OracleRandomness {
		// The oracle fulfills through the fulfill_randomness RPC, which
		// reaches the match as a signal.
		return events, nil
	}
	raw, err := state.Random.Randomness()
	if err != nil {
		return nil, err
	}
	more, err := state.App.ConsumeRandomness(state.Game, raw)
	if err != nil {
		return nil, err
	}
	return append(events, more...), nil
}

// closeIdleAuction force-closes an auction nobody is bidding on.
func (mh *matchHandler) closeIdleAuction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game.Phase != domain.PhaseAuction || state.Game.Auction == nil {
		return
	}
	if state.Tick-state.AuctionActivityTick < int64(state.Cfg.AuctionIdleTicks) {
		return
	}
	space := state.Game.Auction.Space
	events, err := state.App.CloseAuction(state.Game, "")
	if err != nil {
		logger.Error("closeIdleAuction: %v", err)
		return
	}
	logger.Info("closeIdleAuction: Auction on space %d closed after idle timeout.", space)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.settleIfFinished(ctx, state, dispatcher, logger)
	mh.saveSnapshot(ctx, state, logger)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(state, dispatcher, logger)
}

// settleIfFinished pays the prize pool to the winner's wallet exactly once.
func (mh *matchHandler) settleIfFinished(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game.Status != domain.StatusFinished || state.Settled {
		return
	}
	state.Settled = true

	if game.Winner >= 0 && game.PrizePool > 0 {
		winner := game.Players[game.Winner]
		err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{{
			UserID: winner.Wallet,
			Amount: game.PrizePool,
			Metadata: map[string]interface{}{
				"game_id": game.ID,
				"reason":  "prize_pool",
			},
		}})
		if err != nil {
			logger.Error("settleIfFinished: Failed to pay prize to %s: %v", winner.Wallet, err)
		}
	}
}

// broadcastEvent wraps one app event in the JSON envelope and dispatches
// it, honoring targeted recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	bytes, err := marshalEnvelope(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events never fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(OpServerEvent, bytes, recipients, nil, true)
}

// sendError sends an ErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(ErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal ErrorEvent: %v", err)
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpServerError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := snapshotBytes(state.Game, state.Tick)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpServerSnapshot, bytes, nil, nil, true)
}

func (mh *matchHandler) saveSnapshot(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil {
		return
	}
	if err := state.Store.SaveSnapshot(ctx, state.Game); err != nil {
		logger.Error("Failed to persist snapshot for game %s: %v", state.Game.ID, err)
	}
}

func (mh *matchHandler) discardSnapshot(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil {
		return
	}
	if err := state.Store.DeleteSnapshot(ctx, state.Game.ID); err != nil {
		logger.Error("Failed to discard snapshot for game %s: %v", state.Game.ID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(MatchLabel{
		Open:     state.openSeats(),
		State:    string(state.Game.Status),
		EntryFee: state.Game.EntryFee,
		Game:     state.Game.ID,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	matchState, ok := state.(*MatchState)
	if ok {
		mh.saveSnapshot(ctx, matchState, logger)
	}
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

// MatchSignal handles out-of-band control messages. A randomness signal
// carries oracle bytes for the pending roll; anything else is answered
// with the game id.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}

	var signal SignalRequest
	if err := json.Unmarshal([]byte(data), &signal); err == nil && signal.Cmd == SignalRandomness {
		raw, err := base64.StdEncoding.DecodeString(signal.Bytes)
		if err != nil {
			return matchState, `{"error":"bad randomness encoding"}`
		}
		events, err := matchState.App.ConsumeRandomness(matchState.Game, raw)
		if err != nil {
			logger.Warn("MatchSignal: Randomness rejected: %v", err)
			return matchState, `{"error":"` + err.Error() + `"}`
		}
		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
		mh.settleIfFinished(ctx, matchState, dispatcher, logger)
		mh.saveSnapshot(ctx, matchState, logger)
		mh.updateLabel(matchState, dispatcher, logger)
		mh.broadcastSnapshot(matchState, dispatcher, logger)
		return matchState, `{"ok":true}`
	}

	return matchState, matchState.Game.ID
}
