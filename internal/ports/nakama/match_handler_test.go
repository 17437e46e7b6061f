package nakama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"blockpoly/internal/app"
	"blockpoly/internal/config"
	"blockpoly/internal/domain"
	"blockpoly/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/require"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcastCall
	labelUpdates []string
}

type broadcastCall struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcastCall{
		opCode: opCode, data: append([]byte(nil), data...), presences: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates = append(md.labelUpdates, label)
	return nil
}

func (md *mockDispatcher) lastOp(opCode int64) ([]byte, bool) {
	for i := len(md.broadcasts) - 1; i >= 0; i-- {
		if md.broadcasts[i].opCode == opCode {
			return md.broadcasts[i].data, true
		}
	}
	return nil, false
}

type mockEconomy struct {
	balances map[string]int64
	updates  []ports.WalletUpdate
	err      error
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	if me.err != nil {
		return 0, me.err
	}
	if balance, ok := me.balances[userID]; ok {
		return balance, nil
	}
	return 0, errors.New("balance not found")
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	if me.err != nil {
		return me.err
	}
	me.updates = append(me.updates, updates...)
	return nil
}

type mockStore struct {
	saves   int
	deletes int
}

func (ms *mockStore) SaveSnapshot(ctx context.Context, g *domain.Game) error {
	ms.saves++
	return nil
}

func (ms *mockStore) LoadSnapshot(ctx context.Context, gameID string) (*domain.Game, bool, error) {
	return nil, false, nil
}

func (ms *mockStore) DeleteSnapshot(ctx context.Context, gameID string) error {
	ms.deletes++
	return nil
}

// fixedRandom hands out a constant 32-byte block, enough for dice and shuffles.
type fixedRandom struct{ b byte }

func (fr fixedRandom) Randomness() ([]byte, error) {
	out := make([]byte, 32)
	for i := range out {
		out[i] = fr.b
	}
	return out, nil
}

type mockPresence struct {
	userID   string
	username string
}

func (mp mockPresence) GetUserId() string    { return mp.userID }
func (mp mockPresence) GetSessionId() string { return "session-" + mp.userID }
func (mp mockPresence) GetNodeId() string    { return "node" }
func (mp mockPresence) GetHidden() bool      { return false }
func (mp mockPresence) GetPersistence() bool { return true }
func (mp mockPresence) GetStatus() string    { return "" }
func (mp mockPresence) GetUsername() string  { return mp.username }
func (mp mockPresence) GetReason() runtime.PresenceReason {
	return runtime.PresenceReasonUnknown
}

type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (md mockMatchData) GetOpCode() int64      { return md.opCode }
func (md mockMatchData) GetData() []byte       { return md.data }
func (md mockMatchData) GetReceiveTime() int64 { return 0 }
func (md mockMatchData) GetReliable() bool     { return true }

// testState assembles a MatchState around mocks, bypassing MatchInit so
// tests control the economy and randomness ports.
func testState(t *testing.T, entryFee int64) (*MatchState, *mockEconomy, *mockStore) {
	t.Helper()
	cfg, err := config.FromEnv(map[string]string{})
	require.NoError(t, err)

	service := app.NewService(app.Rules{
		EvenBuild:        cfg.EvenBuild,
		TradeExpiryTurns: cfg.TradeExpiryTurns,
	})
	game, err := service.CreateGame("test-game", "", domain.MaxPlayers, entryFee, "")
	require.NoError(t, err)

	economy := &mockEconomy{balances: map[string]int64{}}
	store := &mockStore{}
	return &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       service,
		Game:      game,
		Cfg:       cfg,
		Economy:   economy,
		Store:     store,
		Random:    fixedRandom{b: 9},
	}, economy, store
}

func joinUsers(t *testing.T, mh *matchHandler, state *MatchState, dispatcher *mockDispatcher, users ...string) {
	t.Helper()
	presences := make([]runtime.Presence, 0, len(users))
	for _, u := range users {
		presences = append(presences, mockPresence{userID: u, username: "name-" + u})
	}
	out := mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, presences)
	require.NotNil(t, out)
}

func TestMatchJoinSeatsPlayersAndSetsHost(t *testing.T) {
	state, _, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}

	joinUsers(t, mh, state, dispatcher, "u1", "u2")

	require.Len(t, state.Game.Players, 2)
	require.Equal(t, "u1", state.Game.Host)

	_, ok := state.Game.PlayerByWallet("u2")
	require.True(t, ok)

	// A snapshot and an updated label follow every join batch.
	_, sawSnapshot := dispatcher.lastOp(OpServerSnapshot)
	require.True(t, sawSnapshot)
	require.NotEmpty(t, dispatcher.labelUpdates)

	var label MatchLabel
	require.NoError(t, json.Unmarshal([]byte(dispatcher.labelUpdates[len(dispatcher.labelUpdates)-1]), &label))
	require.Equal(t, domain.MaxPlayers-2, label.Open)
}

func TestMatchJoinChargesEntryFee(t *testing.T) {
	state, economy, _ := testState(t, 7_000_000)
	economy.balances["u1"] = 100_000_000
	mh := &matchHandler{}

	joinUsers(t, mh, state, &mockDispatcher{}, "u1")

	require.Len(t, economy.updates, 1)
	require.Equal(t, "u1", economy.updates[0].UserID)
	require.Equal(t, int64(-7_000_000), economy.updates[0].Amount)
}

func TestMatchJoinAttemptGates(t *testing.T) {
	state, economy, _ := testState(t, 10_000_000)
	mh := &matchHandler{}
	economy.balances["rich"] = 50_000_000
	economy.balances["poor"] = 1_000_000

	_, ok, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 1, state, mockPresence{userID: "rich"}, nil)
	require.True(t, ok)

	_, ok, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 1, state, mockPresence{userID: "poor"}, nil)
	require.False(t, ok)
	require.Equal(t, "insufficient entry fee", reason)

	// Mid-game, only seated wallets may come back.
	joinUsers(t, mh, state, &mockDispatcher{}, "rich")
	state.Game.Status = domain.StatusInProgress
	_, ok, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 1, state, mockPresence{userID: "rich"}, nil)
	require.True(t, ok)
	economy.balances["late"] = 50_000_000
	_, ok, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 1, state, mockPresence{userID: "late"}, nil)
	require.False(t, ok)
}

func TestMatchLoopStartAndRoll(t *testing.T) {
	state, _, store := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")

	out := mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})
	require.NotNil(t, out)
	require.Equal(t, domain.StatusInProgress, state.Game.Status)
	require.Positive(t, store.saves)

	// The handler fulfills the roll from its randomness port in one tick.
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpRequestRoll},
	})
	require.NotNil(t, state.Game.Dice)
	require.NotEqual(t, domain.PhaseAwaitingRandomness, state.Game.Phase)
}

func TestMatchLoopRejectsOutOfTurnWithError(t *testing.T) {
	state, _, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})

	before := len(dispatcher.broadcasts)
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u2"}, opCode: OpRequestRoll},
	})

	data, ok := dispatcher.lastOp(OpServerError)
	require.True(t, ok)
	var errEvent ErrorEvent
	require.NoError(t, json.Unmarshal(data, &errEvent))
	require.Equal(t, 400, errEvent.Code)
	require.NotEmpty(t, errEvent.Message)
	// The error goes only to the offender.
	last := dispatcher.broadcasts[len(dispatcher.broadcasts)-1]
	require.Len(t, last.presences, 1)
	require.Equal(t, "u2", last.presences[0].GetUserId())
	require.Equal(t, before+1, len(dispatcher.broadcasts))
}

func TestSnapshotRedactsDeckOrder(t *testing.T) {
	state, _, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})

	data, ok := dispatcher.lastOp(OpServerSnapshot)
	require.True(t, ok)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.NotNil(t, snap.Game)
	var zero [domain.DeckSize]uint8
	require.Equal(t, zero, snap.Game.AlphaDeck.Cards)
	require.Equal(t, zero, snap.Game.GovernanceDeck.Cards)
	// The live state keeps the real shuffle.
	require.NotEqual(t, zero, state.Game.AlphaDeck.Cards)
}

func TestMatchLeaveWaitingRefundsAndReassignsHost(t *testing.T) {
	state, economy, _ := testState(t, 5_000_000)
	economy.balances["u1"] = 100_000_000
	economy.balances["u2"] = 100_000_000
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	economy.updates = nil

	out := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.Presence{
		mockPresence{userID: "u1"},
	})
	require.NotNil(t, out)
	require.Len(t, state.Game.Players, 1)
	require.Equal(t, "u2", state.Game.Host)
	require.Len(t, economy.updates, 1)
	require.Equal(t, int64(5_000_000), economy.updates[0].Amount)
}

func TestPrizePoolSettlesOnce(t *testing.T) {
	state, economy, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})
	state.Game.PrizePool = 40_000_000

	// u2 resigns; u1 wins the pool.
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u2"}, opCode: OpDeclareBankruptcy},
	})
	require.Equal(t, domain.StatusFinished, state.Game.Status)
	require.True(t, state.Settled)
	require.Len(t, economy.updates, 1)
	require.Equal(t, "u1", economy.updates[0].UserID)
	require.Equal(t, int64(40_000_000), economy.updates[0].Amount)

	mh.settleIfFinished(context.Background(), state, dispatcher, noopLogger{})
	require.Len(t, economy.updates, 1)
}

func TestIdleAuctionAutoCloses(t *testing.T) {
	state, _, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})

	state.Game.Players[0].Position = 1
	state.Game.Phase = domain.PhaseBuyDecision
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpDeclineBuy},
	})
	require.Equal(t, domain.PhaseAuction, state.Game.Phase)

	// Nothing happens before the idle window passes.
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state, nil)
	require.Equal(t, domain.PhaseAuction, state.Game.Phase)

	idleTick := int64(3 + state.Cfg.AuctionIdleTicks)
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, idleTick, state, nil)
	require.NotEqual(t, domain.PhaseAuction, state.Game.Phase)
	require.Nil(t, state.Game.Auction)
}

func TestOracleRandomnessFulfillsViaSignal(t *testing.T) {
	state, _, _ := testState(t, 0)
	state.Cfg.OracleRandomness = true
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})

	// With the oracle configured the roll stays pending.
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpRequestRoll},
	})
	require.Equal(t, domain.PhaseAwaitingRandomness, state.Game.Phase)

	raw := make([]byte, 32)
	raw[0], raw[1] = 0, 2 // dice (1, 3)
	signal, err := json.Marshal(SignalRequest{
		Cmd:   SignalRandomness,
		Bytes: base64.StdEncoding.EncodeToString(raw),
	})
	require.NoError(t, err)

	_, reply := mh.MatchSignal(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state, string(signal))
	require.Equal(t, `{"ok":true}`, reply)
	require.Equal(t, 4, state.Game.Players[0].Position)
	require.NotEqual(t, domain.PhaseAwaitingRandomness, state.Game.Phase)
}

func TestOracleSignalRejectedWithoutPendingRoll(t *testing.T) {
	state, _, _ := testState(t, 0)
	state.Cfg.OracleRandomness = true
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")

	signal, err := json.Marshal(SignalRequest{
		Cmd:   SignalRandomness,
		Bytes: base64.StdEncoding.EncodeToString(make([]byte, 32)),
	})
	require.NoError(t, err)

	_, reply := mh.MatchSignal(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, string(signal))
	require.Contains(t, reply, "error")

	// Any other signal answers with the game id.
	_, reply = mh.MatchSignal(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, "")
	require.Equal(t, state.Game.ID, reply)
}

func TestAbandonedLobbyDiscardsSnapshot(t *testing.T) {
	state, _, store := testState(t, 0)
	state.Cfg.EmptyMatchTicks = 2
	state.EmptySinceTick = 1
	mh := &matchHandler{}

	out := mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 10, state, nil)
	require.Nil(t, out)
	require.Equal(t, 1, store.deletes)
	require.Zero(t, store.saves)
}

func TestBuildRejectsStaleSiblingTiers(t *testing.T) {
	state, _, _ := testState(t, 0)
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, state, dispatcher, "u1", "u2")
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpStartGame},
	})

	// u1 owns the brown group but the client still believes both spaces
	// are undeveloped.
	state.Game.Properties[1].Owner = 0
	state.Game.Properties[3].Owner = 0
	state.Game.Properties[1].Tier = 1

	payload, err := json.Marshal(SpaceRequest{Space: 3, SiblingTiers: []int{0, 0}})
	require.NoError(t, err)
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpBuildTier, data: payload},
	})

	data, ok := dispatcher.lastOp(OpServerError)
	require.True(t, ok)
	var errEvent ErrorEvent
	require.NoError(t, json.Unmarshal(data, &errEvent))
	require.Equal(t, errStaleSiblingTiers.Error(), errEvent.Message)
	require.Zero(t, state.Game.Properties[3].Tier)

	// The authoritative view passes and the build lands.
	payload, err = json.Marshal(SpaceRequest{Space: 3, SiblingTiers: []int{1, 0}})
	require.NoError(t, err)
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpBuildTier, data: payload},
	})
	require.Equal(t, 1, state.Game.Properties[3].Tier)
}
