package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// FindGameResponse is returned to clients looking for a seat.
type FindGameResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// CreateGameRequest carries explicit match parameters. Every field is
// optional; zero values fall back to server defaults.
type CreateGameRequest struct {
	EntryFee   int64  `json:"entry_fee"`
	MaxPlayers int    `json:"max_players"`
	Collection string `json:"collection"`
}

// FulfillRandomnessRequest delivers oracle bytes to a match with a
// pending roll. Bytes is standard base64, at least 32 decoded bytes.
type FulfillRandomnessRequest struct {
	MatchID string `json:"match_id"`
	Bytes   string `json:"bytes"`
}

// RegisterRPCs registers the Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcFindGame, rpcFindGame); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcCreateGame, rpcCreateGame); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcFulfillRandomness, rpcFulfillRandomness)
}

// rpcFindGame searches for a joinable match with at least one open seat
// and no entry fee, creating a fresh default match when none exists.
func rpcFindGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	query := fmt.Sprintf("+label.%s:>=1 +label.entry_fee:0", MatchLabelKeyOpenSeats)
	minSize := 0
	maxSize := 7 // leave at least one seat

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcFindGame [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		resp := FindGameResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		logger.Info("rpcFindGame [User:%s]: Found existing match %s", userID, matches[0].MatchId)
		return string(b), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchName, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcFindGame [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	resp := FindGameResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	logger.Info("rpcFindGame [User:%s]: Created new match %s", userID, matchID)
	return string(b), nil
}

// rpcCreateGame creates a match with the caller's parameters. Seat and
// host assignment happen in MatchJoin, server-authoritative.
func rpcCreateGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req CreateGameRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("rpcCreateGame [User:%s]: Bad payload: %v", userID, err)
			return "", runtime.NewError("invalid payload", 3)
		}
	}
	params := map[string]interface{}{}
	if req.EntryFee > 0 {
		params["entry_fee"] = float64(req.EntryFee)
	}
	if req.MaxPlayers > 0 {
		params["max_players"] = float64(req.MaxPlayers)
	}
	if req.Collection != "" {
		params["collection"] = req.Collection
	}

	matchID, err := nk.MatchCreate(ctx, MatchName, params)
	if err != nil {
		logger.Error("rpcCreateGame [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	resp := FindGameResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	logger.Info("rpcCreateGame [User:%s]: Created match %s", userID, matchID)
	return string(b), nil
}

// rpcFulfillRandomness forwards oracle bytes into the match as a signal.
// The match validates the payload against its pending roll and replies
// with the outcome.
func rpcFulfillRandomness(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req FulfillRandomnessRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		logger.Warn("rpcFulfillRandomness: Bad payload: %v", err)
		return "", runtime.NewError("invalid payload", 3)
	}
	if req.MatchID == "" || req.Bytes == "" {
		return "", runtime.NewError("match_id and bytes are required", 3)
	}

	signal, _ := json.Marshal(SignalRequest{Cmd: SignalRandomness, Bytes: req.Bytes})
	reply, err := nk.MatchSignal(ctx, req.MatchID, string(signal))
	if err != nil {
		logger.Error("rpcFulfillRandomness: Signal to %s failed: %v", req.MatchID, err)
		return "", err
	}
	return reply, nil
}
