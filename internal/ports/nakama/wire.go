package nakama

import (
	"encoding/json"

	"blockpoly/internal/app"
	"blockpoly/internal/domain"
)

// SpaceRequest targets an owned board space (build, sell, mortgage).
// SiblingTiers optionally carries the client's view of the tier of every
// space in the color group, in board order; a build is rejected when it
// no longer matches the authoritative records.
type SpaceRequest struct {
	Space        int   `json:"space"`
	SiblingTiers []int `json:"sibling_tiers,omitempty"`
}

// BidRequest raises an auction bid.
type BidRequest struct {
	Amount int64 `json:"amount"`
}

// TradeRequest carries the proposer's terms.
type TradeRequest struct {
	Recipient           int   `json:"recipient"`
	OfferedProperties   []int `json:"offered_properties"`
	OfferedAmount       int64 `json:"offered_amount"`
	RequestedProperties []int `json:"requested_properties"`
	RequestedAmount     int64 `json:"requested_amount"`
	OfferedImmunity     bool  `json:"offered_immunity"`
	RequestedImmunity   bool  `json:"requested_immunity"`
}

// TradeRefRequest references an open trade by id (accept, reject).
type TradeRefRequest struct {
	TradeID string `json:"trade_id"`
}

// SignalCmd names a match signal verb.
type SignalCmd string

// SignalRandomness delivers oracle bytes for a pending roll.
const SignalRandomness SignalCmd = "randomness"

// SignalRequest is the JSON frame carried by a match signal. Bytes is
// standard base64.
type SignalRequest struct {
	Cmd   SignalCmd `json:"cmd"`
	Bytes string    `json:"bytes,omitempty"`
}

// EventEnvelope is the server event frame sent on OpServerEvent.
type EventEnvelope struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// ErrorEvent is the targeted frame sent on OpServerError.
type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Snapshot is the full authoritative state frame sent on OpServerSnapshot.
type Snapshot struct {
	Game *domain.Game `json:"game"`
	Tick int64        `json:"tick"`
}

func marshalEnvelope(ev app.Event) ([]byte, error) {
	return json.Marshal(EventEnvelope{Kind: ev.Kind, Payload: ev.Payload})
}

// snapshotBytes serializes the game for broadcast with the deck orders
// blanked so clients cannot peek at future draws.
func snapshotBytes(g *domain.Game, tick int64) ([]byte, error) {
	redacted := *g
	redacted.AlphaDeck = domain.Deck{}
	redacted.GovernanceDeck = domain.Deck{}
	return json.Marshal(Snapshot{Game: &redacted, Tick: tick})
}
