package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server-side rule and session tunables. Values come
// from the Nakama runtime environment, with sensible defaults for every
// field so a bare deployment runs the standard rules.
type Config struct {
	// EvenBuild enforces even liquidity-pool development across a color
	// group, classic building rules.
	EvenBuild bool `env:"EVEN_BUILD" envDefault:"true"`

	// TradeExpiryTurns is how many turns a trade offer stays open.
	TradeExpiryTurns uint32 `env:"TRADE_EXPIRY_TURNS" envDefault:"8"`

	// AuctionIdleTicks is how many match-loop ticks without a new bid
	// before the session layer force-closes an auction.
	AuctionIdleTicks int `env:"AUCTION_IDLE_TICKS" envDefault:"150"`

	// TickRate is the authoritative match loop frequency in Hz.
	TickRate int `env:"MATCH_TICK_RATE" envDefault:"5"`

	// EmptyMatchTicks is how many ticks a match survives with no
	// connected presences before terminating itself.
	EmptyMatchTicks int `env:"EMPTY_MATCH_TICKS" envDefault:"300"`

	// DefaultEntryFee is the wallet currency staked per seat when the
	// match creator does not specify a fee.
	DefaultEntryFee int64 `env:"DEFAULT_ENTRY_FEE" envDefault:"0"`

	// OracleRandomness leaves roll requests pending for an external
	// randomness oracle to fulfill through the fulfill_randomness RPC.
	// When off, the match fulfills rolls itself in the same tick.
	OracleRandomness bool `env:"ORACLE_RANDOMNESS" envDefault:"false"`

	// WelcomeBonus is the wallet grant for freshly registered accounts.
	WelcomeBonus int64 `env:"WELCOME_BONUS" envDefault:"10000"`

	// SnapshotCollection is the storage collection game snapshots are
	// written to after every completed turn.
	SnapshotCollection string `env:"SNAPSHOT_COLLECTION" envDefault:"blockpoly_games"`
}

// FromEnv parses a Config out of the runtime environment map Nakama
// exposes to modules. Unknown keys are ignored.
func FromEnv(envMap map[string]string) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Environment: envMap}); err != nil {
		return Config{}, fmt.Errorf("parse runtime env: %w", err)
	}
	return c, nil
}
