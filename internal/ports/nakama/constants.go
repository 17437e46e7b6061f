package nakama

const (
	// RpcFindGame is the Nakama RPC id clients call to find or create an
	// open game.
	RpcFindGame = "find_game"

	// RpcCreateGame is the Nakama RPC id clients call to create a fresh
	// game with explicit parameters (entry fee, seat cap).
	RpcCreateGame = "create_game"

	// RpcFulfillRandomness is the Nakama RPC id the randomness oracle
	// calls to deliver bytes for a pending roll.
	RpcFulfillRandomness = "fulfill_randomness"

	// MatchName is the authoritative match handler name registered with
	// Nakama.
	MatchName = "blockpoly_match"

	// MatchLabelKeyOpenSeats is the label key match listing queries filter on.
	MatchLabelKeyOpenSeats = "open"
)

// Op codes for client messages and server events. Client payloads are
// JSON; see wire.go for the shapes.
const (
	// Client -> Server
	OpStartGame         int64 = 1
	OpRequestRoll       int64 = 2
	OpResolveLanding    int64 = 3
	OpBuyProperty       int64 = 4
	OpDeclineBuy        int64 = 5
	OpAuctionBid        int64 = 6
	OpCloseAuction      int64 = 7
	OpPayRent           int64 = 8
	OpDrawCard          int64 = 9
	OpResolveCard       int64 = 10
	OpBuildTier         int64 = 11
	OpBuildProtocol     int64 = 12
	OpSellTier          int64 = 13
	OpMortgage          int64 = 14
	OpUnmortgage        int64 = 15
	OpProposeTrade      int64 = 16
	OpAcceptTrade       int64 = 17
	OpRejectTrade       int64 = 18
	OpRugpullBail       int64 = 19
	OpRugpullCard       int64 = 20
	OpRugpullRoll       int64 = 21
	OpDeclareBankruptcy int64 = 22

	// Server -> Client
	OpServerEvent    int64 = 101 // envelope carrying one app event
	OpServerError    int64 = 102 // targeted rule-violation report
	OpServerSnapshot int64 = 103 // full authoritative game snapshot
)
