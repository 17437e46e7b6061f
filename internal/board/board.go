// Package board holds the static 40-space board definition.
// All BPOLY amounts are integer micro-units (1 BPOLY = 1_000_000 micro-BPOLY).
// Nothing in this package mutates; every lookup is a total function that
// wraps at board size.
package board

// SpaceType classifies what happens when a player lands on a space.
type SpaceType int

const (
	TypeProperty SpaceType = iota
	TypeCardAlpha
	TypeCardGovernance
	TypeTax
	TypeBridge
	TypeUtility
	TypeRugpull
	TypeGoToRugpull
	TypeFreeParking
	TypeGenesis
)

// Group is a color group identifier for monopoly checks.
type Group int

const (
	GroupBrown Group = iota
	GroupLightBlue
	GroupPink
	GroupOrange
	GroupRed
	GroupYellow
	GroupGreen
	GroupDarkBlue
	GroupBridge
	GroupUtility
	// GroupNone marks non-ownable spaces.
	GroupNone Group = -1
)

// Board geometry.
const (
	Size = 40

	SpaceGenesis     = 0
	SpaceRugpullZone = 10
	SpaceDeFiSummer  = 20 // free parking
	SpaceGoToRugpull = 30 // SEC Investigation
)

// Space is the complete static definition of one board space.
type Space struct {
	Index int
	Name  string
	Type  SpaceType
	Group Group

	// Price is the purchase price, 0 for non-purchasable spaces.
	Price int64
	// BaseRent is the unimproved non-monopoly rent. Tax spaces store the
	// tax amount here.
	BaseRent int64
	// LPRents holds rent with 1-4 liquidity pool tiers built.
	LPRents [4]int64
	// ProtocolRent is the rent once the full protocol upgrade is built.
	ProtocolRent int64
	// MortgageValue is half the purchase price.
	MortgageValue int64
	// LPCost is the cost to build one liquidity pool tier.
	LPCost int64
	// BridgeRents is rent by number of bridges the owner holds (1-4).
	BridgeRents [4]int64
}

// Purchasable reports whether the space can be owned by a player.
func (s Space) Purchasable() bool {
	return s.Price > 0
}

// Per-group build costs, mirrored from the board plan.
const (
	lpCostBrown     = 50_000_000
	lpCostLightBlue = 50_000_000
	lpCostPink      = 100_000_000
	lpCostOrange    = 100_000_000
	lpCostRed       = 150_000_000
	lpCostYellow    = 150_000_000
	lpCostGreen     = 200_000_000
	lpCostDarkBlue  = 200_000_000
)

// bpoly scales a display-unit amount into micro-units.
func bpoly(n int64) int64 { return n * 1_000_000 }

var bridgeRents = [4]int64{bpoly(25), bpoly(50), bpoly(100), bpoly(200)}

var spaces = [Size]Space{
	{Index: 0, Name: "Genesis Block", Type: TypeGenesis, Group: GroupNone},
	{
		Index: 1, Name: "BONK", Type: TypeProperty, Group: GroupBrown,
		Price: bpoly(60), BaseRent: bpoly(2),
		LPRents: [4]int64{bpoly(10), bpoly(30), bpoly(90), bpoly(160)},
		ProtocolRent: bpoly(250), MortgageValue: bpoly(30), LPCost: lpCostBrown,
	},
	{Index: 2, Name: "Alpha Call", Type: TypeCardAlpha, Group: GroupNone},
	{
		Index: 3, Name: "dogwifhat", Type: TypeProperty, Group: GroupBrown,
		Price: bpoly(60), BaseRent: bpoly(4),
		LPRents: [4]int64{bpoly(20), bpoly(60), bpoly(180), bpoly(320)},
		ProtocolRent: bpoly(450), MortgageValue: bpoly(30), LPCost: lpCostBrown,
	},
	{Index: 4, Name: "Gas Fees Tax", Type: TypeTax, Group: GroupNone, BaseRent: bpoly(200)},
	{
		Index: 5, Name: "Wormhole", Type: TypeBridge, Group: GroupBridge,
		Price: bpoly(200), MortgageValue: bpoly(100), BridgeRents: bridgeRents,
	},
	{
		Index: 6, Name: "Pyth Network", Type: TypeProperty, Group: GroupLightBlue,
		Price: bpoly(100), BaseRent: bpoly(6),
		LPRents: [4]int64{bpoly(30), bpoly(90), bpoly(270), bpoly(400)},
		ProtocolRent: bpoly(550), MortgageValue: bpoly(50), LPCost: lpCostLightBlue,
	},
	{Index: 7, Name: "Governance Vote", Type: TypeCardGovernance, Group: GroupNone},
	{
		Index: 8, Name: "Switchboard", Type: TypeProperty, Group: GroupLightBlue,
		Price: bpoly(100), BaseRent: bpoly(6),
		LPRents: [4]int64{bpoly(30), bpoly(90), bpoly(270), bpoly(400)},
		ProtocolRent: bpoly(550), MortgageValue: bpoly(50), LPCost: lpCostLightBlue,
	},
	{
		Index: 9, Name: "Clockwork", Type: TypeProperty, Group: GroupLightBlue,
		Price: bpoly(120), BaseRent: bpoly(8),
		LPRents: [4]int64{bpoly(40), bpoly(100), bpoly(300), bpoly(450)},
		ProtocolRent: bpoly(600), MortgageValue: bpoly(60), LPCost: lpCostLightBlue,
	},
	{Index: 10, Name: "Rug Pull Zone", Type: TypeRugpull, Group: GroupNone},
	{
		Index: 11, Name: "Solflare", Type: TypeProperty, Group: GroupPink,
		Price: bpoly(140), BaseRent: bpoly(10),
		LPRents: [4]int64{bpoly(50), bpoly(150), bpoly(450), bpoly(625)},
		ProtocolRent: bpoly(750), MortgageValue: bpoly(70), LPCost: lpCostPink,
	},
	{
		Index: 12, Name: "QuickNode", Type: TypeUtility, Group: GroupUtility,
		Price: bpoly(150), MortgageValue: bpoly(75),
	},
	{
		Index: 13, Name: "Phantom", Type: TypeProperty, Group: GroupPink,
		Price: bpoly(140), BaseRent: bpoly(10),
		LPRents: [4]int64{bpoly(50), bpoly(150), bpoly(450), bpoly(625)},
		ProtocolRent: bpoly(750), MortgageValue: bpoly(70), LPCost: lpCostPink,
	},
	{
		Index: 14, Name: "Backpack", Type: TypeProperty, Group: GroupPink,
		Price: bpoly(160), BaseRent: bpoly(12),
		LPRents: [4]int64{bpoly(60), bpoly(180), bpoly(500), bpoly(700)},
		ProtocolRent: bpoly(900), MortgageValue: bpoly(80), LPCost: lpCostPink,
	},
	{
		Index: 15, Name: "deBridge", Type: TypeBridge, Group: GroupBridge,
		Price: bpoly(200), MortgageValue: bpoly(100), BridgeRents: bridgeRents,
	},
	{
		Index: 16, Name: "Metaplex", Type: TypeProperty, Group: GroupOrange,
		Price: bpoly(180), BaseRent: bpoly(14),
		LPRents: [4]int64{bpoly(70), bpoly(200), bpoly(550), bpoly(750)},
		ProtocolRent: bpoly(950), MortgageValue: bpoly(90), LPCost: lpCostOrange,
	},
	{Index: 17, Name: "Alpha Call", Type: TypeCardAlpha, Group: GroupNone},
	{
		Index: 18, Name: "Magic Eden", Type: TypeProperty, Group: GroupOrange,
		Price: bpoly(180), BaseRent: bpoly(14),
		LPRents: [4]int64{bpoly(70), bpoly(200), bpoly(550), bpoly(750)},
		ProtocolRent: bpoly(950), MortgageValue: bpoly(90), LPCost: lpCostOrange,
	},
	{
		Index: 19, Name: "Tensor", Type: TypeProperty, Group: GroupOrange,
		Price: bpoly(200), BaseRent: bpoly(16),
		LPRents: [4]int64{bpoly(80), bpoly(220), bpoly(600), bpoly(800)},
		ProtocolRent: bpoly(1000), MortgageValue: bpoly(100), LPCost: lpCostOrange,
	},
	{Index: 20, Name: "DeFi Summer", Type: TypeFreeParking, Group: GroupNone},
	{
		Index: 21, Name: "Raydium", Type: TypeProperty, Group: GroupRed,
		Price: bpoly(220), BaseRent: bpoly(18),
		LPRents: [4]int64{bpoly(90), bpoly(250), bpoly(700), bpoly(875)},
		ProtocolRent: bpoly(1050), MortgageValue: bpoly(110), LPCost: lpCostRed,
	},
	{Index: 22, Name: "Governance Vote", Type: TypeCardGovernance, Group: GroupNone},
	{
		Index: 23, Name: "Orca", Type: TypeProperty, Group: GroupRed,
		Price: bpoly(220), BaseRent: bpoly(18),
		LPRents: [4]int64{bpoly(90), bpoly(250), bpoly(700), bpoly(875)},
		ProtocolRent: bpoly(1050), MortgageValue: bpoly(110), LPCost: lpCostRed,
	},
	{
		Index: 24, Name: "Meteora", Type: TypeProperty, Group: GroupRed,
		Price: bpoly(240), BaseRent: bpoly(20),
		LPRents: [4]int64{bpoly(100), bpoly(300), bpoly(750), bpoly(925)},
		ProtocolRent: bpoly(1100), MortgageValue: bpoly(120), LPCost: lpCostRed,
	},
	{
		Index: 25, Name: "Allbridge", Type: TypeBridge, Group: GroupBridge,
		Price: bpoly(200), MortgageValue: bpoly(100), BridgeRents: bridgeRents,
	},
	{
		Index: 26, Name: "Marginfi", Type: TypeProperty, Group: GroupYellow,
		Price: bpoly(260), BaseRent: bpoly(22),
		LPRents: [4]int64{bpoly(110), bpoly(330), bpoly(850), bpoly(1025)},
		ProtocolRent: bpoly(1200), MortgageValue: bpoly(130), LPCost: lpCostYellow,
	},
	{
		Index: 27, Name: "Kamino Finance", Type: TypeProperty, Group: GroupYellow,
		Price: bpoly(260), BaseRent: bpoly(22),
		LPRents: [4]int64{bpoly(110), bpoly(330), bpoly(850), bpoly(1025)},
		ProtocolRent: bpoly(1200), MortgageValue: bpoly(130), LPCost: lpCostYellow,
	},
	{
		Index: 28, Name: "Triton One", Type: TypeUtility, Group: GroupUtility,
		Price: bpoly(150), MortgageValue: bpoly(75),
	},
	{
		Index: 29, Name: "Drift Protocol", Type: TypeProperty, Group: GroupYellow,
		Price: bpoly(280), BaseRent: bpoly(24),
		LPRents: [4]int64{bpoly(120), bpoly(360), bpoly(900), bpoly(1100)},
		ProtocolRent: bpoly(1275), MortgageValue: bpoly(140), LPCost: lpCostYellow,
	},
	{Index: 30, Name: "SEC Investigation", Type: TypeGoToRugpull, Group: GroupNone},
	{
		Index: 31, Name: "Jupiter", Type: TypeProperty, Group: GroupGreen,
		Price: bpoly(300), BaseRent: bpoly(26),
		LPRents: [4]int64{bpoly(130), bpoly(390), bpoly(900), bpoly(1100)},
		ProtocolRent: bpoly(1275), MortgageValue: bpoly(150), LPCost: lpCostGreen,
	},
	{
		Index: 32, Name: "Jito", Type: TypeProperty, Group: GroupGreen,
		Price: bpoly(300), BaseRent: bpoly(26),
		LPRents: [4]int64{bpoly(130), bpoly(390), bpoly(900), bpoly(1100)},
		ProtocolRent: bpoly(1275), MortgageValue: bpoly(150), LPCost: lpCostGreen,
	},
	{Index: 33, Name: "Alpha Call", Type: TypeCardAlpha, Group: GroupNone},
	{
		Index: 34, Name: "Nosana", Type: TypeProperty, Group: GroupGreen,
		Price: bpoly(320), BaseRent: bpoly(28),
		LPRents: [4]int64{bpoly(150), bpoly(450), bpoly(1000), bpoly(1200)},
		ProtocolRent: bpoly(1400), MortgageValue: bpoly(160), LPCost: lpCostGreen,
	},
	{
		Index: 35, Name: "Mayan Finance", Type: TypeBridge, Group: GroupBridge,
		Price: bpoly(200), MortgageValue: bpoly(100), BridgeRents: bridgeRents,
	},
	{Index: 36, Name: "Governance Vote", Type: TypeCardGovernance, Group: GroupNone},
	{
		Index: 37, Name: "Helius", Type: TypeProperty, Group: GroupDarkBlue,
		Price: bpoly(350), BaseRent: bpoly(35),
		LPRents: [4]int64{bpoly(175), bpoly(500), bpoly(1100), bpoly(1300)},
		ProtocolRent: bpoly(1500), MortgageValue: bpoly(175), LPCost: lpCostDarkBlue,
	},
	{Index: 38, Name: "Protocol Fee", Type: TypeTax, Group: GroupNone, BaseRent: bpoly(100)},
	{
		Index: 39, Name: "Solana", Type: TypeProperty, Group: GroupDarkBlue,
		Price: bpoly(400), BaseRent: bpoly(50),
		LPRents: [4]int64{bpoly(200), bpoly(600), bpoly(1400), bpoly(1700)},
		ProtocolRent: bpoly(2000), MortgageValue: bpoly(200), LPCost: lpCostDarkBlue,
	},
}

// BridgeSpaces lists the four bridge space indices in board order.
var BridgeSpaces = []int{5, 15, 25, 35}

// UtilitySpaces lists the two utility space indices.
var UtilitySpaces = []int{12, 28}

var groupSpaces = map[Group][]int{
	GroupBrown:     {1, 3},
	GroupLightBlue: {6, 8, 9},
	GroupPink:      {11, 13, 14},
	GroupOrange:    {16, 18, 19},
	GroupRed:       {21, 23, 24},
	GroupYellow:    {26, 27, 29},
	GroupGreen:     {31, 32, 34},
	GroupDarkBlue:  {37, 39},
	GroupBridge:    {5, 15, 25, 35},
	GroupUtility:   {12, 28},
}

// Normalize maps any integer onto a valid board index.
func Normalize(pos int) int {
	return ((pos % Size) + Size) % Size
}

// At returns the space at the given position, wrapping at board size.
func At(pos int) Space {
	return spaces[Normalize(pos)]
}

// GroupSpaces returns the space indices belonging to a color group.
// Unknown groups return nil.
func GroupSpaces(g Group) []int {
	return groupSpaces[g]
}

// NearestBridgeAhead returns the first bridge space strictly ahead of pos,
// wrapping past Genesis.
func NearestBridgeAhead(pos int) int {
	pos = Normalize(pos)
	for _, b := range BridgeSpaces {
		if b > pos {
			return b
		}
	}
	return BridgeSpaces[0]
}

// NearestPropertyAhead returns the first plain property space strictly ahead
// of pos, wrapping past Genesis. When accept is non-nil, only spaces it
// approves qualify. If no space qualifies, pos itself is returned.
func NearestPropertyAhead(pos int, accept func(space int) bool) int {
	pos = Normalize(pos)
	for i := 1; i < Size; i++ {
		space := (pos + i) % Size
		if spaces[space].Type != TypeProperty {
			continue
		}
		if accept == nil || accept(space) {
			return space
		}
	}
	return pos
}
