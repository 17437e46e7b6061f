package domain

// EffectKind enumerates every card effect the two decks can produce.
// The set is closed: resolution switches over it exhaustively.
type EffectKind int

const (
	// EffectMoveTo moves the player to Target, crediting the Genesis
	// payout when the move passes Genesis Block.
	EffectMoveTo EffectKind = iota
	// EffectMoveToNearestBridge moves to the next bridge ahead with a
	// doubled rent obligation if it is owned.
	EffectMoveToNearestBridge
	// EffectMoveRelative moves by Steps (negative = backward) and applies
	// the landing effect of the destination. No Genesis credit backward.
	EffectMoveRelative
	// EffectCollect pays Amount from the bank, or from every other player
	// when PerPlayer is set.
	EffectCollect
	// EffectPay charges Amount to the bank, or to every other player when
	// PerPlayer is set.
	EffectPay
	// EffectPayDiceToll charges Amount per pip of the turn's dice total.
	EffectPayDiceToll
	// EffectLosePercent forfeits Percent of the current balance to the bank.
	EffectLosePercent
	// EffectBullRun doubles qualifying rents until the end of the next round.
	EffectBullRun
	// EffectImmunity banks a tradeable penalty-zone exit card.
	EffectImmunity
	// EffectStealLastRent redirects the most recent rent payment to the drawer.
	EffectStealLastRent
	// EffectFlashLoan advances a loan due at the start of the next turn.
	EffectFlashLoan
	// EffectLoseCheapestProperty confiscates the cheapest undeveloped
	// holding back to the bank with no refund.
	EffectLoseCheapestProperty
	// EffectGoToRugpull sends the drawer straight to the penalty zone.
	EffectGoToRugpull
	// EffectForcedSale sells the most expensive holding back to the bank
	// at half its purchase price.
	EffectForcedSale
	// EffectAdvanceToUnowned moves to the nearest unowned purchasable
	// space, discounting an immediate purchase by half.
	EffectAdvanceToUnowned
	// EffectPayPerBuilding charges Amount per liquidity pool plus
	// ProtocolAmount per full protocol.
	EffectPayPerBuilding
	// EffectCollectPerLP pays Amount per liquidity pool owned.
	EffectCollectPerLP
	// EffectCollectPerSet pays Amount per complete color set owned.
	EffectCollectPerSet
	// EffectBridgeExploit forfeits one owned bridge, or pays Amount when
	// the drawer owns none.
	EffectBridgeExploit
	// EffectRugpullInsurance frees a held drawer, or pays Amount otherwise.
	EffectRugpullInsurance
)

// Card is a static deck entry. Which fields matter depends on Effect.
type Card struct {
	ID     int
	Name   string
	Effect EffectKind

	Target         int   // EffectMoveTo destination
	Steps          int   // EffectMoveRelative delta
	Amount         int64 // primary amount for monetary effects
	ProtocolAmount int64 // EffectPayPerBuilding full-protocol rate
	Percent        int64 // EffectLosePercent share of balance
	PerPlayer      bool  // route Amount through every other player
}

var alphaCards = [DeckSize]Card{
	{ID: 0, Name: "Advance to Genesis Block", Effect: EffectMoveTo, Target: 0},
	{ID: 1, Name: "Advance to Solana", Effect: EffectMoveTo, Target: 39},
	{ID: 2, Name: "Advance to Nearest Bridge", Effect: EffectMoveToNearestBridge},
	{ID: 3, Name: "Advance to Wormhole", Effect: EffectMoveTo, Target: 5},
	{ID: 4, Name: "Staking Rewards", Effect: EffectCollect, Amount: 50_000_000},
	{ID: 5, Name: "Get Out of Rug Pull Free", Effect: EffectImmunity},
	{ID: 6, Name: "MEV Bot Attack", Effect: EffectPayDiceToll, Amount: 4_000_000},
	{ID: 7, Name: "Market Crash", Effect: EffectLosePercent, Percent: 20},
	{ID: 8, Name: "Bull Run", Effect: EffectBullRun},
	{ID: 9, Name: "51% Attack", Effect: EffectStealLastRent},
	{ID: 10, Name: "Flash Loan", Effect: EffectFlashLoan},
	{ID: 11, Name: "Protocol Hack", Effect: EffectLoseCheapestProperty},
	{ID: 12, Name: "Go Back 3 Spaces", Effect: EffectMoveRelative, Steps: -3},
	{ID: 13, Name: "SEC Investigation", Effect: EffectGoToRugpull},
	{ID: 14, Name: "Whale Dump", Effect: EffectForcedSale},
	{ID: 15, Name: "Airdrop Season", Effect: EffectAdvanceToUnowned},
}

var governanceCards = [DeckSize]Card{
	{ID: 0, Name: "Protocol Treasury Release", Effect: EffectCollect, Amount: 200_000_000},
	{ID: 1, Name: "Validator Node Income", Effect: EffectCollect, Amount: 100_000_000},
	{ID: 2, Name: "DAO Airdrop", Effect: EffectCollect, Amount: 10_000_000, PerPlayer: true},
	{ID: 3, Name: "Get Out of Rug Pull Free", Effect: EffectImmunity},
	{ID: 4, Name: "Smart Contract Exploit Found", Effect: EffectGoToRugpull},
	{ID: 5, Name: "Gas Fee Rebate", Effect: EffectCollect, Amount: 50_000_000},
	{ID: 6, Name: "Infrastructure Levy", Effect: EffectPayPerBuilding, Amount: 40_000_000, ProtocolAmount: 115_000_000},
	{ID: 7, Name: "Protocol Upgrade Vote", Effect: EffectPay, Amount: 100_000_000},
	{ID: 8, Name: "Liquidity Mining Rewards", Effect: EffectCollectPerLP, Amount: 25_000_000},
	{ID: 9, Name: "Token Unlock Cliff", Effect: EffectPay, Amount: 150_000_000, PerPlayer: true},
	{ID: 10, Name: "Bridge Exploited", Effect: EffectBridgeExploit, Amount: 50_000_000},
	{ID: 11, Name: "DAO Birthday Vote", Effect: EffectCollect, Amount: 50_000_000, PerPlayer: true},
	{ID: 12, Name: "Yield Farming Season", Effect: EffectMoveTo, Target: 20},
	{ID: 13, Name: "Regulatory Compliance Fine", Effect: EffectPay, Amount: 50_000_000},
	{ID: 14, Name: "NFT Royalty Income", Effect: EffectCollectPerSet, Amount: 20_000_000},
	{ID: 15, Name: "Rug Pull Insurance", Effect: EffectRugpullInsurance, Amount: 75_000_000},
}

// CardAt looks up a card definition by deck and index.
func CardAt(kind DeckKind, id int) (Card, bool) {
	if id < 0 || id >= DeckSize {
		return Card{}, false
	}
	if kind == DeckGovernance {
		return governanceCards[id], true
	}
	return alphaCards[id], true
}
