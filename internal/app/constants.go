package app

// MinPlayersToStart defines the minimum number of seated wallets required
// to start a game. Keep this centralized so tests or local runs can adjust
// the rule without touching multiple call sites.
const MinPlayersToStart = 2
