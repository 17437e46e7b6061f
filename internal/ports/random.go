package ports

// RandomnessPort supplies verified random bytes for dice rolls and deck
// shuffles. Implementations must return at least 32 bytes per draw.
type RandomnessPort interface {
	Randomness() ([]byte, error)
}
