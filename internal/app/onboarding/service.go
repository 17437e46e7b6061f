package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"blockpoly/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// WelcomeBonusGranted is false when the bonus had already been granted.
	WelcomeBonusGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	bonus    ports.WelcomeBonusPort
	amount   int64
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/bonus must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, bonus ports.WelcomeBonusPort, amount int64, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		bonus:    bonus,
		amount:   amount,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and wallet for a newly created account.
// Returns a Result with any non-fatal issues and an error if the welcome
// bonus could not be attempted. Side effects: updates the account profile
// and grants a one-time wallet bonus.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.bonus == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		// Profile updates are best-effort; wallet grants are more important.
		result.ProfileUpdateErr = err
	}

	granted, err := s.bonus.GrantWelcomeBonusOnce(ctx, userID, s.amount, map[string]interface{}{
		"reason": "welcome_bonus",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome bonus: %w", err)
	}
	result.WelcomeBonusGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Degen", "Diamond", "Based", "Bullish", "Liquid", "Wrapped", "Staked", "Alpha", "Sovereign", "Atomic"}
	nouns := []string{"Whale", "Hodler", "Validator", "Miner", "Oracle", "Maxi", "Farmer", "Trader", "Builder", "Ape"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
