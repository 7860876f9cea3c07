package commands

import (
	"context"
	"fmt"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/crypto"
)

// SeedSellerAccount is a seller login created at startup. This is the only
// path that produces seller-role accounts; the registration API cannot.
type SeedSellerAccount struct {
	Email    string
	Password string
}

// SeedSellersHandler ensures the configured seller accounts exist.
type SeedSellersHandler struct {
	repo   domain.UserRepository
	hasher crypto.PasswordHasher
}

func NewSeedSellersHandler(repo domain.UserRepository, hasher crypto.PasswordHasher) *SeedSellersHandler {
	return &SeedSellersHandler{
		repo:   repo,
		hasher: hasher,
	}
}

// Handle creates each missing seller account. Existing accounts are left
// untouched, so password changes in config do not rewrite live accounts.
func (h *SeedSellersHandler) Handle(ctx context.Context, accounts []SeedSellerAccount) error {
	for _, account := range accounts {
		email, err := domain.NewEmail(account.Email)
		if err != nil {
			return fmt.Errorf("seed seller %q: %w", account.Email, err)
		}

		exists, err := h.repo.Exists(ctx, email)
		if err != nil {
			return fmt.Errorf("seed seller %q: %w", account.Email, err)
		}
		if exists {
			continue
		}

		hash, err := h.hasher.Hash(ctx, account.Password)
		if err != nil {
			return fmt.Errorf("seed seller %q: %w", account.Email, err)
		}

		user, err := domain.NewUser(email, hash, domain.RoleSeller)
		if err != nil {
			return fmt.Errorf("seed seller %q: %w", account.Email, err)
		}
		if err := h.repo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed seller %q: %w", account.Email, err)
		}
	}
	return nil
}
