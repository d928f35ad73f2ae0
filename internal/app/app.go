package app

import "shieldwallet/internal/domain"

// App groups the protocol services commands call into.
type App struct {
	Onboarding domain.OnboardingService
	Balance    domain.BalanceService
	Transfer   domain.TransferService
	Shield     domain.ShieldService
	Unshield   domain.UnshieldService
	Public     domain.PublicTokenService
}

func New(
	onboarding domain.OnboardingService,
	balance domain.BalanceService,
	transfer domain.TransferService,
	shield domain.ShieldService,
	unshield domain.UnshieldService,
	public domain.PublicTokenService,
) *App {
	return &App{
		Onboarding: onboarding,
		Balance:    balance,
		Transfer:   transfer,
		Shield:     shield,
		Unshield:   unshield,
		Public:     public,
	}
}
