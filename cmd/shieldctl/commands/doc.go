// Package commands defines the shieldctl CLI: onboarding, balance
// decryption, private transfers and the shield/unshield flows.
package commands
