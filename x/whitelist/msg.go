package whitelist

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/token"
)

const (
	pathInitVaultMsg    = "whitelist/init_vault"
	pathSetWhitelistMsg = "whitelist/set"
	pathDepositMsg      = "whitelist/deposit"
)

var _ vaultswap.Msg = (*InitVaultMsg)(nil)
var _ vaultswap.Msg = (*SetWhitelistMsg)(nil)
var _ vaultswap.Msg = (*DepositMsg)(nil)

// InitVaultMsg opens the vault of the signer for a mint.
type InitVaultMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Mint     vaultswap.Address   `json:"mint"`
}

// SetWhitelistMsg adds a user to or removes it from the whitelist of the
// signer.
type SetWhitelistMsg struct {
	Metadata      *vaultswap.Metadata `json:"metadata"`
	User          vaultswap.Address   `json:"user"`
	IsWhitelisted bool                `json:"is_whitelisted"`
}

// DepositMsg moves tokens of the signer into the vault of admin.
type DepositMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Admin    vaultswap.Address   `json:"admin"`
	Mint     vaultswap.Address   `json:"mint"`
	Amount   uint64              `json:"amount"`
	Decimals uint32              `json:"decimals"`
}

// Path fulfills vaultswap.Msg interface to allow routing
func (InitVaultMsg) Path() string {
	return pathInitVaultMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (SetWhitelistMsg) Path() string {
	return pathSetWhitelistMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate makes sure that this is sensible
func (m *InitVaultMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *SetWhitelistMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "User", m.User.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	if m.Decimals > token.MaxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInvalidInput, "at most 18"))
	}
	return errs
}
