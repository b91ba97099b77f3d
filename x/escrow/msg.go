package escrow

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	packageName = "escrow"

	pathMakeMsg                = "escrow/make"
	pathTakeMsg                = "escrow/take"
	pathRefundMsg              = "escrow/refund"
	pathUpdateConfigurationMsg = "escrow/update_configuration"
)

var _ vaultswap.Msg = (*MakeMsg)(nil)
var _ vaultswap.Msg = (*TakeMsg)(nil)
var _ vaultswap.Msg = (*RefundMsg)(nil)
var _ vaultswap.Msg = (*UpdateConfigurationMsg)(nil)

// MakeMsg opens an escrow. The main signer is the maker.
type MakeMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Seed     uint64              `json:"seed"`
	MintA    vaultswap.Address   `json:"mint_a"`
	MintB    vaultswap.Address   `json:"mint_b"`
	// Deposit is the amount of MintA moved into the vault.
	Deposit uint64 `json:"deposit"`
	// Receive is the amount of MintB a taker must pay.
	Receive uint64 `json:"receive"`
}

// TakeMsg completes an escrow. The main signer is the taker.
type TakeMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Escrow   vaultswap.Address   `json:"escrow"`
}

// RefundMsg cancels an escrow. It must be signed by the maker.
type RefundMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Escrow   vaultswap.Address   `json:"escrow"`
}

// UpdateConfigurationMsg patches the escrow configuration.
type UpdateConfigurationMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

//--------- Path routing --------

// Path fulfills vaultswap.Msg interface to allow routing
func (MakeMsg) Path() string {
	return pathMakeMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (TakeMsg) Path() string {
	return pathTakeMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

//--------- Validation --------

// Validate makes sure that this is sensible
func (m *MakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MintA", m.MintA.Validate())
	errs = errors.AppendField(errs, "MintB", m.MintB.Validate())
	if len(m.MintA) != 0 && m.MintA.Equals(m.MintB) {
		errs = errors.Append(errs, errors.Field("MintB", errors.ErrInvalidInput, "same as MintA"))
	}
	if m.Deposit == 0 {
		errs = errors.Append(errs, errors.Field("Deposit", errors.ErrInvalidAmount, "must be positive"))
	}
	if m.Receive == 0 {
		errs = errors.Append(errs, errors.Field("Receive", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

// Validate makes sure that this is sensible
func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "required"))
	}
	return errs
}
