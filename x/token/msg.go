package token

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	pathCreateMintMsg    = "token/create_mint"
	pathCreateAccountMsg = "token/create_account"
	pathMintToMsg        = "token/mint_to"
	pathTransferMsg      = "token/transfer"
)

var _ vaultswap.Msg = (*CreateMintMsg)(nil)
var _ vaultswap.Msg = (*CreateAccountMsg)(nil)
var _ vaultswap.Msg = (*MintToMsg)(nil)
var _ vaultswap.Msg = (*TransferMsg)(nil)

// CreateMintMsg creates a new mint. The signer becomes its authority.
type CreateMintMsg struct {
	Metadata     *vaultswap.Metadata `json:"metadata"`
	Symbol       string              `json:"symbol"`
	Decimals     uint32              `json:"decimals"`
	TransferHook string              `json:"transfer_hook"`
}

// CreateAccountMsg creates the associated token account of owner. Anyone
// may pay for it.
type CreateAccountMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Owner    vaultswap.Address   `json:"owner"`
	Mint     vaultswap.Address   `json:"mint"`
}

// MintToMsg issues new tokens. Only the mint authority may sign it.
type MintToMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Mint     vaultswap.Address   `json:"mint"`
	Owner    vaultswap.Address   `json:"owner"`
	Amount   uint64              `json:"amount"`
}

// TransferMsg moves tokens of the signer to the associated account of
// Destination.
type TransferMsg struct {
	Metadata    *vaultswap.Metadata `json:"metadata"`
	Mint        vaultswap.Address   `json:"mint"`
	Destination vaultswap.Address   `json:"destination"`
	Amount      uint64              `json:"amount"`
	Decimals    uint32              `json:"decimals"`
}

//--------- Path routing --------

// Path fulfills vaultswap.Msg interface to allow routing
func (CreateMintMsg) Path() string {
	return pathCreateMintMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (CreateAccountMsg) Path() string {
	return pathCreateAccountMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (MintToMsg) Path() string {
	return pathMintToMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (TransferMsg) Path() string {
	return pathTransferMsg
}

//--------- Validation --------

// Validate makes sure that this is sensible
func (m *CreateMintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !isSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrInvalidInput)
	}
	if m.Decimals > MaxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInvalidInput, "at most 18"))
	}
	if m.TransferHook != "" && !isHookName(m.TransferHook) {
		errs = errors.AppendField(errs, "TransferHook", errors.ErrInvalidInput)
	}
	return errs
}

// Validate makes sure that this is sensible
func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	if m.Decimals > MaxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInvalidInput, "at most 18"))
	}
	return errs
}
