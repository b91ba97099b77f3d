package vrf

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	packageName = "vrf"

	pathCreateUserMsg          = "vrf/create_user"
	pathCallbackMsg            = "vrf/callback"
	pathUpdateConfigurationMsg = "vrf/update_configuration"
)

var _ vaultswap.Msg = (*CreateUserMsg)(nil)
var _ vaultswap.Msg = (*CallbackMsg)(nil)
var _ vaultswap.Msg = (*UpdateConfigurationMsg)(nil)

// CreateUserMsg creates the account of the signer.
type CreateUserMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
}

// CallbackMsg delivers randomness for a user. It must be signed by the VRF
// identity.
type CallbackMsg struct {
	Metadata   *vaultswap.Metadata `json:"metadata"`
	User       vaultswap.Address   `json:"user"`
	Randomness []byte              `json:"randomness"`
}

// UpdateConfigurationMsg patches the vrf configuration.
type UpdateConfigurationMsg struct {
	Metadata *vaultswap.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

// Path fulfills vaultswap.Msg interface to allow routing
func (CreateUserMsg) Path() string {
	return pathCreateUserMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (CallbackMsg) Path() string {
	return pathCallbackMsg
}

// Path fulfills vaultswap.Msg interface to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate makes sure that this is sensible
func (m *CreateUserMsg) Validate() error {
	return errors.Field("Metadata", m.Metadata.Validate(), "")
}

// Validate makes sure that this is sensible
func (m *CallbackMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "User", m.User.Validate())
	if len(m.Randomness) != RandomnessLength {
		errs = errors.Append(errs, errors.Field("Randomness", errors.ErrInvalidInput, "must be 32 bytes"))
	}
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
