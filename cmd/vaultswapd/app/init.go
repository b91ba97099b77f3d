package vaultswapd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	"github.com/iov-one/vaultswap/crypto"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/escrow"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/vrf"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// Name is reported by abci Info
	Name = "vaultswapd"

	defaultSymbol   = "SWAP"
	defaultDecimals = 6
	// issued to the genesis key, in base units
	defaultSupply = 1000000 * 1000000
)

type genesisMint struct {
	Authority    vaultswap.Address `json:"authority"`
	Symbol       string            `json:"symbol"`
	Decimals     uint32            `json:"decimals"`
	TransferHook string            `json:"transfer_hook"`
}

type genesisAccount struct {
	Owner  vaultswap.Address `json:"owner"`
	Mint   vaultswap.Address `json:"mint"`
	Amount uint64            `json:"amount"`
}

type genesisToken struct {
	Mints    []genesisMint    `json:"mints"`
	Accounts []genesisAccount `json:"accounts"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the symbol of the genesis mint and the address owning it:
//   vaultswapd init [symbol] [hex address]
func GenInitOptions(args []string) (json.RawMessage, error) {
	symbol := defaultSymbol
	if len(args) > 0 {
		symbol = args[0]
	}

	var addr vaultswap.Address
	if len(args) > 1 {
		a, err := vaultswap.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "genesis address")
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}
	return genesisState(addr, symbol)
}

func genesisState(addr vaultswap.Address, symbol string) (json.RawMessage, error) {
	mint := genesisMint{Authority: addr, Symbol: symbol, Decimals: defaultDecimals}
	if err := (&token.Mint{
		Metadata:  &vaultswap.Metadata{Schema: 1},
		Authority: addr,
		Symbol:    symbol,
		Decimals:  defaultDecimals,
	}).Validate(); err != nil {
		return nil, errors.Wrap(err, "genesis mint")
	}

	state := map[string]interface{}{
		"token": genesisToken{
			Mints: []genesisMint{mint},
			Accounts: []genesisAccount{{
				Owner:  addr,
				Mint:   token.MintAddress(addr, symbol),
				Amount: defaultSupply,
			}},
		},
		"conf": map[string]interface{}{
			"escrow": escrow.Configuration{
				Metadata:   &vaultswap.Metadata{Schema: 1},
				Owner:      addr,
				LockPeriod: vaultswap.AsUnixDuration(escrow.DefaultLockPeriod),
			},
			"vrf": vrf.Configuration{
				Metadata: &vaultswap.Metadata{Schema: 1},
				Owner:    addr,
				Identity: addr,
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "vaultswap.db")
	}

	hooks := Hooks()
	stack := Stack(token.NewController(hooks))
	application, err := Application(Name, stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers(hooks))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// InlineApp will take a previously prepared CommitStore and return a complete Application
func InlineApp(kv vaultswap.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	hooks := Hooks()
	stack := Stack(token.NewController(hooks))
	ctx := context.Background()
	store := app.NewStoreApp(Name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, TxDecoder, stack, debug)
	base.WithInit(Initializers(hooks))
	base.WithLogger(logger)
	return base
}

type output struct {
	Pubkey crypto.PublicKey  `json:"pub_key"`
	Secret crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (vaultswap.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return addr, string(keys), nil
}
