package vaultswapd

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/commands"
	"github.com/iov-one/vaultswap/crypto"
	"github.com/iov-one/vaultswap/x/escrow"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
)

// exampleChainID is used to sign the example transactions
const exampleChainID = "vaultswap-examples"

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	makerKey := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	maker := makerKey.PublicKey().Address()
	mintA := token.MintAddress(maker, "AAA")
	mintB := token.MintAddress(maker, "BBB")
	escrowAddr := escrow.Address(maker, 1)

	mint := &token.Mint{
		Metadata:  &vaultswap.Metadata{Schema: 1},
		Symbol:    "AAA",
		Decimals:  6,
		Authority: maker,
		Supply:    1000,
	}
	account := &token.Account{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Mint:     mintA,
		Owner:    maker,
		Amount:   1000,
	}
	makeMsg := &escrow.MakeMsg{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Seed:     1,
		MintA:    mintA,
		MintB:    mintB,
		Deposit:  100,
		Receive:  40,
	}
	takeMsg := &escrow.TakeMsg{
		Metadata: &vaultswap.Metadata{Schema: 1},
		Escrow:   escrowAddr,
	}

	unsigned := &Tx{Msg: makeMsg}
	signed := &Tx{Msg: takeMsg}
	sig, err := sigs.SignTx(makerKey, signed, exampleChainID, 0)
	if err != nil {
		panic(err)
	}
	signed.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "mint", Obj: mint},
		{Filename: "account", Obj: account},
		{Filename: "make_msg", Obj: makeMsg},
		{Filename: "take_msg", Obj: takeMsg},
		{Filename: "unsigned_tx", Obj: unsigned},
		{Filename: "signed_tx", Obj: signed},
	}
}
