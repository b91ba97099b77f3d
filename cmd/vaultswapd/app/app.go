/*
Package vaultswapd links together all the various components
to construct the vaultswapd app.
*/
package vaultswapd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/app"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/orm"
	"github.com/iov-one/vaultswap/store/iavl"
	"github.com/iov-one/vaultswap/x"
	"github.com/iov-one/vaultswap/x/escrow"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/utils"
	"github.com/iov-one/vaultswap/x/vrf"
	"github.com/iov-one/vaultswap/x/whitelist"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Hooks returns the transfer hooks a mint may name.
func Hooks() token.Hooks {
	hooks := token.Hooks{}
	hooks.Register(whitelist.HookName, whitelist.NewHook())
	return hooks
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the handlers of all extensions.
func Router(authFn x.Authenticator, ctrl token.BaseController) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, authFn, ctrl)
	escrow.RegisterRoutes(r, authFn, ctrl)
	whitelist.RegisterRoutes(r, authFn, ctrl)
	vrf.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/mints", "/accounts", "/escrows", "/vaults",
// "/whitelist", "/vrf_users", "/auth" and "/"
func QueryRouter() vaultswap.QueryRouter {
	r := vaultswap.NewQueryRouter()
	r.RegisterAll(
		token.RegisterQuery,
		escrow.RegisterQuery,
		whitelist.RegisterQuery,
		vrf.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(ctrl token.BaseController) vaultswap.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, ctrl))
}

// Initializers loads the genesis of all extensions. Mints and balances come
// first so escrows can be funded from them.
func Initializers(hooks token.Hooks) vaultswap.Initializer {
	return vaultswap.ChainInitializers(
		&token.Initializer{Hooks: hooks},
		&escrow.Initializer{Minter: token.NewController(hooks)},
		&vrf.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h vaultswap.Handler,
	tx vaultswap.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (vaultswap.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
