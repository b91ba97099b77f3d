package server

import (
	"encoding/json"
	"io/ioutil"
	"testing"

	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/tmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func genGreeting(args []string) (json.RawMessage, error) {
	who := "world"
	if len(args) > 0 {
		who = args[0]
	}
	return json.Marshal(map[string]string{"greeting": who})
}

func readDoc(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(tmtest.GenesisPath(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := tmtest.SetupConfig(t, "vaultswap-init")
	defer cleanup()

	logger := log.NewNopLogger()
	err := InitCmd(genGreeting, logger, home, []string{"alice"})
	require.NoError(t, err)

	// keep old values, and add our values
	doc := readDoc(t, home)
	assert.JSONEq(t, `"vaultswap-init"`, string(doc["chain_id"]))
	assert.JSONEq(t, `{"greeting": "alice"}`, string(doc[appStateKey]))

	// a second run does not clobber the state
	err = InitCmd(genGreeting, logger, home, []string{"bob"})
	assert.True(t, errors.ErrDuplicate.Is(err), "got %v", err)
	assert.JSONEq(t, `{"greeting": "alice"}`, string(readDoc(t, home)[appStateKey]))

	// unless asked to
	err = InitCmd(genGreeting, logger, home, []string{"-i", "bob"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting": "bob"}`, string(readDoc(t, home)[appStateKey]))
}

func TestInitWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "vaultswap-empty")
	require.NoError(t, err)

	err = InitCmd(genGreeting, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrNotFound.Is(err), "got %v", err)
}
