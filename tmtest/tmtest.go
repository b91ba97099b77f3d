/*
Package tmtest provides helpers for testing commands that operate on a
tendermint home directory.
*/
package tmtest

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/vaultswap/vaultswaptest/assert"
)

// SetupConfig creates a homedir to run inside, holding the
// config/genesis.json that `tendermint init` would have written for the
// given chain. The app_state is left empty.
//
// second argument is cleanup call
func SetupConfig(t assert.Tester, chainID string) (string, func()) {
	t.Helper()
	rootDir, err := ioutil.TempDir("", "vaultswap-home")
	assert.Nil(t, err)
	cleanup := func() { os.RemoveAll(rootDir) }

	if err := writeGenesis(rootDir, chainID); err != nil {
		cleanup()
		t.Fatalf("Cannot write genesis: %+v", err)
	}
	if err := os.Mkdir(filepath.Join(rootDir, "data"), 0755); err != nil {
		cleanup()
		t.Fatalf("Cannot create data dir: %+v", err)
	}
	return rootDir, cleanup
}

// GenesisPath returns where the genesis file of the home directory lives.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func writeGenesis(home, chainID string) error {
	if err := os.MkdirAll(filepath.Join(home, "config"), 0755); err != nil {
		return err
	}
	doc := map[string]interface{}{
		"genesis_time":     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		"chain_id":         chainID,
		"consensus_params": map[string]interface{}{},
		"validators":       []interface{}{},
		"app_hash":         "",
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(GenesisPath(home), raw, 0600)
}
