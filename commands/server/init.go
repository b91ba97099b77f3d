package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/vaultswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	dirConfig   = "config"
	genesisFile = "genesis.json"

	flagIgnore = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func parseInitFlags(args []string) (bool, []string, error) {
	var ignore bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&ignore, flagIgnore, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return false, nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return ignore, initFlags.Args(), nil
}

// InitCmd will add the app_state to the genesis file created by
// `tendermint init`. The application passes in a function to generate
// proper options.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	ignore, rest, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	genFile := filepath.Join(home, dirConfig, genesisFile)
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc[appStateKey]; ok && !isEmptyState(state) && !ignore {
		return errors.Wrapf(errors.ErrDuplicate, "%s already set in %s, use -%s to overwrite", appStateKey, genFile, flagIgnore)
	}

	options, err := gen(rest)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, doc, options); err != nil {
		return err
	}
	logger.Info("App initialized", "genesis", genFile)
	return nil
}

func isEmptyState(state json.RawMessage) bool {
	s := string(state)
	return s == "" || s == "null" || s == "{}" || s == `""`
}

func readGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, fmt.Sprintf("cannot read genesis, run tendermint init first: %s", err))
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return doc, nil
}

func addGenesisOptions(filename string, doc GenesisDoc, options json.RawMessage) error {
	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
