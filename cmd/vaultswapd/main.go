package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/vaultswap"
	vaultswapd "github.com/iov-one/vaultswap/cmd/vaultswapd/app"
	"github.com/iov-one/vaultswap/commands"
	"github.com/iov-one/vaultswap/commands/server"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"

	envPrefix  = "VAULTSWAP"
	configFile = "app.toml"
)

func helpMessage(flags *pflag.FlagSet) {
	fmt.Println("vaultswapd")
	fmt.Println("          Token escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("getblock  Extract a block from blockchain.db")
	fmt.Println("retry     Run last block again to ensure it produces same result")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("testgen   Write example encodings to a directory")
	fmt.Println("version   Print the app version")
	fmt.Println("")
	fmt.Println(flags.FlagUsages())
	fmt.Printf("Flags may also be set with %s_<FLAG> environment variables\n", envPrefix)
	fmt.Printf("or in <home>/config/%s.\n", configFile)
}

// config reads the global flags, falling back to the environment.
func config(args []string) (*pflag.FlagSet, *viper.Viper, error) {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vaultswap")

	flags := pflag.NewFlagSet("vaultswapd", pflag.ContinueOnError)
	flags.String(flagHome, defaultHome, "directory to store files under")
	flags.String(flagLogLevel, "info", "log level: debug, info, error or none")
	// everything after the command belongs to the command
	flags.SetInterspersed(false)
	if err := flags.Parse(args); err != nil {
		return flags, nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return flags, nil, err
	}

	// <home>/config/app.toml is optional
	v.SetConfigFile(filepath.Join(v.GetString(flagHome), "config", configFile))
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return flags, nil, err
	}
	return flags, v, nil
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "vaultswap")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}

func main() {
	flags, v, err := config(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		helpMessage(flags)
		os.Exit(1)
	}
	if flags.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage(flags)
		os.Exit(1)
	}

	logger, err := newLogger(v.GetString(flagLogLevel))
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	home := v.GetString(flagHome)

	cmd := flags.Arg(0)
	rest := flags.Args()[1:]

	switch cmd {
	case "help":
		helpMessage(flags)
	case "init":
		err = server.InitCmd(vaultswapd.GenInitOptions, logger, home, rest)
	case "start":
		err = server.StartCmd(vaultswapd.GenerateApp, logger, home, rest)
	case "getblock":
		err = server.GetBlockCmd(rest)
	case "retry":
		err = server.RetryCmd(vaultswapd.InlineApp, logger, home, rest)
	case "validate":
		err = server.ValidateGenesis(vaultswapd.Initializers(vaultswapd.Hooks()), rest)
	case "testgen":
		err = commands.TestGenCmd(vaultswapd.Examples(), rest)
	case "version":
		fmt.Println(vaultswap.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage(flags)
		os.Exit(1)
	}
}
