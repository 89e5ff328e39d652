package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/internal/logging"
	"github.com/loopcontext/msgcode/resource"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Config is the content of the optional TOML configuration file:
//
//	resources = ["messages/core.properties", "messages/app.yaml"]
//	charset = "UTF-8"
//	mode = "replace-exists"
//
//	[log]
//	level = "debug"
//
//	[serve]
//	address = ":8080"
//	prefix = "/i18n"
//	watch = true
type Config struct {
	Resources []string         `toml:"resources"`
	Charset   string           `toml:"charset"`
	Mode      msgcode.LoadMode `toml:"mode"`

	Log   logging.Config `toml:"log"`
	Serve ServeConfig    `toml:"serve"`
}

type ServeConfig struct {
	Address string `toml:"address"`
	Prefix  string `toml:"prefix"`
	Watch   bool   `toml:"watch"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		Serve: ServeConfig{Address: "localhost:8080"},
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read configuration: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("cannot parse configuration %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown configuration key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}

type appState struct {
	configPath string
	resources  []string
	mode       msgcode.LoadMode

	cfg Config
	log *logging.Logger
}

func (a *appState) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log.Logger
}

func (a *appState) loader() *resource.FileLoader {
	return &resource.FileLoader{Charset: a.cfg.Charset, Logger: a.logger()}
}

// loadCatalog reads every configured resource into a new catalog.
func (a *appState) loadCatalog(ctx context.Context) (*msgcode.DefaultCatalog, error) {
	if len(a.cfg.Resources) == 0 {
		return nil, fmt.Errorf("no message resource given (use --resource or a configuration file)")
	}

	c := msgcode.New(msgcode.Config{Logger: a.logger()})
	if err := c.LoadAll(ctx, a.loader(), a.cfg.Resources, a.cfg.Mode); err != nil {
		return nil, err
	}
	return c, nil
}

type loadModeValue msgcode.LoadMode

func (v *loadModeValue) String() string {
	return msgcode.LoadMode(*v).String()
}

func (v *loadModeValue) Set(s string) error {
	mode, err := msgcode.ParseLoadMode(s)
	if err != nil {
		return err
	}
	*v = loadModeValue(mode)
	return nil
}

func (v *loadModeValue) Type() string {
	return "mode"
}

func addLoadModeFlag(flags *pflag.FlagSet, mode *msgcode.LoadMode, name, usage string) {
	flags.Var((*loadModeValue)(mode), name, usage)
}

func errInvalidColor(value string) error {
	return fmt.Errorf("invalid color mode %q (auto|on|off)", value)
}
