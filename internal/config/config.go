// Package config loads world-server settings: a YAML file holding the
// settings that don't fit comfortably on a flag line, with flags overriding
// whatever the file sets. Built-in defaults come first, the YAML file is
// layered over them, and flags set on the command line override both, the
// same shape dmitrymodder-minewire's server.yaml loading uses.
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v3"
)

// World holds the world server's configuration.
type World struct {
	ListenAddr   string `yaml:"listen_addr"`
	InternalAddr string `yaml:"internal_addr"`
	Motd         string `yaml:"motd"`
	Seed         int64  `yaml:"seed"`
	ViewDistance int    `yaml:"view_distance"`
	MaxPlayers   int    `yaml:"max_players"`
}

// defaultWorld mirrors the zero-config values a fresh checkout should run
// with; YAML and flags both layer on top of this.
func defaultWorld() World {
	return World{
		ListenAddr:   "0.0.0.0:25565",
		InternalAddr: "0.0.0.0:8483",
		Motd:         "A Minecraft Server",
		Seed:         0,
		ViewDistance: 10,
		MaxPlayers:   20,
	}
}

// LoadWorld reads path (if non-empty and present) as YAML over the
// defaults. It does not apply flags; WorldFlags.Apply layers those on the
// result afterwards. A missing path is not an error: an all-default
// config is a valid way to run the world server.
func LoadWorld(path string) (World, error) {
	cfg := defaultWorld()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WorldFlags holds flag.Value targets for World fields that may be
// overridden on the command line; zero values mean "not set, keep the
// YAML/default value".
type WorldFlags struct {
	ListenAddr   string
	InternalAddr string
	Seed         int64
}

// RegisterWorldFlags registers world server flags against fs, matching
// cmd/server/main.go's flag.String/flag.Int64 shape.
func RegisterWorldFlags(fs *flag.FlagSet, out *WorldFlags) {
	fs.StringVar(&out.ListenAddr, "listen", "", "client-facing listen address (overrides config file)")
	fs.StringVar(&out.InternalAddr, "internal-listen", "", "proxy-facing listen address (overrides config file)")
	fs.Int64Var(&out.Seed, "seed", 0, "world seed (overrides config file; 0 means unset)")
}

// Apply overlays non-zero flag values onto cfg.
func (f WorldFlags) Apply(cfg World) World {
	if f.ListenAddr != "" {
		cfg.ListenAddr = f.ListenAddr
	}
	if f.InternalAddr != "" {
		cfg.InternalAddr = f.InternalAddr
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	return cfg
}

// Proxy holds the protocol proxy's configuration: where it listens for
// clients and where it dials the world server.
type Proxy struct {
	ListenAddr string `yaml:"listen_addr"`
	WorldAddr  string `yaml:"world_addr"`
}

func defaultProxy() Proxy {
	return Proxy{ListenAddr: "0.0.0.0:25565", WorldAddr: "127.0.0.1:8483"}
}

// LoadProxy mirrors LoadWorld for the proxy binary's configuration.
func LoadProxy(path string) (Proxy, error) {
	cfg := defaultProxy()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
