// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

// Package raicfg loads the node's TOML configuration file over the built-in
// defaults. It applies no command-line flag overrides to the loaded Config.
package raicfg

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// NetworkVariant selects the genesis block and wire magic byte (§6).
type NetworkVariant string

const (
	NetworkLive NetworkVariant = "live"
	NetworkBeta NetworkVariant = "beta"
	NetworkTest NetworkVariant = "test"
)

// Config is the node's full runtime configuration.
type Config struct {
	DataDir string         `toml:"data_dir"`
	Network NetworkVariant `toml:"network"`

	// Peering.
	Peers       []string `toml:"peers"`
	ListenPort  uint16   `toml:"listen_port"`
	MaxPeers    int      `toml:"max_peers"`

	// Work / anti-spam.
	WorkThreshold uint64 `toml:"work_threshold"`

	// Consensus timing (§4.4).
	VoteBroadcastInterval time.Duration `toml:"vote_broadcast_interval"`
	ElectionTimeout       time.Duration `toml:"election_timeout"`

	// Bootstrap (§4.5).
	BootstrapConnectionsMin int `toml:"bootstrap_connections_min"`
	BootstrapConnectionsMax int `toml:"bootstrap_connections_max"`
	BootstrapRetryLimit     int `toml:"bootstrap_retry_limit"`

	// Unchecked/gap cache (§9 open question b).
	UncheckedCacheSize int `toml:"unchecked_cache_size"`
}

// Default mirrors the constants the original implementation hardcodes:
// 15s vote rebroadcast, tens-of-seconds election timeout, LRU gap cache of
// 128 entries (§9).
func Default() Config {
	return Config{
		Network:                 NetworkLive,
		ListenPort:              7075,
		MaxPeers:                256,
		WorkThreshold:           0xffffffc000000000,
		VoteBroadcastInterval:  15 * time.Second,
		ElectionTimeout:        60 * time.Second,
		BootstrapConnectionsMin: 4,
		BootstrapConnectionsMax: 64,
		BootstrapRetryLimit:     3,
		UncheckedCacheSize:      128,
	}
}

// Load reads a TOML file on top of Default(); a missing file is not an
// error (fresh node, falls back entirely to defaults), matching §7's
// "store corruption is fatal, a missing config is not".
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("raicfg: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("raicfg: parsing %s: %w", path, err)
	}
	return cfg, nil
}
