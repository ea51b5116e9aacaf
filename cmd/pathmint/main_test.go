package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathmint/pathmint/internal/dto"
)

func TestConfigurationJSONRoundTrip(t *testing.T) {
	cfg := dto.Configuration{
		"A": {
			Actions: []dto.PredicatedDeviceConfig{{
				PrefixIdx: 0,
				Device: dto.DeviceConfig{
					Originates: true,
					Filters: []dto.Filter{{
						Match:     dto.PeerMatch("B"),
						LocalPref: 100,
						Exports:   []dto.Export{{Peer: "*"}},
					}},
				},
			}},
		},
	}

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, writeConfigurationJSON(path, cfg))

	got, err := readConfigurationJSON(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDiffCommandOverJSONDumps(t *testing.T) {
	dir := t.TempDir()
	before := dto.Configuration{"A": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 0}}}}
	after := dto.Configuration{"A": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 1}}}}

	beforePath := filepath.Join(dir, "before.json")
	afterPath := filepath.Join(dir, "after.json")
	require.NoError(t, writeConfigurationJSON(beforePath, before))
	require.NoError(t, writeConfigurationJSON(afterPath, after))

	beforeLoaded, err := readConfigurationJSON(beforePath)
	require.NoError(t, err)
	afterLoaded, err := readConfigurationJSON(afterPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"~ A"}, diffConfiguration(beforeLoaded, afterLoaded))
}
