package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathmint/pathmint/internal/dto"
)

func TestDiffConfigurationReportsAddedRemovedChanged(t *testing.T) {
	before := dto.Configuration{
		"A": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 0}}},
		"B": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 0}}},
	}
	after := dto.Configuration{
		"B": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 1}}},
		"C": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 0}}},
	}

	lines := diffConfiguration(before, after)
	assert.Equal(t, []string{"- A", "~ B", "+ C"}, lines)
}

func TestDiffConfigurationNoChanges(t *testing.T) {
	cfg := dto.Configuration{"A": {Actions: []dto.PredicatedDeviceConfig{{PrefixIdx: 0}}}}
	assert.Empty(t, diffConfiguration(cfg, cfg))
}
