package prettyprint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathmint/pathmint/internal/compiler"
	"github.com/pathmint/pathmint/internal/configgen"
	"github.com/pathmint/pathmint/internal/dto"
)

func TestPrintConfigurationRendersRouterAndFilter(t *testing.T) {
	cfg := dto.Configuration{
		"B": {
			Actions: []dto.PredicatedDeviceConfig{{
				PrefixIdx: 0,
				Device: dto.DeviceConfig{
					Originates: true,
					Filters: []dto.Filter{{
						Match:     dto.PeerMatch("ispA"),
						LocalPref: 100,
						Exports:   []dto.Export{{Peer: "*"}},
					}},
				},
			}},
		},
		"A": {
			Actions: []dto.PredicatedDeviceConfig{{
				PrefixIdx: 0,
				Device: dto.DeviceConfig{
					Filters: []dto.Filter{dto.DenyFilter()},
				},
			}},
		},
	}

	var buf bytes.Buffer
	PrintConfiguration(&buf, cfg)
	out := buf.String()

	assert.Contains(t, out, "# A")
	assert.Contains(t, out, "# B")
	assert.Contains(t, out, "Peer(ispA)")
	assert.Contains(t, out, "true")
	// router "A" must render before "B" is out of order relative to
	// sorted names, so check ordering explicitly.
	assert.Less(t, bytesIndex(out, "# A"), bytesIndex(out, "# B"))
}

func TestPrintConfigurationShowsControlSummary(t *testing.T) {
	cfg := dto.Configuration{
		"X": {
			Control: dto.ControlConfig{
				Aggregates: []dto.Aggregate{{Prefix: "10.0.0.0/8"}},
			},
		},
	}

	var buf bytes.Buffer
	PrintConfiguration(&buf, cfg)
	assert.Contains(t, buf.String(), "aggregates=1")
}

func TestPrintStatsOrdersByPrefixIndexAndReportsRatio(t *testing.T) {
	results := []compiler.Result{
		{
			Policy:   compiler.Policy{PolicyPair: dto.PolicyPair{Index: 1}},
			Counters: configgen.Counters{Raw: 10, Smart: 5},
		},
		{
			Policy:   compiler.Policy{PolicyPair: dto.PolicyPair{Index: 0}},
			Counters: configgen.Counters{Raw: 8, Smart: 8},
		},
	}

	var buf bytes.Buffer
	PrintStats(&buf, results)
	out := buf.String()

	// index 0's row (ratio 1.00) must render before index 1's row (ratio 0.50).
	assert.Less(t, bytesIndex(out, "1.00"), bytesIndex(out, "0.50"))
}

func bytesIndex(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
