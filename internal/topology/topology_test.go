package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamondTopology() *Topology {
	t := New()
	for _, name := range []string{"A", "X", "N", "Y", "B"} {
		t.AddLocation(Location{Name: name, Inside: true, CanOriginate: name == "B"})
	}
	t.AddEdge("A", "X")
	t.AddEdge("X", "N")
	t.AddEdge("N", "Y")
	t.AddEdge("Y", "B")
	t.AddEdge("B", "Y")
	t.AddEdge("Y", "N")
	t.AddEdge("N", "X")
	t.AddEdge("X", "A")
	return t
}

func TestCheckWeaklyConnected_Connected(t *testing.T) {
	topo := diamondTopology()
	assert.NoError(t, topo.CheckWeaklyConnected())
}

func TestCheckWeaklyConnected_Disconnected(t *testing.T) {
	topo := diamondTopology()
	topo.AddLocation(Location{Name: "Island", Inside: true})
	err := topo.CheckWeaklyConnected()
	require.Error(t, err)
	var dcErr *ErrDisconnected
	require.ErrorAs(t, err, &dcErr)
	assert.Len(t, dcErr.Components, 2)
}

func TestCheckWeaklyConnected_IgnoresOutside(t *testing.T) {
	topo := diamondTopology()
	topo.AddLocation(Location{Name: "ISP1", Inside: false})
	assert.NoError(t, topo.CheckWeaklyConnected())
}

func TestAlphabetPartitionsInsideOutside(t *testing.T) {
	topo := diamondTopology()
	topo.AddLocation(Location{Name: "ISP1", Inside: false})
	alphabet := topo.Alphabet()
	assert.True(t, alphabet.Contains("A"))
	assert.True(t, alphabet.Contains("ISP1"))
	assert.False(t, topo.Inside().Contains("ISP1"))
	assert.True(t, topo.Outside().Contains("ISP1"))
}

func TestOriginators(t *testing.T) {
	topo := diamondTopology()
	origins := topo.Originators()
	assert.True(t, origins.Contains("B"))
	assert.False(t, origins.Contains("A"))
}
