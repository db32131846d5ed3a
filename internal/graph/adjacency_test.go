package graph

import (
	"reflect"
	"testing"

	"github.com/ppiankov/claimtrace/internal/model"
)

func TestBuildAdjacency(t *testing.T) {
	b := NewBuilder(model.DefaultConfig().Layout)
	g := b.Build(scenarioInput())

	adj, index := BuildAdjacency(g)

	claim, ok := adj["claim"]
	if !ok {
		t.Fatal("Claim entry missing from adjacency")
	}
	if !reflect.DeepEqual(claim.In, []string{"evolution-0", "belief-0"}) {
		t.Errorf("Claim In = %v", claim.In)
	}
	if !reflect.DeepEqual(claim.Out, []string{"source-0"}) {
		t.Errorf("Claim Out = %v", claim.Out)
	}
	if !reflect.DeepEqual(claim.InEdges, []string{"edge-claim", "edge-belief-0"}) {
		t.Errorf("Claim InEdges = %v", claim.InEdges)
	}
	if !reflect.DeepEqual(claim.OutEdges, []string{"edge-source-0"}) {
		t.Errorf("Claim OutEdges = %v", claim.OutEdges)
	}

	origin := adj["origin"]
	if len(origin.In) != 0 {
		t.Errorf("Origin should have no incoming edges, got %v", origin.In)
	}
	if !reflect.DeepEqual(origin.Out, []string{"firstseen-0"}) {
		t.Errorf("Origin Out = %v", origin.Out)
	}

	id, ok := index.Between("claim", "source-0")
	if !ok || id != "edge-source-0" {
		t.Errorf("Between(claim, source-0) = %q, %v", id, ok)
	}
	// Reverse direction resolves the same edge
	id, ok = index.Between("source-0", "claim")
	if !ok || id != "edge-source-0" {
		t.Errorf("Between(source-0, claim) = %q, %v", id, ok)
	}
	if _, ok := index.Between("origin", "claim"); ok {
		t.Error("Between should fail for unconnected nodes")
	}
}

func TestBuildAdjacency_SkipsDanglingEdges(t *testing.T) {
	g := New(
		[]model.GraphNode{
			{ID: "a", Kind: model.NodeOrigin},
			{ID: "b", Kind: model.NodeClaim},
		},
		[]model.GraphEdge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "a", Target: "ghost"},
			{ID: "e3", Source: "ghost", Target: "b"},
		},
	)

	adj, index := BuildAdjacency(g)

	if !reflect.DeepEqual(adj["a"].Out, []string{"b"}) {
		t.Errorf("a.Out = %v", adj["a"].Out)
	}
	if !reflect.DeepEqual(adj["b"].In, []string{"a"}) {
		t.Errorf("b.In = %v", adj["b"].In)
	}
	if len(index) != 1 {
		t.Errorf("Expected 1 indexed edge, got %d", len(index))
	}
}
