package dependency

import "testing"

func TestTopologicalSortLinearChain(t *testing.T) {
	g := New()
	g.AddEdge("c", "b")
	g.AddEdge("b", "a")
	g.AddNode("a")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["c"] {
		t.Errorf("expected order a,b,c; got %v", order)
	}
}

func TestTopologicalSortIgnoresEdgesToNonNodes(t *testing.T) {
	// "total" depends on "extra", which is never registered as its own
	// node (e.g. a plain context variable, not a formula). It must not
	// block scheduling.
	g := New()
	g.AddNode("total")
	g.edges["total"] = map[string]struct{}{"extra": {}}

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 1 || order[0] != "total" {
		t.Errorf("expected [total], got %v", order)
	}
}

func TestTopologicalSortDeterministicOnTies(t *testing.T) {
	g := New()
	g.AddNode("x")
	g.AddNode("y")
	g.AddNode("z")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"x", "y", "z"}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("expected insertion order %v, got %v", want, order)
		}
	}
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")

	_, err := g.TopologicalSort()
	if err == nil {
		t.Fatal("expected CircularDependencyError")
	}
	cycErr, ok := err.(*CircularDependencyError)
	if !ok {
		t.Fatalf("expected *CircularDependencyError, got %T", err)
	}
	if len(cycErr.Cycle) < 2 {
		t.Fatalf("expected a non-trivial cycle, got %v", cycErr.Cycle)
	}
	if cycErr.Cycle[0] != cycErr.Cycle[len(cycErr.Cycle)-1] {
		t.Errorf("expected cycle to close on itself, got %v", cycErr.Cycle)
	}
	if len(cycErr.Involved) != 3 {
		t.Errorf("expected all 3 nodes involved, got %v", cycErr.Involved)
	}
}

func TestDependenciesAndDependents(t *testing.T) {
	g := New()
	g.AddEdge("total", "subtotal")
	g.AddEdge("total", "tax")

	deps := g.Dependencies("total")
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependencies, got %v", deps)
	}

	dependents := g.Dependents("subtotal")
	if len(dependents) != 1 || dependents[0] != "total" {
		t.Errorf("expected [total], got %v", dependents)
	}
}

func TestTransitiveDependenciesExcludesSelf(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	trans := g.TransitiveDependencies("a")
	found := map[string]bool{}
	for _, id := range trans {
		found[id] = true
	}
	if found["a"] {
		t.Error("transitive dependencies must exclude the node itself")
	}
	if !found["b"] || !found["c"] {
		t.Errorf("expected b and c reachable, got %v", trans)
	}
}
