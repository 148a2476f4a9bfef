package dirty

import "testing"

func TestGraphAddAndQueryDependencies(t *testing.T) {
	g := NewGraph[uint32]()

	if _, err := g.AddDependency(2, 1, layout, CycleError); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddDependency(3, 2, layout, CycleError); err != nil {
		t.Fatal(err)
	}

	if !contains(g.Dependencies(2, layout), 1) {
		t.Fatal("expected 2 to depend on 1")
	}
	if !contains(g.Dependents(1, layout), 2) {
		t.Fatal("expected 1 to have dependent 2")
	}
	if !contains(g.Dependents(2, layout), 3) {
		t.Fatal("expected 2 to have dependent 3")
	}
}

func TestDependenciesDependentsAreDuals(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(10, 20, layout, CycleAllow)

	if !contains(g.Dependents(20, layout), 10) {
		t.Fatal("dependencies(10,20) must imply dependents(20) contains 10")
	}
}

func TestRemoveKeyPrunesAllEdges(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(2, 1, layout, CycleAllow)
	_, _ = g.AddDependency(3, 2, layout, CycleAllow)

	g.RemoveKey(2)

	if len(g.Dependencies(2, layout)) != 0 {
		t.Fatal("expected no remaining dependencies for removed key")
	}
	if len(g.Dependents(2, layout)) != 0 {
		t.Fatal("expected no remaining dependents for removed key")
	}
	if contains(g.Dependencies(3, layout), 2) {
		t.Fatal("expected 3's dependency on 2 to be gone")
	}
	if !g.DependencyChannels(2).IsEmpty() {
		t.Fatal("expected channel cache for removed key to be empty")
	}
}

func TestReplaceDependenciesUpdatesInPlace(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(10, 1, layout, CycleError)
	_, _ = g.AddDependency(10, 2, layout, CycleError)

	changed, err := g.ReplaceDependencies(10, layout, []uint32{3, 4}, CycleError)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change to be reported")
	}

	deps := g.Dependencies(10, layout)
	if len(deps) != 2 || !contains(deps, 3) || !contains(deps, 4) {
		t.Fatalf("expected deps {3,4}, got %v", deps)
	}
	if contains(deps, 1) || contains(deps, 2) {
		t.Fatal("old deps should be gone")
	}
}

func TestReplaceDependenciesRollsBackOnCycleError(t *testing.T) {
	g := NewGraph[uint32]()
	// 2 depends on 1.
	if _, err := g.AddDependency(2, 1, layout, CycleError); err != nil {
		t.Fatal(err)
	}
	// 1 depends on 3 (old dependency set for 1).
	if _, err := g.AddDependency(1, 3, layout, CycleError); err != nil {
		t.Fatal(err)
	}

	// Replacing deps for 1 with [2] would create a 1 <-> 2 cycle.
	_, err := g.ReplaceDependencies(1, layout, []uint32{2}, CycleError)
	if err == nil {
		t.Fatal("expected cycle error")
	}
	cerr, ok := err.(*CycleErr[uint32])
	if !ok {
		t.Fatalf("expected *CycleErr[uint32], got %T", err)
	}
	if cerr.From != 1 || cerr.To != 2 {
		t.Fatalf("unexpected cycle error fields: %+v", cerr)
	}

	deps := g.Dependencies(1, layout)
	if len(deps) != 1 || deps[0] != 3 {
		t.Fatalf("expected old deps [3] restored, got %v", deps)
	}
	if !contains(g.Dependencies(2, layout), 1) {
		t.Fatal("unrelated edge 2->1 should be unchanged")
	}
}

func TestCycleDetectionError(t *testing.T) {
	g := NewGraph[uint32]()
	if _, err := g.AddDependency(2, 1, layout, CycleError); err != nil {
		t.Fatal(err)
	}
	_, err := g.AddDependency(1, 2, layout, CycleError)
	if err == nil {
		t.Fatal("expected cycle error for 1->2 after 2->1")
	}
}

func TestCycleIgnoreDropsSilently(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(2, 1, layout, CycleError)
	added, err := g.AddDependency(1, 2, layout, CycleIgnore)
	if err != nil {
		t.Fatalf("CycleIgnore must not return an error, got %v", err)
	}
	if added {
		t.Fatal("expected edge to be silently dropped")
	}
}

func TestCycleAllowSkipsDetection(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(2, 1, layout, CycleAllow)
	added, err := g.AddDependency(1, 2, layout, CycleAllow)
	if err != nil || !added {
		t.Fatalf("expected edge to be added unconditionally, got added=%v err=%v", added, err)
	}
}

func TestSelfEdgeIsCycle(t *testing.T) {
	g := NewGraph[uint32]()
	_, err := g.AddDependency(1, 1, layout, CycleError)
	if err == nil {
		t.Fatal("expected self-edge to be reported as a cycle")
	}
}

func TestSelfEdgeDebugAssertReleaseSilentlyAbsent(t *testing.T) {
	old := DebugAssertions
	DebugAssertions = false
	defer func() { DebugAssertions = old }()

	g := NewGraph[uint32]()
	added, err := g.AddDependency(1, 1, layout, CycleDebugAssert)
	if err != nil {
		t.Fatalf("DebugAssert must not return an error, got %v", err)
	}
	if added {
		t.Fatal("expected self-edge to be silently absent in release mode")
	}
}

func TestSelfEdgeDebugAssertPanicsWhenEnabled(t *testing.T) {
	old := DebugAssertions
	DebugAssertions = true
	defer func() { DebugAssertions = old }()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic under DebugAssertions=true")
		}
	}()

	g := NewGraph[uint32]()
	_, _ = g.AddDependency(1, 1, layout, CycleDebugAssert)
}

func TestTransitiveDependents(t *testing.T) {
	g := NewGraph[uint32]()
	_, _ = g.AddDependency(2, 1, layout, CycleAllow)
	_, _ = g.AddDependency(3, 2, layout, CycleAllow)

	td := g.TransitiveDependents(1, layout)
	if !contains(td, 2) || !contains(td, 3) {
		t.Fatalf("expected transitive dependents to include 2 and 3, got %v", td)
	}
}

func contains(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
