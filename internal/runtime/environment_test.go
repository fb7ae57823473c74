package runtime

import "testing"

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", Int(42))

	v, ok := env.Get("x")
	if !ok {
		t.Fatal("expected x to be defined")
	}
	if v != Int(42) {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestGetWalksParentChain(t *testing.T) {
	parent := NewEnvironment()
	parent.Define("x", Int(1))
	child := NewChild(parent)

	v, ok := child.Get("x")
	if !ok || v != Int(1) {
		t.Fatalf("expected to find x=1 via parent chain, got %v, %v", v, ok)
	}
}

func TestDefineShadowsInChild(t *testing.T) {
	parent := NewEnvironment()
	parent.Define("x", Int(1))
	child := NewChild(parent)
	child.Define("x", Int(2))

	v, _ := child.Get("x")
	if v != Int(2) {
		t.Fatalf("expected child's shadowed value 2, got %v", v)
	}
	pv, _ := parent.Get("x")
	if pv != Int(1) {
		t.Fatalf("expected parent's value to remain 1, got %v", pv)
	}
}

func TestAssignWalksUpAndFailsIfUnbound(t *testing.T) {
	parent := NewEnvironment()
	parent.Define("x", Int(1))
	child := NewChild(parent)

	if err := child.Assign("x", Int(99)); err != nil {
		t.Fatalf("unexpected error assigning bound name: %v", err)
	}
	v, _ := parent.Get("x")
	if v != Int(99) {
		t.Fatalf("expected assign to reach parent scope, got %v", v)
	}

	if err := child.Assign("never_defined", Int(1)); err == nil {
		t.Fatal("expected an error assigning an undefined name")
	}
}

func TestGetFailsWhenUnbound(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.Get("missing"); ok {
		t.Fatal("expected Get to fail for an unbound name")
	}
}

func TestOwningScopeFindsDeclaringEnvironment(t *testing.T) {
	parent := NewEnvironment()
	parent.Define("x", Int(1))
	child := NewChild(parent)
	child.Define("y", Int(2))

	if child.OwningScope("y") != child {
		t.Fatal("expected y's owning scope to be child")
	}
	if child.OwningScope("x") != parent {
		t.Fatal("expected x's owning scope to be parent")
	}
	if child.OwningScope("z") != nil {
		t.Fatal("expected owning scope of an undefined name to be nil")
	}
}
