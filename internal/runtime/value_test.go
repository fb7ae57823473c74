package runtime

import "testing"

func TestTruthiness(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Null{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(1), true},
		{Float(0), false},
		{Float(0.5), true},
		{Str(""), false},
		{Str("x"), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFloatStringifyCollapsesWholeValues(t *testing.T) {
	if got := Float(4).String(); got != "4" {
		t.Errorf("expected whole float to stringify as '4', got %q", got)
	}
	if got := Float(4.5).String(); got != "4.5" {
		t.Errorf("expected '4.5', got %q", got)
	}
}

func TestNumberFromFloatPacksWholeValuesAsInt(t *testing.T) {
	if _, ok := NumberFromFloat(3).(Int); !ok {
		t.Error("expected NumberFromFloat(3) to produce an Int")
	}
	if _, ok := NumberFromFloat(3.5).(Float); !ok {
		t.Error("expected NumberFromFloat(3.5) to produce a Float")
	}
}

func TestEqualNullHandling(t *testing.T) {
	if !Equal(Null{}, Null{}) {
		t.Error("expected two nulls to be equal")
	}
	if Equal(Null{}, Int(0)) {
		t.Error("expected null to be unequal to any non-null value")
	}
}

func TestEqualNumericCrossesIntFloat(t *testing.T) {
	if !Equal(Int(2), Float(2.0)) {
		t.Error("expected Int(2) == Float(2.0)")
	}
}

func TestEqualStringsAndBools(t *testing.T) {
	if !Equal(Str("a"), Str("a")) {
		t.Error("expected equal strings to compare equal")
	}
	if Equal(Str("a"), Str("b")) {
		t.Error("expected different strings to compare unequal")
	}
	if !Equal(Bool(true), Bool(true)) {
		t.Error("expected equal bools to compare equal")
	}
}
