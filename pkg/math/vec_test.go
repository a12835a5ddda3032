package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Angle(t *testing.T) {
	tests := []struct {
		v    Vec2
		want float64
	}{
		{Vec2{1, 0}, 0},
		{Vec2{0, 1}, math.Pi / 2},
		{Vec2{-1, 0}, math.Pi},
		{Vec2{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		got := float64(tt.v.Angle())
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Vec2%v.Angle() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := Vec4{2, 4, 6, 2}
	got := v.PerspectiveDivide()
	want := Vec4{1, 2, 3, 1}
	if got != want {
		t.Errorf("PerspectiveDivide() = %v, want %v", got, want)
	}

	zero := Vec4{1, 2, 3, 0}
	if zero.PerspectiveDivide() != zero {
		t.Error("PerspectiveDivide with w=0 should leave the vector unchanged")
	}
}
