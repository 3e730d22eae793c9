package overflow

import (
	"math"
	"testing"
)

func TestAdd32(t *testing.T) {
	tests := []struct {
		a, b   uint32
		want   uint32
		wantOv bool
	}{
		{0, 0, 0, false},
		{1, 2, 3, false},
		{math.MaxUint32, 0, math.MaxUint32, false},
		{math.MaxUint32, 1, 0, true},
		{math.MaxUint32 - 63, 64, 0, true},
	}
	for _, tt := range tests {
		got, ov := Add32(tt.a, tt.b)
		if got != tt.want || ov != tt.wantOv {
			t.Errorf("Add32(%d, %d) = %d, %v, want %d, %v", tt.a, tt.b, got, ov, tt.want, tt.wantOv)
		}
	}
}

func TestSub32(t *testing.T) {
	tests := []struct {
		a, b   uint32
		want   uint32
		wantOv bool
	}{
		{3, 2, 1, false},
		{0, 0, 0, false},
		{0, 1, math.MaxUint32, true},
	}
	for _, tt := range tests {
		got, ov := Sub32(tt.a, tt.b)
		if got != tt.want || ov != tt.wantOv {
			t.Errorf("Sub32(%d, %d) = %d, %v, want %d, %v", tt.a, tt.b, got, ov, tt.want, tt.wantOv)
		}
	}
}

func TestMul32(t *testing.T) {
	tests := []struct {
		a, b   uint32
		want   uint32
		wantOv bool
	}{
		{0, math.MaxUint32, 0, false},
		{7, 6, 42, false},
		{1 << 16, 1 << 16, 0, true},
	}
	for _, tt := range tests {
		got, ov := Mul32(tt.a, tt.b)
		if got != tt.want || ov != tt.wantOv {
			t.Errorf("Mul32(%d, %d) = %d, %v, want %d, %v", tt.a, tt.b, got, ov, tt.want, tt.wantOv)
		}
	}
}

func TestAdd64(t *testing.T) {
	if _, ov := Add64(math.MaxUint64, 1); !ov {
		t.Error("Add64 missed overflow")
	}
	if got, ov := Add64(1, 2); got != 3 || ov {
		t.Errorf("Add64(1, 2) = %d, %v", got, ov)
	}
}

func TestSub64(t *testing.T) {
	if _, ov := Sub64(0, 1); !ov {
		t.Error("Sub64 missed underflow")
	}
}

func TestMul64(t *testing.T) {
	if _, ov := Mul64(1<<32, 1<<32); !ov {
		t.Error("Mul64 missed overflow")
	}
	if got, ov := Mul64(6, 7); got != 42 || ov {
		t.Errorf("Mul64(6, 7) = %d, %v", got, ov)
	}
}
