package models

import (
	"math"
	"testing"
)

func TestParseRating(t *testing.T) {
	if r, ok := ParseRating(4); !ok || r != 4 {
		t.Errorf("ParseRating(4) = %v, %v", r, ok)
	}
	if r, ok := ParseRating(int64(3)); !ok || r != 3 {
		t.Errorf("ParseRating(int64(3)) = %v, %v", r, ok)
	}
	if r, ok := ParseRating(4.5); !ok || r != 4.5 {
		t.Errorf("ParseRating(4.5) = %v, %v", r, ok)
	}
	if r, ok := ParseRating("5"); !ok || r != 5 {
		t.Errorf("ParseRating(\"5\") = %v, %v", r, ok)
	}
	if r, ok := ParseRating("2.5"); !ok || r != 2.5 {
		t.Errorf("ParseRating(\"2.5\") = %v, %v", r, ok)
	}

	if _, ok := ParseRating("five"); ok {
		t.Error("ParseRating(\"five\") should fail")
	}
	if _, ok := ParseRating(nil); ok {
		t.Error("ParseRating(nil) should fail")
	}
	if _, ok := ParseRating(math.NaN()); ok {
		t.Error("ParseRating(NaN) should fail")
	}
	if _, ok := ParseRating(math.Inf(1)); ok {
		t.Error("ParseRating(+Inf) should fail")
	}
	if _, ok := ParseRating(map[string]string{}); ok {
		t.Error("ParseRating(map) should fail")
	}
}
