package srs

import (
	"encoding/json"
	"testing"
)

func TestQuality_String(t *testing.T) {
	tests := []struct {
		q    Quality
		want string
	}{
		{Fail, "FAIL"},
		{Hard, "HARD"},
		{Good, "GOOD"},
		{Easy, "EASY"},
		{Quality(9), "Quality(9)"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("Quality(%d).String(): got %q, want %q", int(tt.q), got, tt.want)
		}
	}
}

func TestQuality_JSONRoundTrip(t *testing.T) {
	for _, q := range []Quality{Fail, Hard, Good, Easy} {
		data, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", q, err)
		}
		var back Quality
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != q {
			t.Errorf("round trip: got %v, want %v", back, q)
		}
	}
}

func TestQuality_InvalidMarshal(t *testing.T) {
	if _, err := json.Marshal(Quality(42)); err == nil {
		t.Error("Marshal(Quality(42)): expected error, got nil")
	}
	var q Quality
	if err := json.Unmarshal([]byte(`"MEH"`), &q); err == nil {
		t.Error(`Unmarshal("MEH"): expected error, got nil`)
	}
}

func TestPhase_JSONRoundTrip(t *testing.T) {
	for _, p := range []Phase{New, Learning, Review} {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", p, err)
		}
		var back Phase
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != p {
			t.Errorf("round trip: got %v, want %v", back, p)
		}
	}
}

func TestPhase_SQLValueScan(t *testing.T) {
	v, err := Review.Value()
	if err != nil {
		t.Fatalf("Value(): %v", err)
	}
	if v != "REVIEW" {
		t.Errorf("Value(): got %v, want REVIEW", v)
	}

	var p Phase
	if err := p.Scan("LEARNING"); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if p != Learning {
		t.Errorf("Scan(string): got %v, want LEARNING", p)
	}
	if err := p.Scan([]byte("NEW")); err != nil {
		t.Fatalf("Scan([]byte): %v", err)
	}
	if p != New {
		t.Errorf("Scan([]byte): got %v, want NEW", p)
	}
	if err := p.Scan(7); err == nil {
		t.Error("Scan(int): expected error, got nil")
	}
}
