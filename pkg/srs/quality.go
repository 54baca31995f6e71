package srs

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Quality is the discrete grade assigned to a single response.
// Grades are ordinal: Fail < Hard < Good < Easy.
type Quality int

const (
	Fail Quality = iota // Incorrect answer.
	Hard                // Correct, but slow relative to the item's average.
	Good                // Correct with normal effort.
	Easy                // Correct and fast relative to the item's average.
)

var (
	qualityNames  = [...]string{Fail: "FAIL", Hard: "HARD", Good: "GOOD", Easy: "EASY"}
	qualityByName = map[string]Quality{
		"FAIL": Fail,
		"HARD": Hard,
		"GOOD": Good,
		"EASY": Easy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Quality(0)
	_ json.Marshaler           = Quality(0)
	_ json.Unmarshaler         = (*Quality)(nil)
	_ encoding.TextMarshaler   = Quality(0)
	_ encoding.TextUnmarshaler = (*Quality)(nil)
)

// String returns the name of the quality grade ("FAIL", "HARD", "GOOD", "EASY").
// For invalid values it returns "Quality(n)".
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// IsValid reports whether q is a valid grade (Fail through Easy).
func (q Quality) IsValid() bool {
	return q >= Fail && q <= Easy
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	v, ok := qualityByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidQuality, text)
	}
	*q = v
	return nil
}

// MarshalJSON implements json.Marshaler. Quality serializes as a JSON string.
func (q Quality) MarshalJSON() ([]byte, error) {
	text, err := q.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (q *Quality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuality, data)
	}
	return q.UnmarshalText([]byte(s))
}
