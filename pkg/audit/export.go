package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"
)

// csvHeader is the fixed column set of the CSV export. Order is part of the
// export contract consumed by offline analysis tooling.
var csvHeader = []string{
	"Timestamp",
	"ItemId",
	"ResponseQuality",
	"ResponseTime",
	"UsedHint",
	"StateBefore",
	"StabilityBefore",
	"DifficultyBefore",
	"RetrievabilityBefore",
	"StateAfter",
	"StabilityAfter",
	"DifficultyAfter",
	"RetrievabilityAfter",
	"StabilityChange",
	"DifficultyChange",
	"RetrievabilityChange",
	"RepsTotal",
	"RepsCorrect",
	"StreakCorrect",
	"NextDueTime",
	"Priority",
}

// ExportCSV serializes the completed entries as CSV. Entries still missing
// their after snapshot are skipped.
func ExportCSV(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !e.Completed() {
			continue
		}
		after := *e.After
		deltas := *e.Deltas
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.ItemID,
			e.Quality.String(),
			strconv.FormatInt(e.ResponseTimeMs, 10),
			strconv.FormatBool(e.UsedHint),
			e.Before.Phase.String(),
			formatFloat(e.Before.Stability),
			formatFloat(e.Before.Difficulty),
			formatFloat(e.Before.Retrievability),
			after.Phase.String(),
			formatFloat(after.Stability),
			formatFloat(after.Difficulty),
			formatFloat(after.Retrievability),
			formatFloat(deltas.StabilityChange),
			formatFloat(deltas.DifficultyChange),
			formatFloat(deltas.RetrievabilityChange),
			strconv.Itoa(after.RepsTotal),
			strconv.Itoa(after.RepsCorrect),
			strconv.Itoa(after.StreakCorrect),
			after.NextDueAt.Format(time.RFC3339),
			formatFloat(after.Priority),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON serializes the completed entries as indented JSON.
func ExportJSON(entries []Entry) ([]byte, error) {
	completed := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Completed() {
			completed = append(completed, e)
		}
	}
	return json.MarshalIndent(completed, "", "  ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
