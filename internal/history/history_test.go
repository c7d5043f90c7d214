package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oscarrenalias/ai-research-content-generator/internal/config"
	"github.com/oscarrenalias/ai-research-content-generator/internal/model"
)

func record(id string) model.RunRecord {
	return model.RunRecord{
		Timestamp:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		RunID:            id,
		Instructions:     "write about AI",
		FinalPost:        "the post",
		LinkSummary:      "1 link",
		ResearchSummary:  "2 topics",
		PostLength:       8,
		LinksAnalyzed:    1,
		TopicsResearched: 2,
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	store, err := Open(config.HistoryConfig{DB: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, id := range []string{"linkedin_post_aaaa", "linkedin_post_bbbb", "linkedin_post_cccc"} {
		if err := store.Append(record(id)); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	records, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].RunID != "linkedin_post_cccc" || records[1].RunID != "linkedin_post_bbbb" {
		t.Errorf("order = %s, %s", records[0].RunID, records[1].RunID)
	}
	got := records[0]
	if got.Instructions != "write about AI" || got.LinksAnalyzed != 1 || got.TopicsResearched != 2 {
		t.Errorf("record fields lost in round trip: %+v", got)
	}
	if !got.Timestamp.Equal(record("x").Timestamp) {
		t.Errorf("timestamp = %v", got.Timestamp)
	}
}

func TestJSONAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store, err := Open(config.HistoryConfig{File: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Append(record("linkedin_post_aaaa")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(record("linkedin_post_bbbb")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("log is not a JSON array: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("log has %d entries, want 2", len(records))
	}
	if records[1]["workflow_id"] != "linkedin_post_bbbb" {
		t.Errorf("workflow_id = %v", records[1]["workflow_id"])
	}

	recent, err := store.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].RunID != "linkedin_post_bbbb" {
		t.Errorf("Recent = %+v, want newest entry", recent)
	}
}

func TestJSONAppendCorruptLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := Open(config.HistoryConfig{File: path})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Append(record("linkedin_post_aaaa")); err != nil {
		t.Fatalf("Append over corrupt log: %v", err)
	}
	records, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 after corrupt log reset", len(records))
	}
}

func TestRecentEmpty(t *testing.T) {
	store, err := Open(config.HistoryConfig{File: filepath.Join(t.TempDir(), "none.json")})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	records, err := store.Recent(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}
