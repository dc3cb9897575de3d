package storage

import (
	"os"
	"testing"
	"time"

	"github.com/proplens/proplens/models"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := &Artifact{
		SessionID:   "crawl-abc123",
		CompletedAt: time.Now().UTC().Truncate(time.Second),
		URLCount:    2,
		Result: &models.BatchResult{
			Succeeded: 1,
			Failed:    1,
			Results: []models.CrawlResult{
				{URL: "https://a.example", Success: true, TotalPages: 2, Transactions: []models.Transaction{{Date: "Jun 2025"}}},
				{URL: "https://b.example", Error: "navigation failed", Transactions: []models.Transaction{}},
			},
		},
	}

	path, err := s.Write(in)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact file missing: %v", err)
	}

	out, err := s.Read("crawl-abc123")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.SessionID != in.SessionID || out.URLCount != 2 {
		t.Errorf("read back %q/%d, want %q/2", out.SessionID, out.URLCount, in.SessionID)
	}
	if len(out.Result.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(out.Result.Results))
	}
	if out.Result.Results[0].Transactions[0].Date != "Jun 2025" {
		t.Errorf("transaction date = %q", out.Result.Results[0].Transactions[0].Date)
	}
	if out.Result.Results[1].Error != "navigation failed" {
		t.Errorf("error message = %q", out.Result.Results[1].Error)
	}
}

func TestStore_RejectsUnsafeSessionID(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, id := range []string{"../../etc/passwd", "a/b", "", "a b"} {
		if _, err := s.Write(&Artifact{SessionID: id}); err == nil {
			t.Errorf("Write accepted unsafe session id %q", id)
		}
		if _, err := s.Read(id); err == nil {
			t.Errorf("Read accepted unsafe session id %q", id)
		}
	}
}

func TestStore_ReadMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Read("crawl-unknown"); err == nil {
		t.Error("Read of a missing artifact should fail")
	}
}
