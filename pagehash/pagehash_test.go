package pagehash

import (
	"testing"

	"github.com/proplens/proplens/models"
)

func page(dates ...string) []models.Transaction {
	txs := make([]models.Transaction, len(dates))
	for i, d := range dates {
		txs[i] = models.Transaction{Date: d, Price: "S$ 1M"}
	}
	return txs
}

func TestFingerprint_Deterministic(t *testing.T) {
	p := page("Jun 2025", "May 2025")
	if Fingerprint(p) != Fingerprint(p) {
		t.Error("same page produced different fingerprints")
	}
}

func TestFingerprint_DifferentPagesDiffer(t *testing.T) {
	a := Fingerprint(page("Jun 2025", "May 2025"))
	b := Fingerprint(page("Apr 2025", "Mar 2025"))
	if a == b {
		t.Errorf("distinct pages produced identical fingerprints: %064b", a)
	}
}

func TestFingerprint_RowOrderMatters(t *testing.T) {
	a := Fingerprint(page("Jun 2025", "May 2025"))
	b := Fingerprint(page("May 2025", "Jun 2025"))
	if a == b {
		t.Error("reordered rows should change the fingerprint")
	}
}

func TestFingerprint_EmptyPage(t *testing.T) {
	if fp := Fingerprint(nil); fp != 0 {
		t.Errorf("empty page fingerprint = %064b, want 0", fp)
	}
	if fp := Fingerprint([]models.Transaction{{}}); fp != 0 {
		t.Errorf("page of empty records fingerprint = %064b, want 0", fp)
	}
}

func TestSame(t *testing.T) {
	a := Fingerprint(page("Jun 2025"))
	if !Same(a, a) {
		t.Error("a fingerprint should equal itself")
	}
	if Same(0, 0) {
		t.Error("empty-page fingerprints must never count as same content")
	}
	b := Fingerprint(page("May 2025"))
	if Same(a, b) {
		t.Error("different pages reported as same")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
