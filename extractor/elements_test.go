package extractor

import "testing"

func TestByClass_CollectsMatchingElements(t *testing.T) {
	snapshot := `<html><body>
		<div class="listing-card featured" data-id="42">Sunny Villa</div>
		<span class="listing-card">Hill View</span>
		<p class="other">skip me</p>
	</body></html>`

	els, err := ByClass(snapshot, "listing-card")
	if err != nil {
		t.Fatalf("ByClass returned error: %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("matched %d elements, want 2", len(els))
	}

	if els[0].Tag != "div" || els[0].Text != "Sunny Villa" {
		t.Errorf("first element = %s %q", els[0].Tag, els[0].Text)
	}
	if els[0].Attributes["data-id"] != "42" {
		t.Errorf("data-id attribute = %q, want 42", els[0].Attributes["data-id"])
	}
	if els[0].Attributes["class"] != "listing-card featured" {
		t.Errorf("class attribute = %q", els[0].Attributes["class"])
	}
	if els[0].HTML == "" {
		t.Error("outer HTML should be captured")
	}

	if els[1].Tag != "span" || els[1].Text != "Hill View" {
		t.Errorf("second element = %s %q", els[1].Tag, els[1].Text)
	}
}

func TestByClass_NoMatches(t *testing.T) {
	els, err := ByClass(`<div class="a">x</div>`, "missing")
	if err != nil {
		t.Fatalf("ByClass returned error: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("matched %d elements, want 0", len(els))
	}
}

func TestByClass_PartialClassNameDoesNotMatch(t *testing.T) {
	els, err := ByClass(`<div class="listing-cards">x</div>`, "listing-card")
	if err != nil {
		t.Fatalf("ByClass returned error: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("matched %d elements, want 0 (class must match exactly)", len(els))
	}
}
