// Package extractor turns HTML snapshots of a listing page into structured
// records. It is pure: no browser round-trips happen here, so the same code
// runs against a live tab's snapshot or a fixture in tests.
package extractor

import "fmt"

// Profile is the site-specific addressing scheme: which attribute keys and
// selectors locate the transaction table, its rows, and the pagination
// affordances. The crawl state machine is reusable across layouts; only the
// Profile changes.
type Profile struct {
	// TableRoot marks the transaction table; its presence distinguishes
	// "project has a table" from a valid empty-result page.
	TableRoot string

	// Row selects one collapsed transaction row inside the table.
	Row string

	// FieldAttr is the data attribute carrying a field's logical key.
	FieldAttr string

	// PrimaryText and SubText locate the two values inside one field
	// container (e.g. price vs price-per-sqft).
	PrimaryText string
	SubText     string

	// Collapsed-row field keys.
	DateKey       string
	BedroomKey    string
	PriceKey      string
	FloorLevelKey string
	CompletedKey  string

	// Expanded detail-panel field keys.
	LeaseKey   string
	AddressKey string

	// ExpandToggle opens a collapsed row's detail panel.
	ExpandToggle string

	// NextButton is the pagination "next" control. NextHolder is the
	// ancestor inspected for DisabledMark; the site marks exhaustion on the
	// enclosing list item rather than the button itself.
	NextButton   string
	NextHolder   string
	DisabledMark string

	// FilterRemove selects the active-filter dismiss controls.
	FilterRemove string
}

// DefaultProfile returns the addressing scheme for the supported listing
// site's transaction-history table.
func DefaultProfile() Profile {
	return Profile{
		TableRoot:     `[da-id="transaction-table"]`,
		Row:           `[da-id="transaction-row"]`,
		FieldAttr:     "da-id",
		PrimaryText:   ".primary-text",
		SubText:       ".sub-text",
		DateKey:       "row-date",
		BedroomKey:    "row-bedroom",
		PriceKey:      "row-price",
		FloorLevelKey: "row-floorLevel",
		CompletedKey:  "row-completed",
		LeaseKey:      "expanded-lease",
		AddressKey:    "expanded-address",
		ExpandToggle:  `[da-id="row-expand"]`,
		NextButton:    `[da-id="pagination-next"]`,
		NextHolder:    "li",
		DisabledMark:  "disabled",
		FilterRemove:  `[da-id="filter-remove"]`,
	}
}

// FieldSel builds the CSS selector addressing one logical field.
func (p Profile) FieldSel(key string) string {
	return fmt.Sprintf("[%s=%q]", p.FieldAttr, key)
}
