package models

// Transaction is one row of a project's transaction-history table.
//
// Every field is optional: absence means the corresponding DOM cell was
// missing on the page, not an error. A field is never populated with an
// empty placeholder string.
type Transaction struct {
	// Date is the transaction date as displayed (e.g. "Jun 2025").
	Date string `json:"date,omitempty"`

	// Bedrooms is the bedroom count as displayed (e.g. "3 Beds").
	Bedrooms string `json:"bedrooms,omitempty"`

	// Size is the floor area shown under the bedroom cell (e.g. "1,076 sqft").
	Size string `json:"size,omitempty"`

	// Price is the headline transaction price (e.g. "S$ 1.58M").
	Price string `json:"price,omitempty"`

	// PricePerSqft is the per-unit-area price shown under the price cell.
	PricePerSqft string `json:"pricePerSqft,omitempty"`

	// FloorLevel is the banded floor level as displayed (e.g. "Low", "06-10").
	FloorLevel string `json:"floorLevel,omitempty"`

	// BuildStatus is the completion status cell (e.g. "Completed").
	BuildStatus string `json:"buildStatus,omitempty"`

	// Lease is the lease term from the expanded detail panel.
	Lease string `json:"lease,omitempty"`

	// Address is the full address from the expanded detail panel.
	Address string `json:"address,omitempty"`

	// Floor is the numeric floor derived from Address ("#07-12, ..." -> "07").
	// Present only when Address is present and matches the unit pattern.
	Floor string `json:"floor,omitempty"`
}
