package models

// Element is one DOM element captured by the generic class-based extractor.
type Element struct {
	Text       string            `json:"text"`
	HTML       string            `json:"html"`
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes"`
}
