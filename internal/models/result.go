package models

// TagCalculationResult is the per-customer outcome of one tagging run: the tag
// state before, the freshly computed state, and whether anything moved.
type TagCalculationResult struct {
	CustomerID      string      `json:"customer_id"`
	OldTags         TagSnapshot `json:"old_tags"`
	NewTags         TagSnapshot `json:"new_tags"`
	ChangesDetected bool        `json:"changes_detected"`
}
