package models

// Column represents one stage of the lead pipeline (e.g., "New", "Qualified", "Won").
// Columns are ordered left to right by Order; Key is the slug leads reference in Stage.
type Column struct {
	Key   string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}
