package types

// ID type aliases give semantic meaning to the integers that flow between
// the gateway, the board and the front ends.

// LeadID identifies a single lead (card) on the pipeline board
type LeadID int64

// UserID identifies a CRM user (admin or staff)
type UserID int64

// ClientID identifies the client record a lead may be linked to
type ClientID int64

// ActivityID identifies one row of the activity log
type ActivityID int64

func (id LeadID) ToInt64() int64 {
	return int64(id)
}

func (id UserID) ToInt64() int64 {
	return int64(id)
}

func (id ClientID) ToInt64() int64 {
	return int64(id)
}

func (id ActivityID) ToInt64() int64 {
	return int64(id)
}
