package models

import (
	"slices"

	"github.com/thenoetrevino/leadboard/internal/types"
)

// Lead represents a single prospective-client record tracked through the pipeline.
// Stage holds the Key of the column the lead currently sits in.
type Lead struct {
	ID                 types.LeadID    `json:"id"`
	ClientID           *types.ClientID `json:"client_id,omitempty"`
	Title              string          `json:"title" validate:"required,max=255"`
	Budget             float64         `json:"budget" validate:"gte=0"`
	Company            string          `json:"company"`
	Tags               []string        `json:"tags"`
	Name               string          `json:"name" validate:"required"`
	Email              string          `json:"email" validate:"required,email"`
	Phone              string          `json:"phone" validate:"required"`
	LeadSource         string          `json:"lead_source" validate:"required,oneof=Email Website 'Social Media' Surveys"`
	LeadScore          int             `json:"lead_score" validate:"min=1,max=5"`
	InterestedProducts []string        `json:"interested_products"`
	Status             string          `json:"status" validate:"required,oneof=New Contacted 'Follow-up Needed' Closed"`
	Stage              string          `json:"stage"`
	Notes              string          `json:"notes"`
	UserID             types.UserID    `json:"user_id"`
}

// Clone returns a deep copy so callers never share slices with the board.
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	c := *l
	c.Tags = slices.Clone(l.Tags)
	c.InterestedProducts = slices.Clone(l.InterestedProducts)
	if l.ClientID != nil {
		id := *l.ClientID
		c.ClientID = &id
	}
	return &c
}
