package models

// ============================================================================
// LEAD SOURCES
// ============================================================================

const (
	SourceEmail       = "Email"
	SourceWebsite     = "Website"
	SourceSocialMedia = "Social Media"
	SourceSurveys     = "Surveys"
)

// LeadSources lists the accepted lead sources in display order
var LeadSources = []string{SourceEmail, SourceWebsite, SourceSocialMedia, SourceSurveys}

// ============================================================================
// LEAD STATUSES
// ============================================================================

const (
	StatusNew            = "New"
	StatusContacted      = "Contacted"
	StatusFollowUpNeeded = "Follow-up Needed"
	StatusClosed         = "Closed"
)

// LeadStatuses lists the accepted statuses in display order
var LeadStatuses = []string{StatusNew, StatusContacted, StatusFollowUpNeeded, StatusClosed}

// ============================================================================
// CATALOGS
// ============================================================================

// ProductCatalog is the fixed set of products a lead can be interested in
var ProductCatalog = []string{
	"CRM Suite",
	"Email Marketing",
	"Analytics",
	"Consulting",
	"Support Plan",
	"Mobile App",
}

// TagCatalog is the fixed set of category tags a lead can carry
var TagCatalog = []string{
	"Hot",
	"Warm",
	"Cold",
	"Enterprise",
	"SMB",
	"Referral",
	"Partner",
}

// ============================================================================
// SCORE
// ============================================================================

const (
	MinLeadScore = 1
	MaxLeadScore = 5
)

// ============================================================================
// DEFAULT STAGES
// ============================================================================

// DefaultStage is the key of the column new leads are assigned to
const DefaultStage = "new"

// DefaultColumns are seeded into an empty database
var DefaultColumns = []Column{
	{Key: "new", Title: "New", Order: 0},
	{Key: "qualified", Title: "Qualified", Order: 1},
	{Key: "won", Title: "Won", Order: 2},
}
