package cli

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ParseLeadID parses a positional lead id
func ParseLeadID(s string) (types.LeadID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid lead id %q: must be a positive integer", s)
	}
	return types.LeadID(id), nil
}

// Prompt asks a yes/no question on the terminal. Replaced in tests.
var Prompt = func(question string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// Confirm asks question unless force is set or output is for machines
func Confirm(question string, force bool, f *OutputFormatter) (bool, error) {
	if force || f.Quiet || f.JSON {
		return true, nil
	}
	return Prompt(question)
}

// ============================================================================
// LEAD FLAGS
// ============================================================================

// AddLeadFlags registers one flag per editable lead field
func AddLeadFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Lead title")
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().Float64("budget", 0, "Budget")
	cmd.Flags().StringSlice("tags", nil, "Tags ("+strings.Join(models.TagCatalog, ", ")+")")
	cmd.Flags().String("name", "", "Contact name")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("source", "", "Lead source ("+strings.Join(models.LeadSources, ", ")+")")
	cmd.Flags().Int("score", models.MinLeadScore, "Lead score (1-5)")
	cmd.Flags().StringSlice("products", nil, "Interested products")
	cmd.Flags().String("status", models.StatusNew, "Status ("+strings.Join(models.LeadStatuses, ", ")+")")
	cmd.Flags().String("notes", "", "Notes (markdown)")
	cmd.Flags().Int64("client", 0, "Linked client id")
}

// LeadFromFlags overlays the flags the user set onto base. Unset flags keep
// base's values, so the same flags serve add and edit.
func LeadFromFlags(cmd *cobra.Command, base *models.Lead) *models.Lead {
	l := base.Clone()
	flags := cmd.Flags()

	strs := []struct {
		name string
		dst  *string
	}{
		{"title", &l.Title},
		{"company", &l.Company},
		{"name", &l.Name},
		{"email", &l.Email},
		{"phone", &l.Phone},
		{"source", &l.LeadSource},
		{"status", &l.Status},
		{"notes", &l.Notes},
	}
	for _, s := range strs {
		if flags.Changed(s.name) {
			*s.dst, _ = flags.GetString(s.name)
		}
	}
	if flags.Changed("budget") {
		l.Budget, _ = flags.GetFloat64("budget")
	}
	if flags.Changed("score") {
		l.LeadScore, _ = flags.GetInt("score")
	}
	if flags.Changed("tags") {
		l.Tags, _ = flags.GetStringSlice("tags")
	}
	if flags.Changed("products") {
		l.InterestedProducts, _ = flags.GetStringSlice("products")
	}
	if flags.Changed("client") {
		id, _ := flags.GetInt64("client")
		client := types.ClientID(id)
		l.ClientID = &client
	}
	return l
}

// NewLeadDefaults is the base a new lead starts from before flags apply
func NewLeadDefaults() *models.Lead {
	return &models.Lead{
		Status:    models.StatusNew,
		LeadScore: models.MinLeadScore,
	}
}
