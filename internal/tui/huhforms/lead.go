package huhforms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/huh/v2"

	"github.com/thenoetrevino/leadboard/internal/models"
)

// LeadFields holds the values a lead form edits in place
type LeadFields struct {
	Title    string
	Company  string
	Budget   string
	Name     string
	Email    string
	Phone    string
	Source   string
	Score    int
	Status   string
	Tags     []string
	Products []string
	Notes    string
	Confirm  bool
}

// NewLeadFields returns the starting values for a new lead
func NewLeadFields() LeadFields {
	return LeadFields{
		Source:  models.SourceEmail,
		Score:   models.MinLeadScore,
		Status:  models.StatusNew,
		Confirm: true,
	}
}

// FieldsFromLead copies an existing lead into form values
func FieldsFromLead(l *models.Lead) LeadFields {
	return LeadFields{
		Title:    l.Title,
		Company:  l.Company,
		Budget:   strconv.FormatFloat(l.Budget, 'f', -1, 64),
		Name:     l.Name,
		Email:    l.Email,
		Phone:    l.Phone,
		Source:   l.LeadSource,
		Score:    l.LeadScore,
		Status:   l.Status,
		Tags:     append([]string(nil), l.Tags...),
		Products: append([]string(nil), l.InterestedProducts...),
		Notes:    l.Notes,
		Confirm:  true,
	}
}

// Apply writes the form values over a copy of base. Fields the form does
// not show (id, client, owner, stage) are kept from base.
func (f LeadFields) Apply(base *models.Lead) (*models.Lead, error) {
	budget, err := parseBudget(f.Budget)
	if err != nil {
		return nil, err
	}
	out := base.Clone()
	if out == nil {
		out = &models.Lead{}
	}
	out.Title = strings.TrimSpace(f.Title)
	out.Company = strings.TrimSpace(f.Company)
	out.Budget = budget
	out.Name = f.Name
	out.Email = f.Email
	out.Phone = f.Phone
	out.LeadSource = f.Source
	out.LeadScore = f.Score
	out.Status = f.Status
	out.Tags = append([]string(nil), f.Tags...)
	out.InterestedProducts = append([]string(nil), f.Products...)
	out.Notes = strings.TrimSpace(f.Notes)
	return out, nil
}

func parseBudget(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: budget must be a non-negative number", models.ErrInvalidLead)
	}
	return v, nil
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

// CreateLeadForm creates a huh form for adding or editing a lead.
// Every field writes through to f.
func CreateLeadForm(f *LeadFields, isEdit bool) *huh.Form {
	heading := "New lead"
	if isEdit {
		heading = "Edit lead"
	}

	scores := make([]huh.Option[int], 0, models.MaxLeadScore)
	for i := models.MinLeadScore; i <= models.MaxLeadScore; i++ {
		scores = append(scores, huh.NewOption(strings.Repeat("★", i), i))
	}

	contact := huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title(heading).
			Placeholder("Lead title...").
			Validate(required("title")).
			Value(&f.Title),
		huh.NewInput().
			Key("company").
			Title("Company").
			Value(&f.Company),
		huh.NewInput().
			Key("budget").
			Title("Budget").
			Placeholder("0").
			Validate(func(s string) error {
				_, err := parseBudget(s)
				return err
			}).
			Value(&f.Budget),
		huh.NewInput().
			Key("name").
			Title("Contact name").
			Validate(required("contact name")).
			Value(&f.Name),
		huh.NewInput().
			Key("email").
			Title("Email").
			Validate(required("email")).
			Value(&f.Email),
		huh.NewInput().
			Key("phone").
			Title("Phone").
			Validate(required("phone")).
			Value(&f.Phone),
	)

	qualification := huh.NewGroup(
		huh.NewSelect[string]().
			Key("source").
			Title("Lead source").
			Options(huh.NewOptions(models.LeadSources...)...).
			Value(&f.Source),
		huh.NewSelect[int]().
			Key("score").
			Title("Lead score").
			Options(scores...).
			Value(&f.Score),
		huh.NewSelect[string]().
			Key("status").
			Title("Status").
			Options(huh.NewOptions(models.LeadStatuses...)...).
			Value(&f.Status),
	)

	extra := huh.NewGroup(
		huh.NewMultiSelect[string]().
			Key("tags").
			Title("Tags").
			Description("Space to toggle").
			Options(huh.NewOptions(models.TagCatalog...)...).
			Value(&f.Tags),
		huh.NewMultiSelect[string]().
			Key("products").
			Title("Interested products").
			Options(huh.NewOptions(models.ProductCatalog...)...).
			Value(&f.Products),
		huh.NewText().
			Key("notes").
			Title("Notes").
			CharLimit(2000).
			Lines(4).
			Value(&f.Notes),
		huh.NewConfirm().
			Key("confirm").
			Title("Save this lead?").
			Affirmative("Yes").
			Negative("No").
			Value(&f.Confirm),
	)

	return huh.NewForm(contact, qualification, extra).WithShowHelp(false)
}
