package config

// KeyMappings defines the terminal board key bindings
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevLead   string `yaml:"prev_lead"`
	NextLead   string `yaml:"next_lead"`

	// Leads
	ToggleLead string `yaml:"toggle_lead"`
	GrabLead   string `yaml:"grab_lead"`
	AddLead    string `yaml:"add_lead"`
	EditLead   string `yaml:"edit_lead"`
	DeleteLead string `yaml:"delete_lead"`
	SaveForm   string `yaml:"save_form"`

	// Columns
	AddColumn    string `yaml:"add_column"`
	DeleteColumn string `yaml:"delete_column"`

	// Other
	Search string `yaml:"search"`
	Reload string `yaml:"reload"`
	Quit   string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevLead:   "k",
		NextLead:   "j",

		ToggleLead: "enter",
		GrabLead:   "space",
		AddLead:    "n",
		EditLead:   "e",
		DeleteLead: "d",
		SaveForm:   "ctrl+s",

		AddColumn:    "a",
		DeleteColumn: "x",

		Search: "/",
		Reload: "r",
		Quit:   "q",
	}
}

func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()
	for _, f := range []fallback{
		{&k.PrevColumn, d.PrevColumn},
		{&k.NextColumn, d.NextColumn},
		{&k.PrevLead, d.PrevLead},
		{&k.NextLead, d.NextLead},
		{&k.ToggleLead, d.ToggleLead},
		{&k.GrabLead, d.GrabLead},
		{&k.AddLead, d.AddLead},
		{&k.EditLead, d.EditLead},
		{&k.DeleteLead, d.DeleteLead},
		{&k.SaveForm, d.SaveForm},
		{&k.AddColumn, d.AddColumn},
		{&k.DeleteColumn, d.DeleteColumn},
		{&k.Search, d.Search},
		{&k.Reload, d.Reload},
		{&k.Quit, d.Quit},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}
