package config

// Theme defines the colors of the terminal board and CLI output
type Theme struct {
	// Preset name: "default" or "monochrome"
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`
	ColumnBorder   string `yaml:"column_border"`
	LeadBorder     string `yaml:"lead_border"`
	SelectedBorder string `yaml:"selected_border"`
	DraggingBorder string `yaml:"dragging_border"`
	Title          string `yaml:"title"`
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`

	InfoFg  string `yaml:"info_fg"`
	ErrorFg string `yaml:"error_fg"`
}

// DefaultTheme is the purple preset
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		LeadBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DraggingBorder: "#FFD700",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		ErrorFg:        "#FF0000",
	}
}

// MonochromeTheme is a black and white preset
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#808080",
		LeadBorder:     "#606060",
		SelectedBorder: "#FFFFFF",
		DraggingBorder: "#C0C0C0",
		Title:          "#FFFFFF",
		Subtle:         "#808080",
		Normal:         "#D0D0D0",
		InfoFg:         "#FFFFFF",
		ErrorFg:        "#FFFFFF",
	}
}

// ApplyDefaults fills empty colors from the selected preset
func (t *Theme) ApplyDefaults() {
	preset := DefaultTheme()
	if t.Preset == "monochrome" {
		preset = MonochromeTheme()
	}
	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	for _, f := range []fallback{
		{&t.Accent, preset.Accent},
		{&t.ColumnBorder, preset.ColumnBorder},
		{&t.LeadBorder, preset.LeadBorder},
		{&t.SelectedBorder, preset.SelectedBorder},
		{&t.DraggingBorder, preset.DraggingBorder},
		{&t.Title, preset.Title},
		{&t.Subtle, preset.Subtle},
		{&t.Normal, preset.Normal},
		{&t.InfoFg, preset.InfoFg},
		{&t.ErrorFg, preset.ErrorFg},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}
