package types

// TemplateInfo describes a résumé layout a record can be rendered with
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Templates lists the available layouts; the first is the default
var Templates = []TemplateInfo{
	{
		ID:          DefaultTemplateID,
		Name:        "ATS Classic",
		Description: "Single column, no color, maximum ATS compatibility. The safe default.",
	},
	{
		ID:          "clean-minimal",
		Name:        "Clean Minimal",
		Description: "Subtle accent colors, clear typographic hierarchy. ATS-friendly with visual appeal.",
	},
	{
		ID:          "modern-two-column",
		Name:        "Modern Two-Column",
		Description: "Two-column layout with accent color sidebar. Skills and education on the right, experience on the left.",
	},
	{
		ID:          "executive",
		Name:        "Executive",
		Description: "Serif-accented premium design for senior professionals. Classic elegance with modern structure.",
	},
}

// KnownTemplate reports whether id names an available template
func KnownTemplate(id string) bool {
	for _, t := range Templates {
		if t.ID == id {
			return true
		}
	}
	return false
}
