package rendering

// TemplateID names a visual template. Templates never affect structure.
type TemplateID string

// The three built-in templates.
const (
	TemplateModern  TemplateID = "modern"
	TemplateClassic TemplateID = "classic"
	TemplateMinimal TemplateID = "minimal"
)

// DefaultTemplate is the fallback for unknown ids.
const DefaultTemplate = TemplateModern

// Style carries the presentation attributes (CSS class lists) for each
// structural slot. The renderer consumes these blindly; adding a template
// means adding a Style entry, never a structural branch.
type Style struct {
	Container    string
	Header       string
	Name         string
	Title        string
	Meta         string
	SectionTitle string
	Item         string
	ItemHeader   string
	Heading      string
	Subheading   string
	Date         string
	Body         string
	Notes        string
	SkillTag     string
}

var templateStyles = map[TemplateID]Style{
	TemplateModern: {
		Container:    "font-sans text-slate-800",
		Header:       "header header-dark",
		Name:         "name name-bold",
		Title:        "title title-muted",
		Meta:         "meta meta-row",
		SectionTitle: "section-title section-title-rule",
		Item:         "item",
		ItemHeader:   "item-header item-header-split",
		Heading:      "heading heading-bold",
		Subheading:   "subheading subheading-medium",
		Date:         "date date-italic",
		Body:         "body body-relaxed",
		Notes:        "notes notes-quote",
		SkillTag:     "skill-tag skill-tag-pill",
	},
	TemplateClassic: {
		Container:    "font-serif text-gray-900",
		Header:       "header header-centered",
		Name:         "name name-caps",
		Title:        "title title-italic",
		Meta:         "meta meta-centered",
		SectionTitle: "section-title section-title-centered",
		Item:         "item item-spaced",
		ItemHeader:   "item-header item-header-dotted",
		Heading:      "heading heading-bold",
		Subheading:   "subheading subheading-semibold",
		Date:         "date date-plain",
		Body:         "body body-relaxed",
		Notes:        "notes notes-italic",
		SkillTag:     "skill-tag skill-tag-plain",
	},
	TemplateMinimal: {
		Container:    "font-sans text-neutral-800",
		Header:       "header header-open",
		Name:         "name name-thin name-accent",
		Title:        "title title-muted",
		Meta:         "meta meta-grid",
		SectionTitle: "section-title section-title-accent",
		Item:         "item item-timeline",
		ItemHeader:   "item-header",
		Heading:      "heading heading-bold",
		Subheading:   "subheading subheading-accent",
		Date:         "date date-small",
		Body:         "body body-soft",
		Notes:        "notes notes-small",
		SkillTag:     "skill-tag skill-tag-outline",
	},
}

// ResolveTemplate maps an id to a known template, defaulting to modern.
func ResolveTemplate(id TemplateID) TemplateID {
	if _, ok := templateStyles[id]; ok {
		return id
	}
	return DefaultTemplate
}

// StyleFor returns the presentation attributes for id, falling back to the
// modern template for unknown ids.
func StyleFor(id TemplateID) Style {
	return templateStyles[ResolveTemplate(id)]
}

// Templates lists the available template ids.
func Templates() []TemplateID {
	return []TemplateID{TemplateModern, TemplateClassic, TemplateMinimal}
}
