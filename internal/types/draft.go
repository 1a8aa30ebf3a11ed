package types

// DraftDocument is the loosely-shaped document that arrives from a model
// response. Every field is optional; Canonicalize coerces it into a valid
// ResumeDocument before it replaces session state.
type DraftDocument struct {
	PersonalInfo *PersonalInfo    `json:"personalInfo,omitempty"`
	SectionOrder []Section        `json:"sectionOrder,omitempty"`
	Summary      *string          `json:"summary,omitempty"`
	Experience   []ExperienceItem `json:"experience,omitempty"`
	Education    []EducationItem  `json:"education,omitempty"`
	Skills       []string         `json:"skills,omitempty"`
}

// Canonicalize converts the draft into a canonical document. The replacement
// is wholesale: draft fields win even when empty. The two repairs applied are
// sectionOrder (backfilled from prev when absent, normalized otherwise) and
// item ids (fresh ids assigned where the model dropped them).
func (d *DraftDocument) Canonicalize(prev *ResumeDocument) *ResumeDocument {
	doc := &ResumeDocument{
		Experience: make([]ExperienceItem, len(d.Experience)),
		Education:  make([]EducationItem, len(d.Education)),
		Skills:     append([]string(nil), d.Skills...),
	}
	if d.PersonalInfo != nil {
		doc.PersonalInfo = *d.PersonalInfo
	}
	if d.Summary != nil {
		doc.Summary = *d.Summary
	}
	copy(doc.Experience, d.Experience)
	copy(doc.Education, d.Education)
	for i := range doc.Experience {
		if doc.Experience[i].ID == "" {
			doc.Experience[i].ID = NewItemID()
		}
	}
	for i := range doc.Education {
		if doc.Education[i].ID == "" {
			doc.Education[i].ID = NewItemID()
		}
	}

	switch {
	case len(d.SectionOrder) > 0:
		doc.SectionOrder = NormalizeSectionOrder(d.SectionOrder)
	case prev != nil && len(prev.SectionOrder) > 0:
		doc.SectionOrder = NormalizeSectionOrder(prev.SectionOrder)
	default:
		doc.SectionOrder = DefaultSectionOrder()
	}
	return doc
}

// OptimizeResult is the three-field envelope the assistant expects back from
// the model: an optional document replacement, an explanation for the
// conversation log, and display-only follow-up suggestions.
type OptimizeResult struct {
	Data        *DraftDocument `json:"data,omitempty"`
	Analysis    string         `json:"analysis,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}
