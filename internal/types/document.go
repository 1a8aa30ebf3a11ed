// Package types provides type definitions for the resume document and the
// structures exchanged with the optimization assistant.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Section identifies one of the reorderable resume body blocks.
type Section string

// The four reorderable sections. PersonalInfo is not a Section: it renders
// as a fixed header above the ordered blocks.
const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// DefaultSectionOrder returns the order used when a document carries none.
func DefaultSectionOrder() []Section {
	return []Section{SectionSummary, SectionEducation, SectionExperience, SectionSkills}
}

// KnownSection reports whether s names one of the four body sections.
func KnownSection(s Section) bool {
	switch s {
	case SectionSummary, SectionExperience, SectionEducation, SectionSkills:
		return true
	}
	return false
}

// ItemID is a session-unique identifier for an experience or education item.
// Model responses echo numeric ids from the seed document, so it accepts
// either a JSON string or a JSON number.
type ItemID string

// UnmarshalJSON accepts both "exp-1" and 1.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty item id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// NewItemID generates a fresh id for an item added during this session.
func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

// PersonalInfo is the always-first header block. All fields are freeform.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
}

// ExperienceItem is one entry in the experience section.
type ExperienceItem struct {
	ID          ItemID `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// EducationItem is one entry in the education section.
type EducationItem struct {
	ID     ItemID `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Period string `json:"period"`
	Notes  string `json:"notes,omitempty"`
}

// ResumeDocument is the canonical document shape. A session owns exactly one
// instance; the assistant replaces it wholesale, never field-by-field.
// Invariant: SectionOrder is a permutation of the four Section labels.
type ResumeDocument struct {
	PersonalInfo PersonalInfo     `json:"personalInfo"`
	SectionOrder []Section        `json:"sectionOrder"`
	Summary      string           `json:"summary"`
	Experience   []ExperienceItem `json:"experience"`
	Education    []EducationItem  `json:"education"`
	Skills       []string         `json:"skills"`
}

// Clone returns a deep copy safe to hand across the assistant boundary.
func (d *ResumeDocument) Clone() *ResumeDocument {
	c := *d
	c.SectionOrder = append([]Section(nil), d.SectionOrder...)
	c.Experience = append([]ExperienceItem(nil), d.Experience...)
	c.Education = append([]EducationItem(nil), d.Education...)
	c.Skills = append([]string(nil), d.Skills...)
	return &c
}

// NormalizeSectionOrder repairs an order coming from outside the session:
// unknown labels are dropped, duplicates collapse to their first occurrence,
// and any missing label is appended in default-order position. The result is
// always a full permutation of the four sections.
func NormalizeSectionOrder(order []Section) []Section {
	seen := make(map[Section]bool, 4)
	normalized := make([]Section, 0, 4)
	for _, s := range order {
		if !KnownSection(s) || seen[s] {
			continue
		}
		seen[s] = true
		normalized = append(normalized, s)
	}
	for _, s := range DefaultSectionOrder() {
		if !seen[s] {
			normalized = append(normalized, s)
		}
	}
	return normalized
}

// StarterDocument returns the built-in seed resume a session starts from.
func StarterDocument() *ResumeDocument {
	return &ResumeDocument{
		PersonalInfo: PersonalInfo{
			Name:     "Jordan Lee",
			Title:    "Recent Graduate / Product Associate",
			Email:    "jordan.lee@example.com",
			Phone:    "555-0100",
			Location: "Seattle, WA",
			Website:  "linkedin.com/in/jordanlee",
		},
		SectionOrder: DefaultSectionOrder(),
		Summary: "Computer science graduate with a strong product sense and hands-on " +
			"experience designing a campus marketplace used by 2,000+ students. " +
			"Comfortable with data analysis and user research; seeking an associate " +
			"product manager role.",
		Experience: []ExperienceItem{
			{
				ID:      "exp-1",
				Company: "Northwind Labs",
				Role:    "Product Operations Intern",
				Period:  "06/2023 - 09/2023",
				Description: "Supported content moderation and recommendation tuning for a UGC community.\n" +
					"Analyzed click-through data and adjusted ranking weights, lifting CTR by 10%.\n" +
					"Wrote competitive analyses that informed two feature launches.",
			},
		},
		Education: []EducationItem{
			{
				ID:     "edu-1",
				School: "University of Washington",
				Degree: "B.S. Computer Science",
				Period: "09/2020 - 06/2024",
				Notes: "GPA: 3.8/4.0 (top 5% of cohort)\n" +
					"Coursework: data structures, operating systems, software engineering, HCI\n" +
					"First prize, 2022 collegiate mathematical modeling competition",
			},
		},
		Skills: []string{"Axure RP", "XMind", "SQL", "Python (Pandas)", "Figma", "User Research"},
	}
}
