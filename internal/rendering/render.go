// Package rendering turns a resume document into a structural render tree
// and realizes it as a print-ready HTML preview. Structure (what appears,
// in what order, under what condition) is computed once; templates only
// contribute presentation attributes.
package rendering

import (
	"github.com/jonathan/resume-studio/internal/types"
)

// Section display titles, identical across templates.
var sectionTitles = map[types.Section]string{
	types.SectionSummary:    "Profile",
	types.SectionExperience: "Experience",
	types.SectionEducation:  "Education",
	types.SectionSkills:     "Skills",
}

// Tree is the structural render output: a fixed header followed by the
// non-empty body sections in document order.
type Tree struct {
	Template TemplateID     `json:"template"`
	Header   Header         `json:"header"`
	Sections []SectionBlock `json:"sections"`
}

// Header is the always-first personal-info block.
type Header struct {
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Meta  []string `json:"meta"`
}

// SectionBlock is one rendered body section. Exactly one of Text, Items or
// Tags is populated, depending on the section kind.
type SectionBlock struct {
	Key   types.Section `json:"key"`
	Title string        `json:"title"`
	Text  string        `json:"text,omitempty"`
	Items []Item        `json:"items,omitempty"`
	Tags  []string      `json:"tags,omitempty"`
}

// Item is one experience or education entry in display form.
type Item struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Date       string `json:"date"`
	Body       string `json:"body,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Render builds the render tree for doc under the given template. Unknown
// template ids fall back to modern. The header renders unconditionally;
// body sections follow doc.SectionOrder and empty sections are skipped
// entirely so no bare headings appear.
func Render(doc *types.ResumeDocument, id TemplateID) *Tree {
	tree := &Tree{
		Template: ResolveTemplate(id),
		Header:   buildHeader(doc.PersonalInfo),
	}

	for _, key := range types.NormalizeSectionOrder(doc.SectionOrder) {
		if block, ok := buildSection(doc, key); ok {
			tree.Sections = append(tree.Sections, block)
		}
	}
	return tree
}

func buildHeader(info types.PersonalInfo) Header {
	meta := []string{info.Email, info.Phone, info.Location}
	if info.Website != "" {
		meta = append(meta, info.Website)
	}
	return Header{Name: info.Name, Title: info.Title, Meta: meta}
}

// buildSection returns the block for key and whether it has any content.
func buildSection(doc *types.ResumeDocument, key types.Section) (SectionBlock, bool) {
	block := SectionBlock{Key: key, Title: sectionTitles[key]}

	switch key {
	case types.SectionSummary:
		if doc.Summary == "" {
			return block, false
		}
		block.Text = doc.Summary
	case types.SectionExperience:
		if len(doc.Experience) == 0 {
			return block, false
		}
		for _, exp := range doc.Experience {
			block.Items = append(block.Items, Item{
				Heading:    exp.Role,
				Subheading: exp.Company,
				Date:       exp.Period,
				Body:       exp.Description,
			})
		}
	case types.SectionEducation:
		if len(doc.Education) == 0 {
			return block, false
		}
		for _, edu := range doc.Education {
			block.Items = append(block.Items, Item{
				Heading:    edu.School,
				Subheading: edu.Degree,
				Date:       edu.Period,
				Notes:      edu.Notes,
			})
		}
	case types.SectionSkills:
		if len(doc.Skills) == 0 {
			return block, false
		}
		block.Tags = append(block.Tags, doc.Skills...)
	default:
		return block, false
	}
	return block, true
}
