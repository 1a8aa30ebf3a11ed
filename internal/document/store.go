// Package document owns the single mutable resume document of a session and
// the synchronous mutation operations the editor performs on it.
package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-studio/internal/types"
)

// Mutation errors. Out-of-range and unknown-target errors indicate a caller
// bug (the editor never produces them), but a long-running server answers
// them with an error instead of panicking.
var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownField   = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Direction names the two adjacent-swap moves for sections.
type Direction string

// Directions accepted by MoveSection.
const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Store holds the session document. All mutations run under one lock so the
// renderer and the assistant always observe a consistent document.
type Store struct {
	mu  sync.Mutex
	doc *types.ResumeDocument
}

// NewStore creates a store seeded with doc, or with the built-in starter
// resume when doc is nil. The seed's section order is normalized so the
// permutation invariant holds from the first render.
func NewStore(doc *types.ResumeDocument) *Store {
	if doc == nil {
		doc = types.StarterDocument()
	} else {
		doc = doc.Clone()
	}
	doc.SectionOrder = types.NormalizeSectionOrder(doc.SectionOrder)
	return &Store{doc: doc}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// SetField applies a single edit. With an index it targets one item of a
// repeatable section; the skills section treats value as a comma-joined tag
// list; personalInfo merges the named field; summary replaces the whole text.
func (s *Store) SetField(section, field, value string, index *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index != nil {
		return s.setItemField(section, field, value, *index)
	}

	switch section {
	case "skills":
		s.doc.Skills = SplitSkills(value)
		return nil
	case "personalInfo":
		return setPersonalInfoField(&s.doc.PersonalInfo, field, value)
	case "summary":
		s.doc.Summary = value
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
}

func (s *Store) setItemField(section, field, value string, index int) error {
	switch section {
	case "experience":
		if index < 0 || index >= len(s.doc.Experience) {
			return fmt.Errorf("%w: experience[%d]", ErrIndexOutOfRange, index)
		}
		item := &s.doc.Experience[index]
		switch field {
		case "company":
			item.Company = value
		case "role":
			item.Role = value
		case "period":
			item.Period = value
		case "description":
			item.Description = value
		default:
			return fmt.Errorf("%w: experience.%s", ErrUnknownField, field)
		}
	case "education":
		if index < 0 || index >= len(s.doc.Education) {
			return fmt.Errorf("%w: education[%d]", ErrIndexOutOfRange, index)
		}
		item := &s.doc.Education[index]
		switch field {
		case "school":
			item.School = value
		case "degree":
			item.Degree = value
		case "period":
			item.Period = value
		case "notes":
			item.Notes = value
		default:
			return fmt.Errorf("%w: education.%s", ErrUnknownField, field)
		}
	default:
		return fmt.Errorf("%w: %s is not a repeatable section", ErrUnknownSection, section)
	}
	return nil
}

func setPersonalInfoField(info *types.PersonalInfo, field, value string) error {
	switch field {
	case "name":
		info.Name = value
	case "title":
		info.Title = value
	case "email":
		info.Email = value
	case "phone":
		info.Phone = value
	case "location":
		info.Location = value
	case "website":
		info.Website = value
	default:
		return fmt.Errorf("%w: personalInfo.%s", ErrUnknownField, field)
	}
	return nil
}

// AddItem appends a blank item with a fresh id to experience or education
// and returns the new item's id.
func (s *Store) AddItem(section string) (types.ItemID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := types.NewItemID()
	switch section {
	case "experience":
		s.doc.Experience = append(s.doc.Experience, types.ExperienceItem{ID: id})
	case "education":
		s.doc.Education = append(s.doc.Education, types.EducationItem{ID: id})
	default:
		return "", fmt.Errorf("%w: cannot add items to %s", ErrUnknownSection, section)
	}
	return id, nil
}

// DeleteItem removes the item at index from experience or education,
// preserving the relative order of the remaining items.
func (s *Store) DeleteItem(section string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch section {
	case "experience":
		if index < 0 || index >= len(s.doc.Experience) {
			return fmt.Errorf("%w: experience[%d]", ErrIndexOutOfRange, index)
		}
		s.doc.Experience = append(s.doc.Experience[:index], s.doc.Experience[index+1:]...)
	case "education":
		if index < 0 || index >= len(s.doc.Education) {
			return fmt.Errorf("%w: education[%d]", ErrIndexOutOfRange, index)
		}
		s.doc.Education = append(s.doc.Education[:index], s.doc.Education[index+1:]...)
	default:
		return fmt.Errorf("%w: cannot delete items from %s", ErrUnknownSection, section)
	}
	return nil
}

// MoveSection swaps sectionOrder[index] with its neighbor. Moving the first
// section up or the last section down is a no-op.
func (s *Store) MoveSection(index int, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.doc.SectionOrder
	if index < 0 || index >= len(order) {
		return fmt.Errorf("%w: sectionOrder[%d]", ErrIndexOutOfRange, index)
	}
	switch dir {
	case MoveUp:
		if index > 0 {
			order[index], order[index-1] = order[index-1], order[index]
		}
	case MoveDown:
		if index < len(order)-1 {
			order[index], order[index+1] = order[index+1], order[index]
		}
	default:
		return fmt.Errorf("unknown direction %q", dir)
	}
	return nil
}

// Replace swaps in a canonicalized version of draft, backfilling the section
// order from the outgoing document when the draft carries none. Used after a
// successful assistant response.
func (s *Store) Replace(draft *types.DraftDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = draft.Canonicalize(s.doc)
}

// SplitSkills turns the comma-joined edit surface into the canonical ordered
// tag list. Tags are trimmed; empty tags (doubled or trailing commas) drop.
func SplitSkills(value string) []string {
	parts := strings.Split(value, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			skills = append(skills, tag)
		}
	}
	return skills
}
