package document

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
)

func sectionOrderIsValid(t *testing.T, doc *types.ResumeDocument) {
	t.Helper()
	if len(doc.SectionOrder) != 4 {
		t.Fatalf("sectionOrder has %d entries: %v", len(doc.SectionOrder), doc.SectionOrder)
	}
	seen := make(map[types.Section]bool)
	for _, s := range doc.SectionOrder {
		if !types.KnownSection(s) {
			t.Fatalf("unknown section %q", s)
		}
		if seen[s] {
			t.Fatalf("duplicate section %q", s)
		}
		seen[s] = true
	}
}

func TestSetFieldSummary(t *testing.T) {
	s := NewStore(nil)
	if err := s.SetField("summary", "", "new summary", nil); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := s.Snapshot().Summary; got != "new summary" {
		t.Errorf("summary = %q", got)
	}
}

func TestSetFieldPersonalInfoMergesSingleField(t *testing.T) {
	s := NewStore(nil)
	before := s.Snapshot().PersonalInfo
	if err := s.SetField("personalInfo", "email", "new@example.com", nil); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	after := s.Snapshot().PersonalInfo
	if after.Email != "new@example.com" {
		t.Errorf("email = %q", after.Email)
	}
	if after.Name != before.Name || after.Phone != before.Phone {
		t.Error("untouched personalInfo fields changed")
	}
}

func TestSetFieldSkillsSplitsAndTrims(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "plain list", input: "Go, SQL,Figma", expected: []string{"Go", "SQL", "Figma"}},
		{name: "trailing comma dropped", input: "Go, SQL,", expected: []string{"Go", "SQL"}},
		{name: "only commas yields empty list", input: ", ,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil)
			if err := s.SetField("skills", "", tt.input, nil); err != nil {
				t.Fatalf("SetField: %v", err)
			}
			if got := s.Snapshot().Skills; !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("skills = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSetFieldIndexedItem(t *testing.T) {
	s := NewStore(nil)
	idx := 0
	if err := s.SetField("experience", "company", "Acme", &idx); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := s.Snapshot().Experience[0].Company; got != "Acme" {
		t.Errorf("company = %q", got)
	}

	out := 99
	err := s.SetField("experience", "company", "x", &out)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestAddItemGeneratesDistinctIDs(t *testing.T) {
	s := NewStore(nil)
	id1, err := s.AddItem("experience")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	id2, err := s.AddItem("experience")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	doc := s.Snapshot()
	if len(doc.Experience) != 3 {
		t.Fatalf("experience length = %d, want 3", len(doc.Experience))
	}
	ids := map[types.ItemID]bool{id1: true}
	if ids[id2] {
		t.Error("AddItem returned a duplicate id")
	}
	for _, e := range doc.Education {
		if e.ID == id1 || e.ID == id2 {
			t.Error("new experience id collides with an education id")
		}
	}
}

func TestDeleteItemPreservesOrder(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.AddItem("education"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := s.AddItem("education"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	before := s.Snapshot().Education
	if err := s.DeleteItem("education", 1); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	after := s.Snapshot().Education
	if len(after) != len(before)-1 {
		t.Fatalf("education length = %d, want %d", len(after), len(before)-1)
	}
	if after[0].ID != before[0].ID || after[1].ID != before[2].ID {
		t.Error("relative order not preserved after delete")
	}
}

func TestMoveSectionBoundariesAreNoOps(t *testing.T) {
	s := NewStore(nil)
	before := s.Snapshot().SectionOrder

	if err := s.MoveSection(0, MoveUp); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	if err := s.MoveSection(len(before)-1, MoveDown); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	if got := s.Snapshot().SectionOrder; !reflect.DeepEqual(got, before) {
		t.Errorf("boundary moves changed order: %v -> %v", before, got)
	}
}

func TestMoveSectionRoundTrip(t *testing.T) {
	s := NewStore(nil)
	before := s.Snapshot().SectionOrder

	if err := s.MoveSection(2, MoveUp); err != nil {
		t.Fatalf("MoveSection up: %v", err)
	}
	if err := s.MoveSection(1, MoveDown); err != nil {
		t.Fatalf("MoveSection down: %v", err)
	}
	if got := s.Snapshot().SectionOrder; !reflect.DeepEqual(got, before) {
		t.Errorf("round trip changed order: %v -> %v", before, got)
	}
}

func TestMoveSectionSwapsNeighbors(t *testing.T) {
	s := NewStore(nil)
	before := s.Snapshot().SectionOrder
	if err := s.MoveSection(1, MoveUp); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	got := s.Snapshot().SectionOrder
	if got[0] != before[1] || got[1] != before[0] {
		t.Errorf("expected swap of first two, got %v from %v", got, before)
	}
}

func TestReplaceBackfillsSectionOrder(t *testing.T) {
	s := NewStore(nil)
	if err := s.MoveSection(1, MoveUp); err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	want := s.Snapshot().SectionOrder

	summary := "from the model"
	s.Replace(&types.DraftDocument{Summary: &summary})

	doc := s.Snapshot()
	if !reflect.DeepEqual(doc.SectionOrder, want) {
		t.Errorf("sectionOrder = %v, want backfilled %v", doc.SectionOrder, want)
	}
	if doc.Summary != "from the model" {
		t.Errorf("summary = %q", doc.Summary)
	}
}

func TestInvariantHoldsAcrossMutationSequence(t *testing.T) {
	s := NewStore(nil)
	idx := 0
	mutations := []func() error{
		func() error { return s.SetField("summary", "", "x", nil) },
		func() error { _, err := s.AddItem("experience"); return err },
		func() error { return s.MoveSection(2, MoveDown) },
		func() error { return s.SetField("experience", "role", "PM", &idx) },
		func() error { return s.DeleteItem("experience", 1) },
		func() error {
			s.Replace(&types.DraftDocument{SectionOrder: []types.Section{types.SectionSkills, types.SectionSkills}})
			return nil
		},
		func() error { return s.MoveSection(0, MoveDown) },
	}
	for i, m := range mutations {
		if err := m(); err != nil {
			t.Fatalf("mutation %d: %v", i, err)
		}
		sectionOrderIsValid(t, s.Snapshot())
	}
}
