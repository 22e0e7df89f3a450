package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestModuleCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateModule(ctx, "teacher-1", "Media Literacy 101", "Intro module", "loaded language")
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	if created.ID == 0 || created.CreatedAt == "" {
		t.Errorf("Created module missing generated fields: %+v", created)
	}

	got, err := s.GetModule(ctx, created.ID)
	if err != nil {
		t.Fatalf("get module: %v", err)
	}
	if got.Title != "Media Literacy 101" || got.TeacherID != "teacher-1" || got.FocusPoint != "loaded language" {
		t.Errorf("Unexpected module: %+v", got)
	}

	if _, err := s.CreateModule(ctx, "teacher-1", "Second module", "", ""); err != nil {
		t.Fatalf("create second module: %v", err)
	}
	if _, err := s.CreateModule(ctx, "teacher-2", "Other teacher's module", "", ""); err != nil {
		t.Fatalf("create other module: %v", err)
	}

	modules, err := s.ListModules(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("list modules: %v", err)
	}
	if len(modules) != 2 {
		t.Errorf("Expected 2 modules for teacher-1, got %d", len(modules))
	}
	for _, m := range modules {
		if m.TeacherID != "teacher-1" {
			t.Errorf("Listing leaked another teacher's module: %+v", m)
		}
	}
}

func TestGetModule_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetModule(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListModules_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	modules, err := s.ListModules(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list modules: %v", err)
	}
	if modules == nil {
		t.Error("Expected empty slice, got nil")
	}
}

func TestAssignments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := s.CreateModule(ctx, "teacher-1", "Module", "", "")
	if err != nil {
		t.Fatalf("create module: %v", err)
	}

	first, err := s.CreateAssignment(ctx, m.ID, "https://example.com/a", "Article A")
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	second, err := s.CreateAssignment(ctx, m.ID, "https://example.com/b", "Article B")
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if first.ModuleID != m.ID || first.ArticleURL != "https://example.com/a" {
		t.Errorf("Unexpected assignment: %+v", first)
	}

	if second.ID <= first.ID {
		t.Errorf("Expected monotonically increasing ids, got %d then %d", first.ID, second.ID)
	}

	assignments, err := s.ListAssignments(ctx, m.ID)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("Expected 2 assignments, got %d", len(assignments))
	}
}

func TestStudentResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := s.CreateModule(ctx, "teacher-1", "Module", "", "")
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	a, err := s.CreateAssignment(ctx, m.ID, "https://example.com/a", "Article A")
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	analysis := json.RawMessage(`{"overall_score": 70, "verdict": "Mostly True"}`)
	created, err := s.CreateStudentResult(ctx, "student-1", a.ID, analysis)
	if err != nil {
		t.Fatalf("create result: %v", err)
	}
	if created.StudentID != "student-1" || created.AssignmentID != a.ID {
		t.Errorf("Unexpected result: %+v", created)
	}

	var decoded map[string]any
	if err := json.Unmarshal(created.Analysis, &decoded); err != nil {
		t.Fatalf("Stored analysis is not valid JSON: %v", err)
	}
	if decoded["verdict"] != "Mostly True" {
		t.Errorf("Analysis round trip lost data: %v", decoded)
	}

	if _, err := s.CreateStudentResult(ctx, "student-2", a.ID, analysis); err != nil {
		t.Fatalf("create second result: %v", err)
	}

	byAssignment, err := s.ResultsForAssignment(ctx, a.ID)
	if err != nil {
		t.Fatalf("results for assignment: %v", err)
	}
	if len(byAssignment) != 2 {
		t.Errorf("Expected 2 results for assignment, got %d", len(byAssignment))
	}

	byStudent, err := s.ResultsForStudent(ctx, "student-1")
	if err != nil {
		t.Fatalf("results for student: %v", err)
	}
	if len(byStudent) != 1 || byStudent[0].StudentID != "student-1" {
		t.Errorf("Unexpected student results: %+v", byStudent)
	}
}
