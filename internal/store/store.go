// Package store persists the teacher/student education workflow: modules,
// article assignments, and submitted analysis results. Backed by SQLite;
// analyses produced by the pipeline are only persisted here when a student
// explicitly submits one.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Pragmas applied on open. WAL and a generous busy timeout keep concurrent
// request handlers from tripping over each other on a single-file database.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	teacher_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	focus_point TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_modules_teacher ON modules(teacher_id);

CREATE TABLE IF NOT EXISTS assignments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	module_id INTEGER NOT NULL REFERENCES modules(id),
	article_url TEXT NOT NULL,
	article_title TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_assignments_module ON assignments(module_id);

CREATE TABLE IF NOT EXISTS student_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id TEXT NOT NULL,
	assignment_id INTEGER NOT NULL REFERENCES assignments(id),
	analysis_json TEXT NOT NULL,
	completed_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_results_assignment ON student_results(assignment_id);
CREATE INDEX IF NOT EXISTS idx_results_student ON student_results(student_id);
`

// Module is a unit of coursework owned by a teacher.
type Module struct {
	ID          int64  `json:"id"`
	TeacherID   string `json:"teacher_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FocusPoint  string `json:"focus_point"`
	CreatedAt   string `json:"created_at"`
}

// Assignment is one article attached to a module.
type Assignment struct {
	ID           int64  `json:"id"`
	ModuleID     int64  `json:"module_id"`
	ArticleURL   string `json:"article_url"`
	ArticleTitle string `json:"article_title"`
	CreatedAt    string `json:"created_at"`
}

// StudentResult is a student's submitted analysis for an assignment.
type StudentResult struct {
	ID           int64           `json:"id"`
	StudentID    string          `json:"student_id"`
	AssignmentID int64           `json:"assignment_id"`
	Analysis     json.RawMessage `json:"analysis_json"`
	CompletedAt  string          `json:"completed_at"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// CreateModule inserts a module owned by teacherID and returns it.
func (s *Store) CreateModule(ctx context.Context, teacherID, title, description, focusPoint string) (*Module, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO modules (teacher_id, title, description, focus_point) VALUES (?, ?, ?, ?)`,
		teacherID, title, description, focusPoint)
	if err != nil {
		return nil, fmt.Errorf("store: create module: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create module: %w", err)
	}
	return s.GetModule(ctx, id)
}

// GetModule fetches one module by id.
func (s *Store) GetModule(ctx context.Context, id int64) (*Module, error) {
	var m Module
	err := s.db.QueryRowContext(ctx,
		`SELECT id, teacher_id, title, description, focus_point, created_at FROM modules WHERE id = ?`, id).
		Scan(&m.ID, &m.TeacherID, &m.Title, &m.Description, &m.FocusPoint, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get module: %w", err)
	}
	return &m, nil
}

// ListModules returns every module owned by teacherID, newest first.
func (s *Store) ListModules(ctx context.Context, teacherID string) ([]Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, teacher_id, title, description, focus_point, created_at
		 FROM modules WHERE teacher_id = ? ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("store: list modules: %w", err)
	}
	defer rows.Close()

	modules := []Module{}
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.TeacherID, &m.Title, &m.Description, &m.FocusPoint, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: list modules: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// CreateAssignment attaches an article to a module and returns the row.
func (s *Store) CreateAssignment(ctx context.Context, moduleID int64, articleURL, articleTitle string) (*Assignment, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (module_id, article_url, article_title) VALUES (?, ?, ?)`,
		moduleID, articleURL, articleTitle)
	if err != nil {
		return nil, fmt.Errorf("store: create assignment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create assignment: %w", err)
	}

	var a Assignment
	err = s.db.QueryRowContext(ctx,
		`SELECT id, module_id, article_url, article_title, created_at FROM assignments WHERE id = ?`, id).
		Scan(&a.ID, &a.ModuleID, &a.ArticleURL, &a.ArticleTitle, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create assignment: %w", err)
	}
	return &a, nil
}

// ListAssignments returns a module's assignments in creation order.
func (s *Store) ListAssignments(ctx context.Context, moduleID int64) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, module_id, article_url, article_title, created_at
		 FROM assignments WHERE module_id = ? ORDER BY created_at`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("store: list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []Assignment{}
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ModuleID, &a.ArticleURL, &a.ArticleTitle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: list assignments: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateStudentResult saves a student's analysis for an assignment.
func (s *Store) CreateStudentResult(ctx context.Context, studentID string, assignmentID int64, analysis json.RawMessage) (*StudentResult, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO student_results (student_id, assignment_id, analysis_json) VALUES (?, ?, ?)`,
		studentID, assignmentID, string(analysis))
	if err != nil {
		return nil, fmt.Errorf("store: create result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create result: %w", err)
	}

	var r StudentResult
	var raw string
	err = s.db.QueryRowContext(ctx,
		`SELECT id, student_id, assignment_id, analysis_json, completed_at FROM student_results WHERE id = ?`, id).
		Scan(&r.ID, &r.StudentID, &r.AssignmentID, &raw, &r.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create result: %w", err)
	}
	r.Analysis = json.RawMessage(raw)
	return &r, nil
}

// ResultsForAssignment returns every student submission for one assignment,
// oldest first (the teacher view).
func (s *Store) ResultsForAssignment(ctx context.Context, assignmentID int64) ([]StudentResult, error) {
	return s.queryResults(ctx,
		`SELECT id, student_id, assignment_id, analysis_json, completed_at
		 FROM student_results WHERE assignment_id = ? ORDER BY completed_at`, assignmentID)
}

// ResultsForStudent returns one student's submissions, newest first.
func (s *Store) ResultsForStudent(ctx context.Context, studentID string) ([]StudentResult, error) {
	return s.queryResults(ctx,
		`SELECT id, student_id, assignment_id, analysis_json, completed_at
		 FROM student_results WHERE student_id = ? ORDER BY completed_at DESC`, studentID)
}

func (s *Store) queryResults(ctx context.Context, query string, arg any) ([]StudentResult, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("store: query results: %w", err)
	}
	defer rows.Close()

	results := []StudentResult{}
	for rows.Next() {
		var r StudentResult
		var raw string
		if err := rows.Scan(&r.ID, &r.StudentID, &r.AssignmentID, &raw, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("store: query results: %w", err)
		}
		r.Analysis = json.RawMessage(raw)
		results = append(results, r)
	}
	return results, rows.Err()
}
