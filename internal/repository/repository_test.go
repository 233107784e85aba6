package repository

import (
	"context"
	"errors"
	"newel_classroom/internal/config"
	"newel_classroom/internal/model"
	"newel_classroom/pkg/database"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db        *gorm.DB
	users     *UserRepository
	prompts   *PromptRepository
	responses *ResponseRepository
	grades    *GradeRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:        db,
		users:     NewUserRepository(db),
		prompts:   NewPromptRepository(db),
		responses: NewResponseRepository(db),
		grades:    NewGradeRepository(db),
	}
}

func (f *fixture) user(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{Name: name, PasswordHash: "x", Role: role}
	if role == model.Student {
		year := 9
		u.YearLevel = &year
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (f *fixture) prompt(t *testing.T, teacher *model.User, title string) *model.Prompt {
	t.Helper()
	p := &model.Prompt{Title: title, Content: "write", Subject: model.DefaultSubject, TeacherID: teacher.ID}
	if err := f.prompts.Create(context.Background(), p); err != nil {
		t.Fatalf("create prompt: %v", err)
	}
	return p
}

func (f *fixture) response(t *testing.T, prompt *model.Prompt, student *model.User) *model.Response {
	t.Helper()
	r := &model.Response{Content: "answer", PromptID: prompt.ID, StudentID: student.ID}
	if err := f.responses.Create(context.Background(), r); err != nil {
		t.Fatalf("create response: %v", err)
	}
	return r
}

func (f *fixture) grade(t *testing.T, response *model.Response, score int) *model.Grade {
	t.Helper()
	g := &model.Grade{Score: score, ResponseID: response.ID}
	if err := f.grades.Create(context.Background(), g); err != nil {
		t.Fatalf("create grade: %v", err)
	}
	return g
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}

func TestFindByNameNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.FindByName(context.Background(), "nobody")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestUserNameIsUnique(t *testing.T) {
	f := newFixture(t)
	f.user(t, "alice", model.Teacher)

	err := f.users.Create(context.Background(), &model.User{Name: "alice", PasswordHash: "y", Role: model.Student})
	if err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
	if n := count(t, f.db, &model.User{}); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestGradeIsUniquePerResponse(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "t", model.Teacher)
	student := f.user(t, "s", model.Student)
	resp := f.response(t, f.prompt(t, teacher, "p"), student)
	f.grade(t, resp, 50)

	if err := f.grades.Create(context.Background(), &model.Grade{Score: 60, ResponseID: resp.ID}); err == nil {
		t.Fatalf("expected second grade for the same response to fail")
	}
	n, err := f.grades.CountByResponseID(context.Background(), resp.ID)
	if err != nil || n != 1 {
		t.Fatalf("expected exactly one grade, got %d (%v)", n, err)
	}
}

func TestGradeScoreCheckConstraint(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "t", model.Teacher)
	student := f.user(t, "s", model.Student)
	resp := f.response(t, f.prompt(t, teacher, "p"), student)

	if err := f.grades.Create(context.Background(), &model.Grade{Score: 101, ResponseID: resp.ID}); err == nil {
		t.Fatalf("expected out of range score to violate the check constraint")
	}
}

func TestListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, "t", model.Teacher)
	student := f.user(t, "s", model.Student)
	first := f.prompt(t, teacher, "first")
	second := f.prompt(t, teacher, "second")

	prompts, err := f.prompts.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("list prompts: %v", err)
	}
	if len(prompts) != 2 || prompts[0].ID != second.ID || prompts[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", prompts)
	}

	r1 := f.response(t, first, student)
	r2 := f.response(t, first, student)

	byPrompt, err := f.responses.ListByPrompt(ctx, first.ID)
	if err != nil {
		t.Fatalf("list by prompt: %v", err)
	}
	if len(byPrompt) != 2 || byPrompt[0].ID != r1.ID || byPrompt[1].ID != r2.ID {
		t.Fatalf("expected oldest first for grading")
	}
	if byPrompt[0].Student == nil || byPrompt[0].Student.Name != "s" {
		t.Fatalf("expected student preloaded")
	}

	byStudent, err := f.responses.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("list by student: %v", err)
	}
	if len(byStudent) != 2 || byStudent[0].ID != r2.ID {
		t.Fatalf("expected newest first for student")
	}
	if byStudent[0].Prompt == nil || byStudent[0].Prompt.Title != "first" {
		t.Fatalf("expected prompt preloaded")
	}
}

func TestDeletePromptCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, "t", model.Teacher)
	student := f.user(t, "s", model.Student)
	doomed := f.prompt(t, teacher, "doomed")
	kept := f.prompt(t, teacher, "kept")

	f.grade(t, f.response(t, doomed, student), 70)
	f.response(t, doomed, student)
	f.grade(t, f.response(t, kept, student), 90)

	if err := f.prompts.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("delete prompt: %v", err)
	}

	if n := count(t, f.db, &model.Prompt{}); n != 1 {
		t.Fatalf("expected 1 prompt left, got %d", n)
	}
	if n := count(t, f.db, &model.Response{}); n != 1 {
		t.Fatalf("expected 1 response left, got %d", n)
	}
	if n := count(t, f.db, &model.Grade{}); n != 1 {
		t.Fatalf("expected 1 grade left, got %d", n)
	}

	if err := f.prompts.Delete(ctx, doomed.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.user(t, "teacher", model.Teacher)
	other := f.user(t, "other", model.Teacher)
	student := f.user(t, "student", model.Student)
	bystander := f.user(t, "bystander", model.Student)

	own := f.prompt(t, teacher, "own")
	foreign := f.prompt(t, other, "foreign")

	f.grade(t, f.response(t, own, bystander), 80)
	f.grade(t, f.response(t, foreign, student), 60)
	f.grade(t, f.response(t, foreign, bystander), 75)

	// deleting the teacher removes their prompt and the responses to it
	if err := f.users.Delete(ctx, teacher.ID); err != nil {
		t.Fatalf("delete teacher: %v", err)
	}
	if n := count(t, f.db, &model.Prompt{}); n != 1 {
		t.Fatalf("expected 1 prompt left, got %d", n)
	}
	if n := count(t, f.db, &model.Response{}); n != 2 {
		t.Fatalf("expected 2 responses left, got %d", n)
	}
	if n := count(t, f.db, &model.Grade{}); n != 2 {
		t.Fatalf("expected 2 grades left, got %d", n)
	}

	// deleting a student removes their responses and grades
	if err := f.users.Delete(ctx, student.ID); err != nil {
		t.Fatalf("delete student: %v", err)
	}
	if n := count(t, f.db, &model.Response{}); n != 1 {
		t.Fatalf("expected 1 response left, got %d", n)
	}
	if n := count(t, f.db, &model.Grade{}); n != 1 {
		t.Fatalf("expected 1 grade left, got %d", n)
	}
	if n := count(t, f.db, &model.User{}); n != 2 {
		t.Fatalf("expected 2 users left, got %d", n)
	}
}

func TestStudentAverages(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "t", model.Teacher)
	s1 := f.user(t, "s1", model.Student)
	s2 := f.user(t, "s2", model.Student)
	idle := f.user(t, "idle", model.Student)
	p := f.prompt(t, teacher, "p")

	f.grade(t, f.response(t, p, s1), 80)
	f.grade(t, f.response(t, p, s1), 90)
	f.grade(t, f.response(t, p, s2), 100)
	f.response(t, p, idle) // ungraded

	rows, err := NewLeaderboardRepository(f.db).StudentAverages(context.Background())
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].StudentID != s2.ID || rows[0].AverageScore != 100 || rows[0].GradedCount != 1 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].StudentID != s1.ID || rows[1].AverageScore != 85 || rows[1].GradedCount != 2 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	if rows[1].YearLevel == nil || *rows[1].YearLevel != 9 {
		t.Fatalf("expected year level 9, got %v", rows[1].YearLevel)
	}
}
