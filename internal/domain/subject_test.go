package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSubject_RemainingHours(t *testing.T) {
	t.Parallel()

	s := Subject{
		Chapters: []Chapter{
			{EstimatedHours: 3, Completed: false},
			{EstimatedHours: 2, Completed: true},
			{EstimatedHours: 1.5, Completed: false},
		},
	}

	if got, want := s.RemainingHours(), 4.5; got != want {
		t.Fatalf("RemainingHours() = %v, want %v", got, want)
	}
}

func TestSubject_RemainingHours_AllComplete(t *testing.T) {
	t.Parallel()

	s := Subject{
		Chapters: []Chapter{
			{EstimatedHours: 3, Completed: true},
			{EstimatedHours: 2, Completed: true},
		},
	}

	if got := s.RemainingHours(); got != 0 {
		t.Fatalf("RemainingHours() = %v, want 0", got)
	}
}

func TestSubject_IncompleteChapters_PreservesOrder(t *testing.T) {
	t.Parallel()

	s := Subject{
		Chapters: []Chapter{
			{Name: "a", Position: 0, Completed: false},
			{Name: "b", Position: 1, Completed: true},
			{Name: "c", Position: 2, Completed: false},
		},
	}

	got := s.IncompleteChapters()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("IncompleteChapters() = %+v, want [a c]", got)
	}
}

func TestSubject_ChapterByID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s := Subject{Chapters: []Chapter{{ID: id, Name: "limits"}}}

	ch, ok := s.ChapterByID(id)
	if !ok || ch.Name != "limits" {
		t.Fatalf("ChapterByID(%s) = %+v, %v", id, ch, ok)
	}

	if _, ok := s.ChapterByID(uuid.New()); ok {
		t.Fatal("expected ok=false for unknown chapter id")
	}
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 14, 2, 30, 0, 0, loc) // 2026-03-13 21:30 UTC

	got := DateOnly(in)
	want := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}
