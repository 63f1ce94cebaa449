package model

import (
	"strings"
	"testing"
	"time"
)

func validIssue() *Issue {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &Issue{
		ID:        "bd-1",
		Title:     "Fix the widget",
		Status:    StatusOpen,
		Priority:  2,
		IssueType: TypeBug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestValidateIssue_Valid(t *testing.T) {
	if err := ValidateIssue(validIssue()); err != nil {
		t.Fatalf("ValidateIssue(valid) = %v, want nil", err)
	}
}

func TestValidateIssue_MissingTitle(t *testing.T) {
	i := validIssue()
	i.Title = "   "
	err := ValidateIssue(i)
	if err == nil {
		t.Fatal("ValidateIssue returned nil, want error")
	}
	if !strings.Contains(err.Error(), "title: is required") {
		t.Errorf("error = %q, want it to mention 'title: is required'", err)
	}
}

func TestValidateIssue_TitleTooLong(t *testing.T) {
	i := validIssue()
	i.Title = strings.Repeat("x", 501)
	if err := ValidateIssue(i); err == nil {
		t.Fatal("ValidateIssue returned nil, want error")
	}
}

func TestValidateIssue_PriorityOutOfRange(t *testing.T) {
	for _, p := range []int{-1, 5, 100} {
		i := validIssue()
		i.Priority = p
		err := ValidateIssue(i)
		if err == nil {
			t.Fatalf("ValidateIssue(priority=%d) = nil, want error", p)
		}
		if !strings.Contains(err.Error(), "priority") {
			t.Errorf("error = %q, want it to mention priority", err)
		}
	}
}

func TestValidateIssue_ClosedAtConsistency(t *testing.T) {
	closed := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

	i := validIssue()
	i.Status = StatusClosed
	if err := ValidateIssue(i); err == nil {
		t.Error("closed issue without closed_at: want error, got nil")
	}

	i = validIssue()
	i.Status = StatusClosed
	i.ClosedAt = &closed
	if err := ValidateIssue(i); err != nil {
		t.Errorf("closed issue with closed_at: got %v, want nil", err)
	}

	i = validIssue()
	i.ClosedAt = &closed
	if err := ValidateIssue(i); err == nil {
		t.Error("open issue with closed_at: want error, got nil")
	}
}

func TestValidateIssue_CollectsMultipleErrors(t *testing.T) {
	i := validIssue()
	i.Title = ""
	i.Priority = 9
	i.IssueType = ""
	err := ValidateIssue(i)
	if err == nil {
		t.Fatal("ValidateIssue returned nil, want error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("len(Errors) = %d, want 3", len(ve.Errors))
	}
}
