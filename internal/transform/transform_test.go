package transform

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

func TestUserPayloadKey(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"identifier wins", `{"identifier":"user-1","_id":"mongo-1"}`, "user-1"},
		{"falls back to _id", `{"_id":"mongo-1"}`, "mongo-1"},
		{"both empty", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseUser(json.RawMessage(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_MalformedPayloadIsTransformError(t *testing.T) {
	bad := json.RawMessage(`{"identifier":`)

	parsers := map[string]func(json.RawMessage) error{
		"user":         func(d json.RawMessage) error { _, err := ParseUser(d); return err },
		"cohort":       func(d json.RawMessage) error { _, err := ParseCohort(d); return err },
		"enrollment":   func(d json.RawMessage) error { _, err := ParseEnrollment(d); return err },
		"attendance":   func(d json.RawMessage) error { _, err := ParseAttendance(d); return err },
		"assessment":   func(d json.RawMessage) error { _, err := ParseAssessment(d); return err },
		"project-sync": func(d json.RawMessage) error { _, err := ParseProjectSync(d); return err },
		"course":       func(d json.RawMessage) error { _, err := ParseCourse(d); return err },
	}

	for name, parse := range parsers {
		t.Run(name, func(t *testing.T) {
			err := parse(bad)
			var te *domain.TransformError
			if !errors.As(err, &te) {
				t.Fatalf("expected TransformError, got %v", err)
			}
		})
	}
}

func TestToUser_DefaultsStatus(t *testing.T) {
	p, _ := ParseUser(json.RawMessage(`{"identifier":"u1","name":"Asha"}`))
	u := ToUser(p)
	if u.Status != "active" {
		t.Errorf("status = %q, want active", u.Status)
	}

	p2, _ := ParseUser(json.RawMessage(`{"identifier":"u1","status":"suspended"}`))
	if got := ToUser(p2).Status; got != "suspended" {
		t.Errorf("explicit status overridden, got %q", got)
	}
}

func TestToEnrollment_DefaultsStatus(t *testing.T) {
	p, _ := ParseEnrollment(json.RawMessage(`{"userId":"u1","courseId":"c1"}`))
	if got := ToEnrollment(p).Status; got != "enrolled" {
		t.Errorf("status = %q, want enrolled", got)
	}
}

func TestToProject_FlattensTemplate(t *testing.T) {
	raw := json.RawMessage(`{
		"projectTemplate": {
			"projectTemplateId": "tmpl-7",
			"title": "Water Conservation",
			"category": "environment"
		}
	}`)
	p, err := ParseProject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	project := ToProject(p)
	if project.TemplateID != "tmpl-7" {
		t.Errorf("template id = %q", project.TemplateID)
	}
	if project.Name != "Water Conservation" {
		t.Errorf("name = %q", project.Name)
	}
	if project.Status != "started" {
		t.Errorf("status = %q, want started", project.Status)
	}
}

func TestProjectIDFromSolution(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"solution:abc123", "abc123"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ProjectIDFromSolution(tt.in); got != tt.want {
			t.Errorf("ProjectIDFromSolution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompletedTasks(t *testing.T) {
	tasks := []TaskSyncPayload{
		{TaskID: "t1", Status: "completed"},
		{TaskID: "t2", Status: "started"},
		{TaskID: "t3", Status: "completed"},
		{TaskID: "t4", Status: "inProgress"},
		{TaskID: "t5", Status: ""},
	}

	completed := CompletedTasks(tasks)
	if len(completed) != 2 {
		t.Fatalf("got %d completed tasks, want 2", len(completed))
	}
	if completed[0].TaskID != "t1" || completed[1].TaskID != "t3" {
		t.Errorf("wrong tasks selected: %+v", completed)
	}
}

func TestCompletedTasks_Empty(t *testing.T) {
	if got := CompletedTasks(nil); got != nil {
		t.Errorf("expected nil for no tasks, got %v", got)
	}
	if got := CompletedTasks([]TaskSyncPayload{{TaskID: "t1", Status: "started"}}); got != nil {
		t.Errorf("expected nil when nothing is completed, got %v", got)
	}
}

func TestTaskSyncPayloadKey(t *testing.T) {
	p := &TaskSyncPayload{ID: "mongo-t1", TaskID: "task-1"}
	if p.Key() != "task-1" {
		t.Errorf("taskId should win, got %q", p.Key())
	}
	p2 := &TaskSyncPayload{ID: "mongo-t1"}
	if p2.Key() != "mongo-t1" {
		t.Errorf("_id fallback failed, got %q", p2.Key())
	}
}
