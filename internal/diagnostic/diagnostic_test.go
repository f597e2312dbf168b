package diagnostic_test

import (
	"testing"

	"github.com/catenarytools/sagtension/internal/diagnostic"
)

func TestAppendAddsMessageWhenSliceProvided(t *testing.T) {
	var messages []diagnostic.Message
	diagnostic.Append(&messages, "TITLE", "description")
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %v", len(messages))
	}
	if messages[0].Title != "TITLE" || messages[0].Description != "description" {
		t.Errorf("expected the appended message to carry the given title/description, got %+v", messages[0])
	}
}

func TestAppendAccumulatesAcrossCalls(t *testing.T) {
	var messages []diagnostic.Message
	diagnostic.Append(&messages, "A", "first")
	diagnostic.Append(&messages, "B", "second")
	if len(messages) != 2 {
		t.Fatalf("expected two messages, got %v", len(messages))
	}
}

func TestAppendIsNoOpWithNilSlicePointer(t *testing.T) {
	diagnostic.Append(nil, "TITLE", "description")
}
