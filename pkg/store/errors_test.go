package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStoreError_MessageShapes(t *testing.T) {
	withID := PersonNotFoundError("GetPerson", "p1")
	if !strings.Contains(withID.Error(), "p1") {
		t.Errorf("expected ID in message, got %q", withID.Error())
	}

	withContext := ConflictError("CreatePerson", "person", "email taken")
	if !strings.Contains(withContext.Error(), "email taken") {
		t.Errorf("expected context in message, got %q", withContext.Error())
	}
}

func TestStoreError_UnwrapsToSentinels(t *testing.T) {
	if !errors.Is(PersonNotFoundError("GetPerson", "p1"), ErrNotFound) {
		t.Error("not-found error should match ErrNotFound")
	}
	if !errors.Is(ConflictError("CreatePerson", "person", "dup"), ErrConflict) {
		t.Error("conflict error should match ErrConflict")
	}
	if !errors.Is(TimeoutError("FindPeople", "person", context.DeadlineExceeded), ErrTimeout) {
		t.Error("timeout error should match ErrTimeout")
	}
}

func TestStoreError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("materialize: %w", PersonNotFoundError("GetPerson", "p1"))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
	var se *StoreError
	if !errors.As(wrapped, &se) {
		t.Fatal("expected StoreError in chain")
	}
	if se.Op != "GetPerson" || se.ID != "p1" {
		t.Errorf("structured fields lost: %+v", se)
	}
}

func TestPredicates_RejectOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	if IsNotFound(plain) || IsConflict(plain) || IsTimeout(plain) {
		t.Error("predicates must not match unrelated errors")
	}
}
