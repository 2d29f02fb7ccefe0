package main

import "testing"

func TestFindByChatIDDefaultsToEmpty(t *testing.T) {
	store := NewVisitorStore(&memRepo{})

	v, err := store.FindByChatID(42)
	if err != nil {
		t.Fatal(err)
	}
	if v.ChatID != 42 || v.State != StateEmpty || v.ID != 0 {
		t.Fatalf("got %+v, want transient default in EMPTY", v)
	}
}

// A lookup miss does not persist anything; the first write happens on the
// first transition.
func TestFindByChatIDDoesNotPersistDefault(t *testing.T) {
	repo := &memRepo{}
	store := NewVisitorStore(repo)

	if _, err := store.FindByChatID(42); err != nil {
		t.Fatal(err)
	}
	if len(repo.visitors) != 0 {
		t.Fatalf("lookup persisted %d visitors, want 0", len(repo.visitors))
	}
}

func TestFindByChatIDIsIdempotent(t *testing.T) {
	repo := &memRepo{}
	store := NewVisitorStore(repo)

	v, err := store.FindByChatID(42)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Transition(v, StateRegistrationStarted, ""); err != nil {
		t.Fatal(err)
	}

	first, err := store.FindByChatID(42)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.FindByChatID(42)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Fatalf("repeated lookups differ: %+v vs %+v", first, second)
	}
}

func TestTransitionUpdatesFieldByTargetState(t *testing.T) {
	repo := &memRepo{}
	store := NewVisitorStore(repo)

	v, _ := store.FindByChatID(1)
	if err := store.Transition(v, StatePhoneNumberEntered, "5551234567"); err != nil {
		t.Fatal(err)
	}
	if v.PhoneNumber != "5551234567" || v.State != StatePhoneNumberEntered {
		t.Fatalf("after phone transition: %+v", v)
	}
	if v.ID == 0 {
		t.Fatal("first transition did not persist the visitor")
	}

	if err := store.Transition(v, StateFirstNameEntered, "John"); err != nil {
		t.Fatal(err)
	}
	if v.FirstName != "John" {
		t.Fatalf("after first name transition: %+v", v)
	}

	if err := store.Transition(v, StateRegistered, "Doe"); err != nil {
		t.Fatal(err)
	}
	if v.LastName != "Doe" || !v.Registered() {
		t.Fatalf("after last name transition: %+v", v)
	}

	// The stored copy matches.
	stored, _ := store.FindByChatID(1)
	if stored.PhoneNumber != "5551234567" || stored.FirstName != "John" || stored.LastName != "Doe" {
		t.Fatalf("stored visitor %+v", stored)
	}
}

func TestTransitionWithoutValueKeepsFields(t *testing.T) {
	repo := &memRepo{}
	store := NewVisitorStore(repo)

	v, _ := store.FindByChatID(1)
	store.Transition(v, StatePhoneNumberEntered, "5551234567")
	store.Transition(v, StateFirstNameEntered, "John")
	store.Transition(v, StateRegistered, "Doe")

	if err := store.Transition(v, StateFirstNameChanging, ""); err != nil {
		t.Fatal(err)
	}
	if v.PhoneNumber != "5551234567" || v.FirstName != "John" || v.LastName != "Doe" {
		t.Fatalf("empty-value transition touched fields: %+v", v)
	}
	if v.State != StateFirstNameChanging {
		t.Fatalf("state=%s, want FIRST_NAME_CHANGING", v.State)
	}
}

func TestParseStateRejectsUnknown(t *testing.T) {
	if _, err := ParseState("DELETED"); err == nil {
		t.Fatal("ParseState accepted an unknown state")
	}
	for _, s := range []State{StateEmpty, StateRegistrationStarted, StatePhoneNumberEntered,
		StateFirstNameEntered, StateRegistered, StatePhoneNumberChanging,
		StateFirstNameChanging, StateLastNameChanging} {
		got, err := ParseState(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseState(%q)=%v, %v", s, got, err)
		}
	}
}
