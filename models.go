package main

import (
	"fmt"
	"time"
)

// State is the visitor's position in the conversation flow.
type State string

const (
	// StateEmpty is a never-seen chat: no data stored yet.
	StateEmpty State = "EMPTY"

	// Registration flow, entered from /order_ticket.
	StateRegistrationStarted State = "REGISTRATION_STARTED"
	StatePhoneNumberEntered  State = "PHONE_NUMBER_ENTERED"
	StateFirstNameEntered    State = "FIRST_NAME_ENTERED"

	// StateRegistered is the terminal state; edits loop back to it.
	StateRegistered State = "REGISTERED"

	// Edit sub-states, reachable only from REGISTERED.
	StatePhoneNumberChanging State = "PHONE_NUMBER_CHANGING"
	StateFirstNameChanging   State = "FIRST_NAME_CHANGING"
	StateLastNameChanging    State = "LAST_NAME_CHANGING"
)

// ParseState maps a stored string onto the closed state set, so an
// unrecognized value can never reach the routers.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateEmpty, StateRegistrationStarted, StatePhoneNumberEntered,
		StateFirstNameEntered, StateRegistered, StatePhoneNumberChanging,
		StateFirstNameChanging, StateLastNameChanging:
		return State(s), nil
	}
	return StateEmpty, fmt.Errorf("unknown visitor state %q", s)
}

// Visitor is a conversational session bound to a Telegram chat.
type Visitor struct {
	ID          int    // ID is assigned on first persistence.
	ChatID      int64  // ChatID is the Telegram chat id, unique, never changes.
	FirstName   string // FirstName is empty until registration reaches it.
	LastName    string // LastName is empty until registration completes.
	PhoneNumber string // PhoneNumber is empty until registration stores it.
	State       State  // State is never empty; defaults to StateEmpty.
}

// Registered reports whether the visitor finished the registration flow.
func (v *Visitor) Registered() bool {
	return v.State == StateRegistered
}

// FullName joins the stored first and last names.
func (v *Visitor) FullName() string {
	return v.FirstName + " " + v.LastName
}

func (v *Visitor) String() string {
	return "First name: " + v.FirstName +
		"\nLast name: " + v.LastName +
		"\nPhone number: " + v.PhoneNumber
}

// Performance is a scheduled event in the read-only catalog.
type Performance struct {
	ID   int       // ID is the unique identifier of the performance.
	Name string    // Name is the title of the performance.
	Date time.Time // Date is the calendar day, midnight UTC.
	Time string    // Time is the start time in HH:MM form.
}

func (p *Performance) String() string {
	return p.Name + "\n" + p.Date.Format(dateWire) + " " + p.Time
}

// Ticket is a confirmed booking. The visitor fields are a snapshot taken
// at acceptance time and stay unchanged if the visitor later edits their
// profile.
type Ticket struct {
	ID            int    // ID is assigned on creation.
	VisitorID     int    // VisitorID links back to the buying visitor.
	PerformanceID int    // PerformanceID names the booked performance.
	FirstName     string // FirstName is the visitor's first name at acceptance.
	LastName      string // LastName is the visitor's last name at acceptance.
	PhoneNumber   string // PhoneNumber is the visitor's phone at acceptance.
}
