package main

// VisitorStore loads and persists conversational sessions.
type VisitorStore struct {
	repo Repository
}

// NewVisitorStore creates a VisitorStore over the given repository.
func NewVisitorStore(repo Repository) *VisitorStore {
	return &VisitorStore{repo: repo}
}

// FindByChatID returns the persisted visitor for a chat, or a transient
// default in StateEmpty. The default is not persisted; the first write
// happens on the first transition.
func (s *VisitorStore) FindByChatID(chatID int64) (*Visitor, error) {
	v, err := s.repo.FindVisitorByChatID(chatID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = &Visitor{ChatID: chatID, State: StateEmpty}
	}
	return v, nil
}

// Transition moves the visitor into a new state and persists it. A non-empty
// value updates the field keyed by the target state: the phone number when
// entering PHONE_NUMBER_ENTERED, the first name when entering
// FIRST_NAME_ENTERED, the last name when entering REGISTERED. An empty value
// leaves all fields untouched.
func (s *VisitorStore) Transition(v *Visitor, state State, value string) error {
	if value != "" {
		switch state {
		case StatePhoneNumberEntered:
			v.PhoneNumber = value
		case StateFirstNameEntered:
			v.FirstName = value
		case StateRegistered:
			v.LastName = value
		}
	}
	v.State = state
	return s.repo.SaveVisitor(v)
}
