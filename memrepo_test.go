package main

import "fmt"

// memRepo is an in-memory Repository for handler tests. It stores copies,
// like a real database: mutating a value after saving it does not change
// what a later find returns.
type memRepo struct {
	visitors     []Visitor
	performances []Performance
	tickets      []Ticket

	failSave bool // when set, every write fails
}

func (m *memRepo) CreateTables() error { return nil }

func (m *memRepo) FindVisitorByChatID(chatID int64) (*Visitor, error) {
	for _, v := range m.visitors {
		if v.ChatID == chatID {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRepo) SaveVisitor(v *Visitor) error {
	if m.failSave {
		return fmt.Errorf("save failed")
	}
	if v.ID == 0 {
		v.ID = len(m.visitors) + 1
		m.visitors = append(m.visitors, *v)
		return nil
	}
	for i := range m.visitors {
		if m.visitors[i].ID == v.ID {
			m.visitors[i] = *v
			return nil
		}
	}
	return fmt.Errorf("visitor %d not found", v.ID)
}

func (m *memRepo) FindPerformanceByID(id int) (*Performance, error) {
	for _, p := range m.performances {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ListPerformances() ([]*Performance, error) {
	list := make([]*Performance, len(m.performances))
	for i := range m.performances {
		p := m.performances[i]
		list[i] = &p
	}
	return list, nil
}

func (m *memRepo) SavePerformance(p *Performance) error {
	if m.failSave {
		return fmt.Errorf("save failed")
	}
	p.ID = len(m.performances) + 1
	m.performances = append(m.performances, *p)
	return nil
}

func (m *memRepo) FindTicketByID(id int) (*Ticket, error) {
	for _, t := range m.tickets {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRepo) SaveTicket(t *Ticket) error {
	if m.failSave {
		return fmt.Errorf("save failed")
	}
	t.ID = len(m.tickets) + 1
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *memRepo) ListTicketsByVisitor(visitorID int) ([]*Ticket, error) {
	var list []*Ticket
	for i := range m.tickets {
		if m.tickets[i].VisitorID == visitorID {
			t := m.tickets[i]
			list = append(list, &t)
		}
	}
	return list, nil
}
