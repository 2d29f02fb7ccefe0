package main

import (
	"database/sql"
	"time"
)

// Repository defines the interface for database operations
type Repository interface {
	CreateTables() error
	FindVisitorByChatID(chatID int64) (*Visitor, error)
	SaveVisitor(v *Visitor) error
	FindPerformanceByID(id int) (*Performance, error)
	ListPerformances() ([]*Performance, error)
	SavePerformance(p *Performance) error
	FindTicketByID(id int) (*Ticket, error)
	SaveTicket(t *Ticket) error
	ListTicketsByVisitor(visitorID int) ([]*Ticket, error)
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateTables creates the tables for visitors, performances and tickets
func (r *SQLiteRepository) CreateTables() error {
	visitorTable := `CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id INTEGER UNIQUE,
		first_name TEXT DEFAULT '',
		last_name TEXT DEFAULT '',
		phone_number TEXT DEFAULT '',
		state TEXT NOT NULL
	);`

	performanceTable := `CREATE TABLE IF NOT EXISTS performances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		date TEXT,
		time TEXT
	);`

	ticketTable := `CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		visitor_id INTEGER,
		performance_id INTEGER,
		first_name TEXT,
		last_name TEXT,
		phone_number TEXT
	);`

	for _, table := range []string{visitorTable, performanceTable, ticketTable} {
		if _, err := r.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// FindVisitorByChatID returns the visitor bound to a chat, or nil if the
// chat was never persisted.
func (r *SQLiteRepository) FindVisitorByChatID(chatID int64) (*Visitor, error) {
	row := r.db.QueryRow("SELECT id, chat_id, first_name, last_name, phone_number, state FROM visitors WHERE chat_id = ?", chatID)
	var v Visitor
	var state string
	err := row.Scan(&v.ID, &v.ChatID, &v.FirstName, &v.LastName, &v.PhoneNumber, &state)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	v.State, err = ParseState(state)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SaveVisitor inserts a new visitor or updates an existing one.
// An insert assigns the visitor's ID.
func (r *SQLiteRepository) SaveVisitor(v *Visitor) error {
	if v.ID == 0 {
		stmt, err := r.db.Prepare("INSERT INTO visitors (chat_id, first_name, last_name, phone_number, state) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		res, err := stmt.Exec(v.ChatID, v.FirstName, v.LastName, v.PhoneNumber, string(v.State))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = int(id)
		return nil
	}

	stmt, err := r.db.Prepare("UPDATE visitors SET first_name = ?, last_name = ?, phone_number = ?, state = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.Exec(v.FirstName, v.LastName, v.PhoneNumber, string(v.State), v.ID)
	return err
}

// FindPerformanceByID returns the performance with the given id, or nil if
// the catalog has no such entry.
func (r *SQLiteRepository) FindPerformanceByID(id int) (*Performance, error) {
	row := r.db.QueryRow("SELECT id, name, date, time FROM performances WHERE id = ?", id)
	return scanPerformance(row)
}

// ListPerformances returns the whole catalog in insertion order.
func (r *SQLiteRepository) ListPerformances() ([]*Performance, error) {
	rows, err := r.db.Query("SELECT id, name, date, time FROM performances ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performances []*Performance
	for rows.Next() {
		var p Performance
		var dateStr string
		if err := rows.Scan(&p.ID, &p.Name, &dateStr, &p.Time); err != nil {
			return nil, err
		}
		if p.Date, err = time.ParseInLocation(dateWire, dateStr, time.UTC); err != nil {
			return nil, err
		}
		performances = append(performances, &p)
	}
	return performances, rows.Err()
}

// SavePerformance adds a new catalog entry and assigns its ID.
func (r *SQLiteRepository) SavePerformance(p *Performance) error {
	stmt, err := r.db.Prepare("INSERT INTO performances (name, date, time) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	res, err := stmt.Exec(p.Name, p.Date.Format(dateWire), p.Time)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

// FindTicketByID returns the ticket with the given id, or nil when absent.
func (r *SQLiteRepository) FindTicketByID(id int) (*Ticket, error) {
	row := r.db.QueryRow("SELECT id, visitor_id, performance_id, first_name, last_name, phone_number FROM tickets WHERE id = ?", id)
	var t Ticket
	err := row.Scan(&t.ID, &t.VisitorID, &t.PerformanceID, &t.FirstName, &t.LastName, &t.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// SaveTicket inserts a new ticket and assigns its ID.
func (r *SQLiteRepository) SaveTicket(t *Ticket) error {
	stmt, err := r.db.Prepare("INSERT INTO tickets (visitor_id, performance_id, first_name, last_name, phone_number) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	res, err := stmt.Exec(t.VisitorID, t.PerformanceID, t.FirstName, t.LastName, t.PhoneNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

// ListTicketsByVisitor returns all tickets bought by a visitor, oldest first.
func (r *SQLiteRepository) ListTicketsByVisitor(visitorID int) ([]*Ticket, error) {
	rows, err := r.db.Query("SELECT id, visitor_id, performance_id, first_name, last_name, phone_number FROM tickets WHERE visitor_id = ? ORDER BY id", visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.VisitorID, &t.PerformanceID, &t.FirstName, &t.LastName, &t.PhoneNumber); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}

func scanPerformance(row *sql.Row) (*Performance, error) {
	var p Performance
	var dateStr string
	err := row.Scan(&p.ID, &p.Name, &dateStr, &p.Time)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if p.Date, err = time.ParseInLocation(dateWire, dateStr, time.UTC); err != nil {
		return nil, err
	}
	return &p, nil
}
