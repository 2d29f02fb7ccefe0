package main

import (
	"log"
	"strings"
	"time"
)

// TextEvent is one inbound free-text message.
type TextEvent struct {
	ChatID   int64
	Username string
	Text     string
}

// CallbackEvent is one inbound button press.
type CallbackEvent struct {
	ChatID    int64
	MessageID int
	Data      string
}

// Dispatcher routes inbound events to the handler matching the visitor's
// conversation state and produces outbound reply values. It never talks to
// the transport itself.
type Dispatcher struct {
	repo     Repository
	catalog  *Catalog
	visitors *VisitorStore
	renderer TicketRenderer
	commands []Command
	admins   []string
	now      func() time.Time
}

// NewDispatcher creates a Dispatcher over the given repository and renderer.
func NewDispatcher(repo Repository, renderer TicketRenderer, admins []string) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		catalog:  NewCatalog(repo),
		visitors: NewVisitorStore(repo),
		renderer: renderer,
		commands: supportedCommands,
		admins:   admins,
		now:      time.Now,
	}
}

// HandleText routes one inbound text message: recognized commands first,
// then the state-dependent input handler.
func (d *Dispatcher) HandleText(ev TextEvent) []Reply {
	v, err := d.visitors.FindByChatID(ev.ChatID)
	if err != nil {
		log.Printf("load visitor for chat %d: %v", ev.ChatID, err)
		return nil
	}

	if ev.Text == cmdAddPerformance || strings.HasPrefix(ev.Text, cmdAddPerformance+" ") {
		return d.requireAdmin(d.commandAddPerformance)(v, ev)
	}

	switch ev.Text {
	case cmdStart:
		return d.commandStart(v)
	case cmdMyData:
		return d.commandMyData(v)
	case cmdOrderTicket:
		return d.commandOrderTicket(v)
	case cmdMyTickets:
		return d.commandMyTickets(v)
	case cmdOperator:
		return d.commandOperator(v)
	default:
		return d.handleUserInput(v, ev.Text)
	}
}

func (d *Dispatcher) commandStart(v *Visitor) []Reply {
	return []Reply{{
		ChatID:   v.ChatID,
		Text:     welcomeText(v, d.commands),
		Keyboard: mainMenuKeyboard(),
	}}
}

func (d *Dispatcher) commandMyData(v *Visitor) []Reply {
	if v.State == StateEmpty {
		return []Reply{{ChatID: v.ChatID, Text: textUnregisteredUserData}}
	}
	return []Reply{{ChatID: v.ChatID, Text: v.String(), Keyboard: myDataKeyboard()}}
}

func (d *Dispatcher) commandOrderTicket(v *Visitor) []Reply {
	if v.Registered() {
		return d.showUpcomingPerformances(v)
	}
	if err := d.visitors.Transition(v, StateRegistrationStarted, ""); err != nil {
		log.Printf("start registration for chat %d: %v", v.ChatID, err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Text: textRegistrationStart}}
}

func (d *Dispatcher) commandMyTickets(v *Visitor) []Reply {
	tickets, err := d.repo.ListTicketsByVisitor(v.ID)
	if err != nil {
		log.Printf("list tickets for chat %d: %v", v.ChatID, err)
		return nil
	}
	if len(tickets) == 0 {
		return []Reply{{ChatID: v.ChatID, Text: textTicketsNotFound}}
	}

	var replies []Reply
	for _, t := range tickets {
		p := d.findPerformance(t.PerformanceID)
		replies = append(replies, Reply{
			ChatID:   v.ChatID,
			Text:     ticketDescriptionText(t, p),
			Keyboard: getTicketKeyboard(t.ID),
		})
	}
	return replies
}

func (d *Dispatcher) commandOperator(v *Visitor) []Reply {
	return []Reply{{ChatID: v.ChatID, Text: textOperatorUnavailable}}
}

// commandAddPerformance seeds the catalog. Arguments come semicolon-separated
// as Name;YYYY-MM-DD;HH:MM.
func (d *Dispatcher) commandAddPerformance(v *Visitor, ev TextEvent) []Reply {
	args := strings.TrimSpace(strings.TrimPrefix(ev.Text, cmdAddPerformance))
	parts := strings.Split(args, ";")
	if len(parts) != 3 {
		return []Reply{{ChatID: v.ChatID, Text: textAddPerformanceUsage}}
	}

	name := strings.TrimSpace(parts[0])
	date, err := time.ParseInLocation(dateWire, strings.TrimSpace(parts[1]), time.UTC)
	if err != nil || name == "" {
		return []Reply{{ChatID: v.ChatID, Text: textAddPerformanceUsage}}
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[2]))
	if err != nil {
		return []Reply{{ChatID: v.ChatID, Text: textAddPerformanceUsage}}
	}

	p := &Performance{Name: name, Date: date, Time: start.Format("15:04")}
	if err := d.repo.SavePerformance(p); err != nil {
		log.Printf("save performance: %v", err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Text: textPerformanceAdded}}
}

// handleUserInput consumes free text according to the visitor's state.
func (d *Dispatcher) handleUserInput(v *Visitor, text string) []Reply {
	switch v.State {
	case StateEmpty, StateRegistrationStarted:
		return d.phoneNumberInput(v, text)
	case StatePhoneNumberEntered:
		return d.firstNameInput(v, text)
	case StateFirstNameEntered:
		return d.lastNameInput(v, text)
	case StatePhoneNumberChanging, StateFirstNameChanging, StateLastNameChanging:
		return d.fieldChangeInput(v, text)
	default:
		return []Reply{{ChatID: v.ChatID, Text: textUnsupportedAction}}
	}
}

func (d *Dispatcher) phoneNumberInput(v *Visitor, phone string) []Reply {
	if !ValidatePhoneNumber(phone) {
		return []Reply{{ChatID: v.ChatID, Text: textPhoneNumberInvalid}}
	}
	if err := d.visitors.Transition(v, StatePhoneNumberEntered, phone); err != nil {
		log.Printf("save phone for chat %d: %v", v.ChatID, err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Text: phoneNumberEnteredText(phone)}}
}

func (d *Dispatcher) firstNameInput(v *Visitor, name string) []Reply {
	if !ValidateName(name) {
		return []Reply{{ChatID: v.ChatID, Text: textNameInvalid}}
	}
	if err := d.visitors.Transition(v, StateFirstNameEntered, name); err != nil {
		log.Printf("save first name for chat %d: %v", v.ChatID, err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Text: firstNameEnteredText(name)}}
}

// lastNameInput completes the registration and moves straight into catalog
// browsing, or appends the empty-catalog notice when nothing is upcoming.
func (d *Dispatcher) lastNameInput(v *Visitor, name string) []Reply {
	if !ValidateName(name) {
		return []Reply{{ChatID: v.ChatID, Text: textNameInvalid}}
	}
	if err := d.visitors.Transition(v, StateRegistered, name); err != nil {
		log.Printf("save last name for chat %d: %v", v.ChatID, err)
		return nil
	}
	replies := []Reply{{ChatID: v.ChatID, Text: lastNameEnteredText(name)}}
	return append(replies, d.showUpcomingPerformances(v)...)
}

// fieldChangeInput overwrites a single field and returns to REGISTERED.
func (d *Dispatcher) fieldChangeInput(v *Visitor, text string) []Reply {
	switch v.State {
	case StatePhoneNumberChanging:
		if !ValidatePhoneNumber(text) {
			return []Reply{{ChatID: v.ChatID, Text: textPhoneNumberInvalid}}
		}
		v.PhoneNumber = text
	case StateFirstNameChanging:
		if !ValidateName(text) {
			return []Reply{{ChatID: v.ChatID, Text: textNameInvalid}}
		}
		v.FirstName = text
	case StateLastNameChanging:
		if !ValidateName(text) {
			return []Reply{{ChatID: v.ChatID, Text: textNameInvalid}}
		}
		v.LastName = text
	}
	if err := d.visitors.Transition(v, StateRegistered, ""); err != nil {
		log.Printf("update data for chat %d: %v", v.ChatID, err)
		return nil
	}
	return d.commandMyData(v)
}

// showUpcomingPerformances renders the nearest future date with catalog
// entries, or the empty-catalog notice.
func (d *Dispatcher) showUpcomingPerformances(v *Visitor) []Reply {
	date, ok, err := d.catalog.UpcomingDate(dateOnly(d.now()))
	if err != nil {
		log.Printf("find upcoming date: %v", err)
		return nil
	}
	if !ok {
		return []Reply{{ChatID: v.ChatID, Text: textNoUpcoming}}
	}
	kb, err := d.performanceKeyboard(date)
	if err != nil {
		log.Printf("build performance keyboard: %v", err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Text: chosePerformanceText(date), Keyboard: kb}}
}

// performanceKeyboard lists the performances of one date, the navigation
// buttons for adjacent dates with entries, and the way back to the menu.
func (d *Dispatcher) performanceKeyboard(date time.Time) (Keyboard, error) {
	performances, err := d.catalog.PerformancesOn(date)
	if err != nil {
		return nil, err
	}

	var kb Keyboard
	var row []Button
	for _, p := range performances {
		label := "'" + p.Name + "' - " + p.Time
		row = append(row, button(label, encodeID(PayloadSelectPerformance, p.ID)))
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	var nav []Button
	if prev, ok, err := d.catalog.PreviousDate(date); err != nil {
		return nil, err
	} else if ok {
		nav = append(nav, button(buttonShowPreviousDate, encodeDate(PayloadShowDate, prev)))
	}
	if next, ok, err := d.catalog.NextDate(date); err != nil {
		return nil, err
	} else if ok {
		nav = append(nav, button(buttonShowNextDate, encodeDate(PayloadShowDate, next)))
	}
	if len(nav) > 0 {
		kb = append(kb, nav)
	}

	return append(kb, []Button{button(buttonMainMenu, encodeTag(PayloadMainMenu))}), nil
}

// findPerformance tolerates a missing catalog entry by substituting an empty
// placeholder, keeping the conversation alive.
func (d *Dispatcher) findPerformance(id int) *Performance {
	p, err := d.repo.FindPerformanceByID(id)
	if err != nil {
		log.Printf("find performance %d: %v", id, err)
	}
	if p == nil {
		return &Performance{}
	}
	return p
}
