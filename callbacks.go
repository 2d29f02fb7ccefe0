package main

import (
	"log"
	"time"
)

// HandleCallback routes one button press by its decoded payload. An unknown
// or unparseable payload degrades to a fixed notice plus the main menu, so
// a stale button can never break the conversation.
func (d *Dispatcher) HandleCallback(ev CallbackEvent) []Reply {
	v, err := d.visitors.FindByChatID(ev.ChatID)
	if err != nil {
		log.Printf("load visitor for chat %d: %v", ev.ChatID, err)
		return nil
	}

	p, err := decodePayload(ev.Data)
	if err != nil {
		return []Reply{d.edit(ev, textUnsupportedAction, mainMenuKeyboard())}
	}

	switch p.Kind {
	case PayloadShowDate:
		return d.navigationPressed(ev, p.Date)
	case PayloadSelectPerformance:
		return d.performanceSelected(v, ev, p.ID)
	case PayloadAcceptPerformance:
		return d.performanceAccepted(v, ev, p.ID)
	case PayloadGetTicket:
		return d.ticketRequested(v, p.ID)
	case PayloadMainMenu:
		return []Reply{d.edit(ev, welcomeText(v, d.commands), mainMenuKeyboard())}
	case PayloadOrderTicket, PayloadBackToPerformances:
		return d.orderTicketPressed(v, ev)
	case PayloadShowMyTickets:
		return d.commandMyTickets(v)
	case PayloadShowMyData:
		if v.State == StateEmpty {
			return []Reply{d.edit(ev, textUnregisteredUserData, nil)}
		}
		return []Reply{d.edit(ev, v.String(), myDataKeyboard())}
	case PayloadChangeMyData:
		return []Reply{d.edit(ev, textChangeMyData, changeMyDataKeyboard())}
	case PayloadChangeFirstName:
		return d.fieldChangePressed(v, ev, StateFirstNameChanging, textFirstNameChanging)
	case PayloadChangeLastName:
		return d.fieldChangePressed(v, ev, StateLastNameChanging, textLastNameChanging)
	case PayloadChangePhoneNumber:
		return d.fieldChangePressed(v, ev, StatePhoneNumberChanging, textPhoneNumberChanging)
	case PayloadOperator:
		return []Reply{d.edit(ev, textOperatorUnavailable, mainMenuKeyboard())}
	default:
		return []Reply{d.edit(ev, textUnsupportedAction, mainMenuKeyboard())}
	}
}

// navigationPressed re-renders the performance list for the chosen date.
func (d *Dispatcher) navigationPressed(ev CallbackEvent, date time.Time) []Reply {
	kb, err := d.performanceKeyboard(date)
	if err != nil {
		log.Printf("build performance keyboard: %v", err)
		return nil
	}
	return []Reply{d.edit(ev, chosePerformanceText(date), kb)}
}

// performanceSelected shows the order confirmation screen. A missing catalog
// entry is tolerated with an empty placeholder.
func (d *Dispatcher) performanceSelected(v *Visitor, ev CallbackEvent, performanceID int) []Reply {
	p := d.findPerformance(performanceID)
	return []Reply{d.edit(ev, performanceSelectedText(v, p), acceptationKeyboard(performanceID))}
}

// performanceAccepted issues the ticket, snapshotting the visitor's identity
// fields as of this press. Repeated presses create distinct tickets.
func (d *Dispatcher) performanceAccepted(v *Visitor, ev CallbackEvent, performanceID int) []Reply {
	t := &Ticket{
		VisitorID:     v.ID,
		PerformanceID: performanceID,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		PhoneNumber:   v.PhoneNumber,
	}
	if err := d.repo.SaveTicket(t); err != nil {
		log.Printf("save ticket for chat %d: %v", v.ChatID, err)
		return nil
	}
	return []Reply{d.edit(ev, textTicketOrdered, ticketOrderedKeyboard(t.ID))}
}

// ticketRequested renders the ticket document and delivers it as a file.
func (d *Dispatcher) ticketRequested(v *Visitor, ticketID int) []Reply {
	t, err := d.repo.FindTicketByID(ticketID)
	if err != nil {
		log.Printf("find ticket %d: %v", ticketID, err)
		return nil
	}
	if t == nil {
		t = &Ticket{}
	}
	p := d.findPerformance(t.PerformanceID)

	doc, err := d.renderer.Render(t, p)
	if err != nil {
		log.Printf("render ticket %d: %v", ticketID, err)
		return nil
	}
	return []Reply{{ChatID: v.ChatID, Document: doc}}
}

// orderTicketPressed mirrors /order_ticket as an in-place edit.
func (d *Dispatcher) orderTicketPressed(v *Visitor, ev CallbackEvent) []Reply {
	if !v.Registered() {
		if err := d.visitors.Transition(v, StateRegistrationStarted, ""); err != nil {
			log.Printf("start registration for chat %d: %v", v.ChatID, err)
			return nil
		}
		return []Reply{d.edit(ev, textRegistrationStart, nil)}
	}

	date, ok, err := d.catalog.UpcomingDate(dateOnly(d.now()))
	if err != nil {
		log.Printf("find upcoming date: %v", err)
		return nil
	}
	if !ok {
		return []Reply{d.edit(ev, textNoUpcoming, nil)}
	}
	kb, err := d.performanceKeyboard(date)
	if err != nil {
		log.Printf("build performance keyboard: %v", err)
		return nil
	}
	return []Reply{d.edit(ev, chosePerformanceText(date), kb)}
}

// fieldChangePressed enters an edit sub-state. Edit states are reachable
// only from REGISTERED.
func (d *Dispatcher) fieldChangePressed(v *Visitor, ev CallbackEvent, state State, prompt string) []Reply {
	if !v.Registered() {
		return []Reply{d.edit(ev, textUnsupportedAction, mainMenuKeyboard())}
	}
	if err := d.visitors.Transition(v, state, ""); err != nil {
		log.Printf("enter %s for chat %d: %v", state, v.ChatID, err)
		return nil
	}
	return []Reply{d.edit(ev, prompt, nil)}
}

func (d *Dispatcher) edit(ev CallbackEvent, text string, kb Keyboard) Reply {
	return Reply{ChatID: ev.ChatID, EditMessageID: ev.MessageID, Text: text, Keyboard: kb}
}
