package main

import (
	"fmt"
	"time"
)

// performanceDateFormat renders dates for humans.
const performanceDateFormat = "January 2, 2006"

// Button is one inline keyboard button: a label and a callback payload.
type Button struct {
	Label   string
	Payload string
}

// Keyboard is an ordered sequence of button rows.
type Keyboard [][]Button

// Document is a rendered file to deliver in chat.
type Document struct {
	Name string
	Data []byte
}

// Reply is one outbound message value. EditMessageID > 0 edits an existing
// message in place; a non-nil Document delivers a file.
type Reply struct {
	ChatID        int64
	EditMessageID int
	Text          string
	Keyboard      Keyboard
	Document      *Document
}

// Command is one advertised bot command with its menu description.
type Command struct {
	Text        string
	Description string
}

// Command text constants.
const (
	cmdStart          = "/start"
	cmdMyData         = "/my_data"
	cmdOrderTicket    = "/order_ticket"
	cmdMyTickets      = "/my_tickets"
	cmdOperator       = "/operator"
	cmdAddPerformance = "/add_performance"
)

// supportedCommands is the advertised command catalog. It is passed into the
// dispatcher at construction; /add_performance is admin-only and not listed.
var supportedCommands = []Command{
	{cmdStart, "Get a welcome message"},
	{cmdMyData, "Show my data"},
	{cmdOrderTicket, "Order new ticket"},
	{cmdMyTickets, "Show my tickets"},
	{cmdOperator, "Chat with operator"},
}

// Button labels.
const (
	buttonMainMenu           = "Back to main menu"
	buttonOrderTicket        = "Order new ticket"
	buttonShowMyTickets      = "Show my tickets"
	buttonShowMyData         = "Show my data"
	buttonChangeMyData       = "Change my data"
	buttonChangeFirstName    = "Change first name"
	buttonChangeLastName     = "Change last name"
	buttonChangePhoneNumber  = "Change phone number"
	buttonChatWithOperator   = "Chat with operator"
	buttonAccept             = "Accept"
	buttonGetTicket          = "Get ticket"
	buttonBackToPerformances = "Back to performances"
	buttonShowPreviousDate   = "< Show previous date"
	buttonShowNextDate       = "Show next date >"
)

// Reply texts.
const (
	textUnregisteredUserData = "We currently have no information about you.\nWe will save your data after ordering tickets."
	textNoUpcoming           = "Sorry, there are no upcoming performances.\nCome back later."
	textRegistrationStart    = "To get started you have to register.\nEnter please your phone number in XXXYYYYYYY format."
	textRegistrationEnd      = "You have successfully registered.\nNow you can proceed to purchasing tickets."
	textPhoneNumberInvalid   = "The number does not match the format.\nPlease try again."
	textNameInvalid          = "Entered name is not valid.\nPlease use only latin characters, no special characters."
	textPhoneNumberChanging  = "Please enter your new phone number in XXXYYYYYYY format."
	textFirstNameChanging    = "Please enter your new first name."
	textLastNameChanging     = "Please enter your new last name."
	textChangeMyData         = "What would you like to change?"
	textUnsupportedAction    = "Sorry, can't handle it."
	textTicketOrdered        = "Congrats, ticket was ordered."
	textTicketsNotFound      = "You currently have no tickets"
	textOperatorUnavailable  = "Operator chat is not available yet.\nPlease use the commands from the menu."
	textAdminOnly            = "This command is available to administrators only."
	textAddPerformanceUsage  = "Usage: /add_performance Name;YYYY-MM-DD;HH:MM"
	textPerformanceAdded     = "Performance was added."
)

// welcomeText greets the visitor by name when registered and lists the
// supported commands.
func welcomeText(v *Visitor, commands []Command) string {
	greeting := "Welcome"
	if v.Registered() {
		greeting += " " + v.FullName()
	}
	greeting += " to our chat-bot.\nHere you can order tickets for our performances.\n\nSupported commands:\n"
	for _, c := range commands {
		greeting += c.Text + " - " + c.Description + "\n"
	}
	return greeting
}

func phoneNumberEnteredText(phoneNumber string) string {
	return "Phone number " + phoneNumber + " was saved.\n\nNow please enter your first name."
}

func firstNameEnteredText(name string) string {
	return "First name " + name + " was saved.\n\nNow please enter your last name."
}

func lastNameEnteredText(name string) string {
	return "Last name " + name + " was saved.\n\n" + textRegistrationEnd
}

func chosePerformanceText(date time.Time) string {
	return "Please chose the performance.\nDate: " + date.Format(performanceDateFormat)
}

func performanceSelectedText(v *Visitor, p *Performance) string {
	return "Perfect choice! You choose " + p.Name +
		"\nPerformance starts " + p.Date.Format(performanceDateFormat) +
		" at " + p.Time +
		"\n\nVisitor data:\n" + v.FullName() +
		"\nPhone number: " + v.PhoneNumber +
		"\n\nPress 'Accept' to approve."
}

func ticketDescriptionText(t *Ticket, p *Performance) string {
	return fmt.Sprintf("#%d\n%s\n\nVisitor: %s %s", t.ID, p, t.FirstName, t.LastName)
}

func button(label, payload string) Button {
	return Button{Label: label, Payload: payload}
}

// mainMenuKeyboard is the fallback navigation keyboard.
func mainMenuKeyboard() Keyboard {
	return Keyboard{
		{
			button(buttonOrderTicket, encodeTag(PayloadOrderTicket)),
			button(buttonShowMyTickets, encodeTag(PayloadShowMyTickets)),
		},
		{
			button(buttonShowMyData, encodeTag(PayloadShowMyData)),
			button(buttonChatWithOperator, encodeTag(PayloadOperator)),
		},
	}
}

// myDataKeyboard accompanies the stored-data screen.
func myDataKeyboard() Keyboard {
	return Keyboard{{
		button(buttonChangeMyData, encodeTag(PayloadChangeMyData)),
		button(buttonMainMenu, encodeTag(PayloadMainMenu)),
	}}
}

// changeMyDataKeyboard offers the three editable fields.
func changeMyDataKeyboard() Keyboard {
	return Keyboard{
		{
			button(buttonChangeFirstName, encodeTag(PayloadChangeFirstName)),
			button(buttonChangeLastName, encodeTag(PayloadChangeLastName)),
		},
		{
			button(buttonChangePhoneNumber, encodeTag(PayloadChangePhoneNumber)),
			button(buttonMainMenu, encodeTag(PayloadMainMenu)),
		},
	}
}

// acceptationKeyboard accompanies the order confirmation screen.
func acceptationKeyboard(performanceID int) Keyboard {
	return Keyboard{
		{
			button(buttonAccept, encodeID(PayloadAcceptPerformance, performanceID)),
			button(buttonChangeMyData, encodeTag(PayloadChangeMyData)),
		},
		{
			button(buttonBackToPerformances, encodeTag(PayloadBackToPerformances)),
			button(buttonMainMenu, encodeTag(PayloadMainMenu)),
		},
	}
}

// ticketOrderedKeyboard accompanies the issuance confirmation.
func ticketOrderedKeyboard(ticketID int) Keyboard {
	return Keyboard{{
		button(buttonGetTicket, encodeID(PayloadGetTicket, ticketID)),
		button(buttonMainMenu, encodeTag(PayloadMainMenu)),
	}}
}

// getTicketKeyboard accompanies one entry of the ticket list.
func getTicketKeyboard(ticketID int) Keyboard {
	return Keyboard{{
		button(buttonGetTicket, encodeID(PayloadGetTicket, ticketID)),
	}}
}
