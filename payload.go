package main

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// dateWire is the wire format for dates inside callback payloads.
const dateWire = "2006-01-02"

// PayloadKind identifies the semantic type of a callback payload.
type PayloadKind int

const (
	PayloadShowDate PayloadKind = iota
	PayloadSelectPerformance
	PayloadAcceptPerformance
	PayloadGetTicket
	PayloadMainMenu
	PayloadOrderTicket
	PayloadShowMyTickets
	PayloadShowMyData
	PayloadBackToPerformances
	PayloadChangeMyData
	PayloadChangeFirstName
	PayloadChangeLastName
	PayloadChangePhoneNumber
	PayloadOperator
)

// valueType tells how the suffix after a tag is parsed.
type valueType int

const (
	valueNone valueType = iota
	valueInt
	valueDate
)

// payloadTags is the ordered table of known tags. Decoding takes the first
// prefix match, so no tag may be a prefix of a later one; the codec test
// checks that pairwise.
var payloadTags = []struct {
	kind  PayloadKind
	tag   string
	value valueType
}{
	{PayloadShowDate, "CBD_SHOW_PERFORMANCES_", valueDate},
	{PayloadSelectPerformance, "CBD_SELECTED_PERFORMANCE_ID_", valueInt},
	{PayloadAcceptPerformance, "CBD_ACCEPTED_PERFORMANCE_ID_", valueInt},
	{PayloadGetTicket, "CBD_GET_TICKET_ID_", valueInt},
	{PayloadMainMenu, "CBD_MAIN_MENU", valueNone},
	{PayloadOrderTicket, "CBD_ORDER_TICKET", valueNone},
	{PayloadShowMyTickets, "CBD_SHOW_MY_TICKETS", valueNone},
	{PayloadShowMyData, "CBD_SHOW_MY_DATA", valueNone},
	{PayloadBackToPerformances, "CBD_BACK_TO_PERFORMANCES", valueNone},
	{PayloadChangeMyData, "CBD_CHANGE_MY_DATA", valueNone},
	{PayloadChangeFirstName, "CBD_CHANGE_FIRST_NAME", valueNone},
	{PayloadChangeLastName, "CBD_CHANGE_LAST_NAME", valueNone},
	{PayloadChangePhoneNumber, "CBD_CHANGE_PHONE_NUMBER", valueNone},
	{PayloadOperator, "CBD_CHAT_WITH_OPERATOR", valueNone},
}

// ErrMalformedPayload is returned when a callback payload matches no known
// tag or its suffix does not parse as the tag's expected type.
var ErrMalformedPayload = errors.New("malformed callback payload")

// Payload is a decoded callback payload: the kind plus at most one value.
type Payload struct {
	Kind PayloadKind
	ID   int       // set for int-valued kinds
	Date time.Time // set for PayloadShowDate
}

func encodeTag(kind PayloadKind) string {
	for _, t := range payloadTags {
		if t.kind == kind {
			return t.tag
		}
	}
	return ""
}

// encodeID builds a payload carrying an integer id.
func encodeID(kind PayloadKind, id int) string {
	return encodeTag(kind) + strconv.Itoa(id)
}

// encodeDate builds a payload carrying a calendar date.
func encodeDate(kind PayloadKind, date time.Time) string {
	return encodeTag(kind) + date.Format(dateWire)
}

// decodePayload parses a callback payload back into exactly one (kind, value)
// pair, or fails with ErrMalformedPayload.
func decodePayload(data string) (Payload, error) {
	for _, t := range payloadTags {
		if !strings.HasPrefix(data, t.tag) {
			continue
		}
		rest := data[len(t.tag):]
		switch t.value {
		case valueNone:
			if rest != "" {
				return Payload{}, ErrMalformedPayload
			}
			return Payload{Kind: t.kind}, nil
		case valueInt:
			id, err := strconv.Atoi(rest)
			if err != nil {
				return Payload{}, ErrMalformedPayload
			}
			return Payload{Kind: t.kind, ID: id}, nil
		case valueDate:
			date, err := time.ParseInLocation(dateWire, rest, time.UTC)
			if err != nil {
				return Payload{}, ErrMalformedPayload
			}
			return Payload{Kind: t.kind, Date: date}, nil
		}
	}
	return Payload{}, ErrMalformedPayload
}
