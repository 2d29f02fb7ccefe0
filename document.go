package main

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// TicketRenderer turns a finalized ticket and its performance into a
// downloadable document.
type TicketRenderer interface {
	Render(t *Ticket, p *Performance) (*Document, error)
}

// PDFRenderer renders tickets as one-page PDF files with an embedded QR
// code carrying the ticket reference.
type PDFRenderer struct{}

// Render builds the PDF in memory.
func (PDFRenderer) Render(t *Ticket, p *Performance) (*Document, error) {
	qr, err := qrcode.Encode(fmt.Sprintf("circusbot:ticket:%d", t.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, fmt.Sprintf("Circus ticket #%d", t.ID))
	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Performance: " + p.Name,
		"Date: " + p.Date.Format(performanceDateFormat) + " " + p.Time,
		"",
		"Visitor",
		"First name: " + t.FirstName,
		"Last name: " + t.LastName,
		"Phone number: " + t.PhoneNumber,
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("ticket-qr", 150, 20, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("ticket_%d_%s.pdf", t.ID, p.Date.Format(dateWire))
	return &Document{Name: name, Data: buf.Bytes()}, nil
}
