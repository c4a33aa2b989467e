package receipt

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"hotel_booking/internal/domain"
)

// QR encodes link as a PNG of size x size pixels.
func QR(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}

// PDF renders a one-page receipt for b. link is the absolute confirmation URL,
// printed and embedded as a QR code.
func PDF(b domain.Booking, room domain.RoomWithHotel, link string) ([]byte, error) {
	qrPNG, err := QR(link, 256)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Booking #%d", b.ID), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Booking confirmation #%d", b.ID)))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, tr(room.HotelName))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, tr(fmt.Sprintf("%s (%s), %s", room.Name, room.RoomType, room.HotelCity)))
	pdf.Ln(12)

	rows := [][2]string{
		{"Guest", b.GuestName},
		{"Email", b.GuestEmail},
		{"Check-in", b.CheckIn.Format(domain.DateLayout)},
		{"Check-out", b.CheckOut.Format(domain.DateLayout)},
		{"Nights", fmt.Sprintf("%d", b.Nights())},
		{"Guests", fmt.Sprintf("%d", b.Guests)},
		{"Nightly rate", b.NightlyRate().String()},
		{"Total", b.TotalCents.String()},
	}
	for _, r := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, tr(r[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, tr(r[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr(link))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
