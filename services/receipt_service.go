package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/notifications"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; margin: 48px; color: #1a1a2e; }
h1 { color: #0f3460; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td { padding: 8px 4px; border-bottom: 1px solid #e0e0e0; }
td:first-child { color: #666; width: 40%; }
.footer { margin-top: 48px; font-size: 12px; color: #999; }
</style></head>
<body>
<h1>Payment Receipt</h1>
<table>
<tr><td>Booking reference</td><td>{{.BookingReference}}</td></tr>
<tr><td>Passengers</td><td>{{.PassengerCount}}</td></tr>
<tr><td>Payment status</td><td>{{.PaymentStatus}}</td></tr>
<tr><td>Date</td><td>{{.Date}}</td></tr>
</table>
<div class="footer">OggoTrip — thank you for travelling with us.</div>
</body>
</html>`

// GenerateBookingReceipt renders a payment receipt PDF and uploads it to
// Cloudinary, then mails the link. Best effort: a failed receipt never
// fails the payment flow, so everything is logged and swallowed.
func GenerateBookingReceipt(booking models.PassengerBooking) {
	html, err := renderReceiptHTML(booking)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for %s: %v", booking.BookingReference, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(html)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for %s: %v", booking.BookingReference, err)
		return
	}

	receiptURL, err := uploadReceiptToCloudinary(pdfBytes, booking.BookingReference)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for %s: %v", booking.BookingReference, err)
		return
	}

	log.Printf("✅ Receipt for booking %s uploaded: %s", booking.BookingReference, receiptURL)

	if booking.Email != "" && booking.Email != "N/A" {
		name := ""
		if len(booking.Passengers) > 0 {
			name = booking.Passengers[0].FullName()
		}
		notifications.SendEmail(name, booking.Email, "Your OggoTrip payment receipt",
			fmt.Sprintf("<h1>Payment received</h1><p>Your receipt for booking <strong>%s</strong> is ready: <a href=\"%s\">download receipt</a>.</p>", booking.BookingReference, receiptURL))
	}
}

func renderReceiptHTML(booking models.PassengerBooking) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		BookingReference string
		PassengerCount   int
		PaymentStatus    string
		Date             string
	}{
		BookingReference: booking.BookingReference,
		PassengerCount:   len(booking.Passengers),
		PaymentStatus:    booking.PaymentStatus,
		Date:             time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, bookingReference string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", bookingReference, uuid.New().String()),
		Folder:       "oggotrip_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
