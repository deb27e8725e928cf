package services

import (
	"fmt"
	"strings"

	"driftwood/app/models"
	"driftwood/app/notify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingService handles booking requests and contact messages. Both are
// stateless: they are validated, forwarded by email, and never stored.
type BookingService struct {
	notifier     notify.Notifier
	staffEmail   string
	log          zerolog.Logger
	newReference func() string
}

// NewBookingService creates a new BookingService. Staff email receives
// the forwarded requests.
func NewBookingService(notifier notify.Notifier, staffEmail string, log zerolog.Logger) *BookingService {
	return &BookingService{
		notifier:   notifier,
		staffEmail: staffEmail,
		log:        log,
		newReference: func() string {
			return "BK-" + strings.ToUpper(uuid.New().String()[:8])
		},
	}
}

// SubmitBooking validates a booking request, assigns it a reference, and
// forwards it to staff with a confirmation to the guest. Delivery
// failures are logged, not surfaced: the guest already has the
// reference and staff follow up by hand.
func (s *BookingService) SubmitBooking(booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("invalid booking: %w", err)
	}
	booking.Reference = s.newReference()

	data := map[string]any{
		"Reference":       booking.Reference,
		"RoomType":        booking.RoomType,
		"CheckIn":         booking.CheckIn,
		"CheckOut":        booking.CheckOut,
		"Adults":          booking.Adults,
		"Children":        booking.Children,
		"FirstName":       booking.FirstName,
		"LastName":        booking.LastName,
		"Email":           booking.Email,
		"Phone":           booking.Phone,
		"SpecialRequests": booking.SpecialRequests,
	}
	s.send(notify.TemplateBookingReceived, s.staffEmail, data)
	s.send(notify.TemplateBookingReceived, booking.Email, data)
	return nil
}

// SubmitContact validates a contact message and forwards it to staff.
func (s *BookingService) SubmitContact(msg *models.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid contact message: %w", err)
	}
	s.send(notify.TemplateContactReceived, s.staffEmail, map[string]any{
		"Name":    msg.Name,
		"Email":   msg.Email,
		"Phone":   msg.Phone,
		"Subject": msg.Subject,
		"Message": msg.Message,
	})
	return nil
}

func (s *BookingService) send(templateKey, recipient string, data map[string]any) {
	if err := s.notifier.Send(templateKey, recipient, data); err != nil {
		s.log.Warn().Err(err).Str("template", templateKey).Msg("notification delivery failed")
	}
}
