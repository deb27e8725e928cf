package controllers

import (
	"net/http"
	"strconv"

	"driftwood/app/models"
	"driftwood/app/services"
)

// BookingController handles booking requests and contact messages.
type BookingController struct {
	bookingService *services.BookingService
}

// NewBookingController creates a new BookingController.
func NewBookingController(bookingService *services.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// CreateBooking forwards a booking request to staff and returns the
// assigned reference.
func (bc *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		booking = bookingFromForm(r)
	} else if !decodeBody(w, r, &booking) {
		return
	}
	if err := bc.bookingService.SubmitBooking(&booking); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]string{"reference": booking.Reference})
}

// CreateContact forwards a contact message to staff.
func (bc *BookingController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		msg = models.ContactMessage{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Subject: r.FormValue("subject"),
			Message: r.FormValue("message"),
		}
	} else if !decodeBody(w, r, &msg) {
		return
	}
	if err := bc.bookingService.SubmitContact(&msg); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}

func bookingFromForm(r *http.Request) models.Booking {
	booking := models.Booking{
		RoomType:        r.FormValue("room_type"),
		CheckIn:         r.FormValue("check_in"),
		CheckOut:        r.FormValue("check_out"),
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		SpecialRequests: r.FormValue("special_requests"),
	}
	if adults, err := strconv.Atoi(r.FormValue("adults")); err == nil {
		booking.Adults = adults
	}
	if children, err := strconv.Atoi(r.FormValue("children")); err == nil {
		booking.Children = children
	}
	return booking
}
