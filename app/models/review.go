package models

import (
	"fmt"
	"time"
)

// MaxReviewImages caps how many images a review may carry at creation.
const MaxReviewImages = 5

// Validate checks if the review meets all validation requirements
func (r *Review) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.StayDate.IsZero() {
		return fmt.Errorf("%w: stay_date cannot be zero", ErrInvalid)
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (r *Review) BeforeCreate() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}
