package models

// Validate checks if the catalog service meets all validation requirements
func (s *Service) Validate() error {
	return validate.Struct(s)
}

// BeforeCreate sets up any necessary fields before creation
func (s *Service) BeforeCreate() {
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
}

// CategoryName returns the display name for the service's category.
func (s *Service) CategoryName() string {
	for _, c := range ServiceCategories {
		if c.Code == s.Category {
			return c.Name
		}
	}
	return string(s.Category)
}

// Validate checks if the service image meets all validation requirements
func (i *ServiceImage) Validate() error {
	return validate.Struct(i)
}

// Validate checks if the booking request meets all validation requirements
func (b *Booking) Validate() error {
	return validate.Struct(b)
}

// Validate checks if the contact message meets all validation requirements
func (m *ContactMessage) Validate() error {
	return validate.Struct(m)
}

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// BeforeCreate sets up any necessary fields before creation
func (c *Category) BeforeCreate() {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
}
