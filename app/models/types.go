package models

import "time"

// PostStatus controls whether a post is publicly visible.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Category groups blog posts for navigation and filtering.
type Category struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,min=2,max=100"`
	Slug string `json:"slug" validate:"max=100"`
}

// Post represents a blog post. Posts are publicly addressed by their
// publish date plus slug, so the slug only has to be unique per day.
type Post struct {
	ID            int        `json:"id" validate:"gte=0"`
	Title         string     `json:"title" validate:"required,min=3,max=200"`
	Slug          string     `json:"slug" validate:"max=200"`
	AuthorName    string     `json:"authorName" validate:"required,max=100"`
	CategoryID    int        `json:"categoryId" validate:"gte=0"`
	FeaturedImage string     `json:"featuredImage"`
	Excerpt       string     `json:"excerpt" validate:"max=300"`
	Content       string     `json:"content" validate:"required,min=10"`
	PublishDate   time.Time  `json:"publishDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Status        PostStatus `json:"status" validate:"oneof=draft published"`
	IsFeatured    bool       `json:"isFeatured"`
	ReadTime      int        `json:"readTime" validate:"gte=0"`
	Likes         []string   `json:"likes"`
	Comments      []*Comment `json:"comments,omitempty" validate:"-"`
	Reviews       []*Review  `json:"reviews,omitempty" validate:"-"`
}

// Comment is a user submission against a post. Approved and Notified are
// owned by the moderation workflow: Approved only ever goes false to true,
// and Notified flips in the same update as the approval transition.
type Comment struct {
	ID             int       `json:"id" validate:"gte=0"`
	PostID         int       `json:"postId" validate:"required,gte=1"`
	SubmitterID    string    `json:"submitterId" validate:"required,max=100"`
	SubmitterEmail string    `json:"submitterEmail" validate:"omitempty,email"`
	Author         string    `json:"author" validate:"required,min=2,max=100"`
	Content        string    `json:"content" validate:"required,min=1,max=1000"`
	CreatedAt      time.Time `json:"createdAt"`
	Approved       bool      `json:"approved"`
	Notified       bool      `json:"notified"`
}

// Review is the richer submission kind: rated, titled, tied to a stay.
type Review struct {
	ID             int            `json:"id" validate:"gte=0"`
	PostID         int            `json:"postId" validate:"required,gte=1"`
	SubmitterID    string         `json:"submitterId" validate:"required,max=100"`
	SubmitterEmail string         `json:"submitterEmail" validate:"omitempty,email"`
	Author         string         `json:"author" validate:"required,min=2,max=100"`
	Title          string         `json:"title" validate:"required,min=2,max=200"`
	Content        string         `json:"content" validate:"required,min=1,max=3000"`
	Rating         int            `json:"rating" validate:"required,gte=1,lte=5"`
	StayDate       time.Time      `json:"stayDate"`
	BookingRef     string         `json:"bookingRef" validate:"max=50"`
	CreatedAt      time.Time      `json:"createdAt"`
	Approved       bool           `json:"approved"`
	Notified       bool           `json:"notified"`
	Images         []*ReviewImage `json:"images,omitempty" validate:"-"`
}

// ReviewImage records an image attached to a review. The binary itself
// lives in the blob store; Filename is its opaque key.
type ReviewImage struct {
	ID       int    `json:"id" validate:"gte=0"`
	ReviewID int    `json:"reviewId" validate:"gte=0"`
	Filename string `json:"filename" validate:"required"`
	Caption  string `json:"caption" validate:"max=200"`
}

// ServiceCategory is one of the fixed resort offering groups.
type ServiceCategory string

const (
	CategoryPool       ServiceCategory = "POOL"
	CategoryCabana     ServiceCategory = "CABANA"
	CategoryHut        ServiceCategory = "HUT"
	CategoryGuestHouse ServiceCategory = "GUEST"
	CategoryConference ServiceCategory = "CONF"
	CategoryExclusive  ServiceCategory = "EXCL"
)

// ServiceCategories maps category codes to display names, in catalog order.
var ServiceCategories = []struct {
	Code ServiceCategory
	Name string
}{
	{CategoryPool, "Pools"},
	{CategoryCabana, "Cabanas"},
	{CategoryHut, "Beach Huts"},
	{CategoryGuestHouse, "Guest House"},
	{CategoryConference, "Conference"},
	{CategoryExclusive, "Exclusive"},
}

// Service is a bookable resort offering shown in the catalog.
type Service struct {
	ID             int             `json:"id" validate:"gte=0"`
	Name           string          `json:"name" validate:"required,min=2,max=100"`
	Slug           string          `json:"slug" validate:"max=100"`
	Category       ServiceCategory `json:"category" validate:"required,oneof=POOL CABANA HUT GUEST CONF EXCL"`
	Description    string          `json:"description" validate:"required"`
	AdultPrice     float64         `json:"adultPrice" validate:"gte=0"`
	ChildPrice     float64         `json:"childPrice" validate:"gte=0"`
	SeniorPwdPrice float64         `json:"seniorPwdPrice" validate:"gte=0"`
	MainImage      string          `json:"mainImage"`
	IsFeatured     bool            `json:"isFeatured"`
	Order          int             `json:"order" validate:"gte=0"`
	Images         []*ServiceImage `json:"images,omitempty" validate:"-"`
}

// ServiceImage is a gallery image for a catalog service.
type ServiceImage struct {
	ID        int    `json:"id" validate:"gte=0"`
	ServiceID int    `json:"serviceId" validate:"gte=0"`
	Filename  string `json:"filename" validate:"required"`
	Caption   string `json:"caption" validate:"max=200"`
	Order     int    `json:"order" validate:"gte=0"`
}

// Booking is a stateless booking request; it is forwarded to staff and
// never persisted.
type Booking struct {
	RoomType        string `json:"roomType" validate:"required"`
	CheckIn         string `json:"checkIn" validate:"required"`
	CheckOut        string `json:"checkOut" validate:"required"`
	Adults          int    `json:"adults" validate:"gte=1"`
	Children        int    `json:"children" validate:"gte=0"`
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=30"`
	SpecialRequests string `json:"specialRequests" validate:"max=2000"`
	Reference       string `json:"reference"`
}

// ContactMessage is a stateless contact form payload.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
