package models

import (
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PublishDate.IsZero() {
		return fmt.Errorf("%w: publish_date cannot be zero", ErrInvalid)
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.PublishDate.IsZero() {
		p.PublishDate = now
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.ReadTime == 0 {
		p.ReadTime = 5
	}
}

// Published reports whether the post is publicly visible.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// DateKey returns the publish-date portion of the post's natural key.
func (p *Post) DateKey() string {
	return p.PublishDate.Format("2006-01-02")
}

// PermalinkPath returns the public address of the post, derived from its
// natural key (publish date + slug).
func (p *Post) PermalinkPath() string {
	return fmt.Sprintf("/blog/%04d/%02d/%02d/%s",
		p.PublishDate.Year(), p.PublishDate.Month(), p.PublishDate.Day(), p.Slug)
}

// Liked reports whether the given submitter has liked the post.
func (p *Post) Liked(submitterID string) bool {
	for _, id := range p.Likes {
		if id == submitterID {
			return true
		}
	}
	return false
}

// AddLike records a like; duplicates are ignored.
func (p *Post) AddLike(submitterID string) {
	if submitterID == "" || p.Liked(submitterID) {
		return
	}
	p.Likes = append(p.Likes, submitterID)
}

// RemoveLike removes a like if present.
func (p *Post) RemoveLike(submitterID string) {
	for i, id := range p.Likes {
		if id == submitterID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return
		}
	}
}
