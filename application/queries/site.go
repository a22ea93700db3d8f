package queries

import (
	"venus-backend/domain/core/entities"
)

// GetPublicSiteQuery asks for what an anonymous visitor may see
type GetPublicSiteQuery struct{}

// Validate validates the query
func (q GetPublicSiteQuery) Validate() error {
	return nil
}

// PublicSiteResult holds the settings, the topic catalogue and the visible
// stories. Hidden comments are removed from every story.
type PublicSiteResult struct {
	Settings entities.SiteSettings `json:"settings"`
	Topics   []entities.Topic      `json:"topics"`
	Stories  []PublicStory         `json:"stories"`
}

// PublicStory is a visible story with only its visible comments
type PublicStory struct {
	ID       string             `json:"id"`
	Author   string             `json:"author"`
	Role     string             `json:"role"`
	Content  string             `json:"content"`
	Comments []entities.Comment `json:"comments"`
}
