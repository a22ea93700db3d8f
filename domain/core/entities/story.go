package entities

import "time"

// CommentDateLayout is the layout used for Comment.Date
const CommentDateLayout = "2006-01-02"

// Story is a testimonial shown on the public site.
// Hidden stories stay in the document and can be restored by an administrator.
type Story struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	IsVisible bool      `json:"isVisible"`
	Comments  []Comment `json:"comments"`
}

// Comment is a visitor reply attached to a story
type Comment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	IsVisible bool   `json:"isVisible"`
}

// NewStory creates a visible story without comments
func NewStory(id, author, role, content string) Story {
	return Story{
		ID:        id,
		Author:    author,
		Role:      role,
		Content:   content,
		IsVisible: true,
		Comments:  []Comment{},
	}
}

// NewComment creates a visible comment dated at the given instant
func NewComment(id, name, email, text string, at time.Time) Comment {
	return Comment{
		ID:        id,
		Name:      name,
		Email:     email,
		Text:      text,
		Date:      at.UTC().Format(CommentDateLayout),
		IsVisible: true,
	}
}

// FindComment returns the index of the comment with the given id, or -1
func (s Story) FindComment(commentID string) int {
	for i := range s.Comments {
		if s.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

// VisibleComments returns a new slice holding only the visible comments
func (s Story) VisibleComments() []Comment {
	visible := make([]Comment, 0, len(s.Comments))
	for _, c := range s.Comments {
		if c.IsVisible {
			visible = append(visible, c)
		}
	}
	return visible
}
