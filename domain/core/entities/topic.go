package entities

// Topic is a training programme offered on the public site
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// NewTopic creates a topic with the given identifier
func NewTopic(id, title, description, imageURL string) Topic {
	return Topic{
		ID:          id,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
	}
}
