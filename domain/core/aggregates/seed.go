package aggregates

import "venus-backend/domain/core/entities"

// Seed returns the default document used when neither the remote store nor
// the durable cache can provide one. Every call returns a fresh value.
func Seed() *AppState {
	return &AppState{
		Settings: entities.SiteSettings{
			HeroTitle:      "Unlocking Potential Through Dialogue",
			HeroSubtitle:   "Transformative Corporate Training with Mr. Roel Venus",
			HeroImage:      "https://picsum.photos/1920/1080",
			ContactEmail:   "info@venusdialogics.com",
			ContactPhone:   "+1 (555) 123-4567",
			ContactAddress: "123 Leadership Way, Metro City",
		},
		Topics: []entities.Topic{
			{
				ID:          "t1",
				Title:       "Strategic Leadership in the AI Era",
				Description: "Navigating the complexities of modern management with emotional intelligence and foresight.",
				ImageURL:    "https://picsum.photos/800/600?random=1",
			},
			{
				ID:          "t2",
				Title:       "Effective Communication Mastery",
				Description: "Breaking down barriers and building bridges in corporate environments.",
				ImageURL:    "https://picsum.photos/800/600?random=2",
			},
			{
				ID:          "t3",
				Title:       "Sales Dynamics & Negotiation",
				Description: "Advanced techniques for closing deals and building long-term client relationships.",
				ImageURL:    "https://picsum.photos/800/600?random=3",
			},
			{
				ID:          "t4",
				Title:       "Team Synergy Workshop",
				Description: "Interactive sessions designed to improve collaboration and morale.",
				ImageURL:    "https://picsum.photos/800/600?random=4",
			},
		},
		Stories: []entities.Story{
			{
				ID:        "s1",
				Author:    "Sarah Jenkins",
				Role:      "HR Director, TechCorp",
				Content:   "Mr. Venus transformed our management team. His approach to conflict resolution is unparalleled. We saw a 30% increase in employee retention within 6 months.",
				IsVisible: true,
				Comments: []entities.Comment{
					{
						ID:        "c1",
						Name:      "John Doe",
						Email:     "john@example.com",
						Text:      "This is inspiring! We need this at our firm.",
						Date:      "2023-10-15",
						IsVisible: true,
					},
				},
			},
			{
				ID:        "s2",
				Author:    "Michael Chang",
				Role:      "CEO, Future Ventures",
				Content:   "The 'Strategic Leadership' seminar was a game changer for our board. Highly recommended.",
				IsVisible: true,
				Comments:  []entities.Comment{},
			},
		},
		Bookings: []entities.Booking{},
	}
}
