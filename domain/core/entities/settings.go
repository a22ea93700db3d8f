package entities

// SiteSettings holds the editable site copy. It is replaced wholesale on update.
type SiteSettings struct {
	HeroTitle      string `json:"heroTitle"`
	HeroSubtitle   string `json:"heroSubtitle"`
	HeroImage      string `json:"heroImage"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	ContactAddress string `json:"contactAddress"`
}
