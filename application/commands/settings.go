package commands

import (
	"venus-backend/domain/core/entities"
	"venus-backend/pkg/utils"
)

// UpdateSettingsCommand replaces the site settings as a whole.
// Every field is written, an empty one clears the stored value.
type UpdateSettingsCommand struct {
	HeroTitle      string `json:"hero_title" validate:"max=200"`
	HeroSubtitle   string `json:"hero_subtitle" validate:"max=500"`
	HeroImage      string `json:"hero_image" validate:"omitempty,url"`
	ContactEmail   string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   string `json:"contact_phone" validate:"max=40"`
	ContactAddress string `json:"contact_address" validate:"max=300"`
}

// Validate validates the command
func (c UpdateSettingsCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// Settings returns the settings value the command carries
func (c UpdateSettingsCommand) Settings() entities.SiteSettings {
	return entities.SiteSettings{
		HeroTitle:      c.HeroTitle,
		HeroSubtitle:   c.HeroSubtitle,
		HeroImage:      c.HeroImage,
		ContactEmail:   c.ContactEmail,
		ContactPhone:   c.ContactPhone,
		ContactAddress: c.ContactAddress,
	}
}
