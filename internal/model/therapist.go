package model

import "time"

type Therapist struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Slug            string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Credentials     string    `gorm:"size:100" json:"credentials"`
	Tagline         string    `gorm:"size:500" json:"tagline"`
	Bio             string    `gorm:"type:text" json:"bio"`
	PhotoURL        string    `gorm:"size:500" json:"photo_url"`
	YearsExperience int       `json:"years_experience"`
	Gender          string    `gorm:"size:20" json:"gender"` // male, female, non-binary, other
	LanguagesSpoken string    `gorm:"type:text" json:"languages_spoken"`
	LicenseState    string    `gorm:"size:100" json:"license_state"`
	LicenseNumber   string    `gorm:"size:100" json:"license_number"`
	LicenseExpiry   string    `gorm:"size:100" json:"license_expiry"`
	NPINumber       string    `gorm:"size:50" json:"npi_number"`
	Rating          int       `gorm:"default:0" json:"rating"` // average approved rating * 10
	ReviewCount     int       `gorm:"default:0" json:"review_count"`
	AffiliateURL    string    `gorm:"size:500" json:"affiliate_url"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Specialty struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TherapistSpecialty struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	TherapistID uint `gorm:"not null;index" json:"therapist_id"`
	SpecialtyID uint `gorm:"not null;index" json:"specialty_id"`
}
