package models

import "time"

// ProfileID is the primary key of the single profile row.
const ProfileID = 1

const (
	DefaultProfileName        = "Alexander Petrov"
	DefaultProfileTelegramURL = "https://t.me/saneuuu"
)

// Profile is the site owner's personal info. Exactly one exists.
type Profile struct {
	ID          int64      `json:"-" gorm:"primaryKey;autoIncrement:false"`
	PhotoURL    *string    `json:"photoUrl,omitempty" gorm:"column:photo_url;type:text"`
	Name        *string    `json:"name,omitempty" gorm:"type:varchar(255)"`
	About       *string    `json:"about,omitempty" gorm:"type:text"`
	TelegramURL *string    `json:"telegramUrl,omitempty" gorm:"column:telegram_url;type:text"`
	CVURL       *string    `json:"cvUrl,omitempty" gorm:"column:cv_url;type:text"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (Profile) TableName() string { return "profile" }

type ProfileInput struct {
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Name        *string `json:"name,omitempty"`
	About       *string `json:"about,omitempty"`
	TelegramURL *string `json:"telegramUrl,omitempty"`
	CVURL       *string `json:"cvUrl,omitempty"`
}

// DefaultProfile is the profile created when a store is initialized.
func DefaultProfile() Profile {
	name := DefaultProfileName
	telegram := DefaultProfileTelegramURL
	return Profile{ID: ProfileID, Name: &name, TelegramURL: &telegram}
}

// Apply replaces all fields of p with the input.
func (in ProfileInput) Apply(p *Profile) {
	p.PhotoURL = nonEmpty(in.PhotoURL)
	p.Name = nonEmpty(in.Name)
	p.About = nonEmpty(in.About)
	p.TelegramURL = nonEmpty(in.TelegramURL)
	p.CVURL = nonEmpty(in.CVURL)
}

func (p Profile) Clone() Profile {
	out := p
	out.PhotoURL = cloneString(p.PhotoURL)
	out.Name = cloneString(p.Name)
	out.About = cloneString(p.About)
	out.TelegramURL = cloneString(p.TelegramURL)
	out.CVURL = cloneString(p.CVURL)
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// empty strings are stored as absent
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
