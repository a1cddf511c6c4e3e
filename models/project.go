package models

import "time"

// Project is one case study shown on the public site
type Project struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Product     string     `json:"product" gorm:"type:varchar(255);not null"`
	Platform    string     `json:"platform" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Year        string     `json:"year" gorm:"type:varchar(10);not null"`
	Challenge   string     `json:"challenge" gorm:"type:text;not null"`
	Solution    string     `json:"solution" gorm:"type:text;not null"`
	Results     StringList `json:"results" gorm:"type:jsonb"`
	Tags        StringList `json:"tags" gorm:"type:jsonb"`
	ImageURL    *string    `json:"imageUrl,omitempty" gorm:"column:image_url;type:text"`
	CaseImages  StringList `json:"caseImages" gorm:"column:case_images;type:jsonb"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

// ProjectInput carries the caller-supplied fields of a Project. Omitted
// list fields are stored as empty lists.
type ProjectInput struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Product     string     `json:"product"`
	Platform    string     `json:"platform"`
	Description string     `json:"description"`
	Year        string     `json:"year"`
	Challenge   string     `json:"challenge"`
	Solution    string     `json:"solution"`
	Results     StringList `json:"results"`
	Tags        StringList `json:"tags"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	CaseImages  StringList `json:"caseImages"`
}

// Apply overwrites every mutable field of p with the input. ID and
// CreatedAt are left untouched.
func (in ProjectInput) Apply(p *Project) {
	p.Slug = in.Slug
	p.Title = in.Title
	p.Product = in.Product
	p.Platform = in.Platform
	p.Description = in.Description
	p.Year = in.Year
	p.Challenge = in.Challenge
	p.Solution = in.Solution
	p.Results = in.Results.Clone()
	p.Tags = in.Tags.Clone()
	p.ImageURL = nonEmpty(in.ImageURL)
	p.CaseImages = in.CaseImages.Clone()
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	out.Results = p.Results.Clone()
	out.Tags = p.Tags.Clone()
	out.CaseImages = p.CaseImages.Clone()
	out.ImageURL = cloneString(p.ImageURL)
	return out
}

// Normalize replaces nil lists with empty ones, as read back from storage.
func (p *Project) Normalize() {
	if p.Results == nil {
		p.Results = StringList{}
	}
	if p.Tags == nil {
		p.Tags = StringList{}
	}
	if p.CaseImages == nil {
		p.CaseImages = StringList{}
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
