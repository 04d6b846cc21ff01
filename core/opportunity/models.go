package opportunity

import (
	"time"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/user"
)

// Opportunity is a procurement listing. IsPublic is the staff-controlled
// visibility flag; the publication window derived from PlannedPublish and
// PlannedDeadline is independent of it.
type Opportunity struct {
	ID              uint                  `gorm:"primaryKey" json:"id"`
	Title           string                `gorm:"not null" json:"title"`
	Description     string                `json:"description"`
	Department      string                `json:"department"`
	IsPublic        bool                  `gorm:"not null;default:false" json:"is_public"`
	PlannedPublish  time.Time             `json:"planned_publish"`
	PlannedDeadline time.Time             `gorm:"index" json:"planned_deadline"`
	ContactID       uint                  `json:"contact_id"`
	Contact         user.User             `gorm:"foreignKey:ContactID" json:"contact"`
	CreatedBy       uint                  `json:"created_by"`
	Document        string                `json:"document"`
	DocumentHref    string                `json:"document_href"`
	RequiredDocs    []RequiredBidDocument `gorm:"many2many:opportunity_documents" json:"required_documents"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (Opportunity) TableName() string { return "opportunity" }

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsPublishedAt reports whether t falls within the publication window:
// the PlannedPublish day through the PlannedDeadline day, inclusive.
func (o *Opportunity) IsPublishedAt(t time.Time) bool {
	if o.PlannedPublish.IsZero() {
		return false
	}
	today := day(t)
	return !today.Before(day(o.PlannedPublish)) && !today.After(day(o.PlannedDeadline))
}

func (o *Opportunity) IsPublished() bool {
	return o.IsPublishedAt(time.Now())
}

// RequiredBidDocument is a document type bidders may be required to submit.
type RequiredBidDocument struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	DisplayName string `gorm:"uniqueIndex;not null" json:"display_name"`
	Description string `json:"description"`
	FormHref    string `json:"form_href"`
}

func (RequiredBidDocument) TableName() string { return "document" }

// Choice is the (id, label) pair offered on the admin form.
func (d RequiredBidDocument) Choice() (uint, string) {
	return d.ID, d.DisplayName
}

// Input carries an admin create/edit submission. Document travels alongside,
// outside validation; the service routes it through the DocumentStore.
type Input struct {
	Title           string    `form:"title" validate:"required"`
	Description     string    `form:"description" validate:"required"`
	Department      string    `form:"department"`
	ContactEmail    string    `form:"contact_email" validate:"required,email"`
	IsPublic        bool      `form:"is_public"`
	PlannedPublish  time.Time `form:"planned_publish" validate:"required"`
	PlannedDeadline time.Time `form:"planned_deadline" validate:"required,gtefield=PlannedPublish"`
	DocumentsNeeded []uint    `form:"documents_needed" validate:"-"`

	Document *core.Document `form:"-" validate:"-"`
}

// NeedsDocument reports whether the submission had the required-document
// choice checked; the admin form uses it to re-render state.
func (in *Input) NeedsDocument(id uint) bool {
	for _, docID := range in.DocumentsNeeded {
		if docID == id {
			return true
		}
	}
	return false
}

func (in *Input) Validate() error {
	in.Title = core.CleanString(in.Title)
	in.Description = core.CleanString(in.Description)
	in.Department = core.CleanString(in.Department)
	in.ContactEmail = core.CleanString(in.ContactEmail, true /* lower */)
	return core.Validate.Struct(in)
}
