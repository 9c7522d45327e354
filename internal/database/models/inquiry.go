package models

// Consultation statuses
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a contact-form submission from the public site. All flat
// string fields are sanitized before the row is written.
type Inquiry struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"index;not null" json:"email"`
	Phone   string `json:"phone"`
	Message string `gorm:"type:text" json:"message"`
	Locale  string `gorm:"default:'en'" json:"locale"`
	Status  string `gorm:"default:'new';index" json:"status"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
