package models

// ClassOffering is a recurring course listed on the public site
// (language classes, calligraphy, dance).
type ClassOffering struct {
	Base
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"` // human-readable, e.g. "Tue/Thu 18:00-19:30"
	Locale      string `gorm:"default:'en'" json:"locale"`
	Capacity    int    `json:"capacity"`
	PriceCents  int64  `json:"price_cents"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

func (ClassOffering) TableName() string {
	return "classes"
}
