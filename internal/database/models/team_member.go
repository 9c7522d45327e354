package models

// TeamMember is a staff bio shown on the public team page. Distinct from
// Profile: team members need not have accounts, and most profiles are
// never listed publicly.
type TeamMember struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	DisplayOrder int    `gorm:"default:0;index" json:"display_order"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
