package models

import "time"

// Campaign represents a fundraising effort owned by its creator.
type Campaign struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"type:varchar(100);not null"`
	Description  string     `json:"description" gorm:"type:text"`
	StartDate    time.Time  `json:"start_date" gorm:"not null;index"`
	EndDate      *time.Time `json:"end_date"`
	Goal         Money      `json:"goal" gorm:"not null"`
	RaisedAmount Money      `json:"raised_amount" gorm:"not null"`
	CreatorID    uint       `json:"creator_id" gorm:"not null;index"`
	Creator      *User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	IsDeleted    bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	ImageURL     *string    `json:"image_url"`
	Donations    []Donation `json:"donations,omitempty" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CampaignPage is one page of a campaign listing.
type CampaignPage struct {
	Items      []Campaign `json:"items"`
	TotalCount int64      `json:"total_count"`
	PageNumber int        `json:"page_number"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
