package models

import "time"

// Donation is a single, immutable contribution to a campaign.
type Donation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Amount     Money     `json:"amount" gorm:"not null"`
	DonatedAt  time.Time `json:"donated_at" gorm:"not null"`
	DonorID    uint      `json:"donor_id" gorm:"not null;index"`
	Donor      *User     `json:"donor,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:RESTRICT"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
}
