package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction kinds stored in the "type" column.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// User represents a user in the system. Created on first successful
// Google token verification; google_id is the identifier used by the API.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GoogleID string    `gorm:"uniqueIndex;not null" json:"google_id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Goal     string    `gorm:"type:text" json:"goal"` // "what are you saving for?"

	// Kept in the schema but always false in V1.5.
	IsPlusUser bool `gorm:"default:false;not null" json:"is_plus_user"`

	// Weekly freeze bookkeeping: one free protector per ISO week.
	LastWeeklyFreezeDate *time.Time `gorm:"type:date" json:"last_weekly_freeze_date"`
	WeeklyFreezeCount    int        `gorm:"default:0;not null" json:"weekly_freeze_count"`

	// Aury tone preference: sarcastic, subtle or analytical.
	AuryTone string `gorm:"type:varchar(20);default:'sarcastic';not null" json:"aury_tone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction represents one logged expense/income event. Immutable once
// created; amount/category/type stay empty when parsing found nothing.
type Transaction struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RawText string    `gorm:"type:text;not null" json:"raw_text"`

	Amount   *decimal.Decimal `gorm:"type:numeric(10,2);check:amount IS NULL OR amount > 0" json:"amount"`
	Category string           `json:"category"`
	Type     string           `gorm:"type:varchar(20)" json:"type"` // expense or income

	AuryResponse string `gorm:"type:text" json:"aury_response"`

	CreatedAt time.Time `json:"created_at"`
}

// Streak tracks consecutive-day activity for a user, one row per user.
type Streak struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"user_id"`
	CurrentStreak    int        `gorm:"default:0;not null;check:current_streak >= 0" json:"current_streak"`
	LongestStreak    int        `gorm:"default:0;not null;check:longest_streak >= 0" json:"longest_streak"`
	LastActivityDate *time.Time `gorm:"type:date" json:"last_activity_date"` // nil means never active

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceSubscription stores OneSignal player IDs for push notifications.
type DeviceSubscription struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OneSignalPlayerID string    `gorm:"uniqueIndex;not null" json:"onesignal_player_id"`
	DeviceType        string    `gorm:"type:varchar(50)" json:"device_type"` // web, ios, android
	UserAgent         string    `gorm:"type:text" json:"user_agent"`
	IsActive          bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
