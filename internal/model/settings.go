package model

import (
	"time"

	"github.com/google/uuid"
)

// Default settings applied when the singleton row is lazily created.
const (
	DefaultAppName    = "Do Good Hub"
	DefaultAdminEmail = "admin@dogoodhub.org"
)

// ApplicationSettings is the singleton configuration record. The notification
// dispatcher reads it on every send so SMTP changes take effect without a
// restart.
type ApplicationSettings struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppName        string    `gorm:"type:text;not null;default:'Do Good Hub'" json:"app_name"`
	AppLogoURL     string    `gorm:"type:text" json:"app_logo_url"`
	AppDescription string    `gorm:"type:text" json:"app_description"`
	AdminEmail     string    `gorm:"type:text;not null" json:"admin_email"`
	SMTPHost       string    `gorm:"type:text" json:"smtp_host"`
	SMTPPort       int       `json:"smtp_port"`
	SMTPUsername   string    `gorm:"type:text" json:"smtp_username"`
	SMTPPassword   string    `gorm:"type:text" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
