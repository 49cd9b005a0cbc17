package model

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// NewID returns a ULID string used as a primary key.
func NewID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Mentor represents a public figure whose video content backs a chat persona.
type Mentor struct {
	ID              string         `json:"id" gorm:"primaryKey;size:26"`
	Name            string         `json:"name" gorm:"size:200;not null"`
	Slug            string         `json:"slug" gorm:"size:200;not null;uniqueIndex:uk_mentor_slug"`
	PrimaryLanguage string         `json:"primary_language" gorm:"size:50;default:en"`
	Bio             string         `json:"bio" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	Videos []VideoContent `json:"-" gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (m *Mentor) TableName() string {
	return "mentors"
}

// BeforeCreate assigns a ULID primary key when none is set.
func (m *Mentor) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

// MentorList contains a list of mentors and pagination info.
type MentorList struct {
	TotalCount int64     `json:"totalCount"`
	Items      []*Mentor `json:"items"`
}
