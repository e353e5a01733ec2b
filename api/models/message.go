package models

import (
	"errors"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// MaxMessageLength bounds a message's text, enforced again at the persistence
// boundary in case a caller skips Validate.
const MaxMessageLength = 140

type Message struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	Author    User      `json:"author"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (m *Message) Prepare() {
	m.Text = html.EscapeString(strings.TrimSpace(m.Text))
	m.Author = User{}
}

func (m *Message) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if m.Text == "" {
		errorMessages["Required_text"] = "Required Text"
	}
	if utf8.RuneCountInString(m.Text) > MaxMessageLength {
		errorMessages["Too_long_text"] = "Text cannot exceed 140 characters"
	}
	if m.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	return errorMessages
}

func (m *Message) SaveMessage(db *gorm.DB) (*Message, error) {
	if m.Text == "" || utf8.RuneCountInString(m.Text) > MaxMessageLength {
		return nil, errors.New("text must be between 1 and 140 characters")
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	if err := db.Model(m).Association("Author").Find(&m.Author); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) FindMessageByID(db *gorm.DB, mid uint) (*Message, error) {
	var message Message
	err := db.Preload("Author").Where("id = ?", mid).Take(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (m *Message) FindUserMessages(db *gorm.DB, uid uint) (*[]Message, error) {
	var messages []Message
	err := db.Preload("Author").
		Where("author_id = ?", uid).
		Order("created_at desc, id desc").
		Limit(100).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return &messages, nil
}

// FeedForUser returns up to 100 of the newest messages authored by the user or
// anyone the user follows.
func (m *Message) FeedForUser(db *gorm.DB, uid uint) (*[]Message, error) {
	followed := db.Model(&Follow{}).Select("followed_id").Where("follower_id = ?", uid)

	var messages []Message
	err := db.Preload("Author").
		Where("author_id IN (?) OR author_id = ?", followed, uid).
		Order("created_at desc, id desc").
		Limit(100).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return &messages, nil
}

func (m *Message) DeleteMessage(db *gorm.DB, mid uint) (int64, error) {
	result := db.Where("id = ?", mid).Delete(&Message{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a user is deleted, their messages go with them.
func (m *Message) DeleteUserMessages(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("author_id = ?", uid).Delete(&Message{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
