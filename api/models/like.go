package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Like associates a user with a message they favorited. Uniqueness is scoped
// to the (user, message) pair: each user can like a message at most once,
// different users can like the same message.
type Like struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_message" json:"message_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ToggleLike records a like for the (user, message) pair, or removes the
// existing one: liking a message twice leaves no like on it.
func (l *Like) ToggleLike(db *gorm.DB) (bool, error) {
	var existing Like
	err := db.Where("user_id = ? AND message_id = ?", l.UserID, l.MessageID).Take(&existing).Error
	if err == nil {
		if err := db.Delete(&Like{}, existing.ID).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := db.Create(l).Error; err != nil {
		// A concurrent request won the insert; treat it as the toggle-off path.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			if derr := db.Where("user_id = ? AND message_id = ?", l.UserID, l.MessageID).
				Delete(&Like{}).Error; derr != nil {
				return false, derr
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindUserLikes returns the messages the user has liked, newest message first.
func (l *Like) FindUserLikes(db *gorm.DB, uid uint) (*[]Message, error) {
	var messages []Message
	err := db.Preload("Author").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", uid).
		Order("messages.id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return &messages, nil
}

func (l *Like) CountMessageLikes(db *gorm.DB, mid uint) (int64, error) {
	var count int64
	err := db.Model(&Like{}).Where("message_id = ?", mid).Count(&count).Error
	return count, err
}

// When a user is deleted, we also delete the likes that the user gave.
func (l *Like) DeleteUserLikes(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a message is deleted, we also delete the likes that the message had.
func (l *Like) DeleteMessageLikes(db *gorm.DB, mid uint) (int64, error) {
	result := db.Where("message_id = ?", mid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteLikesOnUserMessages removes likes other users placed on messages
// authored by uid, ahead of deleting the messages themselves.
func (l *Like) DeleteLikesOnUserMessages(db *gorm.DB, uid uint) (int64, error) {
	authored := db.Model(&Message{}).Select("id").Where("author_id = ?", uid)
	result := db.Where("message_id IN (?)", authored).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
