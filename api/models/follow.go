package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is one directed edge in the follow graph. The relation lives in a
// single edge table; "followers" and "following" are the two query directions
// over it.
type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SaveFollow inserts the edge if absent. It reports whether a new edge was
// created; re-following is a no-op, not an error.
func (f *Follow) SaveFollow(db *gorm.DB) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteFollow removes the edge if present. Unfollowing twice is a no-op.
func (f *Follow) DeleteFollow(db *gorm.DB) (bool, error) {
	result := db.Where("follower_id = ? AND followed_id = ?", f.FollowerID, f.FollowedID).
		Delete(&Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (f *Follow) IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindFollowers returns the users following uid, most recent edge first.
func (f *Follow) FindFollowers(db *gorm.DB, uid uint) (*[]User, error) {
	var users []User
	err := db.Model(&User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", uid).
		Order("follows.created_at DESC, follows.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

// FindFollowing returns the users uid follows, most recent edge first.
func (f *Follow) FindFollowing(db *gorm.DB, uid uint) (*[]User, error) {
	var users []User
	err := db.Model(&User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", uid).
		Order("follows.created_at DESC, follows.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

// When a user is deleted, edges on both sides go with them.
func (f *Follow) DeleteUserFollows(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("follower_id = ? OR followed_id = ?", uid, uid).Delete(&Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
