package models

import "time"

// Follow represents a follower -> followee edge. At most one edge per
// ordered pair, enforced by the unique index; self-follow is rejected
// before it ever reaches the store.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
