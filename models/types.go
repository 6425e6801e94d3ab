package models

import "time"

// FanOut is the maximum number of leaders a follower has in one movement.
const FanOut = 4

// Movement interval constants
const (
	IntervalDaily      = "daily"
	IntervalTwiceDaily = "twice daily"
	IntervalWeekly     = "weekly"
)

// Request types

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Bio      string `json:"bio" validate:"max=1000"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=1000"`
}

type CreateMovementRequest struct {
	Name             string `json:"name" validate:"required,min=4,max=50"`
	Interval         string `json:"interval" validate:"required,oneof='daily' 'twice daily' 'weekly'"`
	ShortDescription string `json:"short_description" validate:"required,min=10,max=100"`
	Description      string `json:"description" validate:"max=1000"`
}

type SendSignalRequest struct {
	Message string `json:"message" validate:"max=140"`
}

type AnnouncementRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// Response types

type RegisterUserResponse struct {
	UserID    string `json:"user_id"`
	UserToken string `json:"user_token"`
}

type CreateMovementResponse struct {
	MovementID string `json:"movement_id"`
	AdminKey   string `json:"admin_key"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateAnnouncementResponse struct {
	AnnouncementID string `json:"announcement_id"`
}

// Domain types

type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Bio       string    `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Movement struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Interval         string    `json:"interval" db:"repeat_interval"`
	ShortDescription string    `json:"short_description" db:"short_description"`
	Description      string    `json:"description" db:"description"`
	CreatorID        string    `json:"-" db:"creator_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Association is the directed edge "follower is led by leader" within a
// movement. A nil LeaderID marks a placeholder: the follower is waiting
// for a leader.
type Association struct {
	ID          string     `db:"id"`
	MovementID  string     `db:"movement_id"`
	FollowerID  string     `db:"follower_id"`
	LeaderID    *string    `db:"leader_id"`
	CreatedAt   time.Time  `db:"created_at"`
	DestroyedAt *time.Time `db:"destroyed_at"`
}

// IsPlaceholder reports whether the association has no leader.
func (a Association) IsPlaceholder() bool {
	return a.LeaderID == nil
}

type Signal struct {
	ID         string    `json:"id" db:"id"`
	LeaderID   string    `json:"leader_id" db:"leader_id"`
	MovementID string    `json:"movement_id" db:"movement_id"`
	Message    *string   `json:"message,omitempty" db:"message"`
	SentAt     time.Time `json:"sent_at" db:"sent_at"`
}

type Announcement struct {
	ID         string     `json:"id" db:"id"`
	MovementID string     `json:"movement_id" db:"movement_id"`
	PosterID   string     `json:"poster" db:"poster_id"`
	Message    string     `json:"message" db:"message"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// View types

type SignalView struct {
	TimeStamp time.Time `json:"time_stamp"`
	Ago       string    `json:"ago"`
	Message   *string   `json:"message,omitempty"`
}

type LeaderView struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Bio        string      `json:"bio"`
	LastSignal *SignalView `json:"last_signal,omitempty"`
}

type LeaderDetail struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Bio           string       `json:"bio"`
	SignalHistory []SignalView `json:"signal_history"`
}

type MovementView struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Interval         string       `json:"interval"`
	ShortDescription string       `json:"short_description"`
	Description      string       `json:"description"`
	Subscribed       bool         `json:"subscribed"`
	LastSignalSent   *SignalView  `json:"last_signal_sent,omitempty"`
	Leaders          []LeaderView `json:"leaders,omitempty"`
}

type NetworkNode struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type NetworkEdge struct {
	Follower string `json:"source"`
	Leader   string `json:"target"`
}

type NetworkView struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

type SwapLeaderResponse struct {
	Message string      `json:"message,omitempty"`
	Leader  *LeaderView `json:"leader,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
