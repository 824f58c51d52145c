package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of authorization roles. Stored documents from the
// earliest deployments carry the capitalized "Donor"; ParseRole folds those
// onto the canonical lowercase values so the access-control layer can match
// exhaustively.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes a stored role string onto the closed enum.
// Unknown values map to RoleDonor, the registration default.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleVolunteer:
		return RoleVolunteer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleDonor
	}
}

// ValidRole reports whether s names one of the three known roles.
func ValidRole(s string) bool {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// UserStatus is the account standing: active users may create donation
// requests, blocked users may not.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// ValidUserStatus reports whether s is one of the two known statuses.
func ValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case StatusActive, StatusBlocked:
		return true
	}
	return false
}

// User is a registered account, identified by email.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"` // bcrypt, never serialised
	Role         Role               `bson:"role" json:"role"`
	Status       UserStatus         `bson:"status" json:"status"`
	BloodGroup   string             `bson:"bloodGroup" json:"bloodGroup"`
	District     string             `bson:"district" json:"district"`
	Upazila      string             `bson:"upazila" json:"upazila"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Blocked reports whether the account may not create donation requests.
func (u User) Blocked() bool { return u.Status == StatusBlocked }
