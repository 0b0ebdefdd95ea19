// Package models defines the domain value objects shared by all Miltrack
// components: the user profile, the service branch enumeration, and the
// military rank list.
package models

import "time"

// User is the identity and profile value object. ID and Email are assigned
// by the backend and never change for the lifetime of the account; every
// other field is replaced via profile update. A User is treated as an
// immutable snapshot: updates produce a new value, they never mutate an
// existing one in place.
type User struct {
	ID              string     `json:"id" bson:"_id"`
	Email           string     `json:"email" bson:"email"`
	DisplayName     *string    `json:"displayName,omitempty" bson:"display_name,omitempty"`
	Branch          *Branch    `json:"branch,omitempty" bson:"branch,omitempty"`
	Rank            *string    `json:"rank,omitempty" bson:"rank,omitempty"`
	Unit            *string    `json:"unit,omitempty" bson:"unit,omitempty"`
	ProfileImageURL *string    `json:"profileImageURL,omitempty" bson:"profile_image_url,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updated_at"`
}

// ProfileUpdate carries the mutable profile fields for an update. Nil fields
// are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Branch      *Branch
	Rank        *string
	Unit        *string
}

// Apply returns a copy of u with the non-nil fields of upd substituted and
// UpdatedAt refreshed. ID, Email and CreatedAt are carried over untouched.
func (upd ProfileUpdate) Apply(u User, now time.Time) User {
	out := u
	if upd.DisplayName != nil {
		out.DisplayName = upd.DisplayName
	}
	if upd.Branch != nil {
		out.Branch = upd.Branch
	}
	if upd.Rank != nil {
		out.Rank = upd.Rank
	}
	if upd.Unit != nil {
		out.Unit = upd.Unit
	}
	out.UpdatedAt = now
	return out
}

// StringPtr is a convenience for building optional fields.
func StringPtr(s string) *string { return &s }

// BranchPtr is a convenience for building optional branch fields.
func BranchPtr(b Branch) *Branch { return &b }
