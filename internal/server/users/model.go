package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record. OID is the storage-assigned key and never
// leaves the server; ID is the external primary key ("user_k7x9m2p4").
type User struct {
	OID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID           string             `bson:"id" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	BirthDate    string             `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Interests    string             `bson:"interests,omitempty" json:"interests,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	BannerImage  string             `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfilePatch carries the profile fields a user may change. Identifier,
// password and creation time are not updatable through this path; nil
// fields are left untouched.
type ProfilePatch struct {
	FullName     *string
	Bio          *string
	Location     *string
	BirthDate    *string
	Interests    *string
	ProfileImage *string
	BannerImage  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Bio == nil && p.Location == nil &&
		p.BirthDate == nil && p.Interests == nil &&
		p.ProfileImage == nil && p.BannerImage == nil
}
