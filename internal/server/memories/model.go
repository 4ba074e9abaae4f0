package memories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory kinds.
const (
	TypeMilestone   = "milestone"
	TypeMemory      = "memory"
	TypeAchievement = "achievement"
)

// ValidType reports whether t is one of the known memory kinds.
func ValidType(t string) bool {
	return t == TypeMilestone || t == TypeMemory || t == TypeAchievement
}

// Memory is a timestamped journal record. OID is the storage-assigned key
// and never leaves the server; ID is the external primary key
// ("mem_a5b8c3d1"). Date is the caller-supplied event date, distinct from
// CreatedAt. UserID may dangle after its owner's account is deleted; there
// is no cascade.
type Memory struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"id" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"`
	Type        string             `bson:"type" json:"type"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPrivate   bool               `bson:"isPrivate" json:"isPrivate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateInput carries the caller-supplied fields of a new memory.
type CreateInput struct {
	Title       string
	Description string
	Date        string
	Type        string
	Image       string
	Tags        []string
	IsPrivate   bool
}

// Patch carries the updatable fields of a memory. Identifier, owner and
// creation time are not updatable; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Date        *string
	Type        *string
	Image       *string
	Tags        *[]string
	IsPrivate   *bool
}
