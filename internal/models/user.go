package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleCoordinator = "coordinator"
	RoleViewer      = "viewer"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // Hide from JSON responses
	Role     string             `bson:"role" json:"role"`  // "coordinator", "viewer"
	TeamID   string             `bson:"teamId" json:"teamId"`
}

// Team is the key of the shared schedule the user works on. A coordinator
// leads their own team; viewers carry the ID of the coordinator who added
// them.
func (u *User) Team() string {
	if u.TeamID != "" {
		return u.TeamID
	}
	return u.ID.Hex()
}
