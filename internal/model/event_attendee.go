package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EventAttendee links a user to an event. Approved is tri-state: nil means
// the registration is still pending review.
type EventAttendee struct {
	ID        bson.ObjectID `bson:"_id,omitempty"      json:"id"`
	UserID    bson.ObjectID `bson:"user_id"            json:"userId"`
	EventID   bson.ObjectID `bson:"event_id"           json:"eventId"`
	Approved  *bool         `bson:"approved,omitempty" json:"isApproved"`
	CreatedAt time.Time     `bson:"created_at"         json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at"         json:"updatedAt"`
}

// AttendeeDetail is the joined view of an attendee record together with the
// referenced user and event documents.
type AttendeeDetail struct {
	EventAttendee `bson:",inline"`

	User  *User  `bson:"user,omitempty"  json:"user,omitempty"`
	Event *Event `bson:"event,omitempty" json:"event,omitempty"`
}
