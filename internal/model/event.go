package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Event is owned by an external system; this service only reads it to
// resolve attendee joins and the guest login eligibility rule.
type Event struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name"          json:"name"`
	Location  string        `bson:"location"      json:"location,omitempty"`
	Active    bool          `bson:"active"        json:"active"`
	StartDate time.Time     `bson:"start_date"    json:"startDate"`
	EndDate   time.Time     `bson:"end_date"      json:"endDate"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
