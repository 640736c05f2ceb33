package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SubmissionKind string

const (
	SubmissionContact SubmissionKind = "contact"
	SubmissionQuote   SubmissionKind = "quote"
	SubmissionBooking SubmissionKind = "booking"
)

type SubmissionStatus string

const (
	SubmissionStatusNew        SubmissionStatus = "NEW"
	SubmissionStatusInProgress SubmissionStatus = "IN_PROGRESS"
	SubmissionStatusQuoted     SubmissionStatus = "QUOTED"
	SubmissionStatusRejected   SubmissionStatus = "REJECTED"
	SubmissionStatusClosed     SubmissionStatus = "CLOSED"
)

// ValidSubmissionStatus reports whether s is one of the known statuses.
func ValidSubmissionStatus(s string) bool {
	switch SubmissionStatus(s) {
	case SubmissionStatusNew, SubmissionStatusInProgress, SubmissionStatusQuoted,
		SubmissionStatusRejected, SubmissionStatusClosed:
		return true
	}
	return false
}

// OpenSubmissionStatuses still need an answer from the team.
var OpenSubmissionStatuses = []SubmissionStatus{SubmissionStatusNew, SubmissionStatusInProgress}

func (s SubmissionStatus) Open() bool {
	return s == SubmissionStatusNew || s == SubmissionStatusInProgress
}

type SubmissionItem struct {
	PartID    string   `bson:"partId"              json:"partId"`
	Quantity  int      `bson:"quantity"            json:"quantity"`
	PartName  string   `bson:"partName,omitempty"  json:"partName,omitempty"`
	Brand     string   `bson:"brand,omitempty"     json:"brand,omitempty"`
	UnitPrice *float64 `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	Currency  string   `bson:"currency,omitempty"  json:"currency,omitempty"`
}

// SubmissionNote is a back-office remark on a submission.
type SubmissionNote struct {
	ID          bson.ObjectID `bson:"_id"         json:"id"`
	AuthorID    bson.ObjectID `bson:"authorId"    json:"authorId"`
	AuthorEmail string        `bson:"authorEmail" json:"authorEmail"`
	Content     string        `bson:"content"     json:"content"`
	CreatedAt   time.Time     `bson:"createdAt"   json:"createdAt"`
}

// Submission is an archived copy of a form that was relayed successfully.
type Submission struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	Kind      SubmissionKind `bson:"kind"                json:"kind"`
	Reference string         `bson:"reference,omitempty" json:"reference,omitempty"`
	Subject   string         `bson:"subject"             json:"subject"`
	Language  string         `bson:"language"            json:"language"`

	FullName string `bson:"fullName"          json:"fullName"`
	Email    string `bson:"email"             json:"email"`
	Phone    string `bson:"phone,omitempty"   json:"phone,omitempty"`
	Company  string `bson:"company,omitempty" json:"company,omitempty"`

	Fields map[string]string `bson:"fields,omitempty" json:"fields,omitempty"`
	Items  []SubmissionItem  `bson:"items,omitempty"  json:"items,omitempty"`

	Status     SubmissionStatus `bson:"status"               json:"status"`
	ValidUntil *time.Time       `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
	QuotedAt   *time.Time       `bson:"quotedAt,omitempty"   json:"quotedAt,omitempty"`

	Notes []SubmissionNote `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
