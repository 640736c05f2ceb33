package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/wingsengineering/wingsweb/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionFilter narrows an archive listing. Zero values match all.
// Open, when set, keeps only open (true) or answered (false) submissions
// and is ignored if Status is given.
type SubmissionFilter struct {
	Kind   string
	Status string
	Open   *bool
	Q      string
	Page   int
	Limit  int
}

// SubmissionArchive keeps a copy of every form that reached the relay.
type SubmissionArchive struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSubmissionArchive(m *Mongo) *SubmissionArchive {
	return &SubmissionArchive{
		col: m.Collection(CollectionSubmissions),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (a *SubmissionArchive) Insert(ctx context.Context, s *models.Submission) error {
	now := a.now()
	if s.ID.IsZero() {
		s.ID = bson.NewObjectID()
	}
	if s.Status == "" {
		s.Status = models.SubmissionStatusNew
	}
	if s.Notes == nil {
		s.Notes = []models.SubmissionNote{}
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := a.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (a *SubmissionArchive) List(ctx context.Context, f SubmissionFilter) ([]models.Submission, int64, error) {
	filter := bson.M{}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.Status != "" {
		filter["status"] = f.Status
	} else if f.Open != nil {
		op := "$in"
		if !*f.Open {
			op = "$nin"
		}
		filter["status"] = bson.M{op: models.OpenSubmissionStatuses}
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		escaped := regexp.QuoteMeta(q)
		filter["$or"] = []bson.M{
			{"fullName": bson.M{"$regex": escaped, "$options": "i"}},
			{"email": bson.M{"$regex": escaped, "$options": "i"}},
			{"company": bson.M{"$regex": escaped, "$options": "i"}},
			{"subject": bson.M{"$regex": escaped, "$options": "i"}},
			{"reference": bson.M{"$regex": escaped, "$options": "i"}},
		}
	}

	skip := int64((f.Page - 1) * f.Limit)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(f.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := a.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Submission, 0)
	for cursor.Next(ctx) {
		var s models.Submission
		if err := cursor.Decode(&s); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	total, err := a.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (a *SubmissionArchive) Get(ctx context.Context, id bson.ObjectID) (models.Submission, error) {
	var s models.Submission
	err := a.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return s, ErrSubmissionNotFound
	}
	return s, err
}

// UpdateStatus sets the review status. Moving to QUOTED stamps quotedAt.
func (a *SubmissionArchive) UpdateStatus(ctx context.Context, id bson.ObjectID, status models.SubmissionStatus) error {
	now := a.now()
	set := bson.M{
		"status":    status,
		"updatedAt": now,
	}
	if status == models.SubmissionStatusQuoted {
		set["quotedAt"] = now
	}

	res, err := a.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// AddNote appends a note. The first note on a NEW submission moves it to
// IN_PROGRESS.
func (a *SubmissionArchive) AddNote(ctx context.Context, id bson.ObjectID, note models.SubmissionNote) error {
	now := a.now()
	res, err := a.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.SubmissionStatusNew},
		bson.M{
			"$push": bson.M{"notes": note},
			"$set": bson.M{
				"status":    models.SubmissionStatusInProgress,
				"updatedAt": now,
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = a.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
