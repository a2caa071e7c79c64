package persistence

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/pagination"
	"github.com/khoahotran/profile-service/pkg/schema"
	"github.com/khoahotran/profile-service/pkg/tracing"
)

const ProfilesCollection = "profiles"

var withoutTimestamps = bson.D{{Key: "createdAt", Value: 0}, {Key: "updatedAt", Value: 0}}

type mongoProfileRepo struct {
	coll   *mongo.Collection
	logger logger.Logger
	tracer trace.Tracer
}

func NewMongoProfileRepo(db *mongo.Database, logger logger.Logger) profile.Repository {
	return &mongoProfileRepo{
		coll:   db.Collection(ProfilesCollection),
		logger: logger,
		tracer: otel.Tracer(tracing.TracerName),
	}
}

func (r *mongoProfileRepo) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "profileRepo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "mongodb"), attribute.String("db.collection", ProfilesCollection)))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, apperror.NewNotFound("Profile not found", id)
	}
	return oid, nil
}

func (r *mongoProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	ctx, span := r.start(ctx, "Create")
	defer span.End()

	now := time.Now().UTC()
	p.ID = bson.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		p.ID = bson.ObjectID{}
		return fail(span, r.writeError("failed to insert profile", err))
	}
	return nil
}

func (r *mongoProfileRepo) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	ctx, span := r.start(ctx, "FindByID")
	defer span.End()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var p profile.Profile
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutTimestamps)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("Profile not found", id)
		}
		return nil, fail(span, apperror.NewInternal("failed to find profile", err))
	}
	return &p, nil
}

func (r *mongoProfileRepo) FindByEmail(ctx context.Context, email string, excludeID *string) (*profile.Profile, error) {
	ctx, span := r.start(ctx, "FindByEmail")
	defer span.End()

	filter := bson.M{"email": email}
	if excludeID != nil {
		if oid, err := bson.ObjectIDFromHex(*excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	var p profile.Profile
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(withoutTimestamps)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("Profile not found", email)
		}
		return nil, fail(span, apperror.NewInternal("failed to find profile by email", err))
	}
	return &p, nil
}

// UpdateByID reads the stored profile, merges fields, re-validates the merged
// values and writes back only the submitted fields.
func (r *mongoProfileRepo) UpdateByID(ctx context.Context, id string, fields schema.Document) (*profile.Profile, error) {
	ctx, span := r.start(ctx, "UpdateByID")
	defer span.End()

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := current.Apply(fields); err != nil {
		if msgs := schema.ErrorMessages(err); len(schema.Violations(err)) > 0 {
			return nil, apperror.NewValidation("Validation failed", msgs)
		}
		return nil, fail(span, apperror.NewInternal("failed to merge profile", err))
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	values := persisted(current)
	for _, key := range profile.ProfileSchema.Present(fields) {
		set[key] = values[key]
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutTimestamps)

	var updated profile.Profile
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": current.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("Profile not found", id)
		}
		return nil, fail(span, r.writeError("failed to update profile", err))
	}
	return &updated, nil
}

// AppendProject pushes entry onto the stored projects in a single update, so
// concurrent writes to other fields are never overwritten.
func (r *mongoProfileRepo) AppendProject(ctx context.Context, id string, entry profile.Project) error {
	ctx, span := r.start(ctx, "AppendProject")
	defer span.End()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"projects": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fail(span, r.writeError("failed to append project", err))
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("Profile not found", id)
	}
	return nil
}

func (r *mongoProfileRepo) FindProjects(ctx context.Context, id string) ([]profile.Project, error) {
	var doc struct {
		Projects []profile.Project `bson:"projects"`
	}
	if err := r.findProjected(ctx, "FindProjects", id, "projects", &doc); err != nil {
		return nil, err
	}
	if doc.Projects == nil {
		return []profile.Project{}, nil
	}
	return doc.Projects, nil
}

func (r *mongoProfileRepo) FindSkills(ctx context.Context, id string) ([]string, error) {
	var doc struct {
		Skills []string `bson:"skills"`
	}
	if err := r.findProjected(ctx, "FindSkills", id, "skills", &doc); err != nil {
		return nil, err
	}
	if doc.Skills == nil {
		return []string{}, nil
	}
	return doc.Skills, nil
}

func (r *mongoProfileRepo) findProjected(ctx context.Context, op, id, field string, out any) error {
	ctx, span := r.start(ctx, op)
	defer span.End()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: field, Value: 1}})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NewNotFound("Profile not found", id)
		}
		return fail(span, apperror.NewInternal("failed to read profile "+field, err))
	}
	return nil
}

func skillsFilter(skills []string) bson.M {
	return bson.M{"skills": bson.M{"$in": skills}}
}

func (r *mongoProfileRepo) FindBySkillsAny(ctx context.Context, skills []string, page, limit int) ([]*profile.Profile, error) {
	ctx, span := r.start(ctx, "FindBySkillsAny")
	defer span.End()
	span.SetAttributes(attribute.StringSlice("profile.skills", skills), attribute.Int("page", page))

	opts := options.Find().
		SetProjection(withoutTimestamps).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(pagination.Offset(page, limit))).
		SetLimit(int64(limit))

	return r.find(ctx, span, skillsFilter(skills), opts)
}

func (r *mongoProfileRepo) CountBySkillsAny(ctx context.Context, skills []string) (int64, error) {
	ctx, span := r.start(ctx, "CountBySkillsAny")
	defer span.End()

	n, err := r.coll.CountDocuments(ctx, skillsFilter(skills))
	if err != nil {
		return 0, fail(span, apperror.NewInternal("failed to count profiles", err))
	}
	return n, nil
}

func (r *mongoProfileRepo) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	ctx, span := r.start(ctx, "ListAll")
	defer span.End()

	return r.find(ctx, span, bson.M{}, options.Find().SetProjection(withoutTimestamps))
}

func (r *mongoProfileRepo) find(ctx context.Context, span trace.Span, filter bson.M, opts *options.FindOptionsBuilder) ([]*profile.Profile, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fail(span, apperror.NewInternal("failed to query profiles", err))
	}
	defer cursor.Close(ctx)

	profiles := []*profile.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fail(span, apperror.NewInternal("failed to decode profiles", err))
	}
	return profiles, nil
}

func (r *mongoProfileRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "skills", Value: 1}},
			Options: options.Index().SetName("skills_1"),
		},
	}
	names, err := r.coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return apperror.NewInternal("failed to create profile indexes", err)
	}
	r.logger.Info("Profile indexes ensured", zap.Strings("indexes", names))
	return nil
}

// persisted lists the client-owned fields of p as stored.
func persisted(p *profile.Profile) bson.M {
	return bson.M{
		"name":      p.Name,
		"email":     p.Email,
		"education": p.Education,
		"skills":    p.Skills,
		"projects":  p.Projects,
		"work":      p.Work,
		"links":     p.Links,
	}
}

func (r *mongoProfileRepo) writeError(details string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		fields := duplicateFields(err)
		r.logger.Warn("Duplicate key rejected by store", zap.Strings("fields", fields))
		return apperror.NewDuplicateKey(fields, err)
	}
	return apperror.NewInternal(details, err)
}

var (
	dupKeyPattern = regexp.MustCompile(`dup key: \{ ?"?(\w+)"?\s*:`)
	dupIdxPattern = regexp.MustCompile(`index: (\w+?)_-?1\b`)
)

// duplicateFields names the keys of a duplicate key error, parsed from the
// server message.
func duplicateFields(err error) []string {
	msg := err.Error()
	if m := dupKeyPattern.FindStringSubmatch(msg); m != nil {
		return []string{m[1]}
	}
	if m := dupIdxPattern.FindStringSubmatch(msg); m != nil {
		return []string{m[1]}
	}
	return []string{"email"}
}
