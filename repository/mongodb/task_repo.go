package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/repository"
)

const collectionName = "tasks"

// taskDocument is the persisted shape. The database assigns the ObjectID;
// the domain layer only ever sees its hex form.
type taskDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	DueDate          string             `bson:"dueDate"`
	TimeSlot         string             `bson:"timeSlot"`
	Priority         domain.Priority    `bson:"priority"`
	Status           domain.Status      `bson:"status"`
	Source           domain.Source      `bson:"source"`
	ExternalID       string             `bson:"externalId,omitempty"`
	CanvasCourseID   string             `bson:"canvasCourseId,omitempty"`
	CanvasCourseName string             `bson:"canvasCourseName,omitempty"`
	CalendarEventID  string             `bson:"calendarEventId,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        *time.Time         `bson:"updatedAt,omitempty"`
}

type TaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository returns a Mongo-backed implementation of TaskRepository.
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection(collectionName)}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodePersistence, "list tasks", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.WrapError(domain.ErrCodePersistence, "decode tasks", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a Mongo id at all, so no document can match it.
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.WrapError(domain.ErrCodePersistence, "get task", err)
	}
	task := doc.toDomain()
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := fromDomain(task)
	doc.ID = primitive.NilObjectID
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = nil

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodePersistence, "insert task", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, domain.NewError(domain.ErrCodePersistence, "unexpected inserted id type")
	}
	doc.ID = oid
	created := doc.toDomain()
	return &created, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":            task.Title,
		"description":      task.Description,
		"dueDate":          task.DueDate,
		"timeSlot":         task.TimeSlot,
		"priority":         task.Priority,
		"status":           task.Status,
		"source":           task.Source,
		"externalId":       task.ExternalID,
		"canvasCourseId":   task.CanvasCourseID,
		"canvasCourseName": task.CanvasCourseName,
		"calendarEventId":  task.CalendarEventID,
		"updatedAt":        now,
	}}

	result, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		return domain.WrapError(domain.ErrCodePersistence, "update task", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = &now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.WrapError(domain.ErrCodePersistence, "delete task", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) FindBySourceExternalID(ctx context.Context, source domain.Source, externalID string) (*domain.Task, error) {
	var doc taskDocument
	filter := bson.M{"source": source, "externalId": externalID}
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.WrapError(domain.ErrCodePersistence, "find imported task", err)
	}
	task := doc.toDomain()
	return &task, nil
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		DueDate:          d.DueDate,
		TimeSlot:         d.TimeSlot,
		Priority:         d.Priority,
		Status:           d.Status,
		Source:           d.Source,
		ExternalID:       d.ExternalID,
		CanvasCourseID:   d.CanvasCourseID,
		CanvasCourseName: d.CanvasCourseName,
		CalendarEventID:  d.CalendarEventID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func fromDomain(task *domain.Task) taskDocument {
	return taskDocument{
		Title:            task.Title,
		Description:      task.Description,
		DueDate:          task.DueDate,
		TimeSlot:         task.TimeSlot,
		Priority:         task.Priority,
		Status:           task.Status,
		Source:           task.Source,
		ExternalID:       task.ExternalID,
		CanvasCourseID:   task.CanvasCourseID,
		CanvasCourseName: task.CanvasCourseName,
		CalendarEventID:  task.CalendarEventID,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}
