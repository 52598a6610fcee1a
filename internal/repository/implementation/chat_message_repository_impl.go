package implementation

import (
	"context"
	"errors"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/mapper"
	"ai-producer-be/internal/model"
	"ai-producer-be/internal/repository/contract"
	"ai-producer-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.ChatMessage, len(messages))
	for i, msg := range messages {
		models[i] = r.mapper.ToModel(msg)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*messages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChatMessageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) DeleteByThreadId(ctx context.Context, userId, threadId string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND thread_id = ?", userId, threadId).
		Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ChatMessage{}).Count(&count).Error
	return count, err
}

func (r *ChatMessageRepositoryImpl) FindRecentByThread(ctx context.Context, userId, threadId string, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.ChatMessage

	// Fetch the newest rows first, then reverse into chronological order.
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND thread_id = ?", userId, threadId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) ListThreads(ctx context.Context, userId string) ([]*contract.ThreadSummary, error) {
	type row struct {
		ThreadId      string
		Title         string
		LastMessageAt string
		MessageCount  int64
	}
	var rows []row

	// Title is the first user message of the thread.
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.thread_id,
		       (SELECT f.content FROM chat_messages f
		         WHERE f.thread_id = m.thread_id AND f.user_id = m.user_id AND f.role = 'user'
		         ORDER BY f.created_at ASC LIMIT 1) AS title,
		       max(m.created_at)::text AS last_message_at,
		       count(*) AS message_count
		FROM chat_messages m
		WHERE m.user_id = ?
		GROUP BY m.thread_id, m.user_id
		ORDER BY max(m.created_at) DESC`, userId).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*contract.ThreadSummary, len(rows))
	for i, rw := range rows {
		summaries[i] = &contract.ThreadSummary{
			ThreadId:      rw.ThreadId,
			Title:         rw.Title,
			LastMessageAt: rw.LastMessageAt,
			MessageCount:  rw.MessageCount,
		}
	}
	return summaries, nil
}
