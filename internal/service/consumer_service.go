package service

import (
	"context"
	"encoding/json"

	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds queued knowledge chunks and stores them. Delivery
// is at least once and chunk order does not matter: each message carries its
// own chunk_index.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	vector, err := cs.embeddingProvider.Embed(ctx, payload.Content)
	if err != nil {
		cs.logger.Error("consumer", "embedding failed", map[string]interface{}{
			"source": payload.Source,
			"chunk":  payload.ChunkIndex,
			"error":  err.Error(),
		})
		msg.Nack() // Retriable
		return
	}

	metadata := map[string]interface{}{
		"source":      payload.Source,
		"chunk_index": payload.ChunkIndex,
	}
	for key, value := range payload.Metadata {
		if _, taken := metadata[key]; !taken {
			metadata[key] = value
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	chunk := &entity.KnowledgeChunk{
		Id:        uuid.New(),
		Content:   payload.Content,
		Embedding: vector,
		Metadata:  metadata,
	}
	if err := uow.KnowledgeChunkRepository().Create(ctx, chunk); err != nil {
		cs.logger.Error("consumer", "failed to store chunk", map[string]interface{}{
			"source": payload.Source,
			"chunk":  payload.ChunkIndex,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Debug("consumer", "chunk embedded and stored", map[string]interface{}{
		"source": payload.Source,
		"chunk":  payload.ChunkIndex,
	})
	msg.Ack()
}
