package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/pkg/events"
	pktNats "ai-producer-be/pkg/nats"
	"ai-producer-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IKnowledgeService interface {
	Upload(ctx context.Context, req *dto.UploadKnowledgeRequest) (*dto.UploadKnowledgeResponse, error)
	GetStats(ctx context.Context) (*dto.KnowledgeStatsResponse, error)
	GetSources(ctx context.Context) ([]*dto.SourceStatResponse, error)
	DeleteSource(ctx context.Context, source string) (*dto.DeleteSourceResponse, error)
}

type knowledgeService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	chunkSize      int
	chunkOverlap   int
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewKnowledgeService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	chunkSize int,
	chunkOverlap int,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IKnowledgeService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &knowledgeService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		chunkSize:      chunkSize,
		chunkOverlap:   chunkOverlap,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Upload splits the text and publishes one ingestion message per chunk.
// Embedding happens asynchronously in the consumer.
func (ks *knowledgeService) Upload(ctx context.Context, req *dto.UploadKnowledgeRequest) (*dto.UploadKnowledgeResponse, error) {
	chunks := utils.SplitText(req.Text, ks.chunkSize, ks.chunkOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to ingest for source %q", req.Source)
	}

	published := 0
	for i, chunk := range chunks {
		payload, err := json.Marshal(dto.IngestChunkMessage{
			Source:     req.Source,
			Content:    chunk,
			ChunkIndex: i,
			Metadata:   req.Metadata,
		})
		if err != nil {
			return nil, err
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := ks.pubSub.Publish(ks.topicName, msg); err != nil {
			ks.logger.Error("knowledge", "failed to publish chunk", map[string]interface{}{
				"source": req.Source,
				"chunk":  i,
				"error":  err.Error(),
			})
			return nil, err
		}
		published++
	}

	ks.logger.Info("knowledge", "source queued for ingestion", map[string]interface{}{
		"source": req.Source,
		"chunks": len(chunks),
	})

	if ks.eventPublisher != nil {
		if err := ks.eventPublisher.Publish(ctx, events.NewSourceIngested(req.Source, len(chunks))); err != nil {
			ks.logger.Warn("knowledge", "failed to publish ingest event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.UploadKnowledgeResponse{
		Source:    req.Source,
		Chunks:    len(chunks),
		Published: published,
	}, nil
}

func (ks *knowledgeService) GetStats(ctx context.Context) (*dto.KnowledgeStatsResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeChunkRepository()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := repo.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.KnowledgeStatsResponse{
		TotalChunks: total,
		Sources:     len(sources),
	}, nil
}

func (ks *knowledgeService) GetSources(ctx context.Context) ([]*dto.SourceStatResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)
	sources, err := uow.KnowledgeChunkRepository().ListSources(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SourceStatResponse, len(sources))
	for i, s := range sources {
		res[i] = &dto.SourceStatResponse{Source: s.Source, Chunks: s.Chunks}
	}
	return res, nil
}

func (ks *knowledgeService) DeleteSource(ctx context.Context, source string) (*dto.DeleteSourceResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.KnowledgeChunkRepository().DeleteBySource(ctx, source)
	if err != nil {
		return nil, err
	}

	if ks.eventPublisher != nil {
		if err := ks.eventPublisher.Publish(ctx, events.NewSourceDeleted(source, deleted)); err != nil {
			ks.logger.Warn("knowledge", "failed to publish delete event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.DeleteSourceResponse{Source: source, Deleted: deleted}, nil
}
