package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"ai-producer-be/internal/config"
	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/pkg/embedding"
	"ai-producer-be/pkg/events"
	"ai-producer-be/pkg/llm"
	pktNats "ai-producer-be/pkg/nats"
	"ai-producer-be/pkg/rag/chapter"
	"ai-producer-be/pkg/rag/generator"
	"ai-producer-be/pkg/rag/intent"
	"ai-producer-be/pkg/rag/loader"
	"ai-producer-be/pkg/rag/pipeline"
	"ai-producer-be/pkg/rag/retriever"
	"ai-producer-be/pkg/rag/state"
)

// historyWindow is how many persisted turns seed the working state.
const historyWindow = 10

type IChatService interface {
	SendChat(ctx context.Context, userId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetThreads(ctx context.Context, userId string) ([]*dto.ThreadSummaryResponse, error)
	GetHistory(ctx context.Context, userId, threadId string, limit int) ([]*dto.ChatHistoryResponse, error)
	GetBlueprint(ctx context.Context, userId, threadId string) (*dto.BlueprintResponse, error)
	DeleteThread(ctx context.Context, userId, threadId string) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	pipeline       *pipeline.Pipeline
	eventPublisher *pktNats.Publisher
	locks          *threadLocks
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	ragCfg config.RagConfig,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	if log == nil {
		log = logger.NewNopLogger()
	}

	searchStore := newGormSearchStore(uowFactory)
	recordStore := newGormRecordStore(uowFactory)

	classifier := intent.NewClassifier(llmProvider, log)
	chapters := chapter.NewExtractor(llmProvider, log)
	cascade := retriever.NewCascade(embeddingProvider, searchStore, chapters, ragCfg.TopK, ragCfg.ScoreThreshold, log)
	gen := generator.NewGenerator(llmProvider, ragCfg.Temperature, log)
	strategyLoader := loader.NewStrategyLoader(recordStore, ragCfg.DefaultStrategyUser, log)
	summaryLoader := loader.NewSummaryLoader(recordStore, log)

	var route pipeline.RouteFunc
	if ragCfg.ForceRetrieval {
		route = pipeline.ForcedRetrievalRoute
	} else {
		route = pipeline.IntentRoute
	}

	return &chatService{
		uowFactory:     uowFactory,
		pipeline:       pipeline.New(classifier, strategyLoader, summaryLoader, cascade, gen, route, log),
		eventPublisher: eventPublisher,
		locks:          newThreadLocks(),
		logger:         log,
	}
}

func (cs *chatService) SendChat(ctx context.Context, userId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	// One writer per thread. Concurrent requests for the same thread queue
	// up here and observe each other's persisted turns.
	unlock := cs.locks.lock(userId + "/" + req.ThreadId)
	defer unlock()

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.ChatMessageRepository().FindRecentByThread(ctx, userId, req.ThreadId, historyWindow)
	if err != nil {
		return nil, err
	}

	st := state.New(userId, req.ThreadId, req.Persona, historyToState(history))
	st.AppendMessage(llm.RoleUser, req.Message)

	blueprint, err := uow.BlueprintRepository().FindByThreadId(ctx, req.ThreadId)
	if err != nil {
		return nil, err
	}
	if blueprint != nil {
		st.CurrentStage = blueprint.CurrentStage
		for stage, payload := range blueprint.Stages {
			st.SetStage(stage, payload)
		}
	}
	if err := cs.pipeline.Run(ctx, st); err != nil {
		// Cancelled mid-flight; nothing is persisted.
		return nil, err
	}

	answer := lastAssistantContent(st)

	if err := cs.persistTurn(ctx, uow, userId, req, st, answer); err != nil {
		return nil, err
	}
	// The generator marks the turn when it extracted a stage payload.
	if _, saved := st.Metadata["last_saved_stage"]; saved {
		if err := uow.BlueprintRepository().Upsert(ctx, &entity.ThreadBlueprint{
			UserId:       userId,
			ThreadId:     req.ThreadId,
			CurrentStage: st.CurrentStage,
			Stages:       st.Blueprint,
		}); err != nil {
			cs.logger.Error("chat", "failed to persist blueprint", map[string]interface{}{
				"thread": req.ThreadId,
				"error":  err.Error(),
			})
		}
	}

	cs.publishAnswered(ctx, userId, req.ThreadId, st)

	return &dto.SendChatResponse{
		ThreadId:     req.ThreadId,
		Answer:       answer,
		Intent:       st.Intent,
		Sources:      st.Sources,
		CurrentStage: st.CurrentStage,
	}, nil
}

func (cs *chatService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, userId string, req *dto.SendChatRequest, st *state.State, answer string) error {
	assistantMeta := map[string]interface{}{
		"intent": st.Intent,
	}
	if len(st.Sources) > 0 {
		assistantMeta["sources"] = st.Sources
	}

	return uow.ChatMessageRepository().CreateBulk(ctx, []*entity.ChatMessage{
		{
			UserId:   userId,
			ThreadId: req.ThreadId,
			Role:     llm.RoleUser,
			Content:  req.Message,
		},
		{
			UserId:   userId,
			ThreadId: req.ThreadId,
			Role:     llm.RoleAssistant,
			Content:  answer,
			Metadata: assistantMeta,
		},
	})
}

func (cs *chatService) publishAnswered(ctx context.Context, userId, threadId string, st *state.State) {
	if cs.eventPublisher == nil {
		return
	}
	event := events.NewChatAnswered(userId, threadId, st.Intent, st.CurrentStage, len(st.Sources))
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("chat", "failed to publish chat event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (cs *chatService) GetThreads(ctx context.Context, userId string) ([]*dto.ThreadSummaryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ChatMessageRepository().ListThreads(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ThreadSummaryResponse, len(threads))
	for i, t := range threads {
		res[i] = &dto.ThreadSummaryResponse{
			ThreadId:      t.ThreadId,
			Title:         threadTitle(t.Title),
			LastMessageAt: t.LastMessageAt,
			MessageCount:  t.MessageCount,
		}
	}
	return res, nil
}

func (cs *chatService) GetHistory(ctx context.Context, userId, threadId string, limit int) ([]*dto.ChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecentByThread(ctx, userId, threadId, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatHistoryResponse, len(messages))
	for i, msg := range messages {
		res[i] = &dto.ChatHistoryResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			Metadata:  msg.Metadata,
			CreatedAt: msg.CreatedAt,
		}
	}
	return res, nil
}

func (cs *chatService) GetBlueprint(ctx context.Context, userId, threadId string) (*dto.BlueprintResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	blueprint, err := uow.BlueprintRepository().FindByThreadId(ctx, threadId)
	if err != nil {
		return nil, err
	}
	if blueprint == nil {
		return &dto.BlueprintResponse{
			ThreadId:     threadId,
			CurrentStage: 1,
			Stages:       map[string]json.RawMessage{},
		}, nil
	}

	stages := make(map[string]json.RawMessage, len(blueprint.Stages))
	for stage, payload := range blueprint.Stages {
		stages[strconv.Itoa(stage)] = payload
	}
	return &dto.BlueprintResponse{
		ThreadId:     threadId,
		CurrentStage: blueprint.CurrentStage,
		Stages:       stages,
	}, nil
}

func (cs *chatService) DeleteThread(ctx context.Context, userId, threadId string) error {
	unlock := cs.locks.lock(userId + "/" + threadId)
	defer unlock()

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteByThreadId(ctx, userId, threadId); err != nil {
		return err
	}
	if err := uow.BlueprintRepository().DeleteByThreadId(ctx, threadId); err != nil {
		return err
	}

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.NewThreadDeleted(userId, threadId)); err != nil {
			cs.logger.Warn("chat", "failed to publish thread deletion", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}

func historyToState(messages []*entity.ChatMessage) []state.Message {
	out := make([]state.Message, len(messages))
	for i, msg := range messages {
		out[i] = state.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Metadata:  msg.Metadata,
			CreatedAt: msg.CreatedAt,
		}
	}
	return out
}

func lastAssistantContent(st *state.State) string {
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Role == llm.RoleAssistant {
			return st.Messages[i].Content
		}
	}
	return ""
}

func threadTitle(firstMessage string) string {
	const maxTitle = 60
	title := strings.TrimSpace(firstMessage)
	runes := []rune(title)
	if len(runes) > maxTitle {
		return string(runes[:maxTitle]) + "…"
	}
	return title
}
