package service

import (
	"context"

	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/pkg/events"
	pktNats "ai-producer-be/pkg/nats"
)

type IStrategyService interface {
	GetStrategy(ctx context.Context, userId string) (*dto.StrategyResponse, error)
	UpdateStrategy(ctx context.Context, userId string, req *dto.UpdateStrategyRequest) (*dto.StrategyResponse, error)
}

type strategyService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewStrategyService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IStrategyService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &strategyService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (ss *strategyService) GetStrategy(ctx context.Context, userId string) (*dto.StrategyResponse, error) {
	uow := ss.uowFactory.NewUnitOfWork(ctx)
	strategy, err := uow.StrategyRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return &dto.StrategyResponse{UserId: userId}, nil
	}
	return strategyToDTO(strategy), nil
}

// UpdateStrategy merges the request over the stored row; empty request
// fields keep their stored value.
func (ss *strategyService) UpdateStrategy(ctx context.Context, userId string, req *dto.UpdateStrategyRequest) (*dto.StrategyResponse, error) {
	uow := ss.uowFactory.NewUnitOfWork(ctx)
	repo := uow.StrategyRepository()

	strategy, err := repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = &entity.UserStrategy{UserId: userId}
	}

	if req.Positioning != "" {
		strategy.Positioning = req.Positioning
	}
	if req.Goals != "" {
		strategy.Goals = req.Goals
	}
	if req.Cases != "" {
		strategy.Cases = req.Cases
	}
	if req.Triggers != "" {
		strategy.Triggers = req.Triggers
	}
	if req.FullContext != "" {
		strategy.FullContext = req.FullContext
	}
	if len(req.ShortsLogic) > 0 {
		strategy.ShortsLogic = req.ShortsLogic
	}
	if len(req.Monetization) > 0 {
		strategy.Monetization = req.Monetization
	}
	if len(req.ContentArch) > 0 {
		strategy.ContentArch = req.ContentArch
	}
	if len(req.ContentPlanConfig) > 0 {
		strategy.ContentPlanConfig = req.ContentPlanConfig
	}

	if err := repo.Upsert(ctx, strategy); err != nil {
		return nil, err
	}

	if ss.eventPublisher != nil {
		if err := ss.eventPublisher.Publish(ctx, events.NewStrategyUpdated(userId)); err != nil {
			ss.logger.Warn("strategy", "failed to publish update event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return strategyToDTO(strategy), nil
}

func strategyToDTO(strategy *entity.UserStrategy) *dto.StrategyResponse {
	return &dto.StrategyResponse{
		UserId:            strategy.UserId,
		Positioning:       strategy.Positioning,
		Goals:             strategy.Goals,
		Cases:             strategy.Cases,
		Triggers:          strategy.Triggers,
		FullContext:       strategy.FullContext,
		ShortsLogic:       strategy.ShortsLogic,
		Monetization:      strategy.Monetization,
		ContentArch:       strategy.ContentArch,
		ContentPlanConfig: strategy.ContentPlanConfig,
	}
}
