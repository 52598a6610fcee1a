package loader

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/rag/prompt"
	"ai-producer-be/pkg/rag/state"
)

// SummaryLoader fetches the book passport (global corpus context) scoped by
// persona. The passport is read-mostly, so lookups go through a TTL cache.
// Absence always yields a human-readable placeholder, never an empty value,
// so the generator can explain the missing global context.
type SummaryLoader struct {
	store  RecordStore
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewSummaryLoader(store RecordStore, log logger.ILogger) *SummaryLoader {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SummaryLoader{
		store:  store,
		cache:  gocache.New(10*time.Minute, 30*time.Minute),
		logger: log,
	}
}

func (l *SummaryLoader) Load(ctx context.Context, st *state.State) {
	passport, err := l.lookup(ctx, st.Persona)
	if err != nil {
		l.logger.Error("summary_loader", "failed to load passport", map[string]interface{}{
			"error":   err.Error(),
			"persona": st.Persona,
		})
		return
	}

	if passport == "" {
		l.logger.Info("summary_loader", "no passport found", map[string]interface{}{
			"persona": st.Persona,
		})
		passport = prompt.PassportMissing
	}

	st.AppendSummary(passport)
}

func (l *SummaryLoader) lookup(ctx context.Context, persona string) (string, error) {
	key := "passport:" + persona
	if cached, found := l.cache.Get(key); found {
		return cached.(string), nil
	}

	passport, err := l.store.GetPassport(ctx, persona)
	if err != nil {
		return "", err
	}

	if passport != "" {
		l.cache.Set(key, passport, gocache.DefaultExpiration)
	}
	return passport, nil
}
