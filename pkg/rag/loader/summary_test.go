package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/rag/prompt"
	"ai-producer-be/pkg/rag/state"
)

func TestSummaryLoad(t *testing.T) {
	store := &fakeRecordStore{passport: "Книга о контент-стратегии."}
	l := NewSummaryLoader(store, nil)

	st := state.New("u", "t", "velizhanin", nil)
	l.Load(context.Background(), st)

	assert.Equal(t, "Книга о контент-стратегии.", st.Summary)
}

func TestSummaryLoadMissingPassport(t *testing.T) {
	l := NewSummaryLoader(&fakeRecordStore{}, nil)

	st := state.New("u", "t", "esther", nil)
	l.Load(context.Background(), st)

	// Absence yields the placeholder, never an empty summary block.
	assert.Equal(t, prompt.PassportMissing, st.Summary)
}

func TestSummaryLoadStoreError(t *testing.T) {
	l := NewSummaryLoader(&fakeRecordStore{passportErr: errors.New("db down")}, nil)

	st := state.New("u", "t", "", nil)
	l.Load(context.Background(), st)

	assert.Empty(t, st.Summary)
}

func TestSummaryLoadCached(t *testing.T) {
	store := &fakeRecordStore{passport: "паспорт"}
	l := NewSummaryLoader(store, nil)

	st1 := state.New("u", "t1", "velizhanin", nil)
	l.Load(context.Background(), st1)
	st2 := state.New("u", "t2", "velizhanin", nil)
	l.Load(context.Background(), st2)

	assert.Equal(t, 1, store.passportCalls)
	assert.Equal(t, "паспорт", st2.Summary)
}

func TestSummaryLoadCacheScopedByPersona(t *testing.T) {
	store := &fakeRecordStore{passport: "паспорт"}
	l := NewSummaryLoader(store, nil)

	l.Load(context.Background(), state.New("u", "t", "velizhanin", nil))
	l.Load(context.Background(), state.New("u", "t", "esther", nil))

	assert.Equal(t, 2, store.passportCalls)
}

func TestSummaryLoadMissingNotCached(t *testing.T) {
	store := &fakeRecordStore{}
	l := NewSummaryLoader(store, nil)

	l.Load(context.Background(), state.New("u", "t", "", nil))
	l.Load(context.Background(), state.New("u", "t", "", nil))

	// An absent passport is re-checked every time so a later upload is
	// picked up without waiting for TTL expiry.
	assert.Equal(t, 2, store.passportCalls)
}

func TestSummaryAppendsAfterStrategy(t *testing.T) {
	store := &fakeRecordStore{
		strategy: &StrategyRecord{FullContext: "контекст эксперта"},
		passport: "паспорт книги",
	}

	st := state.New("u", "t", "velizhanin", nil)
	NewStrategyLoader(store, "", nil).Load(context.Background(), st)
	NewSummaryLoader(store, nil).Load(context.Background(), st)

	assert.Contains(t, st.Summary, "контекст эксперта")
	assert.Contains(t, st.Summary, "паспорт книги")
}
