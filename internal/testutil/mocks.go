package testutil

import (
	"context"
	"sync"
	"time"

	"visitors/internal/models"
	"visitors/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns the recorded entries of the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	StoreResults []StoreResult
	Requests     int
	CacheHits    int
	CacheMisses  int
}

type StoreResult struct {
	Op     string
	Result string
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (m *MockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncStoreResult(op string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreResults = append(m.StoreResults, StoreResult{Op: op, Result: result})
}

// MockRecordStore implements storage.RecordStoreInterface with injectable behavior.
type MockRecordStore struct {
	mu         sync.Mutex
	SaveFn     func(*models.Candidate) (*models.Visitor, error)
	LoadFn     func(string) (*models.Visitor, error)
	SaveCalls  []*models.Candidate
	LoadCalls  []string
	DirPresent bool
	Cleaned    bool
}

func (m *MockRecordStore) Save(_ context.Context, c *models.Candidate) (*models.Visitor, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, c)
	m.mu.Unlock()
	if m.SaveFn != nil {
		return m.SaveFn(c)
	}
	return &models.Visitor{ID: c.ID}, nil
}

func (m *MockRecordStore) Load(_ context.Context, fullName string) (*models.Visitor, error) {
	m.mu.Lock()
	m.LoadCalls = append(m.LoadCalls, fullName)
	m.mu.Unlock()
	if m.LoadFn != nil {
		return m.LoadFn(fullName)
	}
	return nil, &models.ReadFailureError{}
}

func (m *MockRecordStore) HasDir() bool { return m.DirPresent }

func (m *MockRecordStore) Cleanup() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleaned = true
	return true, nil
}

// MockVisitorCache implements providers.VisitorCacheInterface over a map and
// records which keys were looked up and evicted.
type MockVisitorCache struct {
	mu      sync.Mutex
	Data    map[string]models.Visitor
	Gets    []string
	Deletes []string
}

func NewMockVisitorCache() *MockVisitorCache {
	return &MockVisitorCache{Data: make(map[string]models.Visitor)}
}

func (m *MockVisitorCache) Get(key string) (*models.Visitor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets = append(m.Gets, key)
	v, ok := m.Data[key]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (m *MockVisitorCache) Put(key string, visitor *models.Visitor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = *visitor
}

func (m *MockVisitorCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, key)
	delete(m.Data, key)
}
