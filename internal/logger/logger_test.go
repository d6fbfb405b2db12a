package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"vfx-dashboard/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu   sync.Mutex
	logs []models.Log
}

func (m *memorySink) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, document.(models.Log))
	return &mongo.InsertOneResult{}, nil
}

func (m *memorySink) snapshot() []models.Log {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Log(nil), m.logs...)
}

func TestDBCorePersistsWarningsOnly(t *testing.T) {
	sink := &memorySink{}
	writer := NewDBLogWriter(sink, "test-app")
	base, observed := observer.New(zapcore.DebugLevel)

	log := zap.New(NewDBCore(base, writer, zapcore.WarnLevel)).
		With(zap.String("request_id", "req-1"))

	log.Info("listing projects")
	log.Warn("slow query", zap.String("user_id", "u-42"))
	log.Error("mongo unavailable")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, writer.Close(ctx))

	assert.Equal(t, 3, observed.Len(), "console core still sees every entry")

	logs := sink.snapshot()
	require.Len(t, logs, 2)
	assert.Equal(t, "slow query", logs[0].Message)
	assert.Equal(t, "warn", logs[0].Level)
	assert.Equal(t, "req-1", logs[0].RequestID)
	assert.Equal(t, "u-42", logs[0].UserID)
	assert.Equal(t, "test-app", logs[0].AppID)
	assert.Equal(t, "mongo unavailable", logs[1].Message)
}

func TestAddLogAfterCloseDoesNotPanic(t *testing.T) {
	writer := NewDBLogWriter(&memorySink{}, "test-app")
	require.NoError(t, writer.Close(context.Background()))

	assert.NotPanics(t, func() {
		writer.AddLog(LogEntry{Level: zapcore.ErrorLevel, Message: "late"})
	})
}
