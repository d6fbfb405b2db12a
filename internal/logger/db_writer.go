package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"vfx-dashboard/internal/common/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the writer goroutine
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	Caller    string
	RequestID string
	UserID    string
	IpAddress string
}

// Inserter is the subset of *mongo.Collection the writer needs.
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// DBLogWriter persists log entries asynchronously so request handlers never
// wait on the database.
type DBLogWriter struct {
	sink    Inserter
	logChan chan LogEntry
	appId   string
	done    chan struct{}
	once    sync.Once
}

func NewDBLogWriter(sink Inserter, appId string) *DBLogWriter {
	writer := &DBLogWriter{
		sink:    sink,
		logChan: make(chan LogEntry, 1000),
		appId:   appId,
		done:    make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog queues an entry, dropping it when the buffer is full.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	defer func() {
		// Close raced with a late log line
		_ = recover()
	}()
	select {
	case w.logChan <- entry:
	default:
		fmt.Fprintln(os.Stderr, "DB log channel full, dropping:", entry.Message)
	}
}

// Close stops accepting entries and waits for the queue to drain or ctx to end.
func (w *DBLogWriter) Close(ctx context.Context) error {
	w.once.Do(func() { close(w.logChan) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		record := models.Log{
			AppID:     w.appId,
			Level:     entry.Level.String(),
			Message:   entry.Message,
			Caller:    entry.Caller,
			RequestID: entry.RequestID,
			UserID:    entry.UserID,
			IpAddress: entry.IpAddress,
			CreatedAt: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// Errors are ignored so logging can never take the API down
		_, _ = w.sink.InsertOne(ctx, record)
		cancel()
	}
}
