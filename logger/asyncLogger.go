package logger

import (
	"log"

	log_model "care-connect/models/log"
	"care-connect/types"

	"gorm.io/gorm"
)

// AsyncLogger persists HTTP audit entries to the logs table without blocking
// request handlers. Entries flow through a buffered channel drained by
// ProcessLog.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel. Run it in its own goroutine.
func (logger *AsyncLogger) ProcessLog() {
	for logEntry := range logger.channel {
		if logger.db == nil {
			continue
		}
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			CreatedAt:       logEntry.CreatedAt,
		}
		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
		// Drop audit entries rather than stall a request when the buffer is full.
	}
}
