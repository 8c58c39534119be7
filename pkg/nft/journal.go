package nft

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelSuccess LogLevel = "success"
	LogLevelError   LogLevel = "error"
	LogLevelDebug   LogLevel = "debug"
)

type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
}

// Journal records the mint flow's progress as an ordered stream of leveled
// entries for display by whatever front end is attached, while mirroring
// every entry to the process logger. It makes no assumptions about how, or
// whether, entries are rendered.
type Journal struct {
	mu      sync.Mutex
	log     *logrus.Entry
	entries []LogEntry
}

func NewJournal() *Journal {
	return &Journal{
		log: logrus.StandardLogger().WithField("type", "nft/journal"),
	}
}

func (j *Journal) Info(format string, args ...interface{}) {
	j.append(LogLevelInfo, format, args...)
}

func (j *Journal) Success(format string, args ...interface{}) {
	j.append(LogLevelSuccess, format, args...)
}

func (j *Journal) Error(format string, args ...interface{}) {
	j.append(LogLevelError, format, args...)
}

func (j *Journal) Debug(format string, args ...interface{}) {
	j.append(LogLevelDebug, format, args...)
}

// Entries returns a snapshot of everything recorded so far.
func (j *Journal) Entries() []LogEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := make([]LogEntry, len(j.entries))
	copy(entries, j.entries)
	return entries
}

func (j *Journal) append(level LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	j.mu.Lock()
	j.entries = append(j.entries, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})
	j.mu.Unlock()

	switch level {
	case LogLevelError:
		j.log.Error(message)
	case LogLevelDebug:
		j.log.Debug(message)
	default:
		j.log.Info(message)
	}
}
