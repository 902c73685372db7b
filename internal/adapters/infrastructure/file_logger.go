package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"weatherdash.app/internal/ports"
)

// FileLoggerAdapter appends JSON lines to a log file. The file stays open
// until Close; loggers derived with WithComponent share it.
type FileLoggerAdapter struct {
	sink      *logFile
	component string
}

type logFile struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileLoggerAdapter opens logPath for appending, creating missing directories
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLoggerAdapter{sink: &logFile{file: file}}, nil
}

// WithComponent returns a logger that tags every line with component
func (f *FileLoggerAdapter) WithComponent(component string) *FileLoggerAdapter {
	return &FileLoggerAdapter{sink: f.sink, component: component}
}

// Close closes the shared file; later writes are dropped
func (f *FileLoggerAdapter) Close() error {
	f.sink.mu.Lock()
	defer f.sink.mu.Unlock()

	if f.sink.file == nil {
		return nil
	}
	err := f.sink.file.Close()
	f.sink.file = nil
	return err
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.write("DEBUG", msg, fields)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.write("INFO", msg, fields)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.write("WARN", msg, fields)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.write("ERROR", msg, fields)
}

// write puts the fields first so they can never shadow timestamp, level or message
func (f *FileLoggerAdapter) write(level, msg string, fields []ports.Field) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	entry := make(map[string]interface{}, len(fields)+4)
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			entry[field.Key] = err.Error()
			continue
		}
		entry[field.Key] = field.Value
	}
	entry["timestamp"] = timestamp
	entry["level"] = level
	entry["message"] = msg
	if f.component != "" {
		entry["component"] = f.component
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line, _ = json.Marshal(map[string]string{
			"timestamp": timestamp,
			"level":     "ERROR",
			"message":   "failed to marshal log entry",
			"original":  msg,
			"error":     err.Error(),
		})
	}
	f.sink.writeLine(line)
}

func (s *logFile) writeLine(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}

// MultiLogger fans each entry out to every wrapped logger
type MultiLogger struct {
	loggers []ports.Logger
}

// NewMultiLogger creates a logger writing to all non-nil loggers
func NewMultiLogger(loggers ...ports.Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Debug(msg, fields...)
	}
}

func (m *MultiLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Info(msg, fields...)
	}
}

func (m *MultiLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Warn(msg, fields...)
	}
}

func (m *MultiLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Error(msg, fields...)
	}
}
