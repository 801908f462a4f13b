package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type fileDocument struct {
	Message  string    `json:"message"`
	Level    string    `json:"level"`
	CallTree string    `json:"call_tree"`
	TS       time.Time `json:"ts"`
}

// FileSink appends records as JSON lines to a size-rotated file. The file
// template must contain one %s verb, replaced with a timestamp on every
// rotation, e.g. "/var/log/app/records-%s.jsonl". Writes are synchronous and
// flushed before Write returns.
type FileSink struct {
	fileTemplate string
	maxSize      int64
	maxFiles     int

	mu          sync.Mutex
	currentFile string
	file        *os.File
	writer      *bufio.Writer
	currentSize int64
}

// NewFileSink opens the initial log file, creating its directory if needed.
// maxSize is the rotation threshold in bytes; maxFiles bounds how many
// rotated files are kept (0 keeps all).
func NewFileSink(fileTemplate string, maxSize int64, maxFiles int) (*FileSink, error) {
	sink := &FileSink{
		fileTemplate: fileTemplate,
		maxSize:      maxSize,
		maxFiles:     maxFiles,
	}
	if err := sink.openFile(); err != nil {
		return nil, err
	}
	return sink, nil
}

// newFileName applies the current timestamp to the file template. The
// nanosecond suffix keeps names unique and lexically chronological even when
// rotations land in the same second.
func (s *FileSink) newFileName() string {
	now := time.Now()
	stamp := fmt.Sprintf("%s-%09d", now.Format("20060102150405"), now.Nanosecond())
	return fmt.Sprintf(s.fileTemplate, stamp)
}

// openFile opens (or creates) the active log file and prepares the buffered
// writer. Caller must hold mu, except during construction.
func (s *FileSink) openFile() error {
	s.currentFile = s.newFileName()
	dir := filepath.Dir(s.currentFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(s.currentFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	s.currentSize = fi.Size()
	s.file = file
	s.writer = bufio.NewWriter(file)
	return nil
}

// rotateIfNeeded rotates when adding n bytes would reach the size limit.
// Caller must hold mu.
func (s *FileSink) rotateIfNeeded(n int) error {
	if s.currentSize+int64(n) < s.maxSize {
		return nil
	}
	if err := s.writer.Flush(); err != nil {
		return err
	}
	if err := s.file.Close(); err != nil {
		return err
	}
	return s.openFile()
}

// cleanupOldFiles removes the oldest rotated files beyond maxFiles. File
// name order is chronological, see newFileName.
func (s *FileSink) cleanupOldFiles() error {
	pattern := fmt.Sprintf(s.fileTemplate, "*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	sort.Strings(matches)

	excess := len(matches) - s.maxFiles
	for i := 0; i < excess; i++ {
		if err := os.Remove(matches[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write appends the record as one JSON line and flushes.
func (s *FileSink) Write(rec *Record) error {
	doc := fileDocument{
		Message:  rec.Message,
		Level:    rec.Level.String(),
		CallTree: rec.CallPath,
		TS:       rec.Timestamp,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	line := append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rotateIfNeeded(len(line)); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	if _, err := s.writer.Write(line); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	s.currentSize += int64(len(line))
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	if s.maxFiles > 0 {
		if err := s.cleanupOldFiles(); err != nil {
			return fmt.Errorf("%w: %w", ErrSinkWrite, err)
		}
	}
	return nil
}

// Close flushes and closes the current file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		return err
	}
	return s.file.Close()
}
