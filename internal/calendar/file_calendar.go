package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/username/workhour-report/pkg/dateutil"
	"go.uber.org/zap"
)

// FileSource implements HolidaySource using a local text file of extra
// non-working days. The region is ignored: every listed day applies.
type FileSource struct {
	filePath string
	logger   *zap.Logger
	data     map[int]map[string]string // year -> date -> note
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int]map[string]string),
	}
}

// Load loads the extra days from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	count := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note] or DD.MM.YYYY [note]
		// Example: 2023-12-27 Betriebsruhe
		parts := strings.SplitN(line, " ", 2)
		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		note := "closed"
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			note = strings.TrimSpace(parts[1])
		}

		year := date.Year()
		if fs.data[year] == nil {
			fs.data[year] = make(map[string]string)
		}
		fs.data[year][dateutil.Key(date)] = note
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("days", count))

	return nil
}

// Holidays returns the listed days of year
func (fs *FileSource) Holidays(region string, year int) (map[string]string, error) {
	result := make(map[string]string, len(fs.data[year]))
	for key, note := range fs.data[year] {
		result[key] = note
	}
	return result, nil
}
