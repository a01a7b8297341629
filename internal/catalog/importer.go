package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultBatchSize = 100
	imageFolder      = "courses"
)

type LecturerFinder interface {
	FindByUsername(username string) (*model.User, error)
}

type CourseWriter interface {
	BulkCreate(courses []model.Course, batchSize int) error
}

// ImageUploader stores a course image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (string, error)
}

type ImportResult struct {
	Imported int
	Skipped  []SkippedRow
}

// Importer turns parsed catalog entries into courses with lessons.
// Images are uploaded only when both an uploader and an image directory are set.
type Importer struct {
	lecturers LecturerFinder
	courses   CourseWriter
	images    ImageUploader
	imageDir  string
	batchSize int
}

func NewImporter(lecturers LecturerFinder, courses CourseWriter, images ImageUploader, imageDir string, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		lecturers: lecturers,
		courses:   courses,
		images:    images,
		imageDir:  imageDir,
		batchSize: batchSize,
	}
}

func (i *Importer) Import(ctx context.Context, entries []Entry) (*ImportResult, error) {
	result := &ImportResult{}
	lecturerIDs := make(map[string]uint)
	courses := make([]model.Course, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lecturerID, ok := lecturerIDs[entry.LecturerUsername]
		if !ok {
			lecturer, err := i.lecturers.FindByUsername(entry.LecturerUsername)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					result.Skipped = append(result.Skipped, SkippedRow{Row: entry.Row, Reason: "unknown lecturer"})
					continue
				}
				return nil, fmt.Errorf("failed to find lecturer %q: %w", entry.LecturerUsername, err)
			}
			lecturerID = lecturer.ID
			lecturerIDs[entry.LecturerUsername] = lecturerID
		}

		course := model.Course{
			Title:       entry.Title,
			Description: entry.Description,
			PriceCents:  entry.PriceCents,
			Duration:    entry.Duration,
			LecturerID:  lecturerID,
		}
		for _, title := range entry.Lessons {
			course.Lessons = append(course.Lessons, model.Lesson{Title: title})
		}

		if entry.ImageFile != "" {
			imageURL, err := i.uploadImage(ctx, entry.ImageFile)
			if err != nil {
				logger.Warn("Course image not uploaded", map[string]interface{}{
					"row":   entry.Row,
					"image": entry.ImageFile,
					"error": err.Error(),
				})
			}
			course.ImageURL = imageURL
		}

		courses = append(courses, course)
	}

	if err := i.courses.BulkCreate(courses, i.batchSize); err != nil {
		return nil, fmt.Errorf("failed to store courses: %w", err)
	}

	result.Imported = len(courses)
	logger.Info("Catalog imported", map[string]interface{}{
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
	})
	return result, nil
}

func (i *Importer) uploadImage(ctx context.Context, name string) (string, error) {
	if i.images == nil || i.imageDir == "" {
		return "", nil
	}

	path := filepath.Join(i.imageDir, filepath.Base(name))
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return i.images.Upload(ctx, imageFolder, filepath.Base(name), info.Size(), f)
}
