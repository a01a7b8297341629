package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUploader struct {
	uploaded []string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename string, size int64, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size {
		return "", errors.New("size mismatch")
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

func setupImporterTest(t *testing.T) (*gorm.DB, repository.UserRepository, repository.CourseRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	users := repository.NewUserRepository(testDB)
	require.NoError(t, users.Create(&model.User{
		Username:     "lecturer",
		Email:        "lecturer@example.com",
		PasswordHash: "hash",
		IsLecturer:   true,
	}))
	return testDB, users, repository.NewCourseRepository(testDB)
}

func TestImporter_Import(t *testing.T) {
	testDB, users, courses := setupImporterTest(t)

	imageDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "go.png"), []byte("png-bytes"), 0o600))
	uploader := &fakeUploader{}

	importer := NewImporter(users, courses, uploader, imageDir, 1)
	result, err := importer.Import(context.Background(), []Entry{
		{Row: 2, Title: "Go Basics", PriceCents: 1999, LecturerUsername: "lecturer", ImageFile: "go.png", Lessons: []string{"Intro", "Types"}},
		{Row: 3, Title: "Missing Image", PriceCents: 500, LecturerUsername: "lecturer", ImageFile: "absent.png"},
		{Row: 4, Title: "Orphan", PriceCents: 100, LecturerUsername: "ghost"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []SkippedRow{{Row: 4, Reason: "unknown lecturer"}}, result.Skipped)
	assert.Equal(t, []string{"go.png"}, uploader.uploaded)

	var stored []model.Course
	require.NoError(t, testDB.Preload("Lessons").Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "https://cdn.example.com/courses/go.png", stored[0].ImageURL)
	assert.Len(t, stored[0].Lessons, 2)
	assert.Empty(t, stored[1].ImageURL)
}

func TestImporter_WithoutUploaderKeepsImagesEmpty(t *testing.T) {
	testDB, users, courses := setupImporterTest(t)

	result, err := NewImporter(users, courses, nil, "", 0).Import(context.Background(), []Entry{
		{Row: 2, Title: "Go Basics", LecturerUsername: "lecturer", ImageFile: "go.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	var course model.Course
	require.NoError(t, testDB.First(&course).Error)
	assert.Empty(t, course.ImageURL)
}

func TestImporter_CancelledContext(t *testing.T) {
	_, users, courses := setupImporterTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewImporter(users, courses, nil, "", 0).Import(ctx, []Entry{{Row: 2, Title: "x", LecturerUsername: "lecturer"}})
	assert.ErrorIs(t, err, context.Canceled)
}
