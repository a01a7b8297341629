package repository

import (
	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	BulkCreate(courses []model.Course, batchSize int) error
	Count() (int64, error)
	List(offset, limit int) ([]model.Course, error)
	FindByID(id uint) (*model.Course, error)
	FindByIDWithLessons(id uint) (*model.Course, error)
	FindByLecturer(lecturerID uint) ([]model.Course, error)
	CountStudents(courseID uint) (int64, error)
	FindPaymentsByStudent(studentID uint) ([]model.CoursePayment, error)
	FindProgressByStudent(studentID uint) ([]model.CourseProgress, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	logger.Debug("Creating course in database", map[string]interface{}{
		"title":       course.Title,
		"lecturer_id": course.LecturerID,
	})

	if err := r.db.Create(course).Error; err != nil {
		logger.Error("Failed to create course in database", err, map[string]interface{}{
			"title": course.Title,
		})
		return err
	}

	logger.Debug("Course created in database", map[string]interface{}{
		"course_id":    course.ID,
		"lesson_count": len(course.Lessons),
	})
	return nil
}

// BulkCreate inserts courses with their lessons in batches inside one transaction.
func (r *courseRepository) BulkCreate(courses []model.Course, batchSize int) error {
	if len(courses) == 0 {
		return nil
	}

	logger.Info("Bulk creating courses in database", map[string]interface{}{
		"count":      len(courses),
		"batch_size": batchSize,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(courses, batchSize).Error
	})
	if err != nil {
		logger.Error("Failed to bulk create courses in database", err, map[string]interface{}{
			"count": len(courses),
		})
		return err
	}

	logger.Info("Courses bulk created in database", map[string]interface{}{
		"count": len(courses),
	})
	return nil
}

func (r *courseRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count courses in database", err)
		return 0, err
	}
	return count, nil
}

// List returns a page of courses, newest first.
func (r *courseRepository) List(offset, limit int) ([]model.Course, error) {
	logger.Debug("Listing courses from database", map[string]interface{}{
		"offset": offset,
		"limit":  limit,
	})

	var courses []model.Course
	err := r.db.Preload("Lecturer").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		logger.Error("Failed to list courses from database", err, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		return nil, err
	}

	logger.Debug("Courses listed from database", map[string]interface{}{
		"count": len(courses),
	})
	return courses, nil
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	logger.Debug("Finding course by ID in database", map[string]interface{}{
		"course_id": id,
	})

	var course model.Course
	if err := r.db.Preload("Lecturer").First(&course, id).Error; err != nil {
		logger.Error("Failed to find course by ID in database", err, map[string]interface{}{
			"course_id": id,
		})
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithLessons(id uint) (*model.Course, error) {
	logger.Debug("Finding course by ID with lessons in database", map[string]interface{}{
		"course_id": id,
	})

	var course model.Course
	err := r.db.Preload("Lecturer").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		logger.Error("Failed to find course by ID with lessons in database", err, map[string]interface{}{
			"course_id": id,
		})
		return nil, err
	}

	logger.Debug("Course with lessons found in database", map[string]interface{}{
		"course_id":    course.ID,
		"lesson_count": len(course.Lessons),
	})
	return &course, nil
}

func (r *courseRepository) FindByLecturer(lecturerID uint) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Where("lecturer_id = ?", lecturerID).Order("created_at DESC, id DESC").Find(&courses).Error; err != nil {
		logger.Error("Failed to find courses by lecturer in database", err, map[string]interface{}{
			"lecturer_id": lecturerID,
		})
		return nil, err
	}
	return courses, nil
}

// CountStudents counts payment rows for the course.
func (r *courseRepository) CountStudents(courseID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.CoursePayment{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		logger.Error("Failed to count course students in database", err, map[string]interface{}{
			"course_id": courseID,
		})
		return 0, err
	}
	return count, nil
}

func (r *courseRepository) FindPaymentsByStudent(studentID uint) ([]model.CoursePayment, error) {
	logger.Debug("Finding course payments by student in database", map[string]interface{}{
		"student_id": studentID,
	})

	var payments []model.CoursePayment
	err := r.db.Preload("Course").
		Where("student_id = ?", studentID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to find course payments by student in database", err, map[string]interface{}{
			"student_id": studentID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *courseRepository) FindProgressByStudent(studentID uint) ([]model.CourseProgress, error) {
	var progress []model.CourseProgress
	if err := r.db.Where("student_id = ?", studentID).Find(&progress).Error; err != nil {
		logger.Error("Failed to find course progress by student in database", err, map[string]interface{}{
			"student_id": studentID,
		})
		return nil, err
	}
	return progress, nil
}
