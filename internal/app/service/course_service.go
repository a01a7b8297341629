package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/learnhub/learnhub-backend/pkg/util"
	"gorm.io/gorm"
)

const CoursesPerPage = 10

type CourseListPage struct {
	Courses []model.Course
	Page    util.Page
}

type CourseDetails struct {
	Course       *model.Course
	Lessons      []model.Lesson
	StudentCount int64
}

// Enrollment is a purchased course with the student's progress in it.
type Enrollment struct {
	Payment  model.CoursePayment
	Progress float64
}

type Dashboard struct {
	User        *model.User
	Enrollments []Enrollment
	Teaching    []model.Course
}

type CourseService interface {
	ListCourses(ctx context.Context, pageParam string) (*CourseListPage, error)
	GetCourseDetails(ctx context.Context, id uint) (*CourseDetails, error)
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	Dashboard(ctx context.Context, userID uint) (*Dashboard, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
}

func NewCourseService(courseRepo repository.CourseRepository, userRepo repository.UserRepository) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
	}
}

func (s *courseService) ListCourses(ctx context.Context, pageParam string) (*CourseListPage, error) {
	total, err := s.courseRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	page := util.NewPage(pageParam, CoursesPerPage, total)
	courses, err := s.courseRepo.List(page.Offset(), page.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	logger.Debug("Courses listed", map[string]interface{}{
		"page":        page.Number,
		"total_pages": page.TotalPages,
		"count":       len(courses),
	})
	return &CourseListPage{Courses: courses, Page: page}, nil
}

func (s *courseService) GetCourseDetails(ctx context.Context, id uint) (*CourseDetails, error) {
	course, err := s.courseRepo.FindByIDWithLessons(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	students, err := s.courseRepo.CountStudents(course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count course students: %w", err)
	}

	return &CourseDetails{
		Course:       course,
		Lessons:      course.Lessons,
		StudentCount: students,
	}, nil
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	return course, nil
}

func (s *courseService) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	user, err := s.userRepo.FindByIDWithProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	dashboard := &Dashboard{User: user}

	if user.IsStudent {
		payments, err := s.courseRepo.FindPaymentsByStudent(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load enrollments: %w", err)
		}
		progress, err := s.courseRepo.FindProgressByStudent(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}

		byCourse := make(map[uint]float64, len(progress))
		for _, p := range progress {
			byCourse[p.CourseID] = p.Progress
		}
		for _, payment := range payments {
			dashboard.Enrollments = append(dashboard.Enrollments, Enrollment{
				Payment:  payment,
				Progress: byCourse[payment.CourseID],
			})
		}
	}

	if user.IsLecturer {
		teaching, err := s.courseRepo.FindByLecturer(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load taught courses: %w", err)
		}
		dashboard.Teaching = teaching
	}

	return dashboard, nil
}
