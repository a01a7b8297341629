package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/service"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses renders one page of the catalog
// GET /courses/?page=
func (ctrl *CourseController) ListCourses(c *gin.Context) {
	result, err := ctrl.courseService.ListCourses(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondWithError(c, err, "list courses")
		return
	}

	render(c, http.StatusOK, "course_list.html", gin.H{
		"title":   "Courses",
		"courses": result.Courses,
		"page":    result.Page,
	})
}

// CourseDetails renders a course with its lessons
// GET /courses/:id/details/
func (ctrl *CourseController) CourseDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.NotFound(c, apperrors.CourseNotFound, service.ErrCourseNotFound.Message)
		return
	}

	details, err := ctrl.courseService.GetCourseDetails(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err, "load course")
		return
	}

	render(c, http.StatusOK, "course_single.html", gin.H{
		"title":      details.Course.Title,
		"course":     details.Course,
		"lessons":    details.Lessons,
		"student_no": details.StudentCount,
	})
}

// CoursePayment renders the payment summary of a course
// GET /courses/:id/payment/
func (ctrl *CourseController) CoursePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.NotFound(c, apperrors.CourseNotFound, service.ErrCourseNotFound.Message)
		return
	}

	course, err := ctrl.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err, "load course")
		return
	}

	render(c, http.StatusOK, "course_payment.html", gin.H{
		"title":  course.Title,
		"course": course,
	})
}

// Dashboard renders the signed-in user's courses
// GET /dashboard/
func (ctrl *CourseController) Dashboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	dashboard, err := ctrl.courseService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Redirect(http.StatusFound, middleware.LoginPath)
			return
		}
		respondWithError(c, err, "load dashboard")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"title":     "Dashboard",
		"dashboard": dashboard,
	})
}
