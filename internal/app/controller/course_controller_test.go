package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *pageFixture) createCourses(t *testing.T, lecturer *model.User, n int) []model.Course {
	t.Helper()
	courses := make([]model.Course, 0, n)
	for i := 1; i <= n; i++ {
		course := model.Course{
			Title:      fmt.Sprintf("Course %02d", i),
			PriceCents: int64(i * 1000),
			Duration:   uint(i),
			LecturerID: lecturer.ID,
		}
		require.NoError(t, f.db.Create(&course).Error)
		courses = append(courses, course)
	}
	return courses
}

func TestCourseController_ListCourses(t *testing.T) {
	f := setupPageTest(t)
	lecturer := f.createUser(t, "lecturer", "lecturer@example.com", "secret-pass")
	f.createCourses(t, lecturer, 12)
	b := f.newBrowser(t)

	tests := []struct {
		name     string
		query    string
		wantPage string
	}{
		{name: "default page", query: "", wantPage: "Page 1 of 2."},
		{name: "explicit page", query: "?page=2", wantPage: "Page 2 of 2."},
		{name: "non integer falls back to first", query: "?page=abc", wantPage: "Page 1 of 2."},
		{name: "out of range falls back to last", query: "?page=99", wantPage: "Page 2 of 2."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := b.get("/courses/" + tt.query)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantPage)
		})
	}
}

func TestCourseController_CourseDetails(t *testing.T) {
	f := setupPageTest(t)
	lecturer := f.createUser(t, "lecturer", "lecturer@example.com", "secret-pass")
	student := f.createUser(t, "student", "student@example.com", "secret-pass")
	course := f.createCourses(t, lecturer, 1)[0]
	require.NoError(t, f.db.Create(&model.Lesson{CourseID: course.ID, Title: "Getting started", Duration: 12}).Error)
	require.NoError(t, f.db.Create(&model.CoursePayment{StudentID: student.ID, CourseID: course.ID, AmountPaidCents: 1000}).Error)
	b := f.newBrowser(t)

	w := b.get(fmt.Sprintf("/courses/%d/details/", course.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Course 01")
	assert.Contains(t, body, "Getting started")
	assert.Contains(t, body, "1 students enrolled")

	w = b.get(fmt.Sprintf("/courses/%d/payment/", course.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$10.00")
}

func TestCourseController_NotFound(t *testing.T) {
	f := setupPageTest(t)
	b := f.newBrowser(t)

	for _, path := range []string{
		"/courses/999/details/",
		"/courses/abc/details/",
		"/courses/999/payment/",
		"/courses/0/payment/",
		"/courses/18446744073709551615/details/",
	} {
		w := b.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Course not found.", path)
	}
}

func TestCourseController_Dashboard(t *testing.T) {
	f := setupPageTest(t)
	lecturer := f.createUser(t, "lecturer", "lecturer@example.com", "secret-pass")
	require.NoError(t, f.db.Model(lecturer).Update("is_lecturer", true).Error)
	student := f.createUser(t, "student", "student@example.com", "secret-pass")
	course := f.createCourses(t, lecturer, 1)[0]
	require.NoError(t, f.db.Create(&model.CoursePayment{StudentID: student.ID, CourseID: course.ID, AmountPaidCents: 1000}).Error)
	require.NoError(t, f.db.Create(&model.CourseProgress{StudentID: student.ID, CourseID: course.ID, Progress: 40}).Error)

	b := f.newBrowser(t)
	b.login("student", "secret-pass")
	w := b.get("/dashboard/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Course 01")
	assert.Contains(t, w.Body.String(), "40%")

	b = f.newBrowser(t)
	b.login("lecturer", "secret-pass")
	w = b.get("/dashboard/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Courses I teach")
}
