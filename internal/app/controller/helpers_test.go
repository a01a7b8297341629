package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/internal/app/service"
	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/web"
	"github.com/learnhub/learnhub-backend/pkg/mailer"
	"github.com/learnhub/learnhub-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret    = "test-secret"
	testCSRFToken = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
)

type pageFixture struct {
	router   *gin.Engine
	authCtrl *AuthController
	db       *gorm.DB
	users    repository.UserRepository
	mail     *mailer.Recorder
}

func setupPageTest(t *testing.T) *pageFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	courseRepo := repository.NewCourseRepository(testDB)
	mail := mailer.NewRecorder()

	authService := service.NewAuthService(userRepo, nil, testSecret, time.Hour)
	resetService := service.NewPasswordResetService(
		userRepo,
		repository.NewPasswordResetRepository(testDB),
		service.NewResetTokenGenerator(testSecret, service.DefaultResetTokenTimeout),
		mail,
		service.PasswordResetOptions{FromEmail: "from@example.com"},
	)
	contactService := service.NewContactService(repository.NewContactRepository(testDB))
	courseService := service.NewCourseService(courseRepo, userRepo)

	cookie := middleware.NewSessionCookie("sessionid", false)
	authMiddleware := middleware.NewAuthMiddleware(authService, cookie)
	authCtrl := NewAuthController(authService, resetService, cookie, "", []string{"example.com"})
	pageCtrl := NewPageController(contactService)
	courseCtrl := NewCourseController(courseService)

	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())
	router.Use(middleware.FlashMiddleware(), middleware.CSRFMiddleware(false), authMiddleware.LoadSession())

	router.GET("/", pageCtrl.Home)
	router.GET("/about/", pageCtrl.Static("about"))
	router.GET("/contact/", pageCtrl.ContactPage)
	router.POST("/contact/", pageCtrl.Contact)
	router.GET("/login/", authCtrl.LoginPage)
	router.POST("/login/", authCtrl.Login)
	router.GET("/logout/", authCtrl.Logout)
	router.GET("/register/", authCtrl.RegisterPage)
	router.POST("/register/", authCtrl.Register)
	router.GET("/forgot-password/", authCtrl.ForgotPasswordPage)
	router.POST("/forgot-password/", authCtrl.ForgotPassword)
	router.GET("/reset-password/:uid/:token/", authCtrl.ResetPasswordPage)
	router.POST("/reset-password/:uid/:token/", authCtrl.ResetPassword)
	router.GET("/change-password/", authMiddleware.RequireSession(), authCtrl.ChangePasswordPage)
	router.POST("/change-password/", authMiddleware.RequireSession(), authCtrl.ChangePassword)
	router.GET("/dashboard/", authMiddleware.RequireSession(), courseCtrl.Dashboard)
	router.GET("/courses/", courseCtrl.ListCourses)
	router.GET("/courses/:id/details/", courseCtrl.CourseDetails)
	router.GET("/courses/:id/payment/", courseCtrl.CoursePayment)

	return &pageFixture{
		router:   router,
		authCtrl: authCtrl,
		db:       testDB,
		users:    userRepo,
		mail:     mail,
	}
}

func (f *pageFixture) createUser(t *testing.T, username, email, password string) *model.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)
	user := &model.User{Username: username, Email: email, PasswordHash: hash, IsStudent: true}
	require.NoError(t, f.users.CreateWithProfile(user, &model.Profile{}))
	return user
}

// browser keeps cookies between requests like a user agent would.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (f *pageFixture) newBrowser(t *testing.T) *browser {
	return &browser{t: t, router: f.router, cookies: map[string]*http.Cookie{}}
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits form with the browser's CSRF token, as a rendered form would.
func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if _, ok := b.cookies[middleware.CSRFCookieName]; !ok {
		b.cookies[middleware.CSRFCookieName] = &http.Cookie{Name: middleware.CSRFCookieName, Value: testCSRFToken}
	}
	values := url.Values{}
	for k, v := range form {
		values[k] = v
	}
	values.Set(middleware.CSRFFormField, b.cookies[middleware.CSRFCookieName].Value)
	return b.postRaw(path, values)
}

func (b *browser) postRaw(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return w
}

// follow requests the redirect target of w.
func (b *browser) follow(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	b.t.Helper()
	require.Equal(b.t, http.StatusFound, w.Code)
	return b.get(w.Header().Get("Location"))
}

func (b *browser) login(username, password string) {
	b.t.Helper()
	w := b.post("/login/", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusFound, w.Code, w.Body.String())
	require.Contains(b.t, b.cookies, "sessionid")
}
