package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/config"
	"github.com/learnhub/learnhub-backend/internal/app/controller"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/web"
)

type Router struct {
	authController   *controller.AuthController
	pageController   *controller.PageController
	courseController *controller.CourseController
	authMiddleware   *middleware.AuthMiddleware
	templates        *template.Template
	config           *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	pageController *controller.PageController,
	courseController *controller.CourseController,
	authMiddleware *middleware.AuthMiddleware,
	templates *template.Template,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:   authController,
		pageController:   pageController,
		courseController: courseController,
		authMiddleware:   authMiddleware,
		templates:        templates,
		config:           cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.SetHTMLTemplate(r.templates)

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.FlashMiddleware())
	router.Use(middleware.CSRFMiddleware(r.config.Session.CookieSecure))
	router.Use(r.authMiddleware.LoadSession())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "LearnHub is running",
		})
	})

	router.Static("/static", "./static")

	router.GET("/", r.pageController.Home)
	for slug := range web.StaticPages {
		router.GET("/"+slug+"/", r.pageController.Static(slug))
	}
	router.GET("/contact/", r.pageController.ContactPage)
	router.POST("/contact/", r.pageController.Contact)

	router.GET("/register/", r.authController.RegisterPage)
	router.POST("/register/", r.authController.Register)
	router.GET("/login/", r.authController.LoginPage)
	router.POST("/login/", r.authController.Login)
	router.GET("/logout/", r.authController.Logout)

	router.GET("/forgot-password/", r.authController.ForgotPasswordPage)
	router.POST("/forgot-password/", r.authController.ForgotPassword)
	router.GET("/reset-password/:uid/:token/", r.authController.ResetPasswordPage)
	router.POST("/reset-password/:uid/:token/", r.authController.ResetPassword)

	account := router.Group("/")
	account.Use(r.authMiddleware.RequireSession())
	{
		account.GET("/dashboard/", r.courseController.Dashboard)
		account.GET("/change-password/", r.authController.ChangePasswordPage)
		account.POST("/change-password/", r.authController.ChangePassword)
	}

	courses := router.Group("/courses")
	{
		courses.GET("/", r.courseController.ListCourses)
		courses.GET("/:id/details/", r.courseController.CourseDetails)
		courses.GET("/:id/payment/", r.courseController.CoursePayment)
	}

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "")
	})

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
