package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/service"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

// Notices shown by the account pages
const (
	NoticeLoginSuccess    = "Login successful."
	NoticeLoggedOut       = "You have been logged out."
	NoticeRegistered      = "Registration successful. You can log in now."
	NoticeResetLinkSent   = "Password reset link has been sent to your email."
	NoticePasswordReset   = "Password has been reset. You can log in now."
	NoticePasswordChanged = "Password changed successfully."
	dashboardPath         = "/dashboard/"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
	sessionCookie        middleware.SessionCookie
	publicURL            string
	allowedHosts         []string
}

func NewAuthController(
	authService service.AuthService,
	passwordResetService service.PasswordResetService,
	sessionCookie middleware.SessionCookie,
	publicURL string,
	allowedHosts []string,
) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
		sessionCookie:        sessionCookie,
		publicURL:            publicURL,
		allowedHosts:         allowedHosts,
	}
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	IsStudent       bool   `form:"is_student"`
	IsLecturer      bool   `form:"is_lecturer"`
}

type ForgotPasswordForm struct {
	Email string `form:"email"`
}

type ResetPasswordForm struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

type ChangePasswordForm struct {
	OldPassword     string `form:"old_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginPage renders the login form
// GET /login/
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
		"next":  c.Query("next"),
	})
}

// Login signs the user in and sets the session cookie
// POST /login/
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid login form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	user, session, err := ctrl.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindAuthentication) {
			log.Warn("Login failed", map[string]interface{}{
				"username": form.Username,
			})
			redisplay(c, "login.html", middleware.FlashError, err.Error(), gin.H{
				"title":    "Log in",
				"username": form.Username,
				"next":     form.Next,
			})
			return
		}
		respondWithError(c, err, "log in")
		return
	}

	ctrl.sessionCookie.Set(c, session.Token, session.ExpiresAt)
	log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	redirectWithNotice(c, safeNext(form.Next, dashboardPath), middleware.FlashSuccess, NoticeLoginSuccess)
}

// Logout revokes the session and clears the cookie
// GET /logout/
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if claims, ok := middleware.GetSessionClaims(c); ok {
		if err := ctrl.authService.Logout(c.Request.Context(), claims); err != nil {
			log.Error("Failed to revoke session", err, map[string]interface{}{
				"user_id": claims.UserID,
			})
		}
	}

	ctrl.sessionCookie.Clear(c)
	redirectWithNotice(c, middleware.LoginPath, middleware.FlashInfo, NoticeLoggedOut)
}

// RegisterPage renders the registration form
// GET /register/
func (ctrl *AuthController) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{
		"title": "Register",
		"form":  RegisterForm{},
	})
}

// Register creates the account
// POST /register/
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid registration form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	_, err := ctrl.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		IsStudent:       form.IsStudent,
		IsLecturer:      form.IsLecturer,
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			redisplay(c, "register.html", middleware.FlashError, err.Error(), gin.H{
				"title": "Register",
				"form":  form,
			})
			return
		}
		respondWithError(c, err, "register user")
		return
	}

	redirectWithNotice(c, middleware.LoginPath, middleware.FlashSuccess, NoticeRegistered)
}

// ForgotPasswordPage renders the reset request form
// GET /forgot-password/
func (ctrl *AuthController) ForgotPasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "forgot_password.html", gin.H{
		"title": "Forgot password",
	})
}

// ForgotPassword mails a reset link. The page is always rendered again.
// POST /forgot-password/
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form ForgotPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid forgot password form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	base, err := baseURL(c, ctrl.publicURL, ctrl.allowedHosts)
	if err != nil {
		log.Warn("Reset link refused for host", map[string]interface{}{
			"host": c.Request.Host,
		})
		respondWithError(c, err, "build reset link")
		return
	}

	_, err = ctrl.passwordResetService.RequestReset(c.Request.Context(), service.ResetRequest{
		Email:     form.Email,
		BaseURL:   base,
		RequestIP: c.ClientIP(),
	})
	switch {
	case err == nil:
		redisplay(c, "forgot_password.html", middleware.FlashSuccess, NoticeResetLinkSent, gin.H{
			"title": "Forgot password",
		})
	case errors.Is(err, service.ErrEmailNotRegistered):
		redisplay(c, "forgot_password.html", middleware.FlashError, err.Error(), gin.H{
			"title": "Forgot password",
			"email": form.Email,
		})
	default:
		respondWithError(c, err, "send password reset link")
	}
}

// ResetPasswordPage checks the link and renders the new password form
// GET /reset-password/:uid/:token/
func (ctrl *AuthController) ResetPasswordPage(c *gin.Context) {
	uid, token := c.Param("uid"), c.Param("token")

	_, valid, err := ctrl.passwordResetService.CheckResetLink(uid, token)
	if err != nil {
		respondWithError(c, err, "check reset link")
		return
	}

	data := resetPageData(uid, token, valid)
	if !valid {
		redisplay(c, "reset_password.html", middleware.FlashError, service.ErrInvalidResetLink.Message, data)
		return
	}
	render(c, http.StatusOK, "reset_password.html", data)
}

// ResetPassword sets the new password from a reset link
// POST /reset-password/:uid/:token/
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	uid, token := c.Param("uid"), c.Param("token")

	var form ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid reset password form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	err := ctrl.passwordResetService.ResetPassword(c.Request.Context(), uid, token, form.Password, form.ConfirmPassword)
	switch {
	case err == nil:
		redirectWithNotice(c, middleware.LoginPath, middleware.FlashSuccess, NoticePasswordReset)
	case errors.Is(err, service.ErrUserNotFound):
		redirectWithNotice(c, middleware.LoginPath, middleware.FlashError, err.Error())
	case errors.Is(err, service.ErrInvalidResetLink):
		redisplay(c, "reset_password.html", middleware.FlashError, err.Error(), resetPageData(uid, token, false))
	case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrPasswordRequired):
		redisplay(c, "reset_password.html", middleware.FlashError, err.Error(), resetPageData(uid, token, true))
	default:
		respondWithError(c, err, "reset password")
	}
}

func resetPageData(uid, token string, valid bool) gin.H {
	return gin.H{
		"title":  "Reset password",
		"valid":  valid,
		"uidb64": uid,
		"token":  token,
	}
}

// ChangePasswordPage renders the change password form
// GET /change-password/
func (ctrl *AuthController) ChangePasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "change_password.html", gin.H{
		"title": "Change password",
	})
}

// ChangePassword updates the password and keeps the current session alive
// POST /change-password/
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	var form ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid change password form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	session, err := ctrl.authService.ChangePassword(c.Request.Context(), userID, form.OldPassword, form.NewPassword, form.ConfirmPassword)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			redisplay(c, "change_password.html", middleware.FlashError, err.Error(), gin.H{
				"title": "Change password",
			})
			return
		}
		respondWithError(c, err, "change password")
		return
	}

	ctrl.sessionCookie.Set(c, session.Token, session.ExpiresAt)
	redirectWithNotice(c, dashboardPath, middleware.FlashSuccess, NoticePasswordChanged)
}
