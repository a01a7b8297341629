package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/service"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/web"
)

type PageController struct {
	contactService service.ContactService
}

func NewPageController(contactService service.ContactService) *PageController {
	return &PageController{contactService: contactService}
}

type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Website string `form:"website"`
	Message string `form:"message"`
}

// Home renders the landing page
// GET /
func (ctrl *PageController) Home(c *gin.Context) {
	render(c, http.StatusOK, "page.html", gin.H{
		"title": "Home",
		"slug":  "home",
	})
}

// Static renders one of the informational pages
// GET /about/, /blog/, ...
func (ctrl *PageController) Static(slug string) gin.HandlerFunc {
	title, ok := web.StaticPages[slug]
	return func(c *gin.Context) {
		if !ok {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "")
			return
		}
		render(c, http.StatusOK, "page.html", gin.H{
			"title": title,
			"slug":  slug,
		})
	}
}

// ContactPage renders the contact form
// GET /contact/
func (ctrl *PageController) ContactPage(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact",
		"form":  ContactForm{},
	})
}

// Contact stores a visitor message. The page is always rendered again.
// POST /contact/
func (ctrl *PageController) Contact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid contact form", map[string]interface{}{
			"error": err.Error(),
		})
	}

	_, err := ctrl.contactService.Submit(c.Request.Context(), service.ContactInput{
		Name:    form.Name,
		Email:   form.Email,
		Website: form.Website,
		Message: form.Message,
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			redisplay(c, "contact.html", middleware.FlashError, err.Error(), gin.H{
				"title": "Contact",
				"form":  form,
			})
			return
		}
		respondWithError(c, err, "store contact message")
		return
	}

	redisplay(c, "contact.html", middleware.FlashSuccess, service.ContactThankYou, gin.H{
		"title": "Contact",
		"form":  ContactForm{},
	})
}
