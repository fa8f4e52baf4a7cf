package http

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"userboard/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler wires HTTP routes to the user service.
type Handler struct {
	users service.UserService
}

func NewHandler(users service.UserService) *Handler {
	return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", h.home)
	router.GET("/user", h.listUsers)
	router.GET("/user/new", h.newUserForm)
	router.POST("/user", h.createUser)
	router.GET("/user/:id/edit", h.editUserForm)
	router.PATCH("/user/:id", h.updateUser)
	router.GET("/user/:id/delete", h.deleteUserForm)
	router.DELETE("/user/:id", h.deleteUser)

	router.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

// MethodOverride rewrites a POST carrying ?_method=PATCH|DELETE|PUT into
// that verb before routing, for plain HTML forms that cannot issue them.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch method := strings.ToUpper(r.URL.Query().Get("_method")); method {
			case http.MethodPatch, http.MethodDelete, http.MethodPut:
				// parse while still a POST: ParseForm skips DELETE bodies
				_ = r.ParseForm()
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

// bindMutationForm maps an urlencoded body into obj. PATCH and DELETE
// bodies are read explicitly because ParseForm only consumes them for
// POST, PUT, and PATCH.
func bindMutationForm(c *gin.Context, obj any) error {
	r := c.Request
	if r.PostForm == nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return err
		}
		r.PostForm = values
	}
	if err := binding.MapFormWithTag(obj, r.PostForm, "form"); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}

type createUserForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type updateUserForm struct {
	Password string `form:"password" binding:"required"`
	Username string `form:"username" binding:"required"`
}

type deleteUserForm struct {
	Password string `form:"password" binding:"required"`
}

func (h *Handler) home(c *gin.Context) {
	count, err := h.users.Count(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Some Error in DB")
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"count": count})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Some error in DB")
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{"users": users})
}

func (h *Handler) newUserForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", nil)
}

func (h *Handler) createUser(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form: %v", err)
		return
	}

	if _, err := h.users.Create(c.Request.Context(), form.Username, form.Email, form.Password); err != nil {
		c.String(http.StatusInternalServerError, "Error adding user to DB")
		return
	}
	c.Redirect(http.StatusFound, "/user")
}

func (h *Handler) editUserForm(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Some error in DB")
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{"user": user})
}

func (h *Handler) updateUser(c *gin.Context) {
	var form updateUserForm
	if err := bindMutationForm(c, &form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form: %v", err)
		return
	}

	err := h.users.UpdateUsername(c.Request.Context(), c.Param("id"), form.Password, form.Username)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.String(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrWrongPassword):
		c.String(http.StatusForbidden, "WRONG password")
	case err != nil:
		c.String(http.StatusInternalServerError, "Error updating username")
	default:
		c.Redirect(http.StatusFound, "/user")
	}
}

func (h *Handler) deleteUserForm(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Some error in DB")
		return
	}
	c.HTML(http.StatusOK, "delete.html", gin.H{"user": user})
}

func (h *Handler) deleteUser(c *gin.Context) {
	var form deleteUserForm
	if err := bindMutationForm(c, &form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form: %v", err)
		return
	}

	err := h.users.Delete(c.Request.Context(), c.Param("id"), form.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.String(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrWrongPassword):
		c.String(http.StatusForbidden, "WRONG password")
	case err != nil:
		c.String(http.StatusInternalServerError, "Error deleting user")
	default:
		c.Redirect(http.StatusFound, "/user")
	}
}
