package controller

import (
	"net/http"

	"github.com/bassista/go_sitedesk/internal/model"
	"github.com/gin-gonic/gin"
)

type UserStore interface {
	User() (model.User, bool)
}

type UserController struct {
	store UserStore
}

func NewUserController(store UserStore) *UserController {
	return &UserController{store: store}
}

// GetUser returns the session user, 404 until it has been loaded.
func (uc *UserController) GetUser(c *gin.Context) {
	user, ok := uc.store.User()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not loaded"})
		return
	}
	c.JSON(http.StatusOK, user)
}
