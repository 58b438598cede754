package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListFunc reads one collection from the store. A nil result means "not loaded yet".
type ListFunc[T any] func() []T

// ListController serves a read-only collection.
type ListController[T any] struct {
	List ListFunc[T]
}

// GetAll writes the collection as a JSON array, [] when it has not been loaded.
func (lc *ListController[T]) GetAll(c *gin.Context) {
	writeList(c, lc.List())
}

func writeList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}
