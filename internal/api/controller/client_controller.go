package controller

import (
	"github.com/bassista/go_sitedesk/internal/model"
	"github.com/gin-gonic/gin"
)

// ClientStore is the part of the store the client endpoints read.
type ClientStore interface {
	Clients() []model.Client
	ClientOptions() []model.Option
	TagOptions() []string
}

type ClientController struct {
	clients *ListController[model.Client]
	options *ListController[model.Option]
	tags    *ListController[string]
}

func NewClientController(store ClientStore) *ClientController {
	return &ClientController{
		clients: &ListController[model.Client]{List: store.Clients},
		options: &ListController[model.Option]{List: store.ClientOptions},
		tags:    &ListController[string]{List: store.TagOptions},
	}
}

func (cc *ClientController) AllClients(c *gin.Context) { cc.clients.GetAll(c) }

// ClientOptions lists clients as select entries.
func (cc *ClientController) ClientOptions(c *gin.Context) { cc.options.GetAll(c) }

// TagOptions lists the tags of all clients, duplicates included.
func (cc *ClientController) TagOptions(c *gin.Context) { cc.tags.GetAll(c) }
