package routes

import (
	"github.com/vango-go/vango"

	"creator_inbox/app/routes/api"
)

func Register(app *vango.App, basePath string) {
	app.Layout("/", Layout)
	app.Page("/", IndexPage)
	app.Page(basePath, IndexPage)
	app.Page(basePath+"/:id", ConversationPage)
	app.API("GET", "/api/health", api.HealthGET)
	app.API("GET", "/api/conversations", api.ConversationsGET)
	app.API("POST", "/api/conversations", api.ConversationsPOST)
	app.API("GET", "/api/conversations/:id", api.ConversationGET)
	app.API("POST", "/api/conversations/:id/messages", api.ConversationMessagesPOST)
}
