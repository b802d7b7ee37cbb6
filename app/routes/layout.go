package routes

import (
	"github.com/vango-go/vango"
	. "github.com/vango-go/vango/el"

	"creator_inbox/internal/inbox"
)

func Layout(ctx vango.Ctx, children vango.Slot) *vango.VNode {
	return Html(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Meta(Name("color-scheme"), Content("light dark")),
			Title(Text("Inbox")),
			LinkEl(Rel("stylesheet"), Href(ctx.Asset("styles.css"))),
		),
		Body(Class(inbox.BodyClass),
			children,
			VangoScripts(),
		),
	)
}
