package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vango-go/vango"
	. "github.com/vango-go/vango/el"
	"github.com/vango-go/vango/setup"

	"creator_inbox/internal/inbox"
	convsvc "creator_inbox/internal/services/conversations"
)

type MessageView struct {
	ID      string
	Preview string
	IsRead  bool
}

func IndexPage(ctx vango.Ctx) *vango.VNode {
	return Div(InboxRoot(""))
}

func ConversationPage(ctx vango.Ctx) *vango.VNode {
	return Div(InboxRoot(ctx.Param("id")))
}

// InboxRoot renders the conversation list with selectedID highlighted and, when
// set, the messages of that conversation.
func InboxRoot(selectedID string) vango.Component {
	return vango.Setup(vango.NoProps{}, func(s vango.SetupCtx[vango.NoProps]) vango.RenderFn {
		dependencies := getDeps()
		service := dependencies.Conversations
		navigator := sessionNavigator{ctx: s.Ctx()}

		summaries := setup.Signal(&s, []inbox.ConversationSummary{})
		messages := setup.Signal(&s, []MessageView{})
		errorText := setup.Signal(&s, "")

		loadSummariesAction := setup.Action(&s,
			func(workCtx context.Context, _ struct{}) ([]inbox.ConversationSummary, error) {
				return service.ListConversations(workCtx, service.ListLimit())
			},
			vango.DropWhileRunning(),
			vango.ActionOnSuccess(func(value any) {
				list, ok := value.([]inbox.ConversationSummary)
				if !ok {
					return
				}
				summaries.Set(validSummaries(list))
				errorText.Set("")
			}),
			vango.ActionOnError(func(err error) {
				errorText.Set(err.Error())
			}),
		)

		openConversationAction := setup.Action(&s,
			func(workCtx context.Context, conversationID string) ([]convsvc.Message, error) {
				if err := service.MarkRead(workCtx, conversationID); err != nil {
					return nil, err
				}
				return service.ListMessages(workCtx, conversationID, service.MessageLimit())
			},
			vango.CancelLatest(),
			vango.ActionOnSuccess(func(value any) {
				rows, ok := value.([]convsvc.Message)
				if !ok {
					messages.Set([]MessageView{})
					return
				}
				messages.Set(toMessageViews(rows))
				errorText.Set("")
				loadSummariesAction.Run(struct{}{})
			}),
			vango.ActionOnError(showErrorAndReload(errorText.Set, func() {
				loadSummariesAction.Run(struct{}{})
			})),
		)

		s.OnMount(func() vango.Cleanup {
			if selectedID != "" {
				openConversationAction.Run(selectedID)
				return nil
			}
			loadSummariesAction.Run(struct{}{})
			return nil
		})

		return func() *vango.VNode {
			list := summaries.Get()
			messageList := messages.Get()
			errorMessage := errorText.Get()
			basePath := service.BasePath()

			var errorNode *vango.VNode
			if errorMessage != "" {
				errorNode = Div(Class("mb-2 text-sm text-red-700"), Text(errorMessage))
			}

			var detailNode *vango.VNode
			if selectedID == "" {
				detailNode = Div(Class("m-auto text-sm text-gray-500"), Text("Select a conversation"))
			} else {
				detailNode = Div(Class("flex-1 overflow-y-auto p-4 space-y-2"),
					RangeKeyed(messageList,
						func(message MessageView) any { return message.ID },
						func(message MessageView) *vango.VNode {
							return Div(Class("rounded-lg border px-4 py-3 max-w-3xl whitespace-pre-wrap"), Text(message.Preview))
						},
					),
				)
			}

			return Div(Class("h-screen flex"),
				Aside(Class("w-80 flex flex-col border-r border-border"),
					Div(Class("p-4 text-sm font-semibold"), Text(fmt.Sprintf("Conversations (%d)", len(list)))),
					errorNode,
					Div(Class("flex-1 overflow-y-auto p-2 space-y-1"),
						RangeKeyed(list,
							func(summary inbox.ConversationSummary) any { return summary.ID },
							func(summary inbox.ConversationSummary) *vango.VNode {
								return ConversationRow(ConversationRowProps{
									Data:      summary,
									Selected:  summary.ID == selectedID,
									BasePath:  basePath,
									Navigator: navigator,
								})
							},
						),
					),
				),
				Div(Class("flex-1 flex flex-col min-w-0"), detailNode),
			)
		}
	})
}

// showErrorAndReload reports a failed conversation load and still loads the
// list, so the sidebar is populated even when the detail pane is not.
func showErrorAndReload(setError func(string), reload func()) func(error) {
	return func(err error) {
		setError(err.Error())
		reload()
	}
}

// validSummaries drops records that cannot be rendered as a row.
func validSummaries(list []inbox.ConversationSummary) []inbox.ConversationSummary {
	valid := make([]inbox.ConversationSummary, 0, len(list))
	for _, summary := range list {
		if err := summary.Validate(); err != nil {
			slog.Warn("skipping conversation", "error", err)
			continue
		}
		valid = append(valid, summary)
	}
	return valid
}

func toMessageViews(rows []convsvc.Message) []MessageView {
	views := make([]MessageView, 0, len(rows))
	for _, row := range rows {
		views = append(views, MessageView{
			ID:      row.ID,
			Preview: inbox.PreviewText(convsvc.ToInboxMessage(row)),
			IsRead:  row.IsRead,
		})
	}
	return views
}
