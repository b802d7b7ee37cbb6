package routes

import (
	"errors"
	"log/slog"

	"github.com/vango-go/vango"
	. "github.com/vango-go/vango/el"

	"creator_inbox/internal/inbox"
)

// Navigator performs client-side navigation to path.
type Navigator interface {
	Navigate(path string)
}

type sessionNavigator struct {
	ctx vango.Ctx
}

func (n sessionNavigator) Navigate(path string) {
	n.ctx.Navigate(path)
}

type ConversationRowProps struct {
	Data      inbox.ConversationSummary
	Selected  bool
	BasePath  string
	Navigator Navigator
}

// rowText is a text run and the class it renders with.
type rowText struct {
	Text  string
	Class string
}

type rowView struct {
	Name     rowText
	Preview  rowText
	RowClass string
	OnClick  func()
}

func newRowView(props ConversationRowProps) rowView {
	read, err := inbox.ReadState(props.Data)
	if err != nil {
		var missing *inbox.MissingMessageError
		if errors.As(err, &missing) {
			slog.Debug("conversation row without message", "conversation", missing.ConversationID)
		} else {
			slog.Error("conversation read state", "error", err)
		}
		read = true
	}

	return rowView{
		Name:     rowText{Text: props.Data.Name, Class: inbox.NameClass},
		Preview:  rowText{Text: inbox.PreviewText(props.Data.Message), Class: inbox.PreviewClass(read)},
		RowClass: inbox.RowClass(props.Selected),
		OnClick: func() {
			if props.Selected || props.Navigator == nil {
				return
			}
			props.Navigator.Navigate(props.Data.Path(props.BasePath))
		},
	}
}

func ConversationRow(props ConversationRowProps) *vango.VNode {
	view := newRowView(props)
	return Div(
		Class(view.RowClass),
		OnClick(view.OnClick),
		Div(Class("flex-0 w-full min-w-0"),
			Div(Class("focus:outline-none"),
				Div(Class("mb-1 flex items-center justify-between"),
					textNode(view.Name),
				),
				textNode(view.Preview),
			),
		),
	)
}

func textNode(run rowText) *vango.VNode {
	return P(Class(run.Class), Text(run.Text))
}
