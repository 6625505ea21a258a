package views

import (
	"strconv"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"golang.org/x/net/html"
)

// CreateSelectOptions returns one option per user, in order, with the user id as
// value and name as label. A nil slice yields nil.
func CreateSelectOptions(users []models.User) []*html.Node {
	if users == nil {
		return nil
	}

	options := make([]*html.Node, 0, len(users))
	for _, user := range users {
		option := dom.CreateElemWithText("option", user.Name, "")
		dom.SetAttr(option, "value", strconv.Itoa(user.ID))
		options = append(options, option)
	}
	return options
}

// PopulateSelectMenu appends the options for users to selectMenu and returns it.
// A nil slice or a missing menu yields nil.
func PopulateSelectMenu(selectMenu *html.Node, users []models.User) *html.Node {
	if users == nil || selectMenu == nil {
		return nil
	}
	dom.Append(selectMenu, CreateSelectOptions(users)...)
	return selectMenu
}

// SelectOption marks the option with value as selected and clears the mark from
// the others. It reports whether a matching option exists.
func SelectOption(selectMenu *html.Node, value string) bool {
	found := false
	for _, option := range dom.QuerySelectorAll(selectMenu, "option") {
		v, _ := dom.Attr(option, "value")
		if v == value && !found {
			dom.SetAttr(option, "selected", "selected")
			found = true
			continue
		}
		dom.RemoveAttr(option, "selected")
	}
	return found
}
