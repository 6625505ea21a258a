package views

import (
	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"golang.org/x/net/html"
)

// CreateComments builds one article per comment into a single fragment.
// A nil slice yields nil.
func CreateComments(comments []models.Comment) *html.Node {
	if comments == nil {
		return nil
	}

	fragment := dom.NewFragment()
	for _, comment := range comments {
		article := dom.CreateElement("article")
		dom.Append(article,
			dom.CreateElemWithText("h3", comment.Name, ""),
			dom.CreateElemWithText("p", comment.Body, ""),
			dom.CreateElemWithText("p", "From: "+comment.Email, ""),
		)
		dom.Append(fragment, article)
	}
	return fragment
}
