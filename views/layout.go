// Package views builds the page markup: the page shell and the option, post and
// comment elements appended into it.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/page.html
var pageTemplates embed.FS

var shellTemplate = template.Must(template.New("page").ParseFS(pageTemplates, "templates/page.html"))

const (
	PlaceholderText = "Select an Employee to display their posts."
	ToggleFormID    = "toggleForm"
	SelectMenuID    = "selectMenu"
)

// ToggleAction is the form action a post's comment button submits to.
func ToggleAction(postID int) string {
	return fmt.Sprintf("/posts/%d/toggle", postID)
}

// Shell renders the page's structural markup: the header with the user menu and
// an empty main container holding the placeholder paragraph.
func Shell(title, sourceURL string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Title        string
		Placeholder  string
		ToggleFormID string
		SourceURL    string
	}{
		Title:        title,
		Placeholder:  PlaceholderText,
		ToggleFormID: ToggleFormID,
		SourceURL:    sourceURL,
	}
	if err := shellTemplate.ExecuteTemplate(&buf, "page.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
