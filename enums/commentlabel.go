package enums

// CommentLabel is the visible text of a post's comment toggle button.
// The label doubles as the button's toggle state.
type CommentLabel string

const (
	// CommentLabelShow is shown while the comment section is hidden.
	CommentLabelShow CommentLabel = "Show Comments"

	// CommentLabelHide is shown while the comment section is visible.
	CommentLabelHide CommentLabel = "Hide Comments"
)

// Next returns the label a button shows after one click.
// Any text other than CommentLabelShow flips back to CommentLabelShow.
func (l CommentLabel) Next() CommentLabel {
	if l == CommentLabelShow {
		return CommentLabelHide
	}
	return CommentLabelShow
}

func (l CommentLabel) String() string {
	return string(l)
}
