package usecases

// ContentRenderer cleans reviewer supplied text. Sanitize strips markup before
// storage; ToHTML renders stored markdown for display.
type ContentRenderer interface {
	Sanitize(text string) string
	ToHTML(text string) (string, error)
}
