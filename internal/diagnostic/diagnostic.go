// Package diagnostic provides the validation-message convention shared by
// every exported type in this module: a (bool, []Message) pair describing
// whether a value is usable and, if not, why.
package diagnostic

// Message is a single validation diagnostic.
type Message struct {
	Title       string
	Description string
}

// Append appends a message to the list if messages is non-nil, mirroring
// the original software's "append to *list if provided" convention.
func Append(messages *[]Message, title, description string) {
	if messages == nil {
		return
	}
	*messages = append(*messages, Message{Title: title, Description: description})
}
