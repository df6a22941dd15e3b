package compositor

import (
	"fmt"
	"io"
)

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// WriterNotifier prints alerts as lines on w.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Alert(message string) {
	fmt.Fprintln(n.W, message)
}

type nopNotifier struct{}

func (nopNotifier) Alert(string) {}
