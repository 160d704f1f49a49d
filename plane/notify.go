package plane

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

// Notifier is told about every successful plane change. A failing notifier
// never affects the change itself.
type Notifier interface {
	PlaneChanged(id string, p Plane) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(id string, p Plane) error

func (f NotifierFunc) PlaneChanged(id string, p Plane) error {
	return f(id, p)
}

// LogNotifier writes a highlighted line per plane change.
type LogNotifier struct {
	Logger *log.Logger
}

var highlight = color.New(color.FgBlack, color.BgYellow)

func (n LogNotifier) PlaneChanged(id string, p Plane) error {
	msg := fmt.Sprintf("New plane set for #%s: %s", id, highlight.Sprint(p.String()))
	if n.Logger != nil {
		n.Logger.Println(msg)
	} else {
		log.Println(msg)
	}
	return nil
}

// MultiNotifier fans a change out to several notifiers and reports the first
// failure after all of them have run.
type MultiNotifier []Notifier

func (mn MultiNotifier) PlaneChanged(id string, p Plane) error {
	var first error
	for _, n := range mn {
		if n == nil {
			continue
		}
		if err := n.PlaneChanged(id, p); err != nil && first == nil {
			first = err
		}
	}
	return first
}
