// Package feedback implements interact.Feedback sinks.
package feedback

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/internal/interact"
)

// Sink is anything that receives interaction feedback.
type Sink = interact.Feedback

// Log writes feedback as log lines. A nil Logger uses the standard logger.
type Log struct {
	Logger *log.Logger
}

func (l Log) Message(text string) {
	l.printf("%s", text)
}

func (l Log) Explode(at mgl64.Vec3) {
	l.printf("explode at %.3f %.3f %.3f", at.X(), at.Y(), at.Z())
}

func (l Log) printf(format string, args ...any) {
	if l.Logger == nil {
		log.Printf(format, args...)
		return
	}
	l.Logger.Printf(format, args...)
}

type multi []Sink

// Multi fans feedback out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Message(text string) {
	for _, s := range m {
		s.Message(text)
	}
}

func (m multi) Explode(at mgl64.Vec3) {
	for _, s := range m {
		s.Explode(at)
	}
}
