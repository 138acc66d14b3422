package physics

import (
	"io"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "physics: ", log.LstdFlags)

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}
