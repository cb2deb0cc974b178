package report

import (
	"cashtag-mentions/models/entities"
	"cashtag-mentions/pkg/observer"
	"io"
)

const jsonIndent = "  "

// Meta describes the run a report is built for. Account is set in single
// mode, Handles in multi mode.
type Meta struct {
	Window       entities.TimeWindow
	Account      string
	Handles      []string
	PostsScanned int
}

type Service interface {
	Print(report entities.Report) error
	observer.Observer
}

type Impl struct {
	out io.Writer
}
