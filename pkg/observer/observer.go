package observer

import "cashtag-mentions/models/entities"

type EventType int

const (
	ReportEvent EventType = 1
)

type Event struct {
	E      EventType
	Report *entities.Report
}

func NewReportEvent(report *entities.Report) Event {
	return Event{Report: report, E: ReportEvent}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
