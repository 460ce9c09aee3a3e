package facade

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Action is the kind of change an Event reports.
type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionRemoved Action = "removed"
)

// Aggregate names the aggregate an Event belongs to.
type Aggregate string

const (
	AggregatePlaylist Aggregate = "playlist"
	AggregateMedium   Aggregate = "medium"
)

// Event describes a committed change.
type Event struct {
	Action    Action
	Aggregate Aggregate
	ID        uuid.UUID
}

// Observer is notified after a change was committed.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

type observers []Observer

func (o observers) publish(e Event) {
	log.Debug("committed change", "aggregate", e.Aggregate, "action", e.Action, "id", e.ID)
	for _, obs := range o {
		obs.Notify(e)
	}
}
