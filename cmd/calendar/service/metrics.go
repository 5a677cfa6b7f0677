package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_events_created_total",
			Help: "Events persisted, by operation",
		},
		[]string{"operation"},
	)

	eventConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_event_conflicts_total",
			Help: "Writes rejected because the interval overlaps a live event",
		},
		[]string{"operation"},
	)

	memberCapacityRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "calendar_member_capacity_rejections_total",
			Help: "Member invitations rejected because the event is full",
		},
	)
)
