package shipments

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onCancelled, onRated actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"cancelled": onCancelled,
			"canceled":  onCancelled,
			"rated":     onRated,
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
