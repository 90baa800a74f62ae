package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/statsweb/internal/tasks"
)

var _ list.Item = resultItem{}

// resultItem wraps [tasks.WarmResult] to implement [list.Item].
type resultItem struct {
	result tasks.WarmResult
}

func (i resultItem) FilterValue() string { return i.result.Key }

func (i resultItem) Title() string {
	if i.result.Error != nil {
		return "✗ " + i.result.Key
	}
	return "✓ " + i.result.Name
}

func (i resultItem) Description() string {
	if i.result.Error != nil {
		return i.result.Error.Error()
	}
	return i.result.Key
}
