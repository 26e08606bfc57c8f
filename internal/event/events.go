package event

import (
	"time"

	"github.com/dshills/selex/internal/event/topic"
)

// Topics published by the application.
const (
	// TopicSelectionsChanged is published when a command replaces the regions.
	TopicSelectionsChanged topic.Topic = "selections.changed"

	// TopicCommandCompleted is published after every dispatched command.
	TopicCommandCompleted topic.Topic = "command.completed"

	// TopicModeChanged is published on every Normal/Awaiting transition.
	TopicModeChanged topic.Topic = "mode.changed"

	// TopicConfigReloaded is published after the config file is reloaded.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// SelectionsChanged is the payload of TopicSelectionsChanged.
type SelectionsChanged struct {
	Action string
	Before int
	After  int
}

// CommandCompleted is the payload of TopicCommandCompleted.
type CommandCompleted struct {
	Action   string
	Status   string
	Pattern  string
	Message  string
	Duration time.Duration
}

// ModeChanged is the payload of TopicModeChanged.
type ModeChanged struct {
	From string
	To   string
}

// ConfigReloaded is the payload of TopicConfigReloaded.
type ConfigReloaded struct {
	Path string
}
