// Package scheduler runs background work over asynq: the outbox dispatcher
// that turns due notification rows into tasks, the periodic rescore sweep,
// and the worker that processes both.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskNotificationOutboxDue = "notification.outbox.due"

const TaskContactRescore = "scoring.rescore"

type NotificationOutboxDuePayload struct {
	OutboxID string `json:"outboxId"`
}

func NewNotificationOutboxDueTask(payload NotificationOutboxDuePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationOutboxDue, data), nil
}

func ParseNotificationOutboxDuePayload(task *asynq.Task) (NotificationOutboxDuePayload, error) {
	var payload NotificationOutboxDuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotificationOutboxDuePayload{}, err
	}
	return payload, nil
}

func NewContactRescoreTask() *asynq.Task {
	return asynq.NewTask(TaskContactRescore, nil)
}
