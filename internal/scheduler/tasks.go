package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCartSweep = "carts.sweep"

type CartSweepPayload struct {
	MemberID string `json:"memberId"`
}

func NewCartSweepTask(payload CartSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartSweep, data), nil
}

func ParseCartSweepPayload(task *asynq.Task) (CartSweepPayload, error) {
	var payload CartSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CartSweepPayload{}, err
	}
	return payload, nil
}
