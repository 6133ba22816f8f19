package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendConfirmationEmailTaskName  = "sendConfirmationEmailTask"
	SendConfirmationEmailQueueName = "sendConfirmationEmailQueue"
)

type SendConfirmationEmail struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ItemTitle string `json:"item_title"`
}

func NewSendConfirmationEmailTask(email, name, itemTitle string) (*asynq.Task, error) {
	data := SendConfirmationEmail{
		Email:     email,
		Name:      name,
		ItemTitle: itemTitle,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendConfirmationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendConfirmationEmailQueueName),
	), nil
}
