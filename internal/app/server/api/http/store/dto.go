package store

import (
	"encoding/json"
	"time"
)

type getInput struct {
	Kind string `path:"kind" example:"progress" doc:"Тип документа: progress, user или settings"`
}

type getOutput struct {
	Body documentResponse
}

type putInput struct {
	Kind string `path:"kind" example:"progress" doc:"Тип документа: progress, user или settings"`
	Body putRequest
}

type putRequest struct {
	Payload json.RawMessage `json:"payload" doc:"Содержимое документа (произвольный JSON)"`
}

type putOutput struct {
	Body documentResponse
}

type deleteInput struct {
	Kind string `path:"kind" example:"progress" doc:"Тип документа: progress, user или settings"`
}

type deleteOutput struct {
	Body statusResponse
}

type documentResponse struct {
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type statusResponse struct {
	Status string `json:"status"`
}
