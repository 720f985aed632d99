package dto

import "github.com/google/uuid"

// Answer response types, part of the wire contract with the mobile client.
const (
	AnswerTypeQuestion  = "question"
	AnswerTypeMirror    = "mirror"
	AnswerTypeCompleted = "completed"
)

type PracticeAnswerRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	UserInput string `json:"userInput"`
}

// ReflectionDateParam validates the :date path parameter.
type ReflectionDateParam struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type PracticeAnswerResponse struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ReflectionDetailResponse struct {
	Date    string  `json:"date"`
	React   string  `json:"react"`
	Respond string  `json:"respond"`
	Notice  string  `json:"notice"`
	Learn   string  `json:"learn"`
	Mirror  *string `json:"mirror"`
}

type ReflectionDatesResponse struct {
	Dates []string `json:"dates"`
}

// PublishMirrorReadyMessage is the in-proc event payload published after a
// daily mirror has been persisted.
type PublishMirrorReadyMessage struct {
	ClientId uuid.UUID `json:"client_id"`
	Date     string    `json:"date"`
}
