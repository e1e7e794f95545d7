package domain

import "time"

// Label is the service's classification of one transaction.
type Label string

const (
	LabelFraud      Label = "fraud"
	LabelLegitimate Label = "legitimate"
)

// Outcome is one normalized prediction from the scoring service.
// FraudScore always holds a value: when the service omits a distinct
// fraud_score, the orchestrator copies Probability into it.
type Outcome struct {
	Label       Label   `json:"label"`
	Probability float64 `json:"probability"`
	FraudScore  float64 `json:"fraud_score"`
}

// ResultStatus marks whether a reconciled result came from a successful
// submission.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// Result pairs a scored outcome with the exact input record it came from.
// Created by the reconciler, owned by the calling layer for the duration
// of the session; not persisted locally (the optional history sink keeps
// its own copies).
type Result struct {
	ID          string       `json:"id"`
	Record      Record       `json:"transaction"`
	Raw         RawRow       `json:"raw,omitempty"`
	Outcome     Outcome      `json:"prediction"`
	SubmittedAt time.Time    `json:"timestamp"`
	Status      ResultStatus `json:"status"`
}
