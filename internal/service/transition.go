package service

import (
	"adflow.app/tracker/internal/model"
)

// ValidateTransition checks a requested status change against the lifecycle
// table in model. creatives is the project's live creative count.
//
// Checks run in a fixed order: an approved project reports ErrTerminalState
// for any request, a missing edge reports ErrInvalidTransition, and entering a
// status that needs deliverables with none reports ErrPreconditionFailed.
func ValidateTransition(current, requested model.ProjectStatus, creatives int64) error {
	if current.IsTerminal() {
		return &TransitionError{From: current, To: requested, kind: ErrTerminalState}
	}
	if !requested.IsValid() {
		return invalidField("status", "unknown project status")
	}
	if !current.CanTransitionTo(requested) {
		return &TransitionError{From: current, To: requested, kind: ErrInvalidTransition}
	}
	if info, _ := requested.Info(); info.RequiresCreatives && creatives == 0 {
		return &TransitionError{From: current, To: requested, Reason: "no creatives", kind: ErrPreconditionFailed}
	}
	return nil
}

// ValidateReviewDecision checks approve and request-revision, which are only
// offered while a project waits for the client in Ready.
func ValidateReviewDecision(current, decision model.ProjectStatus, creatives int64) error {
	if current.IsTerminal() {
		return &TransitionError{From: current, To: decision, kind: ErrTerminalState}
	}
	if current != model.ProjectStatusReady {
		return &TransitionError{From: current, To: decision, Reason: "project is not ready for review", kind: ErrInvalidTransition}
	}
	return ValidateTransition(current, decision, creatives)
}
