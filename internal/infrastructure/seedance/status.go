package seedance

import "github.com/reelpop-inc/reelpop/internal/application/generation/gateway"

// normalizeStatus maps the provider's status vocabulary onto gateway states.
// Unrecognized values are treated as still processing so a new provider
// status never settles a task by accident.
func normalizeStatus(s string) gateway.TaskState {
	switch s {
	case "queued", "pending":
		return gateway.TaskQueued
	case "running", "processing":
		return gateway.TaskProcessing
	case "succeeded", "completed":
		return gateway.TaskCompleted
	case "failed", "cancelled", "canceled", "expired":
		return gateway.TaskFailed
	default:
		return gateway.TaskProcessing
	}
}
