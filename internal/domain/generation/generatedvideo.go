package generation

import (
	"time"

	vo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
)

// DefaultFailureMessage is stored when the provider reports failure without a reason.
const DefaultFailureMessage = "Video generation failed"

// VideoSpec is the render configuration sent to the provider.
type VideoSpec struct {
	Resolution      string
	AspectRatio     string
	DurationSeconds int
}

// ProviderSnapshot is the last status the provider reported for a task.
type ProviderSnapshot struct {
	Status     string    `json:"status"`
	Progress   int       `json:"progress"`
	Error      string    `json:"error,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}

// GeneratedVideo tracks one provider task. countAdjusted records that the
// quota slot of a failed task has been refunded.
type GeneratedVideo struct {
	id            uint
	projectID     string
	taskID        string
	status        vo.VideoStatus
	videoURL      string
	storagePath   string
	errorMessage  string
	spec          VideoSpec
	countAdjusted bool
	snapshot      *ProviderSnapshot
	createdAt     time.Time
	completedAt   *time.Time
	updatedAt     time.Time
}

func NewGeneratedVideo(projectID, taskID string, spec VideoSpec) (*GeneratedVideo, error) {
	if projectID == "" {
		return nil, ErrProjectIDMissing
	}
	if taskID == "" {
		return nil, ErrTaskIDMissing
	}
	now := time.Now().UTC()
	return &GeneratedVideo{
		projectID: projectID,
		taskID:    taskID,
		status:    vo.VideoStatusPending,
		spec:      spec,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructGeneratedVideo(
	id uint,
	projectID, taskID string,
	status vo.VideoStatus,
	videoURL, storagePath, errorMessage string,
	spec VideoSpec,
	countAdjusted bool,
	snapshot *ProviderSnapshot,
	createdAt time.Time,
	completedAt *time.Time,
	updatedAt time.Time,
) *GeneratedVideo {
	return &GeneratedVideo{
		id:            id,
		projectID:     projectID,
		taskID:        taskID,
		status:        status,
		videoURL:      videoURL,
		storagePath:   storagePath,
		errorMessage:  errorMessage,
		spec:          spec,
		countAdjusted: countAdjusted,
		snapshot:      snapshot,
		createdAt:     createdAt,
		completedAt:   completedAt,
		updatedAt:     updatedAt,
	}
}

func (v *GeneratedVideo) ID() uint { return v.id }
func (v *GeneratedVideo) ProjectID() string { return v.projectID }
func (v *GeneratedVideo) TaskID() string { return v.taskID }
func (v *GeneratedVideo) Status() vo.VideoStatus { return v.status }
func (v *GeneratedVideo) VideoURL() string { return v.videoURL }
func (v *GeneratedVideo) StoragePath() string { return v.storagePath }
func (v *GeneratedVideo) ErrorMessage() string { return v.errorMessage }
func (v *GeneratedVideo) Spec() VideoSpec { return v.spec }
func (v *GeneratedVideo) CountAdjusted() bool { return v.countAdjusted }
func (v *GeneratedVideo) Snapshot() *ProviderSnapshot { return v.snapshot }
func (v *GeneratedVideo) CreatedAt() time.Time { return v.createdAt }
func (v *GeneratedVideo) CompletedAt() *time.Time { return v.completedAt }
func (v *GeneratedVideo) UpdatedAt() time.Time { return v.updatedAt }

func (v *GeneratedVideo) SetID(id uint) {
	v.id = id
}

func (v *GeneratedVideo) RecordSnapshot(status string, progress int, errMsg string) {
	v.snapshot = &ProviderSnapshot{
		Status:     status,
		Progress:   progress,
		Error:      errMsg,
		ObservedAt: time.Now().UTC(),
	}
}

func (v *GeneratedVideo) MarkProcessing() {
	v.status = vo.VideoStatusProcessing
	v.updatedAt = time.Now().UTC()
}

// Complete stores the final asset. storagePath is empty when the copy to
// object storage did not succeed.
func (v *GeneratedVideo) Complete(videoURL, storagePath string) {
	now := time.Now().UTC()
	v.status = vo.VideoStatusCompleted
	v.videoURL = videoURL
	v.storagePath = storagePath
	v.completedAt = &now
	v.updatedAt = now
}

func (v *GeneratedVideo) Fail(reason string) {
	if reason == "" {
		reason = DefaultFailureMessage
	}
	v.status = vo.VideoStatusFailed
	v.errorMessage = reason
	v.updatedAt = time.Now().UTC()
}
