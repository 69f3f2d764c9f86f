package valueobjects

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusGenerating ProjectStatus = "generating"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusFailed     ProjectStatus = "failed"
)

func (s ProjectStatus) String() string {
	return string(s)
}

func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusFailed
}

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

// QuotaCountedVideoStatuses are the statuses that consume a free-plan slot.
var QuotaCountedVideoStatuses = []VideoStatus{
	VideoStatusPending,
	VideoStatusProcessing,
	VideoStatusCompleted,
}

func (s VideoStatus) String() string {
	return string(s)
}

func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusCompleted || s == VideoStatusFailed
}
