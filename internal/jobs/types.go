package jobs

const TaskSyncFeed = "feed:sync"

type SyncFeedPayload struct {
	Reason string `json:"reason,omitempty"`
}
