package zonecore

const (
	ProjectID = "zonecore-project" // overridden by GOOGLE_CLOUD_PROJECT in real deployments

	TopicWorkoutScored = "topic-workout-scored"

	CollectionProfiles   = "profiles"
	CollectionResults    = "scoring_results"
	CollectionEffortData = "effort_history"
)
