package dashboard

// ChannelStats aggregates a channel owner's cross-entity totals.
//
// TotalLikes counts every like row whose target (video, tweet, or comment)
// is owned by the channel; each row is counted exactly once.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}
