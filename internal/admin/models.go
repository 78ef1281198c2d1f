package admin

// SystemStats holds platform-wide totals for the admin dashboard.
type SystemStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalVideos   int64 `json:"totalVideos"`
	TotalViews    int64 `json:"totalViews"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	TotalTweets   int64 `json:"totalTweets"`
}
