package dto

type DashboardStatsResponse struct {
	TotalUsers      int64            `json:"total_users"`
	TotalAdmins     int64            `json:"total_admins"`
	TotalPosts      int64            `json:"total_posts"`
	PublishedPosts  int64            `json:"published_posts"`
	DraftPosts      int64            `json:"draft_posts"`
	TotalComments   int64            `json:"total_comments"`
	PostsByCategory map[string]int64 `json:"posts_by_category"`
}

type LogListQuery struct {
	Level  string `query:"level"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
