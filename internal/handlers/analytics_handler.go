package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves engagement statistics for the current user's
// content. Counts are always recomputed from the underlying rows.
type AnalyticsHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	followRepository  repositories.FollowRepository
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	userRepository repositories.UserRepository,
	postRepository repositories.PostRepository,
	likeRepository repositories.LikeRepository,
	commentRepository repositories.CommentRepository,
	followRepository repositories.FollowRepository,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		userRepository:    userRepository,
		postRepository:    postRepository,
		likeRepository:    likeRepository,
		commentRepository: commentRepository,
		followRepository:  followRepository,
	}
}

// RegisterAnalyticsRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/overview", h.GetOverview)
	g.GET("/analytics/posts", h.GetPostStats)
	g.GET("/analytics/likes/monthly", h.GetMonthlyLikes)
	g.GET("/analytics/likes/yearly", h.GetYearlyLikes)
	g.GET("/analytics/followers/monthly", h.GetMonthlyFollowers)
	g.GET("/analytics/followers/yearly", h.GetYearlyFollowers)
	g.GET("/analytics/followers", h.GetFollowerList)
	g.GET("/analytics/following", h.GetFollowingList)
	g.GET("/analytics/posts/:post_id/likes", h.GetPostLikers)
	g.GET("/analytics/posts/:post_id/comments", h.GetPostCommenters)
}

// PostStat carries recomputed engagement counts for one post
type PostStat struct {
	PostID       uint      `json:"postId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

// PeriodCount is one time bucket with its event count
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// GetOverview returns headline counts for the current user
func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postsCount, err := h.postRepository.CountPostsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	followersCount, err := h.followRepository.GetFollowersCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	followingCount, err := h.followRepository.GetFollowingCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}

	likeTimes, err := h.likeRepository.GetLikeTimesForAuthor(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"postsCount":     postsCount,
		"followersCount": followersCount,
		"followingCount": followingCount,
		"totalLikes":     len(likeTimes),
	})
}

// GetPostStats returns per-post like and comment counts, newest post first
func (h *AnalyticsHandler) GetPostStats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.postRepository.ListPostsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	stats := make([]PostStat, 0, len(posts))
	for _, post := range posts {
		likeCount, err := h.likeRepository.GetLikesCountByPostID(post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
		}
		commentCount, err := h.commentRepository.GetCommentsCountByPostID(post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
		}
		stats = append(stats, PostStat{
			PostID:       post.ID,
			Content:      post.Content,
			CreatedAt:    post.CreatedAt,
			LikeCount:    likeCount,
			CommentCount: commentCount,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": stats})
}

// GetMonthlyLikes returns like counts on the user's posts bucketed by month
func (h *AnalyticsHandler) GetMonthlyLikes(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	times, err := h.likeRepository.GetLikeTimesForAuthor(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": bucketByPeriod(times, "2006-01")})
}

// GetYearlyLikes returns like counts on the user's posts bucketed by year
func (h *AnalyticsHandler) GetYearlyLikes(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	times, err := h.likeRepository.GetLikeTimesForAuthor(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": bucketByPeriod(times, "2006")})
}

// GetMonthlyFollowers returns new-follower counts bucketed by month
func (h *AnalyticsHandler) GetMonthlyFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	times, err := h.followRepository.GetFollowerTimes(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": bucketByPeriod(times, "2006-01")})
}

// GetYearlyFollowers returns new-follower counts bucketed by year
func (h *AnalyticsHandler) GetYearlyFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	times, err := h.followRepository.GetFollowerTimes(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": bucketByPeriod(times, "2006")})
}

// GetFollowerList returns the users following the current user
func (h *AnalyticsHandler) GetFollowerList(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	follows, err := h.followRepository.GetFollowers(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch followers")
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}
	users, err := h.compactUsers(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch followers")
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": users})
}

// GetFollowingList returns the users the current user follows
func (h *AnalyticsHandler) GetFollowingList(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	follows, err := h.followRepository.GetFollowing(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch following")
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}
	users, err := h.compactUsers(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch following")
	}
	return c.JSON(http.StatusOK, echo.Map{"following": users})
}

// GetPostLikers returns who liked a post. Only the post owner may ask.
func (h *AnalyticsHandler) GetPostLikers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only view analytics for your own posts")
	}

	likes, err := h.likeRepository.GetLikesByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch likes")
	}

	ids := make([]uint, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.UserID)
	}
	users, err := h.compactUsers(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch likes")
	}
	return c.JSON(http.StatusOK, echo.Map{"likes": users})
}

// GetPostCommenters returns the comments on a post together with their
// authors. Only the post owner may ask.
func (h *AnalyticsHandler) GetPostCommenters(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only view analytics for your own posts")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}

	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.UserID)
	}
	authors, err := h.compactUserMap(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}

	type commenter struct {
		Comment models.Comment     `json:"comment"`
		Author  models.UserCompact `json:"author"`
	}
	out := make([]commenter, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commenter{Comment: comment, Author: authors[comment.UserID]})
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": out})
}

func (h *AnalyticsHandler) compactUsers(ids []uint) ([]models.UserCompact, error) {
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToCompact())
	}
	return out, nil
}

func (h *AnalyticsHandler) compactUserMap(ids []uint) (map[uint]models.UserCompact, error) {
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		out[u.ID] = u.ToCompact()
	}
	return out, nil
}

// bucketByPeriod groups timestamps by the given time layout and returns the
// buckets in chronological order. Grouping in Go keeps the query portable
// across database dialects.
func bucketByPeriod(times []time.Time, layout string) []PeriodCount {
	buckets := make(map[string]int)
	for _, t := range times {
		buckets[t.Format(layout)]++
	}

	periods := make([]string, 0, len(buckets))
	for p := range buckets {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]PeriodCount, 0, len(periods))
	for _, p := range periods {
		out = append(out, PeriodCount{Period: p, Count: buckets[p]})
	}
	return out
}
