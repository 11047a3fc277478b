package handlers

import (
	"net/http"
	"strconv"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler composes the paginated feed: posts plus aggregate counts and
// viewer-relative flags. Counts are recomputed from the store on every
// request; nothing here is cached.
type FeedHandler struct {
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	followRepository  repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:    postRepo,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		followRepository:  followRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// FeedItem is one post in the feed with author snapshot, counts, and
// viewer-relative flags.
type FeedItem struct {
	models.Post
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	IsLiked      bool   `json:"isLiked"`
	IsFollowing  bool   `json:"isFollowing"`
}

// GetFeed returns the newest-first paginated feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := h.postRepository.ListPosts(limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}
	authors, err := h.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorByID := make(map[uint]models.UserCompact, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a.ToCompact()
	}

	feed := make([]FeedItem, len(posts))
	for i, post := range posts {
		likeCount, err := h.likeRepository.GetLikesCountByPostID(post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		commentCount, err := h.commentRepository.GetCommentsCountByPostID(post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		isLiked, err := h.likeRepository.HasUserLikedPost(post.ID, currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		isFollowing, err := h.followRepository.IsFollowing(currentUserID, post.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		author := authorByID[post.UserID]
		feed[i] = FeedItem{
			Post:         post,
			Username:     author.Username,
			DisplayName:  author.DisplayName,
			AvatarURL:    author.AvatarURL,
			LikeCount:    likeCount,
			CommentCount: commentCount,
			IsLiked:      isLiked,
			IsFollowing:  isFollowing,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"feed": feed})
}
