package services

import (
	"errors"
	"strings"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService handles post creation and owner-only mutation.
type PostService struct {
	postRepository repositories.PostRepository
}

func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepository: postRepo}
}

// Create requires at least one of text content or image.
func (s *PostService) Create(authorID uint, content, imageURL string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	imageURL = strings.TrimSpace(imageURL)
	if content == "" && imageURL == "" {
		return nil, ErrInvalidArgument
	}

	post := &models.Post{UserID: authorID, Content: content, ImageURL: imageURL}
	if err := s.postRepository.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update changes the text content, owner-only.
func (s *PostService) Update(actorID, postID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidArgument
	}

	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	post.Content = content
	if err := s.postRepository.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post and everything hanging off it, owner-only.
func (s *PostService) Delete(actorID, postID uint) error {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != actorID {
		return ErrForbidden
	}
	return s.postRepository.DeletePost(postID)
}
