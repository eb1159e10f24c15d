package services

import (
	"fmt"
	"sort"

	"blogify/app/models"
	"blogify/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// AddComment creates a comment on a post. The post must exist and not be
// soft-deleted. A reply's parent must exist, belong to the same post, and
// its parent chain must terminate; a chain that loops is rejected rather
// than persisted into the tree.
func (s *CommentService) AddComment(userID, postID int, parentID *int, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("invalid comment: text is required")
	}
	if len(text) > 1000 {
		return nil, fmt.Errorf("invalid comment: text is too long (maximum 1000 characters)")
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := s.checkParentChain(*parentID, postID); err != nil {
			return nil, err
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	s.populateAuthor(comment)
	return comment, nil
}

// checkParentChain verifies the declared parent exists on the same post and
// that following parent references from it terminates at a root instead of
// looping.
func (s *CommentService) checkParentChain(parentID, postID int) error {
	seen := map[int]bool{}
	current := parentID
	for {
		if seen[current] {
			return fmt.Errorf("invalid comment: parent chain contains a cycle")
		}
		seen[current] = true

		parent, err := s.commentRepo.GetByID(current)
		if err != nil {
			if current == parentID {
				return err
			}
			// A broken link higher up the chain still terminates it.
			return nil
		}
		if parent.PostID != postID {
			return ErrParentMismatch
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

// CommentsForPost returns the post's comments as a nested forest, siblings
// ordered oldest first, together with the flat comment count.
func (s *CommentService) CommentsForPost(postID int) ([]*models.CommentNode, int, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, 0, err
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get comments: %v", err)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	for _, comment := range comments {
		s.populateAuthor(comment)
	}

	return BuildCommentTree(comments), len(comments), nil
}

// DeleteComment deletes the caller's own comment. Only the targeted comment
// is removed; its replies are promoted to roots on the next tree build.
func (s *CommentService) DeleteComment(userID, id int) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(id)
}

// populateAuthor attaches the author projection to a comment. Comment
// authors are rendered without an email address.
func (s *CommentService) populateAuthor(comment *models.Comment) {
	user, err := s.userRepo.GetByID(comment.AuthorID)
	if err != nil {
		return
	}
	comment.Author = user.Public(false)
}
