package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/plumecms/plume-be/internal/models"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	CreateComment(postID, authorID, content string) (models.Comment, error)
	ListCommentsByAuthor(authorID string) ([]models.Comment, error)
	CountCommentsByAuthor(authorID string) (int, error)
}

// CommentService provides business logic for comment management.
type CommentService struct {
	db *sql.DB
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment stores a new comment on a post.
func (s *CommentService) CreateComment(postID, authorID, content string) (models.Comment, error) {
	comment := models.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	stmt, err := s.db.Prepare("INSERT INTO comments(id, post_id, author_id, content) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Comment{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(comment.ID, comment.PostID, comment.AuthorID, comment.Content); err != nil {
		return models.Comment{}, err
	}

	row := s.db.QueryRow("SELECT id, post_id, author_id, content, created_at FROM comments WHERE id = ?", comment.ID)
	err = row.Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt)
	return comment, err
}

// ListCommentsByAuthor retrieves all comments written by a user, newest first.
func (s *CommentService) ListCommentsByAuthor(authorID string) ([]models.Comment, error) {
	rows, err := s.db.Query("SELECT id, post_id, author_id, content, created_at FROM comments WHERE author_id = ? ORDER BY created_at DESC", authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// CountCommentsByAuthor returns how many comments a user has written.
func (s *CommentService) CountCommentsByAuthor(authorID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM comments WHERE author_id = ?", authorID).Scan(&count)
	return count, err
}
