package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/plumecms/plume-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(authorID, title, content string) (models.Post, error)
	GetPostByID(id string) (models.Post, error)
	ListPostsByAuthor(authorID string) ([]models.Post, error)
}

// PostService provides business logic for post management.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost stores a new post owned by the given author.
func (s *PostService) CreatePost(authorID, title, content string) (models.Post, error) {
	post := models.Post{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}

	stmt, err := s.db.Prepare("INSERT INTO posts(id, author_id, title, content) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Post{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(post.ID, post.AuthorID, post.Title, post.Content); err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(post.ID)
}

// GetPostByID retrieves a single post.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	var post models.Post
	row := s.db.QueryRow("SELECT id, author_id, title, content, created_at FROM posts WHERE id = ?", id)
	err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ListPostsByAuthor retrieves all posts written by a user, newest first.
func (s *PostService) ListPostsByAuthor(authorID string) ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, author_id, title, content, created_at FROM posts WHERE author_id = ? ORDER BY created_at DESC", authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
