package services

import (
	"database/sql"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/plumecms/plume-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	CreateUser(name, email, password string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	AssignRole(userID, roleName string) error
	GetRolesForUser(userID string) ([]models.Role, error)
	GetProfile(userID string) (ProfileView, error)
	UpdateProfile(userID string, input ProfileUpdateInput) (models.User, error)
}

// ProfileUpdateInput carries a profile update form. Name and Email are
// mandatory; the password pair is optional but must come together. Empty
// strings count as absent, matching how browsers submit untouched fields.
type ProfileUpdateInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// RoleList is the role slice of a profile view. Empty is an explicit marker
// so templates render the "Aucun" placeholder instead of a silent blank.
type RoleList struct {
	Empty  bool
	Labels []string
}

// CommentList is the comment slice of a profile view, with the same
// explicit empty marker contract as RoleList.
type CommentList struct {
	Empty bool
	Count int
	Items []models.Comment
}

// ProfileView is everything the profile page shows for one user.
type ProfileView struct {
	User     models.User
	Roles    RoleList
	Posts    []models.Post
	Comments CommentList
}

// UserService provides business logic for user and profile management.
type UserService struct {
	db       *sql.DB
	posts    PostServiceProvider
	comments CommentServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, posts PostServiceProvider, comments CommentServiceProvider) *UserService {
	return &UserService{db: db, posts: posts, comments: comments}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(name, email, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, errors.New("authentication failed: user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.New("authentication failed: invalid password")
	}
	return user, nil
}

// AssignRole grants the named role to a user. Granting a role twice is a
// no-op, keeping the role set duplicate free.
func (s *UserService) AssignRole(userID, roleName string) error {
	var roleID string
	err := s.db.QueryRow("SELECT id FROM roles WHERE name = ?", roleName).Scan(&roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.New("role not found: " + roleName)
		}
		return err
	}

	_, err = s.db.Exec("INSERT OR IGNORE INTO user_roles(user_id, role_id) VALUES(?, ?)", userID, roleID)
	return err
}

// GetRolesForUser retrieves the roles assigned to a user.
func (s *UserService) GetRolesForUser(userID string) ([]models.Role, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.name, r.label FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Label); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetProfile assembles the profile page projection for a user: identity,
// role labels, authored posts and comments. Empty role and comment sets are
// tagged explicitly rather than left to the template to infer.
func (s *UserService) GetProfile(userID string) (ProfileView, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return ProfileView{}, err
	}

	roles, err := s.GetRolesForUser(userID)
	if err != nil {
		return ProfileView{}, err
	}
	roleList := RoleList{Empty: len(roles) == 0}
	for _, r := range roles {
		roleList.Labels = append(roleList.Labels, r.Label)
	}

	posts, err := s.posts.ListPostsByAuthor(userID)
	if err != nil {
		return ProfileView{}, err
	}

	comments, err := s.comments.ListCommentsByAuthor(userID)
	if err != nil {
		return ProfileView{}, err
	}

	return ProfileView{
		User:  user,
		Roles: roleList,
		Posts: posts,
		Comments: CommentList{
			Empty: len(comments) == 0,
			Count: len(comments),
			Items: comments,
		},
	}, nil
}

// Validate checks the update form. It is pure; uniqueness is checked later,
// inside the update transaction.
func (in ProfileUpdateInput) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Le nom est obligatoire."
	}

	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "L'adresse e-mail est obligatoire."
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "L'adresse e-mail est invalide."
	}

	if in.Password != "" || in.PasswordConfirmation != "" {
		switch {
		case in.Password == "" || in.PasswordConfirmation == "":
			errs["password"] = "Le mot de passe et sa confirmation sont requis ensemble."
		case in.Password != in.PasswordConfirmation:
			errs["password"] = "Les mots de passe ne correspondent pas."
		case len(in.Password) < 8:
			errs["password"] = "Le mot de passe doit contenir au moins 8 caractères."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpdateProfile applies a validated profile update to a user. Name and email
// are always overwritten; the password digest only changes when a valid
// password pair was supplied. The write is a single transaction: on any
// rejection (validation, uniqueness, unknown user) nothing is persisted.
func (s *UserService) UpdateProfile(userID string, input ProfileUpdateInput) (models.User, error) {
	if errs := input.Validate(); errs != nil {
		return models.User{}, errs
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	var currentHash string
	err = tx.QueryRow("SELECT password_hash FROM users WHERE id = ?", userID).Scan(&currentHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	// Email must stay unique across the other users.
	var ownerID string
	err = tx.QueryRow("SELECT id FROM users WHERE email = ? AND id != ?", input.Email, userID).Scan(&ownerID)
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	newHash := currentHash
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		newHash = string(hashed)
	}

	_, err = tx.Exec("UPDATE users SET name = ?, email = ?, password_hash = ? WHERE id = ?",
		strings.TrimSpace(input.Name), input.Email, newHash, userID)
	if err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(userID)
}
