package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role" example:"teacher"`
}

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be teacher or student")
)

type IUserService interface {
	Signup(ctx context.Context, name, email, password, role string) (*UserDTO, error)
	Authenticate(ctx context.Context, email, password string) (*UserDTO, error)
	GetProfile(ctx context.Context, id string) (*UserDTO, error)
}

type userService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) IUserService {
	return &userService{db: db}
}

func (svc *userService) Signup(ctx context.Context, name, email, password, role string) (*UserDTO, error) {
	if role != "teacher" && role != "student" {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	dto := &UserDTO{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	const q = `INSERT INTO users (id, name, email, password_hash, role)
	                VALUES ($1, $2, $3, $4, $5)`
	_, err = svc.db.ExecContext(ctx, q, dto.ID, dto.Name, dto.Email, string(hash), dto.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return dto, nil
}

func (svc *userService) Authenticate(ctx context.Context, email, password string) (*UserDTO, error) {
	const q = `SELECT id, name, password_hash, role FROM users WHERE email = $1`
	var (
		dto  = &UserDTO{Email: email}
		hash string
	)
	err := svc.db.QueryRowContext(ctx, q, email).Scan(&dto.ID, &dto.Name, &hash, &dto.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return dto, nil
}

func (svc *userService) GetProfile(ctx context.Context, id string) (*UserDTO, error) {
	const q = `SELECT id, name, email, role FROM users WHERE id = $1`
	dto := &UserDTO{}
	err := svc.db.QueryRowContext(ctx, q, id).Scan(&dto.ID, &dto.Name, &dto.Email, &dto.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}
