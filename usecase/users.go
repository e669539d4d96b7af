package usecase

import (
	"context"
	"errors"
	"time"

	"zenflow/model"
	"zenflow/repository"
	"zenflow/services"
	"zenflow/utils"
)

type UserService struct {
	UsersRepo *repository.UserRepo
}

func NewUserService(repo *repository.UserRepo) *UserService {
	return &UserService{UsersRepo: repo}
}

// CreateUser registers a new account with a hashed password.
func (svc *UserService) CreateUser(ctx context.Context, req model.RegistrationRequest) (*model.User, error) {
	if len(req.Username) < 4 || len(req.Username) > 20 {
		return nil, errors.New("username must be between 4 and 20 characters")
	}

	taken, err := svc.UsersRepo.UsernameOrEmailTaken(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.New("username or email already in use")
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if err := svc.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByUsername returns the account or nil when absent.
func (svc *UserService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(ctx, username)
}

// FindUser returns the account by id or nil when absent.
func (svc *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (svc *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := svc.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	ok, err := services.VerifyPassword(user.Password, currentPassword)
	if err != nil || !ok {
		return errors.New("current password is incorrect")
	}
	if currentPassword == newPassword {
		return errors.New("new password must differ from the current one")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return svc.UsersRepo.UpdateUserPassword(ctx, userID, hashed)
}

// ChangeEmail verifies the password before updating the address.
func (svc *UserService) ChangeEmail(ctx context.Context, userID, password, newEmail string) error {
	user, err := svc.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return errors.New("password is incorrect")
	}
	if user.Email == newEmail {
		return errors.New("new email must differ from the current one")
	}
	return svc.UsersRepo.UpdateUserEmail(ctx, userID, newEmail)
}
