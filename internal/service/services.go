package service

import (
	"github.com/clinicare/clinic-backend/internal/config"
	"github.com/clinicare/clinic-backend/internal/repository"
)

type Services struct {
	Auth *AuthService
	Note *NoteService
	Code *CodeService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) (*Services, error) {
	authService, err := NewAuthService(repos.User, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth: authService,
		Note: NewNoteService(repos.Note, repos.Code),
		Code: NewCodeService(repos.Code),
	}, nil
}
