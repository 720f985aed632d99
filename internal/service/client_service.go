package service

import (
	"context"
	"errors"
	"time"

	"responsagility-be/internal/dto"
	"responsagility-be/internal/entity"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IClientService interface {
	GetCoach(ctx context.Context, clientId uuid.UUID) (*dto.GetCoachResponse, error)
	UpdateCoach(ctx context.Context, clientId uuid.UUID, email string, req *dto.UpdateCoachRequest) (*dto.GetCoachResponse, error)
}

type clientService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewClientService(uowFactory unitofwork.RepositoryFactory) IClientService {
	return &clientService{uowFactory: uowFactory}
}

func (s *clientService) GetCoach(ctx context.Context, clientId uuid.UUID) (*dto.GetCoachResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: clientId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		// No practice yet means no row yet; an empty coach is not an error.
		return &dto.GetCoachResponse{}, nil
	}

	return &dto.GetCoachResponse{
		CoachName:  client.CoachName,
		CoachEmail: client.CoachEmail,
	}, nil
}

func (s *clientService) UpdateCoach(ctx context.Context, clientId uuid.UUID, email string, req *dto.UpdateCoachRequest) (*dto.GetCoachResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: clientId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &entity.Client{
			Id:        clientId,
			Email:     email,
			Active:    true,
			CreatedAt: time.Now(),
		}
		if err := uow.ClientRepository().Create(ctx, client); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	client.CoachName = req.CoachName
	client.CoachEmail = req.CoachEmail
	if err := uow.ClientRepository().Update(ctx, client); err != nil {
		return nil, err
	}

	return &dto.GetCoachResponse{
		CoachName:  client.CoachName,
		CoachEmail: client.CoachEmail,
	}, nil
}
