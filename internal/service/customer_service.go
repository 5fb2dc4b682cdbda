package service

import (
	"context"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const customerSearchLimit = 10

type CustomerService interface {
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Search(ctx context.Context, query string) ([]dto.CustomerOption, error)
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	// Delete refuses while the customer still has an unpaid cycle.
	Delete(ctx context.Context, id string) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return items, nil
}

func (s *customerService) Search(ctx context.Context, query string) ([]dto.CustomerOption, error) {
	customers, err := s.repo.Search(ctx, query, customerSearchLimit)
	if err != nil {
		return nil, err
	}
	options := make([]dto.CustomerOption, 0, len(customers))
	for _, c := range customers {
		options = append(options, dto.CustomerOption{ID: c.ID.String(), Name: c.Name})
	}
	return options, nil
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := customerResponse(customer)
	return &resp, nil
}

func (s *customerService) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "User tidak ditemukan")
	}
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User tidak ditemukan")
		}
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := customerResponse(customer)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "User tidak ditemukan")
	}
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "User tidak ditemukan")
		}
		return err
	}
	unpaid, err := s.repo.HasUnpaidCycle(ctx, customerID)
	if err != nil {
		return err
	}
	if unpaid {
		return apperr.New(apperr.State, "Tidak dapat menghapus user karena masih memiliki utang yang belum lunas.")
	}
	return s.repo.Delete(ctx, customerID)
}

func customerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
