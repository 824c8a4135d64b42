package client

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name    string
	Phone   string
	IsVIP   bool
	Comment string
}

type UpdateRequest struct {
	Name    *string
	Phone   *string
	IsVIP   *bool
	Comment *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByPhone(ctx context.Context, phone string) (*Client, error)
	// FindOrCreate looks a client up by phone and creates one when missing.
	// The booking form submits free-text name/phone; reuse keeps the visit
	// history attached to one record.
	FindOrCreate(ctx context.Context, name, phone string) (*Client, error)
	Search(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	RecordVisit(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	name := strings.TrimSpace(req.Name)
	phone := normalizePhone(req.Phone)
	if name == "" {
		return nil, ErrNameRequired
	}
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	cl := &Client{
		Name:    name,
		Phone:   phone,
		IsVIP:   req.IsVIP,
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPhone(ctx context.Context, phone string) (*Client, error) {
	cleanPhone := normalizePhone(phone)
	if cleanPhone == "" {
		return nil, ErrPhoneRequired
	}
	return s.repo.GetByPhone(ctx, cleanPhone)
}

func (s *service) FindOrCreate(ctx context.Context, name, phone string) (*Client, error) {
	cleanPhone := normalizePhone(phone)
	if cleanPhone == "" {
		return nil, ErrPhoneRequired
	}

	cl, err := s.repo.GetByPhone(ctx, cleanPhone)
	if err == nil {
		return cl, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	return s.Create(ctx, CreateRequest{Name: name, Phone: cleanPhone})
}

func (s *service) Search(ctx context.Context, filter Filter) ([]*Client, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		cl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := normalizePhone(*req.Phone)
		if phone == "" {
			return nil, ErrPhoneRequired
		}
		cl.Phone = phone
	}
	if req.IsVIP != nil {
		cl.IsVIP = *req.IsVIP
	}
	if req.Comment != nil {
		cl.Comment = strings.TrimSpace(*req.Comment)
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) RecordVisit(ctx context.Context, id string) error {
	return s.repo.IncrementVisits(ctx, id)
}

// normalizePhone strips spaces, dashes and parentheses so the same number
// always matches the unique phone column.
func normalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(phone))
}
