package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
	"github.com/anst-dev/ChotTienBanHang/internal/repository"
	"github.com/anst-dev/ChotTienBanHang/internal/ws"
	"github.com/anst-dev/ChotTienBanHang/pkg/validator"

	"github.com/google/uuid"
)

// StockLogRemover is the slice of the session ledger the catalog needs:
// removing a product drops its stock log from the active shift.
type StockLogRemover interface {
	RemoveStockLog(productID string)
}

type CatalogService interface {
	List() []model.Product
	Create(req *CreateProductRequest) (*model.Product, error)
	Update(id string, req *UpdateProductRequest) (*model.Product, error)
	Delete(id string)
	AttachLedger(ledger StockLogRemover)
}

type CreateProductRequest struct {
	Name  string  `json:"name" validate:"required"`
	Unit  string  `json:"unit" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name  *string  `json:"name" validate:"omitempty,min=1"`
	Unit  *string  `json:"unit" validate:"omitempty,min=1"`
	Price *float64 `json:"price" validate:"omitempty,gt=0"`
}

type catalogService struct {
	mu       sync.RWMutex
	products []model.Product
	store    repository.SlotStore
	hub      *ws.Hub
	ledger   StockLogRemover
}

// NewCatalogService loads the catalog slot, seeding the default catalog when
// the slot is missing or unreadable.
func NewCatalogService(store repository.SlotStore, hub *ws.Hub) CatalogService {
	s := &catalogService{store: store, hub: hub}

	var products []model.Product
	ok, err := store.Load(model.SlotProducts, &products)
	if err != nil {
		log.Printf("Warning: catalog slot unreadable, falling back to defaults: %v", err)
	}
	if err != nil || !ok {
		products = model.DefaultCatalog()
	}
	s.products = products
	return s
}

// AttachLedger wires the session ledger in after both services exist.
func (s *catalogService) AttachLedger(ledger StockLogRemover) {
	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()
}

func (s *catalogService) List() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *catalogService) Create(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	product := model.Product{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.persist()
	s.mu.Unlock()

	s.publish("catalog_changed", product)
	return &product, nil
}

func (s *catalogService) Update(id string, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if req.Name != nil {
			s.products[i].Name = *req.Name
		}
		if req.Unit != nil {
			s.products[i].Unit = *req.Unit
		}
		if req.Price != nil {
			s.products[i].Price = *req.Price
		}
		updated := s.products[i]
		s.persist()
		s.publish("catalog_changed", updated)
		return &updated, nil
	}
	return nil, ErrProductNotFound
}

// Delete removes a product if present. The active session's stock log for
// it is dropped as well; archived sessions keep their snapshots.
func (s *catalogService) Delete(id string) {
	s.mu.Lock()
	removed := false
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	if removed {
		s.persist()
	}
	ledger := s.ledger
	s.mu.Unlock()

	if !removed {
		return
	}
	if ledger != nil {
		ledger.RemoveStockLog(id)
	}
	s.publish("catalog_changed", nil)
}

// persist is best-effort; callers hold the lock.
func (s *catalogService) persist() {
	if err := s.store.Save(model.SlotProducts, s.products); err != nil {
		log.Printf("Warning: failed to persist catalog: %v", err)
	}
}

func (s *catalogService) publish(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(event, payload)
	}
}
