// Package memory implementa los puertos de persistencia en memoria (tests y DB_DRIVER=memory).
//
// Cada escritura trabaja sobre una copia del estado y la publica al terminar sin error,
// así que una transacción fallida no deja rastro y los lectores siempre ven una versión
// completa. Las escrituras se serializan con un mutex (equivalente al bloqueo de fila).
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

type stockKey struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
}

// state versión inmutable una vez publicada.
type state struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	categories map[string]entity.Category
	stock      map[stockKey]entity.StockEntry
	movements  []entity.Movement // orden de inserción
	alerts     []entity.Alert    // orden de inserción
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		categories: make(map[string]entity.Category),
		stock:      make(map[stockKey]entity.StockEntry),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(s.products)),
		warehouses: make(map[string]entity.Warehouse, len(s.warehouses)),
		categories: make(map[string]entity.Category, len(s.categories)),
		stock:      make(map[stockKey]entity.StockEntry, len(s.stock)),
		movements:  make([]entity.Movement, len(s.movements)),
		alerts:     make([]entity.Alert, len(s.alerts)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	copy(c.movements, s.movements)
	copy(c.alerts, s.alerts)
	return c
}

// Store almacén en memoria. Implementa inventory.TxRunner y analytics.SnapshotRunner.
type Store struct {
	mu  sync.Mutex // serializa escritores
	cur atomic.Pointer[state]
}

// New crea un almacén vacío.
func New() *Store {
	s := &Store{}
	s.cur.Store(newState())
	return s
}

func (s *Store) snapshot() *state {
	return s.cur.Load()
}

// write aplica fn sobre una copia y la publica si no hubo error.
func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur.Load().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.cur.Store(next)
	return nil
}

// binding decide si un repositorio lee/escribe sobre el estado publicado
// (cada escritura es atómica por sí sola) o sobre la copia de una transacción.
type binding struct {
	view   func() *state
	mutate func(fn func(st *state) error) error
}

func (s *Store) auto() binding {
	return binding{view: s.snapshot, mutate: s.write}
}

func txBinding(st *state) binding {
	return binding{
		view:   func() *state { return st },
		mutate: func(fn func(st *state) error) error { return fn(st) },
	}
}

// Run ejecuta fn con repositorios atados a una transacción. Error = nada se publica.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(func(st *state) error {
		b := txBinding(st)
		return fn(&StockRepo{b: b}, &MovementRepo{b: b}, &AlertRepo{b: b})
	})
}

// ReadSnapshot ejecuta fn sobre la versión publicada en este instante.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(repo repository.ReportRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st := s.snapshot()
	return fn(&ReportRepo{b: txBinding(st)})
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepo     { return &ProductRepo{b: s.auto()} }
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{b: s.auto()} }
func (s *Store) Stock() *StockRepo          { return &StockRepo{b: s.auto()} }
func (s *Store) Movements() *MovementRepo   { return &MovementRepo{b: s.auto()} }
func (s *Store) Alerts() *AlertRepo         { return &AlertRepo{b: s.auto()} }
func (s *Store) Reports() *ReportRepo       { return &ReportRepo{b: s.auto()} }
func (s *Store) Categories() *CategoryRepo  { return &CategoryRepo{b: s.auto()} }

// PutCategory registra o reemplaza una categoría (no hay CRUD de categorías en la API).
func (s *Store) PutCategory(_ context.Context, c entity.Category) error {
	if c.ID == "" || c.CompanyID == "" {
		return fmt.Errorf("%w: categoría sin id o empresa", domain.ErrInvalidInput)
	}
	return s.write(func(st *state) error {
		st.categories[c.ID] = c
		return nil
	})
}

// SetReserved fija la cantidad reservada de una fila existente del ledger.
// Las reservas las administra otro sistema; aquí solo se siembran.
func (s *Store) SetReserved(_ context.Context, companyID, productID, warehouseID string, reserved int64) error {
	if reserved < 0 {
		return fmt.Errorf("%w: reserved negativo", domain.ErrInvalidInput)
	}
	return s.write(func(st *state) error {
		k := stockKey{companyID, productID, warehouseID}
		e, ok := st.stock[k]
		if !ok {
			return fmt.Errorf("%w: fila de stock", domain.ErrNotFound)
		}
		e.QuantityReserved = reserved
		st.stock[k] = e
		return nil
	})
}
