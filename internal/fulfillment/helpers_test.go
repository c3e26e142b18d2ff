package fulfillment

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/nestops/fulfillment-go/internal/models"
)

// memStore is an in-memory Store. WithinTx runs against a deep copy
// and only publishes it back on success, mirroring the rollback
// behavior of the Postgres store.
type memStore struct {
	stock   map[int]int
	orders  []models.Order
	pending []models.PendingOrder
}

func newMemStore(stock map[int]int) *memStore {
	s := &memStore{stock: make(map[int]int)}
	for id, qty := range stock {
		s.stock[id] = qty
	}
	return s
}

func (s *memStore) clone() *memStore {
	c := newMemStore(s.stock)
	c.orders = append([]models.Order(nil), s.orders...)
	for _, p := range s.pending {
		c.pending = append(c.pending, models.PendingOrder{
			OrderID:   p.OrderID,
			Requested: append([]models.OrderItem(nil), p.Requested...),
			CreatedAt: p.CreatedAt,
		})
	}
	return c
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx Store) error) error {
	c := s.clone()
	if err := fn(c); err != nil {
		return err
	}
	*s = *c
	return nil
}

func (s *memStore) GetQuantity(_ context.Context, productID int) (int, error) {
	qty, ok := s.stock[productID]
	if !ok {
		return 0, ErrProductNotFound
	}
	return qty, nil
}

func (s *memStore) AddStock(_ context.Context, productID, qty int) error {
	if _, ok := s.stock[productID]; !ok {
		return ErrProductNotFound
	}
	s.stock[productID] += qty
	return nil
}

func (s *memStore) RemoveStock(_ context.Context, productID, qty int) error {
	have, ok := s.stock[productID]
	if !ok {
		return ErrProductNotFound
	}
	if have < qty {
		return ErrInsufficientStock
	}
	s.stock[productID] = have - qty
	return nil
}

func (s *memStore) InsertOrder(_ context.Context, order models.Order) error {
	s.orders = append(s.orders, order)
	return nil
}

func (s *memStore) InsertPendingOrder(_ context.Context, pending models.PendingOrder) error {
	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now()
	}
	s.pending = append(s.pending, pending)
	return nil
}

func (s *memStore) GetPendingOrders(_ context.Context) ([]models.PendingOrder, error) {
	out := s.clone().pending
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (s *memStore) UpdatePendingOrder(_ context.Context, orderID int, remaining []models.OrderItem) error {
	for i := range s.pending {
		if s.pending[i].OrderID == orderID {
			s.pending[i].Requested = append([]models.OrderItem(nil), remaining...)
			return nil
		}
	}
	return errors.New("pending order not found")
}

func (s *memStore) RemovePendingOrder(_ context.Context, orderID int) error {
	for i := range s.pending {
		if s.pending[i].OrderID == orderID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) pendingFor(orderID int) *models.PendingOrder {
	for i := range s.pending {
		if s.pending[i].OrderID == orderID {
			return &s.pending[i]
		}
	}
	return nil
}

// fakeCatalog maps product ID to unit mass in grams.
type fakeCatalog struct {
	masses map[int]int
	errOn  map[int]error
}

// testCatalog matches the reference mass table: 700g, 300g and 40g
// units.
func testCatalog() *fakeCatalog {
	return &fakeCatalog{masses: map[int]int{0: 700, 10: 300, 8: 40}}
}

func (c *fakeCatalog) GetProduct(_ context.Context, productID int) (*models.Product, error) {
	if err := c.errOn[productID]; err != nil {
		return nil, err
	}
	mass, ok := c.masses[productID]
	if !ok {
		return nil, nil
	}
	return &models.Product{ProductID: productID, ProductName: "test product", MassG: mass}, nil
}

// recordingSink records accepted shipments and can be told to refuse
// them after a given count.
type recordingSink struct {
	shipments []models.Shipment
	failAfter int // refuse once this many shipments were accepted; -1 = never
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failAfter: -1}
}

func (s *recordingSink) Ship(_ context.Context, shipment models.Shipment) error {
	if s.failAfter >= 0 && len(s.shipments) >= s.failAfter {
		return errors.New("sink refused shipment")
	}
	s.shipments = append(s.shipments, shipment)
	return nil
}

// shippedQty sums the quantity of one product across all recorded
// shipments for an order.
func (s *recordingSink) shippedQty(orderID, productID int) int {
	total := 0
	for _, shipment := range s.shipments {
		if shipment.OrderID != orderID {
			continue
		}
		for _, item := range shipment.Shipped {
			if item.ProductID == productID {
				total += item.Quantity
			}
		}
	}
	return total
}

func packageMass(pkg []models.ShipmentItem, masses map[int]int) int {
	total := 0
	for _, item := range pkg {
		total += item.Quantity * masses[item.ProductID]
	}
	return total
}
