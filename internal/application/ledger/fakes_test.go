package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// memStore estado compartido de los repositorios en memoria; reemplaza
// PostgreSQL en los tests de casos de uso. Los repos devuelven copias, como
// haría un driver real, y las mutaciones solo se aplican vía Update/Create.
type memStore struct {
	items         map[string]*entity.InventoryItem // por ID
	itemByMed     map[string]string                // medicationID -> itemID
	batches       map[string]*entity.Batch
	sessions      map[string]*entity.CountSession
	prescriptions map[string]*entity.Prescription
	orders        map[string]*entity.SupplyOrder
	seq           int
}

func newMemStore() *memStore {
	return &memStore{
		items:         make(map[string]*entity.InventoryItem),
		itemByMed:     make(map[string]string),
		batches:       make(map[string]*entity.Batch),
		sessions:      make(map[string]*entity.CountSession),
		prescriptions: make(map[string]*entity.Prescription),
		orders:        make(map[string]*entity.SupplyOrder),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// batchSnapshot copia cantidades por ID de lote, para verificar la garantía
// todo-o-nada comparando el libro antes y después.
func (s *memStore) batchSnapshot() map[string]int64 {
	snap := make(map[string]int64, len(s.batches))
	for id, b := range s.batches {
		snap[id] = b.Quantity
	}
	return snap
}

// ── InventoryItemRepository ──────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) GetByMedication(medicationID string) (*entity.InventoryItem, error) {
	id, ok := r.s.itemByMed[medicationID]
	if !ok {
		return nil, nil
	}
	cp := *r.s.items[id]
	return &cp, nil
}

func (r *memItemRepo) GetByMedicationForUpdate(medicationID string) (*entity.InventoryItem, error) {
	return r.GetByMedication(medicationID)
}

func (r *memItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = r.s.nextID("item")
	}
	cp := *item
	r.s.items[item.ID] = &cp
	r.s.itemByMed[item.MedicationID] = item.ID
	return nil
}

func (r *memItemRepo) UpdatePrice(itemID string, price decimal.Decimal) error {
	item, ok := r.s.items[itemID]
	if !ok {
		return fmt.Errorf("item %s no existe", itemID)
	}
	item.Price = price
	return nil
}

// ── BatchRepository ──────────────────────────────────────────────────────────

type memBatchRepo struct{ s *memStore }

func (r *memBatchRepo) GetByID(batchID string) (*entity.Batch, error) {
	b, ok := r.s.batches[batchID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBatchRepo) GetByItemAndExpiration(itemID string, expiration time.Time) (*entity.Batch, error) {
	for _, b := range r.s.batches {
		if b.ItemID == itemID && b.ExpirationDate.Equal(expiration) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBatchRepo) ListByItem(itemID string, onlyAvailable bool) ([]*entity.Batch, error) {
	var list []*entity.Batch
	for _, b := range r.s.batches {
		if b.ItemID != itemID {
			continue
		}
		if onlyAvailable && b.Quantity <= 0 {
			continue
		}
		cp := *b
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ExpirationDate.Before(list[j].ExpirationDate)
	})
	return list, nil
}

func (r *memBatchRepo) ListByItemForUpdate(itemID string, onlyAvailable bool) ([]*entity.Batch, error) {
	return r.ListByItem(itemID, onlyAvailable)
}

func (r *memBatchRepo) Create(batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = r.s.nextID("batch")
	}
	cp := *batch
	r.s.batches[batch.ID] = &cp
	return nil
}

func (r *memBatchRepo) UpdateQuantity(batchID string, quantity int64) error {
	b, ok := r.s.batches[batchID]
	if !ok {
		return fmt.Errorf("lote %s no existe", batchID)
	}
	b.Quantity = quantity
	return nil
}

func (r *memBatchRepo) DeleteByItem(itemID string) error {
	for id, b := range r.s.batches {
		if b.ItemID == itemID {
			delete(r.s.batches, id)
		}
	}
	return nil
}

func (r *memBatchRepo) Delete(batchID string) error {
	delete(r.s.batches, batchID)
	return nil
}

// ── CountSessionRepository ───────────────────────────────────────────────────

type memSessionRepo struct{ s *memStore }

func (r *memSessionRepo) Create(session *entity.CountSession) error {
	if session.ID == "" {
		session.ID = r.s.nextID("count")
	}
	for i := range session.Lines {
		session.Lines[i].SessionID = session.ID
		if session.Lines[i].ID == "" {
			session.Lines[i].ID = r.s.nextID("countline")
		}
	}
	cp := *session
	cp.Lines = append([]entity.CountLine(nil), session.Lines...)
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByID(id string) (*entity.CountSession, error) {
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	cp.Lines = append([]entity.CountLine(nil), sess.Lines...)
	return &cp, nil
}

func (r *memSessionRepo) List(limit, offset int) ([]*entity.CountSession, error) {
	var list []*entity.CountSession
	for _, sess := range r.s.sessions {
		cp := *sess
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ── PrescriptionRepository ───────────────────────────────────────────────────

type memPrescriptionRepo struct{ s *memStore }

func (r *memPrescriptionRepo) Create(p *entity.Prescription) error {
	if p.ID == "" {
		p.ID = r.s.nextID("rx")
	}
	for i := range p.Lines {
		p.Lines[i].PrescriptionID = p.ID
		if p.Lines[i].ID == "" {
			p.Lines[i].ID = r.s.nextID("rxline")
		}
	}
	cp := *p
	cp.Lines = append([]entity.PrescriptionLine(nil), p.Lines...)
	r.s.prescriptions[p.ID] = &cp
	return nil
}

func (r *memPrescriptionRepo) GetByID(id string) (*entity.Prescription, error) {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPrescriptionRepo) ListByPatient(patientID string, limit, offset int) ([]*entity.Prescription, error) {
	var list []*entity.Prescription
	for _, p := range r.s.prescriptions {
		if p.PatientID == patientID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

// ── SupplyOrderRepository ────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) GetByID(id string) (*entity.SupplyOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Lines = append([]entity.SupplyOrderLine(nil), o.Lines...)
	return &cp, nil
}

func (r *memOrderRepo) GetByIDForUpdate(id string) (*entity.SupplyOrder, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) Create(order *entity.SupplyOrder) error {
	if order.ID == "" {
		order.ID = r.s.nextID("order")
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = r.s.nextID("orderline")
		}
	}
	cp := *order
	cp.Lines = append([]entity.SupplyOrderLine(nil), order.Lines...)
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) MarkReceived(orderID string, receivedAt time.Time) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return fmt.Errorf("orden %s no existe", orderID)
	}
	o.Status = entity.OrderStatusReceived
	o.ReceivedAt = &receivedAt
	return nil
}

func (r *memOrderRepo) List(status string, limit, offset int) ([]*entity.SupplyOrder, error) {
	var list []*entity.SupplyOrder
	for _, o := range r.s.orders {
		if status == "" || o.Status == status {
			cp := *o
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// memTxRunner pasa repos en memoria al callback. No emula rollback: los tests
// de fallo verifican que los casos de uso no mutan nada antes de fallar.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	repository.InventoryItemRepository, repository.BatchRepository) error) error {
	return fn(&memItemRepo{t.s}, &memBatchRepo{t.s})
}

func (t *memTxRunner) RunDispense(ctx context.Context, fn func(
	repository.InventoryItemRepository, repository.BatchRepository, repository.PrescriptionRepository) error) error {
	return fn(&memItemRepo{t.s}, &memBatchRepo{t.s}, &memPrescriptionRepo{t.s})
}

func (t *memTxRunner) RunCount(ctx context.Context, fn func(
	repository.InventoryItemRepository, repository.BatchRepository, repository.CountSessionRepository) error) error {
	return fn(&memItemRepo{t.s}, &memBatchRepo{t.s}, &memSessionRepo{t.s})
}

func (t *memTxRunner) RunReceipt(ctx context.Context, fn func(
	repository.InventoryItemRepository, repository.BatchRepository, repository.SupplyOrderRepository) error) error {
	return fn(&memItemRepo{t.s}, &memBatchRepo{t.s}, &memOrderRepo{t.s})
}

// ── Generador PDF de prueba ──────────────────────────────────────────────────

type fakeReportGen struct{ calls int }

func (g *fakeReportGen) GenerateCountReport(_ context.Context, session *entity.CountSession) ([]byte, error) {
	g.calls++
	return []byte("%PDF " + session.ID), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

// fixture arma el juego completo de casos de uso sobre un mismo almacén.
type fixture struct {
	store     *memStore
	receive   *ledger.ReceiveStockUseCase
	dispense  *ledger.DispenseUseCase
	count     *ledger.RecordCountUseCase
	reconcile *ledger.ReconcileUseCase
	orders    *ledger.SupplyOrderUseCase
	batches   *ledger.BatchAdminUseCase
	reportGen *fakeReportGen
}

// fecha por defecto del lote de reemplazo en conciliaciones de prueba.
var testReconcileExpiry = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	store := newMemStore()
	tx := &memTxRunner{store}
	sessionRepo := &memSessionRepo{store}
	reportGen := &fakeReportGen{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	return &fixture{
		store:     store,
		receive:   ledger.NewReceiveStockUseCase(tx),
		dispense:  ledger.NewDispenseUseCase(tx),
		count:     ledger.NewRecordCountUseCase(tx, sessionRepo, reportGen),
		reconcile: ledger.NewReconcileUseCase(tx, sessionRepo, ledger.ReconcilePolicy{ReplacementExpiration: testReconcileExpiry}, log),
		orders:    ledger.NewSupplyOrderUseCase(tx, &memOrderRepo{store}),
		batches:   ledger.NewBatchAdminUseCase(tx),
		reportGen: reportGen,
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedScenarioA ejecuta el escenario base: 100 unidades a 10.00 venciendo
// 2025-01-01 y luego 50 unidades a 12.00 venciendo 2025-06-01.
func seedScenarioA(f *fixture) {
	_, err := f.receive.ReceiveStock(context.Background(), ledger.ReceiveStockInput{
		MedicationID:   "med-1",
		UnitPrice:      decimal.RequireFromString("10.00"),
		Quantity:       100,
		ExpirationDate: mustDate("2025-01-01"),
	})
	if err != nil {
		panic(err)
	}
	_, err = f.receive.ReceiveStock(context.Background(), ledger.ReceiveStockInput{
		MedicationID:   "med-1",
		UnitPrice:      decimal.RequireFromString("12.00"),
		Quantity:       50,
		ExpirationDate: mustDate("2025-06-01"),
	})
	if err != nil {
		panic(err)
	}
}
