package usecasees

import (
	"io"
	"sync"
	"time"

	"settler/internal/repository/mongo"
	mongoStructs "settler/internal/repository/mongo/structs"
	"settler/internal/repository/postgres"
	"settler/models"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

// memAccountRepo mirrors the mongo repository's version-guard semantics in
// memory. forceConflicts makes the next N commits fail as if a concurrent
// writer won.
type memAccountRepo struct {
	mu             sync.Mutex
	accounts       map[string]*mongoStructs.Account
	forceConflicts int
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*mongoStructs.Account{}}
}

func (r *memAccountRepo) seed(accountID string, balances map[string]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if balances == nil {
		balances = map[string]float64{}
	}

	r.accounts[accountID] = &mongoStructs.Account{
		AccountID: accountID,
		Balances:  balances,
		Version:   1,
	}
}

func (r *memAccountRepo) Create(accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[accountID]; ok {
		return mongo.ErrAccountExists
	}

	r.accounts[accountID] = &mongoStructs.Account{
		AccountID: accountID,
		Balances:  map[string]float64{},
		Version:   1,
	}

	return nil
}

func (r *memAccountRepo) Load(accountID string) (*mongoStructs.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, mongo.ErrAccountNotFound
	}

	out := &mongoStructs.Account{
		AccountID: account.AccountID,
		Balances:  account.CloneBalances(),
		Version:   account.Version,
	}

	return out, nil
}

func (r *memAccountRepo) CommitBalances(account *mongoStructs.Account, balances map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[account.AccountID]
	if !ok {
		return mongo.ErrAccountNotFound
	}

	if r.forceConflicts > 0 {
		r.forceConflicts--
		return mongo.ErrVersionConflict
	}

	if current.Version != account.Version {
		return mongo.ErrVersionConflict
	}

	next := make(map[string]float64, len(balances))
	for asset, amount := range balances {
		next[asset] = amount
	}

	current.Balances = next
	current.Version++

	return nil
}

// memOrderRepo mirrors the postgres repository's conditional-write semantics.
type memOrderRepo struct {
	mu            sync.Mutex
	orders        map[string]*models.Order
	failSetStatus map[string]error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		orders:        map[string]*models.Order{},
		failSetStatus: map[string]error{},
	}
}

func (r *memOrderRepo) Store(m *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *m
	r.orders[m.ID] = &clone

	return nil
}

func (r *memOrderRepo) GetByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, postgres.ErrOrderNotFound
	}

	clone := *order

	return &clone, nil
}

func (r *memOrderRepo) GetByStatus(status string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Order
	for _, order := range r.orders {
		if order.Status == status {
			out = append(out, *order)
		}
	}

	return out, nil
}

func (r *memOrderRepo) GetByAccountID(accountID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Order
	for _, order := range r.orders {
		if order.AccountID == accountID {
			out = append(out, *order)
		}
	}

	return out, nil
}

func (r *memOrderRepo) GetWithInterval(sTime, eTime time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Order
	for _, order := range r.orders {
		if order.CreatedAt.After(sTime) && order.CreatedAt.Before(eTime) {
			out = append(out, *order)
		}
	}

	return out, nil
}

func (r *memOrderRepo) SetStatus(id, expected, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failSetStatus[id]; ok {
		return err
	}

	if !models.ValidTransition(expected, status) {
		return postgres.ErrInvalidTransition
	}

	order, ok := r.orders[id]
	if !ok {
		return postgres.ErrOrderNotFound
	}

	if order.Status != expected {
		return postgres.ErrStaleStatus
	}

	order.Status = status

	return nil
}

func (r *memOrderRepo) SetReminded(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return postgres.ErrOrderNotFound
	}

	if order.Reminded {
		return postgres.ErrAlreadyReminded
	}

	order.Reminded = true

	return nil
}

// memSettingsRepo holds the mode flag in memory.
type memSettingsRepo struct {
	mu     sync.Mutex
	manual bool
}

func (r *memSettingsRepo) SetDefault() error {
	return nil
}

func (r *memSettingsRepo) GetMode() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.manual, nil
}

func (r *memSettingsRepo) SetMode(manual bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.manual = manual

	return nil
}

type sinkEvent struct {
	TargetID string
	Message  string
	Category string
	Link     string
}

// recordSink captures emitted notifications for assertions.
type recordSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordSink) Emit(targetID, message, category, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, sinkEvent{
		TargetID: targetID,
		Message:  message,
		Category: category,
		Link:     link,
	})
}

func (s *recordSink) count(targetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, e := range s.events {
		if e.TargetID == targetID {
			n++
		}
	}

	return n
}
