package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/pkg/utils"
)

// In-memory implementations of the repositories, suitable for tests and
// local demos. All operations serialize on a mutex, so the conditional
// seat decrement and status transitions keep the same atomicity the SQL
// versions get from single-statement updates.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (m *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = utils.GenerateID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *MemoryUserRepository) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Phone == phone {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

type MemoryRideRepository struct {
	mu    sync.RWMutex
	rides map[string]models.Ride
	order []string
}

func NewMemoryRideRepository() *MemoryRideRepository {
	return &MemoryRideRepository{rides: make(map[string]models.Ride)}
}

func (m *MemoryRideRepository) Create(_ context.Context, ride *models.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ride.ID == "" {
		ride.ID = utils.GenerateID()
	}
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = time.Now()
	ride.RemainingSeats = ride.TotalSeats
	m.rides[ride.ID] = *ride
	m.order = append(m.order, ride.ID)
	return nil
}

func (m *MemoryRideRepository) GetByID(_ context.Context, id string) (*models.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, nil
	}
	return &ride, nil
}

func (m *MemoryRideRepository) GetAll(_ context.Context) ([]*models.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rides := make([]*models.Ride, 0, len(m.order))
	for _, id := range m.order {
		ride := m.rides[id]
		rides = append(rides, &ride)
	}
	return rides, nil
}

func (m *MemoryRideRepository) GetByDriverID(_ context.Context, driverID string) ([]*models.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rides []*models.Ride
	for _, id := range m.order {
		if m.rides[id].DriverID == driverID {
			ride := m.rides[id]
			rides = append(rides, &ride)
		}
	}
	sort.SliceStable(rides, func(i, j int) bool {
		return rides[i].CreatedAt.After(rides[j].CreatedAt)
	})
	return rides, nil
}

func (m *MemoryRideRepository) DecrementSeat(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok || ride.RemainingSeats <= 0 {
		return false, nil
	}
	ride.RemainingSeats--
	ride.UpdatedAt = time.Now()
	m.rides[id] = ride
	return true, nil
}

type MemoryRideRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]models.RideRequest
	order    []string
}

func NewMemoryRideRequestRepository() *MemoryRideRequestRepository {
	return &MemoryRideRequestRepository{requests: make(map[string]models.RideRequest)}
}

func (m *MemoryRideRequestRepository) Create(_ context.Context, req *models.RideRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == "" {
		req.ID = utils.GenerateID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	req.Status = models.RequestStatusPending
	m.requests[req.ID] = *req
	m.order = append(m.order, req.ID)
	return nil
}

func (m *MemoryRideRequestRepository) GetByID(_ context.Context, id string) (*models.RideRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (m *MemoryRideRequestRepository) GetByDriverID(_ context.Context, driverID string) ([]*models.RideRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reqs []*models.RideRequest
	for _, id := range m.order {
		if m.requests[id].DriverID == driverID {
			req := m.requests[id]
			reqs = append(reqs, &req)
		}
	}
	return reqs, nil
}

func (m *MemoryRideRequestRepository) GetByRequesterID(_ context.Context, requesterID string) ([]*models.RideRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reqs []*models.RideRequest
	for _, id := range m.order {
		if m.requests[id].RequesterID == requesterID {
			req := m.requests[id]
			reqs = append(reqs, &req)
		}
	}
	return reqs, nil
}

func (m *MemoryRideRequestRepository) GetOutstandingByRideAndRequester(_ context.Context, rideID, requesterID string) (*models.RideRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		req := m.requests[id]
		if req.RideID == rideID && req.RequesterID == requesterID && req.IsOutstanding() {
			return &req, nil
		}
	}
	return nil, nil
}

func (m *MemoryRideRequestRepository) TransitionStatus(_ context.Context, id, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	req.UpdatedAt = time.Now()
	m.requests[id] = req
	return true, nil
}
