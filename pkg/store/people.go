package store

import (
	"fmt"
	"pos_backend/pkg/models"
	"pos_backend/pkg/utils"
	"sort"
	"strings"
	"time"
)

// StaffInput carries the editable fields of a staff record. An empty Passcode
// on update keeps the current one.
type StaffInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Passcode string `json:"passcode"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (in StaffInput) parse() (models.Role, models.StaffStatus, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", "", fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return "", "", fmt.Errorf("role %q: %w", in.Role, ErrInvalidInput)
	}
	status := models.StaffStatusActive
	if strings.TrimSpace(in.Status) != "" {
		if status, ok = models.ParseStaffStatus(in.Status); !ok {
			return "", "", fmt.Errorf("status %q: %w", in.Status, ErrInvalidInput)
		}
	}
	return role, status, nil
}

// StaffMembers returns every staff record.
func (s *AppState) StaffMembers() []models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Staff, len(s.staff))
	copy(out, s.staff)
	return out
}

// StaffByID looks up one staff record.
func (s *AppState) StaffByID(id string) (models.Staff, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.staffIndex(id)
	if idx < 0 {
		return models.Staff{}, false
	}
	return s.staff[idx], true
}

// AddStaff creates a staff account. The id is the login name; a blank one is generated.
func (s *AppState) AddStaff(in StaffInput) (models.Staff, error) {
	role, status, err := in.parse()
	if err != nil {
		return models.Staff{}, err
	}
	if err := utils.CheckPasscodeStrength(in.Passcode); err != nil {
		return models.Staff{}, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	hashed, err := utils.HashPasscode(in.Passcode)
	if err != nil {
		return models.Staff{}, fmt.Errorf("hash passcode: %w", err)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.newID()
	}

	member := models.Staff{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Role:     role,
		Status:   status,
		Passcode: hashed,
		Email:    optional(in.Email),
		Phone:    optional(in.Phone),
	}

	s.mu.Lock()
	if s.staffIndex(id) >= 0 {
		s.mu.Unlock()
		return models.Staff{}, fmt.Errorf("staff %q: %w", id, ErrDuplicateID)
	}
	s.staff = append(s.staff, member)
	s.mu.Unlock()

	saved := member
	s.writeInsert("staff "+id, &saved)
	return member, nil
}

// UpdateStaff edits a staff record; the id cannot change.
func (s *AppState) UpdateStaff(id string, in StaffInput) (models.Staff, error) {
	role, status, err := in.parse()
	if err != nil {
		return models.Staff{}, err
	}
	var hashed string
	if in.Passcode != "" {
		if err := utils.CheckPasscodeStrength(in.Passcode); err != nil {
			return models.Staff{}, fmt.Errorf("%v: %w", err, ErrInvalidInput)
		}
		if hashed, err = utils.HashPasscode(in.Passcode); err != nil {
			return models.Staff{}, fmt.Errorf("hash passcode: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.staffIndex(id)
	if idx < 0 {
		return models.Staff{}, notFound("staff", id)
	}
	member := &s.staff[idx]
	member.Name = strings.TrimSpace(in.Name)
	member.Role = role
	member.Status = status
	member.Email = optional(in.Email)
	member.Phone = optional(in.Phone)
	if hashed != "" {
		member.Passcode = hashed
	}

	saved := *member
	s.writeUpdate("staff "+id, &saved)
	return *member, nil
}

// DeleteStaff removes a staff record. Their orders keep the recorded name.
func (s *AppState) DeleteStaff(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.staffIndex(id)
	if idx < 0 {
		return notFound("staff", id)
	}
	s.staff = append(s.staff[:idx:idx], s.staff[idx+1:]...)
	s.writeDelete("staff "+id, &models.Staff{ID: id})
	return nil
}

func (s *AppState) staffIndex(id string) int {
	for i := range s.staff {
		if s.staff[i].ID == id {
			return i
		}
	}
	return -1
}

// CustomerInput carries the editable fields of a customer profile.
type CustomerInput struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	LoyaltyPoints int        `json:"loyaltyPoints"`
	Notes         string     `json:"notes"`
	LastVisit     *time.Time `json:"lastVisit"`
}

func (in CustomerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("name and phone are required: %w", ErrInvalidInput)
	}
	if in.LoyaltyPoints < 0 {
		return fmt.Errorf("loyalty points cannot be negative: %w", ErrInvalidInput)
	}
	return nil
}

// CustomerFilter selects ALL, VIP or NEW (visited within the last month).
type CustomerFilter struct {
	Segment string
	Search  string
}

// CustomerStats summarizes the whole customer base.
type CustomerStats struct {
	TotalProfiles int `json:"totalProfiles"`
	VIPCount      int `json:"vipCount"`
	TotalPoints   int `json:"totalPoints"`
}

// CustomerView is a customer with its derived VIP flag.
type CustomerView struct {
	models.Customer
	VIP bool `json:"vip"`
}

// CustomerList is the filtered list plus stats over all customers.
type CustomerList struct {
	Customers []CustomerView `json:"customers"`
	Stats     CustomerStats  `json:"stats"`
}

// Customers lists profiles matching filter, highest loyalty first.
func (s *AppState) Customers(filter CustomerFilter) CustomerList {
	segment := strings.ToUpper(strings.TrimSpace(filter.Segment))
	search := strings.TrimSpace(filter.Search)
	lowered := strings.ToLower(search)
	newSince := s.now().AddDate(0, -1, 0)

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := CustomerList{Customers: []CustomerView{}}
	for _, c := range s.customers {
		list.Stats.TotalProfiles++
		list.Stats.TotalPoints += c.LoyaltyPoints
		if c.IsVIP() {
			list.Stats.VIPCount++
		}

		switch segment {
		case "VIP":
			if !c.IsVIP() {
				continue
			}
		case "NEW":
			if !c.LastVisit.After(newSince) {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), lowered) && !strings.Contains(c.Phone, search) {
			continue
		}
		list.Customers = append(list.Customers, CustomerView{Customer: c, VIP: c.IsVIP()})
	}

	sort.SliceStable(list.Customers, func(i, j int) bool {
		return list.Customers[i].LoyaltyPoints > list.Customers[j].LoyaltyPoints
	})
	return list
}

// AddCustomer creates a profile. Last visit defaults to now.
func (s *AppState) AddCustomer(in CustomerInput) (models.Customer, error) {
	if err := in.validate(); err != nil {
		return models.Customer{}, err
	}
	c := models.Customer{ID: s.newID(), LastVisit: s.now()}
	applyCustomer(&c, in)

	s.mu.Lock()
	s.customers = append(s.customers, c)
	s.mu.Unlock()

	saved := c
	s.writeInsert("customer "+c.ID, &saved)
	return c, nil
}

// UpdateCustomer edits a profile, including a manual loyalty adjustment.
func (s *AppState) UpdateCustomer(id string, in CustomerInput) (models.Customer, error) {
	if err := in.validate(); err != nil {
		return models.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.customerIndex(id)
	if idx < 0 {
		return models.Customer{}, notFound("customer", id)
	}
	applyCustomer(&s.customers[idx], in)
	c := s.customers[idx]

	saved := c
	s.writeUpdate("customer "+id, &saved)
	return c, nil
}

// DeleteCustomer removes a profile.
func (s *AppState) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.customerIndex(id)
	if idx < 0 {
		return notFound("customer", id)
	}
	s.customers = append(s.customers[:idx:idx], s.customers[idx+1:]...)
	s.writeDelete("customer "+id, &models.Customer{ID: id})
	return nil
}

func applyCustomer(c *models.Customer, in CustomerInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = optional(in.Email)
	c.Notes = optional(in.Notes)
	c.LoyaltyPoints = in.LoyaltyPoints
	if in.LastVisit != nil {
		c.LastVisit = *in.LastVisit
	}
}

func (s *AppState) customerIndex(id string) int {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return i
		}
	}
	return -1
}
