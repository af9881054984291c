package stub

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
)

// account usuario del backend stub. El hash bcrypt nunca sale por el cable.
type account struct {
	ID    string
	Name  string
	Email string
	Hash  []byte
	Roles []dto.RoleRefDTO
}

// toDTO forma de cable del usuario (sin credenciales).
func (a *account) toDTO() dto.UserDTO {
	return dto.UserDTO{
		ID:    dto.FlexID(a.ID),
		Name:  a.Name,
		Email: a.Email,
		Roles: a.Roles,
	}
}

// state estado en memoria del stub. Mutex único: el stub es un doble de
// pruebas, no un servidor de producción.
type state struct {
	mu         sync.Mutex
	accounts   []*account
	franchises []*dto.FranchiseDTO
	orders     map[string][]dto.OrderDTO // por id de diner
	menu       []dto.MenuItemDTO
	active     map[string]string // jti -> id de usuario (logout lo revoca)
	nextID     int64
}

func newState() *state {
	s := &state{
		orders: make(map[string][]dto.OrderDTO),
		active: make(map[string]string),
		nextID: 100,
	}
	s.seed()
	return s
}

// seed datos iniciales: los mismos fixtures que usa la suite del cliente.
func (s *state) seed() {
	s.addAccount("常用名字", "a@jwt.com", "admin", dto.RoleRefDTO{Role: "admin"})
	s.addAccount("Kai Chen", "d@jwt.com", "diner", dto.RoleRefDTO{Role: "diner"})
	s.addAccount("Pizza Franchisee", "f@jwt.com", "franchisee",
		dto.RoleRefDTO{Role: "diner"}, dto.RoleRefDTO{Role: "franchisee", ObjectID: 2})

	money := func(v string) *dto.Money {
		d, _ := decimal.NewFromString(v)
		m := dto.NewMoney(d)
		return &m
	}
	s.franchises = []*dto.FranchiseDTO{
		{
			ID:   2,
			Name: "LotaPizza",
			Admins: []dto.FranchiseAdminDTO{
				{ID: "3", Name: "Pizza Franchisee", Email: "f@jwt.com"},
			},
			Stores: []dto.StoreDTO{
				{ID: 4, Name: "Lehi", TotalRevenue: money("0.008")},
				{ID: 5, Name: "Springville", TotalRevenue: money("0.002")},
				{ID: 6, Name: "American Fork", TotalRevenue: money("0")},
			},
		},
		{
			ID:     3,
			Name:   "PizzaCorp",
			Admins: []dto.FranchiseAdminDTO{},
			Stores: []dto.StoreDTO{{ID: 7, Name: "Spanish Fork", TotalRevenue: money("0.005")}},
		},
		{ID: 4, Name: "topSpot", Admins: []dto.FranchiseAdminDTO{}, Stores: []dto.StoreDTO{}},
	}

	price := func(v string) dto.Money {
		d, _ := decimal.NewFromString(v)
		return dto.NewMoney(d)
	}
	s.menu = []dto.MenuItemDTO{
		{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: price("0.0038"), Description: "A garden of delight"},
		{ID: 2, Title: "Pepperoni", Image: "pizza2.png", Price: price("0.0042"), Description: "Spicy treat"},
	}
}

func (s *state) addAccount(name, email, password string, roles ...dto.RoleRefDTO) *account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	a := &account{
		ID:    strconv.FormatInt(int64(len(s.accounts)+1), 10),
		Name:  name,
		Email: email,
		Hash:  hash,
		Roles: roles,
	}
	s.accounts = append(s.accounts, a)
	return a
}

func (s *state) byEmail(email string) *account {
	for _, a := range s.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (s *state) byID(id string) *account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *state) newID() int64 {
	s.nextID++
	return s.nextID
}

// matchName filtro con comodines al estilo del backend real: "*" empareja
// todo; los asteriscos en los extremos son contains, sin asteriscos es
// igualdad exacta (insensible a mayúsculas).
func matchName(pattern, name string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	p := strings.ToLower(pattern)
	n := strings.ToLower(name)
	wildcard := strings.Contains(p, "*")
	p = strings.Trim(p, "*")
	if wildcard {
		return strings.Contains(n, p)
	}
	return n == p
}

// paginate corta los elementos de una página cero-based y reporta si quedan
// más.
func paginate[T any](items []T, page, limit int) (out []T, more bool) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	start := page * limit
	if start >= len(items) {
		return []T{}, false
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], end < len(items)
}
