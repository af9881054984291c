// Package stub implementa un backend JWT Pizza en memoria para desarrollo y
// tests de integración del cliente. Replica la superficie HTTP documentada
// del servicio real (formas de cable incluidas: {user,token}, {franchises,
// more}, 204 en delete de usuario, {"message":...} en errores) pero no es el
// backend de producción.
package stub

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
	"github.com/jhoicas/Pizzeria-client/pkg/logger"
)

// Options configuración del stub.
type Options struct {
	JWTSecret string
	Logger    *logger.Logger
}

// Server backend stub montado sobre Fiber.
type Server struct {
	app    *fiber.App
	state  *state
	secret []byte
	log    *logger.Logger
}

// claims del token de sesión que emite el stub.
type claims struct {
	jwt.RegisteredClaims
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []dto.RoleRefDTO `json:"roles"`
}

// New construye el stub con datos sembrados.
func New(opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "stub-secret"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	s := &Server{
		state:  newState(),
		secret: []byte(opts.JWTSecret),
		log:    opts.Logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "jwt-pizza-stub",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Put("/api/auth", s.login)
	app.Post("/api/auth", s.register)
	app.Delete("/api/auth", s.requireAuth, s.logout)

	app.Get("/api/user/me", s.requireAuth, s.me)
	app.Get("/api/user", s.requireAuth, s.requireAdmin, s.listUsers)
	app.Put("/api/user/:id", s.requireAuth, s.updateUser)
	app.Delete("/api/user/:id", s.requireAuth, s.requireAdmin, s.deleteUser)

	app.Get("/api/order/menu", s.menu)
	app.Get("/api/order", s.requireAuth, s.orderHistory)
	app.Post("/api/order", s.requireAuth, s.submitOrder)
	app.Post("/api/order/verify", s.verifyOrder)

	app.Get("/api/franchise", s.listFranchises)
	app.Get("/api/franchise/:userId", s.requireAuth, s.franchisesForUser)
	app.Post("/api/franchise", s.requireAuth, s.requireAdmin, s.createFranchise)
	app.Delete("/api/franchise/:id", s.requireAuth, s.requireAdmin, s.closeFranchise)
	app.Post("/api/franchise/:id/store", s.requireAuth, s.createStore)
	app.Delete("/api/franchise/:id/store/:storeId", s.requireAuth, s.closeStore)

	app.Get("/api/docs", s.docs)

	s.app = app
	return s
}

// App expone la aplicación Fiber para Listen/Listener/Test.
func (s *Server) App() *fiber.App { return s.app }

// fail cuerpo de error con la forma del backend real: {"message": "..."}.
func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// ── Tokens ────────────────────────────────────────────────────────────────────

func (s *Server) mintToken(a *account) (string, error) {
	jti := uuid.NewString()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			Subject:  a.ID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Name:  a.Name,
		Email: a.Email,
		Roles: a.Roles,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	s.state.active[jti] = a.ID
	return tok, nil
}

func (s *Server) parseToken(raw string) (*account, string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, "", err
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, "", fmt.Errorf("claims inválidos")
	}
	if _, live := s.state.active[cl.ID]; !live {
		return nil, "", fmt.Errorf("token revocado")
	}
	a := s.state.byID(cl.Subject)
	if a == nil {
		return nil, "", fmt.Errorf("usuario desconocido")
	}
	return a, cl.ID, nil
}

// requireAuth valida el Bearer token y deja la cuenta y el jti en Locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	s.state.mu.Lock()
	a, jti, err := s.parseToken(strings.TrimSpace(parts[1]))
	s.state.mu.Unlock()
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals("account", a)
	c.Locals("jti", jti)
	return c.Next()
}

// requireAdmin autoriza solo cuentas con rol admin.
func (s *Server) requireAdmin(c *fiber.Ctx) error {
	a := currentAccount(c)
	if a == nil || !hasRole(a, entity.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "unable to perform this action")
	}
	return c.Next()
}

func currentAccount(c *fiber.Ctx) *account {
	a, _ := c.Locals("account").(*account)
	return a
}

func hasRole(a *account, role string) bool {
	for _, r := range a.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (s *Server) login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	a := s.state.byEmail(in.Email)
	if a == nil || bcrypt.CompareHashAndPassword(a.Hash, []byte(in.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	tok, err := s.mintToken(a)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.AuthPayload{User: a.toDTO(), Token: tok})
}

func (s *Server) register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "name, email, and password are required")
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.byEmail(in.Email) != nil {
		return fail(c, fiber.StatusConflict, "user already exists")
	}
	a := s.state.addAccount(in.Name, in.Email, in.Password, dto.RoleRefDTO{Role: entity.RoleDiner})
	tok, err := s.mintToken(a)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.AuthPayload{User: a.toDTO(), Token: tok})
}

func (s *Server) logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	s.state.mu.Lock()
	delete(s.state.active, jti)
	s.state.mu.Unlock()
	return c.JSON(fiber.Map{"message": "logout successful"})
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(currentAccount(c).toDTO())
}

// listUsers paginación UNO-based: page=1 es la primera página. El cliente
// traduce desde su convención cero-based.
func (s *Server) listUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	name := c.Query("name", "*")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	matched := make([]dto.UserDTO, 0, len(s.state.accounts))
	for _, a := range s.state.accounts {
		if matchName(name, a.Name) {
			matched = append(matched, a.toDTO())
		}
	}
	pageItems, more := paginate(matched, page-1, limit)
	return c.JSON(dto.UserListPayload{Users: pageItems, More: more})
}

func (s *Server) updateUser(c *fiber.Ctx) error {
	caller := currentAccount(c)
	id := c.Params("id")
	if caller.ID != id && !hasRole(caller, entity.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "unauthorized")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	a := s.state.byID(id)
	if a == nil {
		return fail(c, fiber.StatusNotFound, "unknown user")
	}
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Email != "" {
		a.Email = in.Email
	}
	if in.Password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
		a.Hash = hash
	}
	// El backend real rota el token en cambios de perfil; el stub también.
	tok, err := s.mintToken(a)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.AuthPayload{User: a.toDTO(), Token: tok})
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for i, a := range s.state.accounts {
		if a.ID == id {
			s.state.accounts = append(s.state.accounts[:i], s.state.accounts[i+1:]...)
			// 204: éxito sin cuerpo.
			return c.SendStatus(fiber.StatusNoContent)
		}
	}
	return fail(c, fiber.StatusNotFound, "unknown user")
}

// ── Menú y pedidos ────────────────────────────────────────────────────────────

func (s *Server) menu(c *fiber.Ctx) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return c.JSON(s.state.menu)
}

func (s *Server) orderHistory(c *fiber.Ctx) error {
	a := currentAccount(c)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	orders := s.state.orders[a.ID]
	if orders == nil {
		orders = []dto.OrderDTO{}
	}
	return c.JSON(dto.OrderHistoryPayload{
		ID:      dto.FlexID("h" + a.ID),
		DinerID: dto.FlexID(a.ID),
		Orders:  orders,
	})
}

func (s *Server) submitOrder(c *fiber.Ctx) error {
	a := currentAccount(c)
	var in dto.OrderDTO
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if len(in.Items) == 0 {
		return fail(c, fiber.StatusBadRequest, "order must include at least one item")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	in.ID = s.state.newID()
	in.Date = time.Now().UTC().Format(time.RFC3339)
	s.state.orders[a.ID] = append(s.state.orders[a.ID], in)

	// Proof token: el payload firmado que la fábrica devolvería.
	proof := jwt.MapClaims{
		"jti":    uuid.NewString(),
		"iat":    time.Now().Unix(),
		"vendor": fiber.Map{"id": "jwt-pizza-stub", "name": "JWT Pizza (stub)"},
		"diner":  fiber.Map{"id": a.ID, "name": a.Name, "email": a.Email},
		"order":  in,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, proof).SignedString(s.secret)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.OrderSubmitPayload{Order: in, JWT: tok})
}

func (s *Server) verifyOrder(c *fiber.Ctx) error {
	var in dto.VerifyRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	parsed, err := jwt.Parse(in.JWT, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return fail(c, fiber.StatusBadRequest, "invalid JWT. Looks like you have a bad pizza!")
	}
	return c.JSON(fiber.Map{"message": "valid", "payload": parsed.Claims})
}

// ── Franquicias ───────────────────────────────────────────────────────────────

// listFranchises paginación CERO-based, a diferencia del listado de
// usuarios. Endpoint público como en el backend real.
func (s *Server) listFranchises(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	name := c.Query("name", "*")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	matched := make([]dto.FranchiseDTO, 0, len(s.state.franchises))
	for _, f := range s.state.franchises {
		if matchName(name, f.Name) {
			matched = append(matched, *f)
		}
	}
	pageItems, more := paginate(matched, page, limit)
	return c.JSON(dto.FranchiseListPayload{Franchises: pageItems, More: more})
}

func (s *Server) franchisesForUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	out := []dto.FranchiseDTO{}
	for _, f := range s.state.franchises {
		for _, admin := range f.Admins {
			if string(admin.ID) == userID {
				out = append(out, *f)
				break
			}
		}
	}
	return c.JSON(out)
}

func (s *Server) createFranchise(c *fiber.Ctx) error {
	var in dto.CreateFranchiseRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.Name == "" {
		return fail(c, fiber.StatusBadRequest, "franchise name is required")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	admins := make([]dto.FranchiseAdminDTO, 0, len(in.Admins))
	for _, adm := range in.Admins {
		a := s.state.byEmail(adm.Email)
		if a == nil {
			return fail(c, fiber.StatusNotFound, "unknown user for franchise admin")
		}
		admins = append(admins, dto.FranchiseAdminDTO{ID: dto.FlexID(a.ID), Name: a.Name, Email: a.Email})
	}
	f := &dto.FranchiseDTO{
		ID:     s.state.newID(),
		Name:   in.Name,
		Admins: admins,
		Stores: []dto.StoreDTO{},
	}
	s.state.franchises = append(s.state.franchises, f)
	return c.JSON(*f)
}

func (s *Server) closeFranchise(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for i, f := range s.state.franchises {
		if f.ID == id {
			s.state.franchises = append(s.state.franchises[:i], s.state.franchises[i+1:]...)
			return c.JSON(fiber.Map{"message": "franchise deleted"})
		}
	}
	return fail(c, fiber.StatusNotFound, "unknown franchise")
}

func (s *Server) createStore(c *fiber.Ctx) error {
	caller := currentAccount(c)
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	f := s.findFranchise(id)
	if f == nil {
		return fail(c, fiber.StatusNotFound, "unknown franchise")
	}
	if !hasRole(caller, entity.RoleAdmin) && !isFranchiseAdmin(f, caller.ID) {
		return fail(c, fiber.StatusForbidden, "unable to perform this action")
	}
	zero := dto.NewMoney(decimal.Zero)
	store := dto.StoreDTO{ID: s.state.newID(), Name: in.Name, TotalRevenue: &zero}
	f.Stores = append(f.Stores, store)
	return c.JSON(store)
}

func (s *Server) closeStore(c *fiber.Ctx) error {
	caller := currentAccount(c)
	id, _ := strconv.ParseInt(c.Params("id"), 10, 64)
	storeID, _ := strconv.ParseInt(c.Params("storeId"), 10, 64)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	f := s.findFranchise(id)
	if f == nil {
		return fail(c, fiber.StatusNotFound, "unknown franchise")
	}
	if !hasRole(caller, entity.RoleAdmin) && !isFranchiseAdmin(f, caller.ID) {
		return fail(c, fiber.StatusForbidden, "unable to perform this action")
	}
	for i, st := range f.Stores {
		if st.ID == storeID {
			f.Stores = append(f.Stores[:i], f.Stores[i+1:]...)
			return c.JSON(fiber.Map{"message": "store deleted"})
		}
	}
	return fail(c, fiber.StatusNotFound, "unknown store")
}

func (s *Server) findFranchise(id int64) *dto.FranchiseDTO {
	for _, f := range s.state.franchises {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func isFranchiseAdmin(f *dto.FranchiseDTO, userID string) bool {
	for _, a := range f.Admins {
		if string(a.ID) == userID {
			return true
		}
	}
	return false
}

// ── Docs ──────────────────────────────────────────────────────────────────────

func (s *Server) docs(c *fiber.Ctx) error {
	return c.JSON(dto.DocsPayload{
		Version: "stub",
		Endpoints: []dto.EndpointDoc{
			{Method: "PUT", Path: "/api/auth", Description: "Login existing user"},
			{Method: "POST", Path: "/api/auth", Description: "Register a new user"},
			{Method: "DELETE", Path: "/api/auth", Description: "Logout a user", RequiresAuth: true},
			{Method: "GET", Path: "/api/user/me", Description: "Get authenticated user", RequiresAuth: true},
			{Method: "GET", Path: "/api/user", Description: "List users", RequiresAuth: true},
			{Method: "PUT", Path: "/api/user/:id", Description: "Update user", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/user/:id", Description: "Delete user", RequiresAuth: true},
			{Method: "GET", Path: "/api/order/menu", Description: "Get the pizza menu"},
			{Method: "GET", Path: "/api/order", Description: "Get the orders for the authenticated user", RequiresAuth: true},
			{Method: "POST", Path: "/api/order", Description: "Create an order", RequiresAuth: true},
			{Method: "POST", Path: "/api/order/verify", Description: "Verify a pizza order"},
			{Method: "GET", Path: "/api/franchise", Description: "List franchises"},
			{Method: "GET", Path: "/api/franchise/:userId", Description: "List a user's franchises", RequiresAuth: true},
			{Method: "POST", Path: "/api/franchise", Description: "Create a franchise", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/franchise/:id", Description: "Close a franchise", RequiresAuth: true},
			{Method: "POST", Path: "/api/franchise/:id/store", Description: "Create a store", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/franchise/:id/store/:storeId", Description: "Close a store", RequiresAuth: true},
		},
	})
}
