package stub_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/usecase"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
	"github.com/jhoicas/Pizzeria-client/internal/infrastructure/rest"
	"github.com/jhoicas/Pizzeria-client/internal/infrastructure/session"
	"github.com/jhoicas/Pizzeria-client/internal/stub"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: un stub por test, consumido con el cliente real
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store      *session.Store
	auth       *usecase.AuthUseCase
	users      *usecase.UserUseCase
	orders     *usecase.OrderUseCase
	franchises *usecase.FranchiseUseCase
	docs       *usecase.DocsUseCase
}

// newEnv levanta un stub en un puerto efímero y arma la pila completa del
// cliente contra él (gateway real, sesión real, casos de uso reales).
func newEnv(t *testing.T) *env {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := stub.New(stub.Options{JWTSecret: "secreto-de-test"})
	go func() { _ = srv.App().Listener(ln) }()
	t.Cleanup(func() { _ = srv.App().Shutdown() })

	base := "http://" + ln.Addr().String()
	store := session.NewStore(nil, nil)
	gw := rest.NewClient(rest.Config{ServiceURL: base, FactoryURL: base}, store, nil)

	return &env{
		store:      store,
		auth:       usecase.NewAuthUseCase(gw, store),
		users:      usecase.NewUserUseCase(gw, store),
		orders:     usecase.NewOrderUseCase(gw),
		franchises: usecase.NewFranchiseUseCase(gw),
		docs:       usecase.NewDocsUseCase(gw),
	}
}

func (e *env) loginAdmin(t *testing.T) *entity.User {
	t.Helper()
	user, err := e.auth.Login(context.Background(), "a@jwt.com", "admin")
	require.NoError(t, err, "el admin sembrado debe poder autenticarse")
	return user
}

func (e *env) loginDiner(t *testing.T) *entity.User {
	t.Helper()
	user, err := e.auth.Login(context.Background(), "d@jwt.com", "diner")
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autenticación de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_LoginAdminSembrado(t *testing.T) {
	e := newEnv(t)
	user := e.loginAdmin(t)

	assert.Equal(t, "常用名字", user.Name)
	assert.True(t, entity.IsRole(user, entity.RoleAdmin))
	assert.Equal(t, entity.StatusAuthenticated, e.store.Status())
}

func TestIntegracion_LoginCredencialesMalas(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Login(context.Background(), "a@jwt.com", "incorrecta")

	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "unauthorized", he.Message)
	assert.Empty(t, e.store.Token())
}

func TestIntegracion_RegistroYDuplicado(t *testing.T) {
	e := newEnv(t)
	user, err := e.auth.Register(context.Background(), "Pepe Nuevo", "p@jwt.com", "clave")
	require.NoError(t, err)
	assert.True(t, entity.IsRole(user, entity.RoleDiner), "todo registro nuevo es diner")

	_, err = e.auth.Register(context.Background(), "Pepe Otra Vez", "p@jwt.com", "clave")
	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 409, he.Status)
	assert.Equal(t, "user already exists", he.Message)
}

func TestIntegracion_LogoutRevocaElToken(t *testing.T) {
	e := newEnv(t)
	e.loginDiner(t)
	token := e.store.Token()
	require.NotEmpty(t, token)

	e.auth.Logout(context.Background())
	assert.Empty(t, e.store.Token())

	// Reponer el token viejo: el servidor ya lo revocó, who-am-I debe fallar
	// y volver a limpiar la sesión.
	e.store.SetToken(token)
	assert.Nil(t, e.auth.CurrentUser(context.Background()))
	assert.Empty(t, e.store.Token())
}

func TestIntegracion_CurrentUserResuelveDesdeTokenRepuesto(t *testing.T) {
	e := newEnv(t)
	e.loginDiner(t)
	token := e.store.Token()

	// Simular un proceso nuevo: mismo token, identidad sin resolver.
	e.store.SetToken(token)
	require.Equal(t, entity.StatusResolving, e.store.Status())

	user := e.auth.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "Kai Chen", user.Name)
	assert.Equal(t, entity.StatusAuthenticated, e.store.Status())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de menú y pedidos de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_MenuEsPublico(t *testing.T) {
	e := newEnv(t)
	items, err := e.orders.Menu(context.Background())
	require.NoError(t, err, "el menú no requiere sesión")
	require.Len(t, items, 2)
	assert.Equal(t, "Veggie", items[0].Title)
}

func TestIntegracion_PedidoCompletoConVerificacion(t *testing.T) {
	e := newEnv(t)
	e.loginDiner(t)

	menu, err := e.orders.Menu(context.Background())
	require.NoError(t, err)

	receipt, err := e.orders.Submit(context.Background(), entity.OrderDraft{
		FranchiseID: 2,
		StoreID:     4,
		Items: []entity.OrderItem{
			{MenuID: menu[0].ID, Description: menu[0].Title, Price: menu[0].Price},
			{MenuID: menu[1].ID, Description: menu[1].Title, Price: menu[1].Price},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, receipt.Order.ID, "el servidor asigna el id del pedido")
	require.NotEmpty(t, receipt.ProofToken)

	// El proof token emitido debe pasar la verificación de la fábrica.
	res, err := e.orders.Verify(context.Background(), receipt.ProofToken)
	require.NoError(t, err)
	assert.Equal(t, "valid", res.Message)
	assert.NotEmpty(t, res.Payload)

	// Y el pedido debe aparecer en el historial del diner.
	hist, err := e.orders.History(context.Background())
	require.NoError(t, err)
	require.Len(t, hist.Orders, 1)
	assert.Equal(t, receipt.Order.ID, hist.Orders[0].ID)
}

func TestIntegracion_ProofTokenAjenoNoVerifica(t *testing.T) {
	e := newEnv(t)
	res, err := e.orders.Verify(context.Background(), "eyJhbGciOiJIUzI1NiJ9.falso.falso")
	assert.Nil(t, res)

	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "invalid JWT. Looks like you have a bad pizza!", he.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de administración de usuarios de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_ListarUsuariosRequiereAdmin(t *testing.T) {
	e := newEnv(t)
	e.loginDiner(t)

	_, err := e.users.List(context.Background(), dto.ListOptions{})
	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 403, he.Status)
}

func TestIntegracion_PrimeraPaginaDeUsuarios(t *testing.T) {
	e := newEnv(t)
	e.loginAdmin(t)

	// Página 0 del modelo de vista = primera página del endpoint uno-based.
	list, err := e.users.List(context.Background(), dto.ListOptions{Page: 0})
	require.NoError(t, err)
	require.Len(t, list.Users, 3, "deben venir las tres cuentas sembradas")
	assert.False(t, list.More)
	assert.Equal(t, "常用名字", list.Users[0].Name)
}

func TestIntegracion_PaginacionDeUsuarios(t *testing.T) {
	e := newEnv(t)
	e.loginAdmin(t)

	primera, err := e.users.List(context.Background(), dto.ListOptions{Page: 0, Limit: 2})
	require.NoError(t, err)
	require.Len(t, primera.Users, 2)
	assert.True(t, primera.More, "con limit 2 y 3 cuentas debe quedar otra página")

	segunda, err := e.users.List(context.Background(), dto.ListOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, segunda.Users, 1)
	assert.False(t, segunda.More)
}

func TestIntegracion_BorrarUsuarioYRefrescar(t *testing.T) {
	e := newEnv(t)
	e.loginAdmin(t)

	// El borrado responde 204 sin cuerpo; el refresco se pide después de que
	// el borrado terminó y ya no debe traer al usuario.
	require.NoError(t, e.users.Delete(context.Background(), "2"))

	list, err := e.users.List(context.Background(), dto.ListOptions{})
	require.NoError(t, err)
	for _, u := range list.Users {
		assert.NotEqual(t, "2", u.ID, "el usuario borrado no debe aparecer en el refresco")
	}
	assert.Len(t, list.Users, 2)
}

func TestIntegracion_UpdateRotaElToken(t *testing.T) {
	e := newEnv(t)
	diner := e.loginDiner(t)
	anterior := e.store.Token()

	diner.Name = "Kai C."
	updated, err := e.users.Update(context.Background(), diner, "")
	require.NoError(t, err)
	assert.Equal(t, "Kai C.", updated.Name)
	assert.NotEqual(t, anterior, e.store.Token(), "el servidor rota el token en cambios de perfil")

	// El token rotado debe seguir siendo válido para who-am-I.
	user := e.auth.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "Kai C.", user.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de franquicias de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_ListadoDeFranquiciasSembradas(t *testing.T) {
	e := newEnv(t)

	// Público y cero-based: la página 0 trae las tres franquicias sembradas.
	list, err := e.franchises.List(context.Background(), dto.ListOptions{Page: 0})
	require.NoError(t, err)
	require.Len(t, list.Franchises, 3)
	assert.Equal(t, "LotaPizza", list.Franchises[0].Name)
	require.Len(t, list.Franchises[0].Stores, 3)
	assert.Equal(t, "Lehi", list.Franchises[0].Stores[0].Name)
	assert.NotNil(t, list.Franchises[2].Stores, "topSpot no tiene tiendas pero la colección no es nil")
}

func TestIntegracion_FiltroDeFranquiciasPorNombre(t *testing.T) {
	e := newEnv(t)
	list, err := e.franchises.List(context.Background(), dto.ListOptions{Name: "*corp*"})
	require.NoError(t, err)
	require.Len(t, list.Franchises, 1)
	assert.Equal(t, "PizzaCorp", list.Franchises[0].Name)
}

func TestIntegracion_FranquiciasDelUsuario(t *testing.T) {
	e := newEnv(t)
	franchisee, err := e.auth.Login(context.Background(), "f@jwt.com", "franchisee")
	require.NoError(t, err)

	franchises, err := e.franchises.ForUser(context.Background(), franchisee.ID)
	require.NoError(t, err)
	require.Len(t, franchises, 1)
	assert.Equal(t, "LotaPizza", franchises[0].Name)
}

func TestIntegracion_CicloDeVidaDeFranquicia(t *testing.T) {
	e := newEnv(t)
	e.loginAdmin(t)
	ctx := context.Background()

	f, err := e.franchises.Create(ctx, "PizzaNueva", []string{"f@jwt.com"})
	require.NoError(t, err)
	require.NotZero(t, f.ID)
	require.Len(t, f.Admins, 1)
	assert.Equal(t, "Pizza Franchisee", f.Admins[0].Name, "el backend resuelve el admin por email")

	st, err := e.franchises.CreateStore(ctx, f.ID, "Provo")
	require.NoError(t, err)
	assert.Equal(t, "Provo", st.Name)
	assert.True(t, st.TotalRevenue.IsZero(), "una tienda nueva abre sin revenue")

	require.NoError(t, e.franchises.CloseStore(ctx, f.ID, st.ID))
	require.NoError(t, e.franchises.Close(ctx, f.ID))

	list, err := e.franchises.List(ctx, dto.ListOptions{})
	require.NoError(t, err)
	for _, got := range list.Franchises {
		assert.NotEqual(t, f.ID, got.ID, "la franquicia cerrada no debe listarse")
	}
}

func TestIntegracion_CrearFranquiciaConAdminDesconocido(t *testing.T) {
	e := newEnv(t)
	e.loginAdmin(t)

	_, err := e.franchises.Create(context.Background(), "SinAdmin", []string{"nadie@jwt.com"})
	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, "unknown user for franchise admin", he.Message)
}

func TestIntegracion_FranchiseeAbreTiendaEnSuFranquicia(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Login(context.Background(), "f@jwt.com", "franchisee")
	require.NoError(t, err)

	st, err := e.franchises.CreateStore(context.Background(), 2, "Orem")
	require.NoError(t, err, "el franchisee puede abrir tiendas en su propia franquicia")
	assert.Equal(t, "Orem", st.Name)

	_, err = e.franchises.CreateStore(context.Background(), 3, "Ajena")
	var he *rest.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 403, he.Status, "pero no en una franquicia ajena")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de docs
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_DocsDelServicio(t *testing.T) {
	e := newEnv(t)
	payload, err := e.docs.Docs(context.Background(), usecase.DocsService)
	require.NoError(t, err)
	assert.Equal(t, "stub", payload.Version)
	assert.NotEmpty(t, payload.Endpoints)
}
