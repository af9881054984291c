// pizzacli storefront de JWT Pizza para terminal: consume el SDK (sesión,
// gateway, adaptadores y role gate) igual que lo haría la SPA.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/usecase"
	"github.com/jhoicas/Pizzeria-client/internal/domain"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
	"github.com/jhoicas/Pizzeria-client/internal/infrastructure/pdf"
	"github.com/jhoicas/Pizzeria-client/internal/infrastructure/rest"
	"github.com/jhoicas/Pizzeria-client/internal/infrastructure/session"
	"github.com/jhoicas/Pizzeria-client/pkg/config"
	"github.com/jhoicas/Pizzeria-client/pkg/logger"
	"github.com/jhoicas/Pizzeria-client/pkg/prooftoken"
)

type cli struct {
	store      *session.Store
	auth       *usecase.AuthUseCase
	users      *usecase.UserUseCase
	orders     *usecase.OrderUseCase
	franchises *usecase.FranchiseUseCase
	docs       *usecase.DocsUseCase
	out        *message.Printer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	vault := session.NewFileVault(cfg.Session.TokenPath)
	store := session.NewStore(vault, log)
	gw := rest.NewClient(rest.Config{
		ServiceURL: cfg.Services.PizzaServiceURL,
		FactoryURL: cfg.Services.PizzaFactoryURL,
		Timeout:    time.Duration(cfg.Services.TimeoutSeconds) * time.Second,
	}, store, log)

	c := &cli{
		store:      store,
		auth:       usecase.NewAuthUseCase(gw, store),
		users:      usecase.NewUserUseCase(gw, store),
		orders:     usecase.NewOrderUseCase(gw),
		franchises: usecase.NewFranchiseUseCase(gw),
		docs:       usecase.NewDocsUseCase(gw),
		out:        message.NewPrinter(language.English),
	}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}
	ctx := context.Background()

	var err error
	switch args[0] {
	case "login":
		err = c.login(ctx, args[1:])
	case "register":
		err = c.register(ctx, args[1:])
	case "logout":
		c.auth.Logout(ctx)
		fmt.Println("sesión cerrada")
	case "whoami":
		err = c.whoami(ctx)
	case "menu":
		err = c.menu(ctx)
	case "order":
		err = c.order(ctx, args[1:])
	case "orders":
		err = c.history(ctx)
	case "verify":
		err = c.verify(ctx, args[1:])
	case "users":
		err = c.listUsers(ctx, args[1:])
	case "delete-user":
		err = c.deleteUser(ctx, args[1:])
	case "update-user":
		err = c.updateUser(ctx, args[1:])
	case "franchises":
		err = c.listFranchises(ctx, args[1:])
	case "franchise":
		err = c.franchisesForUser(ctx, args[1:])
	case "create-franchise":
		err = c.createFranchise(ctx, args[1:])
	case "close-franchise":
		err = c.closeFranchise(ctx, args[1:])
	case "create-store":
		err = c.createStore(ctx, args[1:])
	case "close-store":
		err = c.closeStore(ctx, args[1:])
	case "docs":
		err = c.showDocs(ctx, args[1:])
	case "receipt":
		err = c.receipt(args[1:])
	default:
		usage()
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", friendly(err))
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, `uso: pizzacli <comando> [flags]

  login | register | logout | whoami
  menu | order | orders | verify | receipt
  users | delete-user | update-user
  franchises | franchise | create-franchise | close-franchise
  create-store | close-store
  docs`)
}

// friendly traduce la taxonomía de fallos del gateway a mensajes de usuario.
func friendly(err error) string {
	var he *rest.HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	var ne *rest.NetworkError
	if errors.As(err, &ne) {
		return "no se pudo contactar al servicio: " + ne.Err.Error()
	}
	return err.Error()
}

// requireRole resuelve la identidad actual y aplica el role gate antes de
// una acción administrativa; el servidor vuelve a autorizar de todos modos.
func (c *cli) requireRole(ctx context.Context, role string) (*entity.User, error) {
	user := c.auth.CurrentUser(ctx)
	if !entity.IsRole(user, role) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email del usuario")
	password := fs.String("password", "", "password del usuario")
	_ = fs.Parse(args)

	user, err := c.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("hola %s (%s)\n", user.Name, roleNames(user))
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "nombre completo")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	user, err := c.auth.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("bienvenido %s\n", user.Name)
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	user := c.auth.CurrentUser(ctx)
	sess := c.store.Get()
	if user == nil {
		fmt.Println("sesión:", sess.Status())
		return nil
	}
	fmt.Printf("sesión: %s\n%s <%s> id=%s roles=%s\n",
		sess.Status(), user.Name, user.Email, user.ID, roleNames(user))
	return nil
}

func roleNames(u *entity.User) string {
	if u == nil || len(u.Roles) == 0 {
		return "sin roles"
	}
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return strings.Join(names, ",")
}

// ── Menú y pedidos ────────────────────────────────────────────────────────────

func (c *cli) menu(ctx context.Context) error {
	items, err := c.orders.Menu(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPIZZA\tPRECIO ₿\tDESCRIPCIÓN")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.ID, it.Title, it.Price, it.Description)
	}
	return w.Flush()
}

// order arma el borrador desde el menú y lo envía. La secuencia es estricta:
// primero el menú, después el submit, nunca en paralelo.
func (c *cli) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	storeID := fs.Int64("store", 0, "id de la tienda")
	franchiseID := fs.Int64("franchise", 0, "id de la franquicia")
	items := fs.String("items", "", "ids del menú separados por coma, ej. 1,1,2")
	_ = fs.Parse(args)

	menu, err := c.orders.Menu(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]entity.MenuItem, len(menu))
	for _, it := range menu {
		byID[it.ID] = it
	}

	draft := entity.OrderDraft{StoreID: *storeID, FranchiseID: *franchiseID}
	for _, part := range strings.Split(*items, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, convErr := strconv.ParseInt(part, 10, 64)
		if convErr != nil {
			return fmt.Errorf("%w: id de menú %q", domain.ErrInvalidInput, part)
		}
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: la pizza %d no está en el menú", domain.ErrInvalidInput, id)
		}
		draft.Items = append(draft.Items, entity.OrderItem{
			MenuID:      it.ID,
			Description: it.Title,
			Price:       it.Price,
		})
	}

	receipt, err := c.orders.Submit(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("pedido #%d aceptado, total %s ₿\nproof token: %s\n",
		receipt.Order.ID, receipt.Order.Total(), receipt.ProofToken)
	return nil
}

func (c *cli) history(ctx context.Context) error {
	hist, err := c.orders.History(ctx)
	if err != nil {
		return err
	}
	if len(hist.Orders) == 0 {
		fmt.Println("sin pedidos todavía")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PEDIDO\tFECHA\tPIZZAS\tTOTAL ₿")
	for _, o := range hist.Orders {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", o.ID, o.Date, len(o.Items), o.Total())
	}
	return w.Flush()
}

func (c *cli) verify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	token := fs.String("token", "", "proof token del pedido")
	_ = fs.Parse(args)

	res, err := c.orders.Verify(ctx, *token)
	if err != nil {
		return err
	}
	fmt.Println("fábrica:", res.Message)
	if len(res.Payload) > 0 {
		fmt.Println(string(res.Payload))
	}
	return nil
}

// receipt genera el PDF del recibo sin red, a partir del proof token.
func (c *cli) receipt(args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	token := fs.String("token", "", "proof token del pedido")
	outPath := fs.String("out", "receipt.pdf", "ruta del PDF a escribir")
	_ = fs.Parse(args)

	payload, err := prooftoken.DecodePayload(*token)
	if err != nil {
		return err
	}
	if len(payload.Order) == 0 {
		return domain.ErrInvalidProof
	}
	var orderDTO dto.OrderDTO
	if err := json.Unmarshal(payload.Order, &orderDTO); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidProof, err)
	}

	gen := pdf.NewReceiptGenerator()
	raw, err := gen.GenerateReceipt(entity.OrderReceipt{
		Order:      orderDTO.ToEntity(),
		ProofToken: *token,
	}, c.store.Get().User)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, raw, 0o644); err != nil {
		return err
	}
	fmt.Println("recibo escrito en", *outPath)
	return nil
}

// ── Usuarios (admin) ──────────────────────────────────────────────────────────

func (c *cli) listUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	page := fs.Int("page", 0, "página (cero-based)")
	limit := fs.Int("limit", 10, "tamaño de página")
	name := fs.String("name", "*", "filtro por nombre, admite *")
	_ = fs.Parse(args)

	if _, err := c.requireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}
	list, err := c.users.List(ctx, dto.ListOptions{Page: *page, Limit: *limit, Name: *name})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROLES")
	for _, u := range list.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, roleNames(u))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if list.More {
		fmt.Println("… hay más páginas")
	}
	return nil
}

// deleteUser borra y después refresca: el listado solo se pide cuando el
// delete ya terminó, para no mostrar una lista vieja.
func (c *cli) deleteUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
	id := fs.String("id", "", "id del usuario a borrar")
	_ = fs.Parse(args)

	if _, err := c.requireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}
	if err := c.users.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Println("usuario", *id, "eliminado")
	return c.listUsers(ctx, nil)
}

func (c *cli) updateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-user", flag.ExitOnError)
	id := fs.String("id", "", "id del usuario (por defecto, el propio)")
	name := fs.String("name", "", "nombre nuevo")
	email := fs.String("email", "", "email nuevo")
	password := fs.String("password", "", "password nueva")
	_ = fs.Parse(args)

	current := c.auth.CurrentUser(ctx)
	if current == nil {
		return domain.ErrNoSession
	}
	target := *current
	if *id != "" {
		target = entity.User{ID: *id}
	}
	if *name != "" {
		target.Name = *name
	}
	if *email != "" {
		target.Email = *email
	}

	updated, err := c.users.Update(ctx, &target, *password)
	if err != nil {
		return err
	}
	fmt.Printf("usuario %s actualizado\n", updated.ID)
	return nil
}

// ── Franquicias ───────────────────────────────────────────────────────────────

func (c *cli) listFranchises(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("franchises", flag.ExitOnError)
	page := fs.Int("page", 0, "página (cero-based)")
	limit := fs.Int("limit", 10, "tamaño de página")
	name := fs.String("name", "*", "filtro por nombre, admite *")
	_ = fs.Parse(args)

	list, err := c.franchises.List(ctx, dto.ListOptions{Page: *page, Limit: *limit, Name: *name})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRANQUICIA\tADMINS\tTIENDA\tREVENUE ₿")
	for _, f := range list.Franchises {
		admins := make([]string, 0, len(f.Admins))
		for _, a := range f.Admins {
			admins = append(admins, a.Name)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t\t\n", f.ID, f.Name, strings.Join(admins, ","))
		for _, st := range f.Stores {
			fmt.Fprintf(w, "\t\t\t%s\t%s\n", st.Name, c.out.Sprintf("%v", st.TotalRevenue))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if list.More {
		fmt.Println("… hay más páginas")
	}
	return nil
}

func (c *cli) franchisesForUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("franchise", flag.ExitOnError)
	userID := fs.String("user", "", "id del usuario (por defecto, el propio)")
	_ = fs.Parse(args)

	id := *userID
	if id == "" {
		user := c.auth.CurrentUser(ctx)
		if user == nil {
			return domain.ErrNoSession
		}
		id = user.ID
	}
	franchises, err := c.franchises.ForUser(ctx, id)
	if err != nil {
		return err
	}
	if len(franchises) == 0 {
		fmt.Println("el usuario no administra franquicias")
		return nil
	}
	for _, f := range franchises {
		fmt.Printf("%d %s (%d tiendas)\n", f.ID, f.Name, len(f.Stores))
	}
	return nil
}

func (c *cli) createFranchise(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-franchise", flag.ExitOnError)
	name := fs.String("name", "", "nombre de la franquicia")
	admins := fs.String("admins", "", "emails de los admins separados por coma")
	_ = fs.Parse(args)

	if _, err := c.requireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}
	var emails []string
	for _, e := range strings.Split(*admins, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	f, err := c.franchises.Create(ctx, *name, emails)
	if err != nil {
		return err
	}
	fmt.Printf("franquicia %q creada con id %d\n", f.Name, f.ID)
	return nil
}

func (c *cli) closeFranchise(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("close-franchise", flag.ExitOnError)
	id := fs.Int64("id", 0, "id de la franquicia")
	_ = fs.Parse(args)

	if _, err := c.requireRole(ctx, entity.RoleAdmin); err != nil {
		return err
	}
	if err := c.franchises.Close(ctx, *id); err != nil {
		return err
	}
	fmt.Println("franquicia", *id, "cerrada")
	return nil
}

func (c *cli) createStore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-store", flag.ExitOnError)
	franchiseID := fs.Int64("franchise", 0, "id de la franquicia")
	name := fs.String("name", "", "nombre de la tienda")
	_ = fs.Parse(args)

	st, err := c.franchises.CreateStore(ctx, *franchiseID, *name)
	if err != nil {
		return err
	}
	fmt.Printf("tienda %q creada con id %d\n", st.Name, st.ID)
	return nil
}

func (c *cli) closeStore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("close-store", flag.ExitOnError)
	franchiseID := fs.Int64("franchise", 0, "id de la franquicia")
	storeID := fs.Int64("store", 0, "id de la tienda")
	_ = fs.Parse(args)

	if err := c.franchises.CloseStore(ctx, *franchiseID, *storeID); err != nil {
		return err
	}
	fmt.Println("tienda", *storeID, "cerrada")
	return nil
}

// ── Docs ──────────────────────────────────────────────────────────────────────

func (c *cli) showDocs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	kind := fs.String("kind", usecase.DocsService, "service o factory")
	_ = fs.Parse(args)

	payload, err := c.docs.Docs(ctx, *kind)
	if err != nil {
		return err
	}
	fmt.Println("versión:", payload.Version)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range payload.Endpoints {
		auth := ""
		if e.RequiresAuth {
			auth = "🔐"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Method, e.Path, auth, e.Description)
	}
	return w.Flush()
}
