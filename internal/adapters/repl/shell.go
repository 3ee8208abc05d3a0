// internal/adapters/repl/shell.go
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
	"github.com/ammerola/stockdesk/internal/core/services"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
	"github.com/ammerola/stockdesk/internal/surfaces"
)

// ErrExit ends the shell loop
var ErrExit = errors.New("exit")

// LoginHint is printed whenever a guarded command runs without a session
const LoginHint = "Login required. Run `stockdesk login` (or `login` in the shell) to sign in."

// AdminOnlyNotice is printed when a non-admin asks to delete
const AdminOnlyNotice = "Only administrators can delete products or categories."

// App bundles the services the shell drives
type App struct {
	Products   *services.ProductController
	Categories *services.CategoryController
	Auth       *services.AuthService
	Guard      *services.RouteGuard
	Dashboard  *services.Dashboard
	Images     ports.ImageSource
	Exporter   func(format string) (ports.ProductExporter, error)
}

// clearValue typed at a form prompt empties the field
const clearValue = "-"

type view int

const (
	viewProducts view = iota
	viewCategories
)

// Shell is the interactive command loop
type Shell struct {
	app     App
	console *Console
	logger  *slog.Logger

	view         view
	productForm  *surfaces.ProductForm
	categoryForm *surfaces.CategoryForm
	stockForm    *surfaces.StockForm
	history      *surfaces.MovementHistory
}

// NewShell creates a shell over app
func NewShell(app App, console *Console, logger *slog.Logger) *Shell {
	return &Shell{
		app:          app,
		console:      console,
		logger:       logger.With(slog.String("component", "shell")),
		productForm:  surfaces.NewProductForm(app.Products, app.Images, console),
		categoryForm: surfaces.NewCategoryForm(app.Categories),
		stockForm:    surfaces.NewStockForm(app.Products),
		history:      surfaces.NewMovementHistory(app.Products),
	}
}

// Run reads commands until exit or end of input
func (s *Shell) Run(ctx context.Context) error {
	s.console.Printf("stockdesk - inventory console\n")
	s.console.Printf("Signed in as %s. Type help for commands.\n", s.app.Auth.CurrentUser(ctx).Name)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.console.Printf("\nstockdesk> ")
		line, err := s.console.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, domain.ErrCancelled) {
				s.console.Printf("\n")
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}
		if line == "" {
			continue
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				s.console.Printf("Goodbye!\n")
				return nil
			}
			s.console.Printf("Error: %s\n", domain.UserMessage(err, err.Error()))
		}
	}
}

// Execute runs one command line
func (s *Shell) Execute(ctx context.Context, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	args := tokens[1:]

	ctx = logger.WithRequestID(ctx, "")
	ctx = logger.WithOperation(ctx, s.resource(), cmd)

	switch cmd {
	case "help", "h", "?":
		s.printHelp(ctx)
		return nil
	case "exit", "quit", "q":
		return ErrExit
	case "login":
		return s.login(ctx, args)
	case "register":
		return s.register(ctx)
	}

	if err := s.app.Guard.Require(ctx); err != nil {
		s.console.Printf("%s\n", LoginHint)
		return nil
	}

	switch cmd {
	case "logout":
		if err := s.app.Auth.Logout(ctx); err != nil {
			return err
		}
		s.console.Printf("Signed out.\n")
	case "whoami":
		u := s.app.Auth.CurrentUser(ctx)
		s.console.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	case "dashboard", "home":
		summary, err := s.app.Dashboard.Load(ctx)
		if err != nil {
			return err
		}
		PrintDashboard(s.console.Out(), summary)
	case "products", "ls":
		s.view = viewProducts
		s.refreshIfIdle(ctx)
		s.render()
	case "categories", "cats":
		s.view = viewCategories
		s.refreshIfIdle(ctx)
		s.render()
	case "page":
		if len(args) != 1 {
			s.console.Printf("Usage: page <n>\n")
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			s.console.Printf("Invalid page: %s\n", args[0])
			return nil
		}
		if !s.changePage(ctx, n) {
			s.console.Printf("No page %d.\n", n)
			return nil
		}
		s.render()
	case "next", "n":
		if !s.step(ctx, 1) {
			s.console.Printf("Already on the last page.\n")
			return nil
		}
		s.render()
	case "prev", "p":
		if !s.step(ctx, -1) {
			s.console.Printf("Already on the first page.\n")
			return nil
		}
		s.render()
	case "search", "find":
		s.search(ctx, strings.Join(args, " "))
		s.render()
	case "clear":
		s.search(ctx, "")
		s.render()
	case "refresh", "r":
		s.refresh(ctx)
		s.render()
	case "show":
		p, ok := s.productArg(ctx, args, "show")
		if ok {
			PrintProduct(s.console.Out(), p)
		}
	case "new", "add":
		return s.create(ctx)
	case "edit":
		return s.edit(ctx, args)
	case "delete", "rm":
		return s.remove(ctx, args)
	case "sell":
		return s.adjust(ctx, surfaces.ModeSell, args)
	case "restock":
		return s.adjust(ctx, surfaces.ModeRestock, args)
	case "history", "movements":
		p, ok := s.productArg(ctx, args, "history")
		if !ok {
			return nil
		}
		s.history.Open(ctx, p)
		PrintMovements(s.console.Out(), s.history.Product(), s.history.Movements())
		s.history.Close()
	case "export":
		return s.export(ctx, args)
	default:
		s.console.Printf("Unknown command: %s  (type help for all commands)\n", cmd)
	}
	return nil
}

// resource names the list the shell is working on, for log context
func (s *Shell) resource() string {
	if s.view == viewCategories {
		return "categories"
	}
	return "products"
}

func (s *Shell) refreshIfIdle(ctx context.Context) {
	if s.view == viewCategories {
		if s.app.Categories.Snapshot().Status == services.StatusIdle {
			_ = s.app.Categories.Load(ctx)
		}
		return
	}
	if s.app.Products.Snapshot().Status == services.StatusIdle {
		_ = s.app.Products.Load(ctx)
	}
}

func (s *Shell) refresh(ctx context.Context) {
	if s.view == viewCategories {
		_ = s.app.Categories.Refresh(ctx)
		return
	}
	_ = s.app.Products.Refresh(ctx)
}

func (s *Shell) changePage(ctx context.Context, n int) bool {
	if s.view == viewCategories {
		return s.app.Categories.ChangePage(ctx, n)
	}
	return s.app.Products.ChangePage(ctx, n)
}

func (s *Shell) step(ctx context.Context, delta int) bool {
	switch {
	case s.view == viewCategories && delta > 0:
		return s.app.Categories.NextPage(ctx)
	case s.view == viewCategories:
		return s.app.Categories.PrevPage(ctx)
	case delta > 0:
		return s.app.Products.NextPage(ctx)
	default:
		return s.app.Products.PrevPage(ctx)
	}
}

func (s *Shell) search(ctx context.Context, query string) {
	if s.view == viewCategories {
		_ = s.app.Categories.Search(ctx, query)
		return
	}
	_ = s.app.Products.Search(ctx, query)
}

func (s *Shell) render() {
	if s.view == viewCategories {
		PrintCategories(s.console.Out(), s.app.Categories.Snapshot())
		return
	}
	PrintProducts(s.console.Out(), s.app.Products.Snapshot())
}

// productArg resolves an id argument against the products on the current page
func (s *Shell) productArg(ctx context.Context, args []string, usage string) (domain.Product, bool) {
	if len(args) < 1 {
		s.console.Printf("Usage: %s <product-id>\n", usage)
		return domain.Product{}, false
	}
	if s.app.Products.Snapshot().Status == services.StatusIdle {
		_ = s.app.Products.Load(ctx)
	}
	p, ok := s.app.Products.Product(domain.ID(args[0]))
	if !ok {
		s.console.Printf("Product %s is not on the current page. Use products, search or page first.\n", args[0])
	}
	return p, ok
}

func (s *Shell) create(ctx context.Context) error {
	if s.view == viewCategories {
		s.categoryForm.Open(nil)
		return s.fillCategory(ctx)
	}
	s.productForm.Open(nil)
	return s.fillProduct(ctx)
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	if len(args) < 1 {
		s.console.Printf("Usage: edit <id>\n")
		return nil
	}
	id := domain.ID(args[0])

	if s.view == viewCategories {
		c, ok := s.app.Categories.Find(func(c domain.Category) bool { return c.ID == id })
		if !ok {
			s.console.Printf("Category %s is not on the current page.\n", id)
			return nil
		}
		s.categoryForm.Open(&c)
		return s.fillCategory(ctx)
	}

	p, ok := s.productArg(ctx, args, "edit")
	if !ok {
		return nil
	}
	s.productForm.Open(&p)
	return s.fillProduct(ctx)
}

func (s *Shell) fillProduct(ctx context.Context) error {
	if cats, err := s.app.Products.Categories(ctx); err == nil && len(cats) > 0 {
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = fmt.Sprintf("%s=%s", c.ID, c.Name)
		}
		s.console.Printf("  categories: %s\n", strings.Join(names, ", "))
	}

	labels := []struct{ field, label string }{
		{"name", "Name"},
		{"price", "Price"},
		{"stock", "Stock"},
		{"sku", "SKU"},
		{"category", "Category id"},
		{"image", "Image (path or s3://bucket/key)"},
	}

	for {
		draft := s.productForm.Draft()
		current := map[string]string{
			"name": draft.Name, "price": draft.Price, "stock": draft.Stock,
			"sku": draft.SKU, "category": draft.CategoryID, "image": draft.Image,
		}
		for _, l := range labels {
			answer, err := s.console.Ask(ctx, l.label, current[l.field])
			if err != nil {
				s.productForm.Close()
				return nil
			}
			if answer == clearValue {
				answer = ""
			}
			if err := s.productForm.Set(l.field, answer); err != nil {
				return err
			}
		}

		if s.productForm.Submit(ctx) {
			s.render()
			return nil
		}
		if !s.retry(ctx) {
			s.productForm.Close()
			return nil
		}
	}
}

func (s *Shell) fillCategory(ctx context.Context) error {
	for {
		answer, err := s.console.Ask(ctx, "Name", s.categoryForm.Draft().Name)
		if err != nil {
			s.categoryForm.Close()
			return nil
		}
		if err := s.categoryForm.Set("name", answer); err != nil {
			return err
		}

		if s.categoryForm.Submit(ctx) {
			s.render()
			return nil
		}
		if !s.retry(ctx) {
			s.categoryForm.Close()
			return nil
		}
	}
}

func (s *Shell) retry(ctx context.Context) bool {
	ok, err := s.console.Confirm(ctx, ports.Prompt{
		Title:        "Edit the form again?",
		ConfirmLabel: "Edit",
		CancelLabel:  "Discard",
	})
	return err == nil && ok
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if !s.app.Auth.CurrentUser(ctx).IsAdmin() {
		s.console.Printf("%s\n", AdminOnlyNotice)
		return nil
	}
	if len(args) < 1 {
		s.console.Printf("Usage: delete <id>\n")
		return nil
	}
	id := domain.ID(args[0])

	var ok bool
	if s.view == viewCategories {
		ok = s.app.Categories.Delete(ctx, id)
	} else {
		ok = s.app.Products.Delete(ctx, id)
	}
	if ok {
		s.render()
	}
	return nil
}

// adjust runs the stock form: sell|restock <id> [quantity] [reason...]
func (s *Shell) adjust(ctx context.Context, mode surfaces.StockMode, args []string) error {
	p, ok := s.productArg(ctx, args, mode.String())
	if !ok {
		return nil
	}

	s.stockForm.Open(p, mode)
	if mode == surfaces.ModeSell {
		s.console.Printf("  %s - %d in stock\n", p.Name, p.Stock)
	}

	if len(args) >= 2 {
		if err := s.stockForm.Set("quantity", args[1]); err != nil {
			s.stockForm.Close()
			return err
		}
		if len(args) >= 3 {
			_ = s.stockForm.Set("reason", strings.Join(args[2:], " "))
		}
	} else {
		qty, err := s.console.Ask(ctx, "Quantity", strconv.Itoa(s.stockForm.Draft().Quantity))
		if err != nil {
			s.stockForm.Close()
			return nil
		}
		if err := s.stockForm.Set("quantity", qty); err != nil {
			s.stockForm.Close()
			return err
		}
		reason, err := s.console.Ask(ctx, "Reason", "")
		if err != nil {
			s.stockForm.Close()
			return nil
		}
		_ = s.stockForm.Set("reason", reason)
	}

	if !s.stockForm.CanSubmit() {
		if s.stockForm.ExceedsStock() {
			s.console.Printf("Cannot sell %d: only %d in stock.\n", s.stockForm.Draft().Quantity, p.Stock)
		} else {
			s.console.Printf("Quantity must be at least 1.\n")
		}
		s.stockForm.Close()
		return nil
	}

	if s.stockForm.Submit(ctx) {
		s.render()
	} else {
		s.stockForm.Close()
	}
	return nil
}

func (s *Shell) export(ctx context.Context, args []string) error {
	if len(args) < 1 {
		s.console.Printf("Usage: export <file.xlsx|file.json>\n")
		return nil
	}
	path := args[0]

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	exporter, err := s.app.Exporter(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := s.app.Products.Export(ctx, f, exporter)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	if err != nil {
		return err
	}

	s.console.Printf("Exported %d products to %s\n", n, path)
	return nil
}

func (s *Shell) login(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	email, err := s.console.Ask(ctx, "Email", email)
	if err != nil {
		return nil
	}
	password, err := s.console.AskSecret(ctx, "Password")
	if err != nil {
		return nil
	}

	user, err := s.app.Auth.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		s.console.Error(ctx, "Login failed", domain.UserMessage(err, "Invalid credentials"))
		return nil
	}
	s.console.Success(ctx, "Welcome", user.Name)
	return nil
}

func (s *Shell) register(ctx context.Context) error {
	var reg domain.Registration
	fields := []struct {
		label  string
		dst    *string
		secret bool
	}{
		{"Name", &reg.Name, false},
		{"Email", &reg.Email, false},
		{"Password", &reg.Password, true},
		{"Confirm password", &reg.ConfirmPassword, true},
	}
	for _, f := range fields {
		var (
			answer string
			err    error
		)
		if f.secret {
			answer, err = s.console.AskSecret(ctx, f.label)
		} else {
			answer, err = s.console.Ask(ctx, f.label, "")
		}
		if err != nil {
			return nil
		}
		*f.dst = answer
	}

	if err := s.app.Auth.Register(ctx, reg); err != nil {
		s.console.Error(ctx, "Registration failed", domain.UserMessage(err, "Could not register"))
		return nil
	}
	s.console.Success(ctx, "Account created", "You can now log in")
	return nil
}

func (s *Shell) printHelp(ctx context.Context) {
	deleteLine := ""
	if s.app.Auth.CurrentUser(ctx).IsAdmin() {
		deleteLine = "  delete <id>                 delete in the current list (asks first)\n"
	}
	s.console.Printf(`Commands:
  products | categories       switch list and show the current page
  page <n> | next | prev      move between pages
  search <text> | clear       filter the current list
  refresh                     reload the current page
  show <id>                   product details
  new | edit <id>             create or edit in the current list
%s  sell <id> [qty] [reason]    record a sale
  restock <id> [qty] [reason] add units
  history <id>                stock movements of a product
  export <file.xlsx|.json>    export every product matching the search
  dashboard | whoami          summary and current user
  login | register | logout
  help | exit
`, deleteLine)
}
