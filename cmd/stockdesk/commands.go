// cmd/stockdesk/commands.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/adapters/repl"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/pkg/config"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitNoLogin  = 2
	exitBadUsage = 64
)

// listOptions positions the products list before a command runs
type listOptions struct {
	page   int
	search string
}

type runner struct {
	cfg    *config.Config
	deps   *dependencies
	list   listOptions
	logger *slog.Logger
}

// guarded lists the commands that need a session. The value is true when the
// command works on the products page selected by --page and --search.
var guarded = map[string]bool{
	"logout": false, "whoami": false, "dashboard": false,
	"categories": false, "new": false, "import": false,
	"products": true, "export": true,
	"show": true, "history": true, "edit": true, "delete": true,
	"sell": true, "restock": true,
}

func (r *runner) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		args = []string{"shell"}
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "shell":
		if !r.deps.app.Guard.Allow(ctx) {
			if code := r.login(ctx, nil); code != exitOK {
				return code
			}
		}
		if err := r.deps.shell.Run(ctx); err != nil {
			return r.fail(err)
		}
		return exitOK
	case "login":
		return r.login(ctx, rest)
	case "register":
		return r.exec(ctx, "register")
	case "help":
		return r.exec(ctx, "help")
	}

	usesList, ok := guarded[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		_ = r.deps.shell.Execute(ctx, "help")
		return exitBadUsage
	}

	if err := r.deps.app.Guard.Require(ctx); err != nil {
		fmt.Fprintln(os.Stderr, repl.LoginHint)
		return exitNoLogin
	}

	if cmd == "delete" && !r.deps.app.Auth.CurrentUser(ctx).IsAdmin() {
		fmt.Fprintln(os.Stderr, repl.AdminOnlyNotice)
		return exitFailure
	}

	if usesList {
		if err := r.position(ctx); err != nil {
			return r.fail(err)
		}
	}

	switch cmd {
	case "products":
		repl.PrintProducts(r.deps.console.Out(), r.deps.app.Products.Snapshot())
		return exitOK
	case "categories":
		return r.categories(ctx)
	case "import":
		return r.importFile(ctx, rest)
	}

	return r.exec(ctx, strings.Join(append([]string{cmd}, rest...), " "))
}

func (r *runner) exec(ctx context.Context, line string) int {
	if err := r.deps.shell.Execute(ctx, line); err != nil && !errors.Is(err, repl.ErrExit) {
		return r.fail(err)
	}
	return exitOK
}

func (r *runner) fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err, err.Error()))
	r.logger.Debug("command failed", slog.String("error", err.Error()))
	return exitFailure
}

// position loads the products page named by --search and --page
func (r *runner) position(ctx context.Context) error {
	products := r.deps.app.Products
	if r.list.search != "" {
		if err := products.Search(ctx, r.list.search); err != nil {
			return err
		}
	} else if err := products.Load(ctx); err != nil {
		return err
	}

	if r.list.page > 1 && !products.ChangePage(ctx, r.list.page) {
		return fmt.Errorf("no page %d", r.list.page)
	}
	return nil
}

func (r *runner) categories(ctx context.Context) int {
	list := r.deps.app.Categories
	if err := list.Load(ctx); err != nil {
		return r.fail(err)
	}
	if r.list.page > 1 && !list.ChangePage(ctx, r.list.page) {
		return r.fail(fmt.Errorf("no page %d", r.list.page))
	}
	repl.PrintCategories(r.deps.console.Out(), list.Snapshot())
	return exitOK
}

// login signs in with configured credentials when present and prompts otherwise
func (r *runner) login(ctx context.Context, args []string) int {
	provider, err := config.NewSecretsProvider(ctx, r.cfg, r.logger)
	if err == nil {
		email, password, cerr := config.LoginCredentials(ctx, r.cfg, provider)
		if cerr == nil {
			user, lerr := r.deps.app.Auth.Login(ctx, domain.Credentials{Email: email, Password: password})
			if lerr != nil {
				fmt.Fprintf(os.Stderr, "Login failed: %s\n", domain.UserMessage(lerr, "Invalid credentials"))
				return exitFailure
			}
			r.deps.console.Success(ctx, "Welcome", user.Name)
			return exitOK
		}
		r.logger.Debug("no stored credentials, prompting", slog.String("reason", cerr.Error()))
	} else {
		r.logger.Warn("secrets provider unavailable", slog.String("error", err.Error()))
	}

	line := strings.Join(append([]string{"login"}, args...), " ")
	if code := r.exec(ctx, line); code != exitOK {
		return code
	}
	if !r.deps.app.Guard.Allow(ctx) {
		return exitFailure
	}
	return exitOK
}

// importFile creates one product per spreadsheet row, matching categories by name
func (r *runner) importFile(ctx context.Context, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockdesk import <file.xlsx>")
		return exitBadUsage
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return r.fail(fmt.Errorf("failed to read %s: %w", args[0], err))
	}
	rows, rowErrs, err := export.ReadProducts(data)
	if err != nil {
		return r.fail(err)
	}

	products := r.deps.app.Products
	categories, err := products.Categories(ctx)
	if err != nil {
		return r.fail(err)
	}
	byName := make(map[string]domain.ID, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	created := 0
	for _, row := range rows {
		id, ok := byName[strings.ToLower(strings.TrimSpace(row.Category))]
		if !ok {
			rowErrs = append(rowErrs, &export.RowError{Row: row.Row, Err: fmt.Errorf("unknown category %q", row.Category)})
			continue
		}
		row.Input.CategoryID = id
		if products.Save(ctx, row.Input, "") {
			created++
		}
	}

	for _, e := range rowErrs {
		r.deps.console.Printf("Skipped %s\n", e.Error())
	}
	r.deps.console.Printf("Imported %d of %d products from %s\n", created, len(rows), args[0])
	if created < len(rows) || len(rowErrs) > 0 {
		return exitFailure
	}
	return exitOK
}
