package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/test/helpers"
)

type runnerFixture struct {
	api    *helpers.StubAPI
	out    *bytes.Buffer
	runner *runner
}

func newRunnerFixture(t *testing.T, withCredentials bool) *runnerFixture {
	t.Helper()

	api := helpers.StartStubAPI(t)
	cfg := helpers.LoadTestConfig()
	cfg.API.BaseURL = api.BaseURL()
	if withCredentials {
		cfg.Credentials.Email = helpers.StubAdminEmail
		cfg.Credentials.Password = helpers.StubAdminPassword
	}

	out := &bytes.Buffer{}
	logger := helpers.TestLogger()
	deps, err := initializeDependencies(context.Background(), cfg, strings.NewReader(""), out, true, logger)
	require.NoError(t, err)
	t.Cleanup(deps.cleanup)

	return &runnerFixture{
		api: api,
		out: out,
		runner: &runner{
			cfg:    cfg,
			deps:   deps,
			list:   listOptions{page: 1},
			logger: logger,
		},
	}
}

func (f *runnerFixture) seed(t *testing.T, name string, stock int) domain.Product {
	t.Helper()
	ctx := context.Background()

	cat, ok := f.api.Store.FindCategoryByName(ctx, "Herramientas")
	if !ok {
		var err error
		cat, err = f.api.Store.SaveCategory(ctx, "Herramientas")
		require.NoError(t, err)
	}
	p, err := f.api.Store.SaveProduct(ctx, domain.Product{
		Name:       name,
		Price:      decimal.NewFromInt(1500),
		Stock:      stock,
		CategoryID: cat.ID,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestRunner_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "guarded_command_without_session", args: []string{"products"}, wantCode: exitNoLogin},
		{name: "sell_without_session", args: []string{"sell", "1", "2"}, wantCode: exitNoLogin},
		{name: "unknown_command", args: []string{"frobnicate"}, wantCode: exitBadUsage},
		{name: "help_is_open", args: []string{"help"}, wantCode: exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRunnerFixture(t, false)
			assert.Equal(t, tt.wantCode, f.runner.run(context.Background(), tt.args))
		})
	}
}

func TestRunner_LoginWithConfiguredCredentials(t *testing.T) {
	f := newRunnerFixture(t, true)
	ctx := context.Background()

	require.Equal(t, exitOK, f.runner.run(ctx, []string{"login"}))
	assert.True(t, f.runner.deps.app.Guard.Allow(ctx))

	f.out.Reset()
	require.Equal(t, exitOK, f.runner.run(ctx, []string{"whoami"}))
	assert.Contains(t, f.out.String(), "<admin@stockdesk.test> role=ADMIN")

	require.Equal(t, exitOK, f.runner.run(ctx, []string{"logout"}))
	assert.Equal(t, exitNoLogin, f.runner.run(ctx, []string{"whoami"}))
}

func TestRunner_ProductsAndSell(t *testing.T) {
	f := newRunnerFixture(t, true)
	ctx := context.Background()
	drill := f.seed(t, "Taladro", 10)
	f.seed(t, "Sierra", 4)

	require.Equal(t, exitOK, f.runner.run(ctx, []string{"login"}))

	f.out.Reset()
	require.Equal(t, exitOK, f.runner.run(ctx, []string{"products"}))
	assert.Contains(t, f.out.String(), "Taladro")
	assert.Contains(t, f.out.String(), "Sierra")

	require.Equal(t, exitOK, f.runner.run(ctx, []string{"sell", drill.ID.String(), "3", "mostrador"}))

	stored, err := f.api.Store.FindProductByID(ctx, drill.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Stock)
}

func TestRunner_SearchAndPageFlags(t *testing.T) {
	f := newRunnerFixture(t, true)
	ctx := context.Background()
	for _, name := range []string{"Cable A", "Cable B", "Martillo"} {
		f.seed(t, name, 1)
	}
	require.Equal(t, exitOK, f.runner.run(ctx, []string{"login"}))

	f.runner.list = listOptions{page: 1, search: "cable"}
	f.out.Reset()
	require.Equal(t, exitOK, f.runner.run(ctx, []string{"products"}))
	assert.Contains(t, f.out.String(), "Cable A")
	assert.NotContains(t, f.out.String(), "Martillo")

	f.runner.list = listOptions{page: 9}
	assert.Equal(t, exitFailure, f.runner.run(ctx, []string{"products"}))
}

func TestRunner_DeleteIsAdminOnly(t *testing.T) {
	f := newRunnerFixture(t, false)
	f.runner.cfg.Credentials.Email = helpers.StubClientEmail
	f.runner.cfg.Credentials.Password = helpers.StubClientPassword
	ctx := context.Background()
	drill := f.seed(t, "Taladro", 10)

	require.Equal(t, exitOK, f.runner.run(ctx, []string{"login"}))
	assert.Equal(t, exitFailure, f.runner.run(ctx, []string{"delete", drill.ID.String()}))

	_, err := f.api.Store.FindProductByID(ctx, drill.ID)
	assert.NoError(t, err)
}
