package benchmarks

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/adapters/httpapi"
	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/adapters/session"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers"
)

func BenchmarkStoreOperations(b *testing.B) {
	store, ids, err := seededStore(1000)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.Run("List", func(b *testing.B) {
		params := memstore.QueryParams{Page: 10, Limit: 50}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _ = store.FindAllProducts(ctx, params)
		}
	})

	b.Run("Search", func(b *testing.B) {
		params := memstore.QueryParams{Page: 1, Limit: 50, Search: "prueba 99"}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _ = store.FindAllProducts(ctx, params)
		}
	})

	b.Run("Sell", func(b *testing.B) {
		adj := domain.StockAdjustment{Quantity: 1, Reason: "bench"}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = store.Sell(ctx, ids[i%len(ids)], adj, nil)
		}
	})
}

func BenchmarkSpreadsheet(b *testing.B) {
	products := benchProducts(500)

	var encoded bytes.Buffer
	if err := (&export.XLSXWriter{}).WriteProducts(&encoded, products); err != nil {
		b.Fatal(err)
	}

	b.Run("Write", func(b *testing.B) {
		w := &export.XLSXWriter{}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var buf bytes.Buffer
			_ = w.WriteProducts(&buf, products)
		}
	})

	b.Run("Read", func(b *testing.B) {
		data := encoded.Bytes()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _ = export.ReadProducts(data)
		}
	})
}

func BenchmarkGatewayList(b *testing.B) {
	store, _, err := seededStore(200)
	if err != nil {
		b.Fatal(err)
	}
	logger := discardLogger()
	tokens := handlers.NewTokens("benchmark-secret-that-is-long-enough", time.Hour)

	server := httptest.NewServer(handlers.NewRouter(store, tokens, handlers.RouterConfig{
		Version:     "bench",
		Environment: "test",
	}, logger))
	defer server.Close()

	token, err := tokens.Issue(domain.User{ID: "1", Name: "Bench", Role: domain.RoleAdmin})
	if err != nil {
		b.Fatal(err)
	}
	sessions := session.NewMemoryStore()
	ctx := context.Background()
	if err := sessions.Set(ctx, domain.Session{Token: token, User: domain.User{Name: "Bench"}}); err != nil {
		b.Fatal(err)
	}

	client, err := httpapi.NewClient(server.URL+"/api", sessions, logger)
	if err != nil {
		b.Fatal(err)
	}
	gateway := httpapi.NewProductGateway(client)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gateway.List(ctx, domain.ListParams{Page: 1 + i%4, Limit: 50}); err != nil {
			b.Fatal(err)
		}
	}
}
