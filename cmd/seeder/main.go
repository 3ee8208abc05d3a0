// cmd/seeder/main.go
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
)

const categoryOther = "General"

// defaultCatalog is used when no --names file is given
var defaultCatalog = []string{
	"Taladro percutor 13mm",
	"Sierra circular 7 1/4",
	"Juego de llaves combinadas",
	"Martillo de carpintero",
	"Destornillador electrico",
	"Cable UTP Cat6 305m",
	"Router inalambrico AC1200",
	"Switch 8 puertos gigabit",
	"Camara IP exterior",
	"Disco SSD 1TB",
	"Manguera de jardin 25m",
	"Tijera de podar",
	"Set de macetas de barro",
	"Cortadora de cesped electrica",
	"Pintura latex blanca 20L",
	"Rodillo antigota",
	"Cinta de enmascarar",
	"Silla de oficina ergonomica",
	"Escritorio de melamina",
	"Lampara de escritorio LED",
}

// CategoryClassifier assigns a category name from keywords in a product name
type CategoryClassifier struct {
	categoryKeywords map[string][]string
}

func NewCategoryClassifier() *CategoryClassifier {
	return &CategoryClassifier{
		categoryKeywords: map[string][]string{
			"Herramientas": {"taladro", "sierra", "llave", "martillo", "destornillador",
				"alicate", "lijadora", "amoladora", "nivel"},
			"Redes": {"cable", "utp", "router", "switch", "wifi", "inalambrico",
				"patch", "fibra", "antena"},
			"Electronica": {"camara", "disco", "ssd", "memoria", "monitor",
				"teclado", "mouse", "parlante"},
			"Jardin": {"manguera", "podar", "maceta", "cesped", "semilla",
				"regadera", "rastrillo"},
			"Pintura": {"pintura", "latex", "rodillo", "brocha", "enmascarar",
				"esmalte", "barniz"},
			"Oficina": {"silla", "escritorio", "lampara", "archivador",
				"estante", "papel"},
		},
	}
}

// Classify picks the category with the most keyword hits, General when none match
func (c *CategoryClassifier) Classify(text string) string {
	textLower := strings.ToLower(text)

	category := categoryOther
	maxScore := 0
	// Sorted so ties resolve the same way on every run
	names := make([]string, 0, len(c.categoryKeywords))
	for name := range c.categoryKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		score := 0
		for _, kw := range c.categoryKeywords[name] {
			if strings.Contains(textLower, kw) {
				score++
			}
		}
		if score > maxScore {
			category = name
			maxScore = score
		}
	}

	return category
}

var skuCleaner = regexp.MustCompile(`[^A-Z0-9]+`)

// generateSKU builds CAT-NAME-NNN from the category and the first word of the name
func generateSKU(category, name string, n int) string {
	prefix := skuCleaner.ReplaceAllString(strings.ToUpper(category), "")
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	word := strings.ToUpper(strings.Fields(name)[0])
	word = skuCleaner.ReplaceAllString(word, "")
	if len(word) > 4 {
		word = word[:4]
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, word, n)
}

// Generator turns product names into spreadsheet-ready products
type Generator struct {
	classifier *CategoryClassifier
	rng        *rand.Rand
	logger     *slog.Logger
}

func NewGenerator(seed uint64, logger *slog.Logger) *Generator {
	return &Generator{
		classifier: NewCategoryClassifier(),
		rng:        rand.New(rand.NewPCG(seed, seed^0x5eed)),
		logger:     logger.With(slog.String("component", "seeder")),
	}
}

// Products returns count products, cycling through names
func (g *Generator) Products(names []string, count int) []domain.Product {
	products := make([]domain.Product, 0, count)
	for i := 0; i < count; i++ {
		base := names[i%len(names)]
		name := base
		if round := i / len(names); round > 0 {
			name = fmt.Sprintf("%s (%d)", base, round+1)
		}

		category := g.classifier.Classify(base)
		cents := 500 + g.rng.IntN(250000)

		products = append(products, domain.Product{
			ID:       domain.ID(fmt.Sprintf("%d", i+1)),
			Name:     name,
			SKU:      generateSKU(category, base, i+1),
			Category: &domain.Category{Name: category},
			Price:    decimal.New(int64(cents), -2),
			Stock:    g.rng.IntN(60),
		})

		g.logger.Debug("product generated",
			slog.String("name", name),
			slog.String("category", category))
	}
	return products
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("names file %s has no product names", path)
	}
	return names, nil
}

func main() {
	flags := pflag.NewFlagSet("seeder", pflag.ExitOnError)
	out := flags.StringP("out", "o", "seed.xlsx", "spreadsheet to write")
	namesFile := flags.String("names", "", "text file with one product name per line")
	count := flags.IntP("count", "n", 40, "number of products to generate")
	seed := flags.Uint64("seed", 1, "random seed for prices and stock")
	logLevel := flags.String("log-level", "info", "log level (debug, info, warn, error)")
	dryRun := flags.Bool("dry-run", false, "print the products instead of writing the file")
	_ = flags.Parse(os.Args[1:])

	slogger := logger.SetupLogger(*logLevel, "text", 1).Logger

	if *count < 1 {
		slogger.Error("count must be positive", slog.Int("count", *count))
		os.Exit(1)
	}

	names := defaultCatalog
	if *namesFile != "" {
		var err error
		if names, err = readNames(*namesFile); err != nil {
			slogger.Error("failed to load names", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	products := NewGenerator(*seed, slogger).Products(names, *count)

	if *dryRun {
		for _, p := range products {
			fmt.Printf("%-12s %-40s %-14s %10s %4d\n", p.SKU, p.Name, p.CategoryName(), p.Price.StringFixed(2), p.Stock)
		}
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		slogger.Error("failed to create output", slog.String("error", err.Error()))
		os.Exit(1)
	}
	writer := &export.XLSXWriter{SheetName: "Products"}
	if err := writer.WriteProducts(f, products); err != nil {
		f.Close()
		slogger.Error("failed to write spreadsheet", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		slogger.Error("failed to close spreadsheet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seed spreadsheet written",
		slog.String("file", *out),
		slog.Int("products", len(products)))
}
