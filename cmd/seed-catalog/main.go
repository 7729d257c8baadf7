package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/database"
	"github.com/macuoit/articulation-backend/internal/logger"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

// Loads catalog or equivalency rows from CSV exports.
//
//	seed-catalog -file 2023-2024.csv -partition 2023-2024
//	seed-catalog -file equivalencies.csv -equivalencies
//
// Catalog CSV columns: course_code, combined, common_code, institution,
// common_course_title. Equivalency CSV columns: send_course_code,
// send_edition_low_year, receive_course_code, receive_course_title,
// receive_units. The first line is a header; the combined column is found
// by the names in CATALOG_COMBINED_COLUMNS, falling back to position 1.
func main() {
	var (
		file          string
		partition     string
		equivalencies bool
	)
	flag.StringVar(&file, "file", "", "Path to the CSV export")
	flag.StringVar(&partition, "partition", "", "Catalog edition the rows belong to, e.g. 2023-2024")
	flag.BoolVar(&equivalencies, "equivalencies", false, "Load institution-pair equivalency rows instead of catalog rows")
	flag.Parse()

	if file == "" || (!equivalencies && partition == "") {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open CSV")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read CSV header")
	}

	var loaded, skipped int
	if equivalencies {
		loaded, skipped = loadEquivalencies(ctx, reader, repository.NewEquivalencyRepository(pool))
	} else {
		catalogRepo := repository.NewCatalogRepository(pool)
		combinedIdx := combinedColumn(header, cfg.CombinedColumns)
		loaded, skipped = loadCatalog(ctx, reader, catalogRepo, partition, combinedIdx)

		if counts, err := catalogRepo.PartitionCounts(ctx); err == nil {
			fmt.Println("\nCatalog partitions:")
			for _, p := range counts {
				fmt.Printf("  %s: %d rows\n", p.Name, p.RowCount)
			}
		}
	}

	fmt.Printf("\nSeed completed! Loaded %d rows, skipped %d.\n", loaded, skipped)
}

// combinedColumn picks the column carrying the combined "code + title"
// text: the first configured candidate name present in the header wins,
// defaulting to position 1.
func combinedColumn(header, candidates []string) int {
	for _, want := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}
	return 1
}

func loadCatalog(ctx context.Context, reader *csv.Reader, repo *repository.CatalogRepository, partition string, combinedIdx int) (loaded, skipped int) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil || len(record) < 5 || combinedIdx >= len(record) {
			skipped++
			continue
		}

		row := &model.CatalogRow{
			CourseCode:        record[0],
			Combined:          record[combinedIdx],
			CommonCode:        record[2],
			Institution:       record[3],
			CommonCourseTitle: record[4],
			SourcePartition:   partition,
		}
		if row.Combined == "" || row.Institution == "" {
			skipped++
			continue
		}

		if err := repo.Create(ctx, row); err != nil {
			fmt.Printf("Error inserting row %q: %v\n", row.Combined, err)
			skipped++
			continue
		}
		loaded++
		if loaded%500 == 0 {
			fmt.Printf("Loaded %d rows...\n", loaded)
		}
	}
}

func loadEquivalencies(ctx context.Context, reader *csv.Reader, repo *repository.EquivalencyRepository) (loaded, skipped int) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil || len(record) < 5 {
			skipped++
			continue
		}

		row := &model.EquivalencyRow{
			SendCourseCode:     record[0],
			SendEditionLowYear: record[1],
			ReceiveCourseCode:  record[2],
			ReceiveCourseTitle: record[3],
			ReceiveUnits:       record[4],
		}
		if row.SendCourseCode == "" || row.ReceiveCourseCode == "" {
			skipped++
			continue
		}

		if err := repo.Create(ctx, row); err != nil {
			fmt.Printf("Error inserting equivalency %q: %v\n", row.SendCourseCode, err)
			skipped++
			continue
		}
		loaded++
	}
}
