package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"actuarial-data-service/internal/config"
	"actuarial-data-service/internal/database/minio"
	"actuarial-data-service/internal/database/postgres"
	"actuarial-data-service/internal/database/redis"
	"actuarial-data-service/internal/event"
	"actuarial-data-service/internal/export"
	"actuarial-data-service/internal/generator"
	"actuarial-data-service/internal/models"
	"actuarial-data-service/internal/repository"
)

// Scale presets matching the demo dataset sizes.
var scales = map[string]struct {
	Policies int
	Claims   int
}{
	"sample": {Policies: 100_000, Claims: 500_000},
	"medium": {Policies: 1_000_000, Claims: 5_000_000},
	"full":   {Policies: 15_000_000, Claims: 100_000_000},
}

func main() {
	scale := flag.String("scale", "sample", "data scale to generate: sample, medium or full")
	policyCount := flag.Int("policies", 0, "override policy count (0 uses the scale preset)")
	claimCount := flag.Int("claims", 0, "override claim count (0 uses the scale preset)")
	outputDir := flag.String("output-dir", "", "output directory for generated files (default from OUTPUT_DIR)")
	seed := flag.Uint64("seed", 0, "override generator seed (0 uses GENERATOR_SEED)")
	schemaPath := flag.String("schema", "schema.sql", "path to the database schema file")
	load := flag.Bool("load", false, "load generated tables into PostgreSQL")
	upload := flag.Bool("upload", false, "upload generated files to object storage")
	publish := flag.Bool("publish", false, "record the run in the catalog and publish a completion event")
	showLatest := flag.Bool("show-latest", false, "print the most recently cataloged run and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.New()
	if *outputDir != "" {
		cfg.GeneratorCfg.OutputDir = *outputDir
	}
	if *seed != 0 {
		cfg.GeneratorCfg.Seed = *seed
	}

	if *showLatest {
		if err := showLatestRun(cfg); err != nil {
			slog.Error("failed to read run catalog", "error", err)
			os.Exit(1)
		}
		return
	}

	preset, ok := scales[*scale]
	if !ok {
		slog.Error("unknown scale", "scale", *scale)
		os.Exit(1)
	}
	if *policyCount > 0 {
		preset.Policies = *policyCount
	}
	if *claimCount > 0 {
		preset.Claims = *claimCount
	}

	if err := run(cfg, preset.Policies, preset.Claims, *schemaPath, *load, *upload, *publish); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func showLatestRun(cfg *config.DataServiceConfig) error {
	catalog, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	record, err := catalog.LatestRun(context.Background())
	if err != nil {
		return err
	}
	if record == nil {
		slog.Info("no runs recorded yet")
		return nil
	}

	slog.Info("latest run",
		"run_id", record.RunID,
		"seed", record.Seed,
		"policies", record.PolicyCount,
		"claims", record.ClaimCount,
		"cohorts", record.CohortCount,
		"output_dir", record.OutputDir,
		"duration_secs", record.DurationSecs,
		"completed_at", record.CompletedAt.Format(time.RFC3339))
	return nil
}

func run(cfg *config.DataServiceConfig, policies, claims int, schemaPath string, load, upload, publish bool) error {
	ctx := context.Background()
	runID := uuid.New().String()
	start := time.Now()

	slog.Info("starting generation run",
		"run_id", runID,
		"policies", policies,
		"claims", claims,
		"seed", cfg.GeneratorCfg.Seed,
		"output_dir", cfg.GeneratorCfg.OutputDir)

	if err := os.MkdirAll(cfg.GeneratorCfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Each generator gets its own seeded state so the three tables are
	// independently reproducible.
	seed := cfg.GeneratorCfg.Seed
	policyTable, err := generator.NewPolicyGenerator(seed).Generate(policies)
	if err != nil {
		return err
	}
	claimTable, err := generator.NewClaimsGenerator(seed + 1).Generate(policies, claims)
	if err != nil {
		return err
	}
	reserveTable, err := generator.NewReserveGenerator(seed + 2).Generate(claimTable)
	if err != nil {
		return err
	}

	outDir := cfg.GeneratorCfg.OutputDir
	files := []string{
		filepath.Join(outDir, "policies.csv"),
		filepath.Join(outDir, "claims.csv"),
		filepath.Join(outDir, "reserves.csv"),
	}
	if err := export.WritePolicies(files[0], policyTable); err != nil {
		return err
	}
	if err := export.WriteClaims(files[1], claimTable); err != nil {
		return err
	}
	if err := export.WriteReserves(files[2], reserveTable); err != nil {
		return err
	}

	if load {
		if err := loadTables(ctx, cfg, schemaPath, policyTable, claimTable, reserveTable); err != nil {
			return err
		}
	}

	if upload {
		mc, err := minio.NewMinioClient(cfg.MinioCfg)
		if err != nil {
			return err
		}
		if _, err := mc.UploadDatasets(ctx, files); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)

	if publish {
		// Catalog and event failures are logged but do not fail the run; the
		// generated tables are already on disk.
		record := redis.RunRecord{
			RunID:        runID,
			Seed:         seed,
			PolicyCount:  len(policyTable),
			ClaimCount:   len(claimTable),
			CohortCount:  len(reserveTable),
			OutputDir:    outDir,
			DurationSecs: elapsed.Seconds(),
			CompletedAt:  time.Now().UTC(),
		}
		if catalog, err := redis.NewRedisClient(cfg.RedisCfg); err != nil {
			slog.Warn("run catalog unavailable", "error", err)
		} else {
			if err := catalog.RecordRun(ctx, record); err != nil {
				slog.Warn("failed to record run", "error", err)
			}
			catalog.Close()
		}

		if publisher, err := event.NewPublisher(cfg.RabbitMQCfg); err != nil {
			slog.Warn("event broker unavailable", "error", err)
		} else {
			evt := event.DatasetGeneratedEvent{
				RunID:       runID,
				Seed:        seed,
				PolicyCount: len(policyTable),
				ClaimCount:  len(claimTable),
				CohortCount: len(reserveTable),
				OutputDir:   outDir,
				GeneratedAt: time.Now().UTC(),
			}
			if err := publisher.PublishDatasetGenerated(ctx, evt); err != nil {
				slog.Warn("failed to publish dataset event", "error", err)
			}
			publisher.Close()
		}
	}

	slog.Info("generation run complete",
		"run_id", runID,
		"policies", len(policyTable),
		"claims", len(claimTable),
		"cohorts", len(reserveTable),
		"elapsed", elapsed.Round(time.Millisecond))
	return nil
}

func loadTables(
	ctx context.Context,
	cfg *config.DataServiceConfig,
	schemaPath string,
	policyTable []models.Policy,
	claimTable []models.Claim,
	reserveTable []models.ContractGroup,
) error {
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg, schemaPath)
	if err != nil {
		return err
	}
	defer db.Close()

	policyRepo := repository.NewPolicyRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	reserveRepo := repository.NewReserveRepository(db)

	if err := policyRepo.Truncate(ctx); err != nil {
		return err
	}
	if err := policyRepo.BulkInsert(ctx, policyTable); err != nil {
		return err
	}
	if err := claimRepo.Truncate(ctx); err != nil {
		return err
	}
	if err := claimRepo.BulkInsert(ctx, claimTable); err != nil {
		return err
	}
	if err := reserveRepo.Truncate(ctx); err != nil {
		return err
	}
	if err := reserveRepo.BulkInsert(ctx, reserveTable); err != nil {
		return err
	}

	// Post-load verification: counts must match what was generated.
	counts := []struct {
		table    string
		expected int
		count    func(context.Context) (int64, error)
	}{
		{"policies", len(policyTable), policyRepo.Count},
		{"claims", len(claimTable), claimRepo.Count},
		{"reserves", len(reserveTable), reserveRepo.Count},
	}
	for _, c := range counts {
		loaded, err := c.count(ctx)
		if err != nil {
			return err
		}
		if loaded != int64(c.expected) {
			return fmt.Errorf("table %s loaded %d rows, expected %d", c.table, loaded, c.expected)
		}
		slog.Info("table loaded", "table", c.table, "rows", loaded)
	}
	return nil
}
