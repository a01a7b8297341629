package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/learnhub/learnhub-backend/config"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/internal/catalog"
	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/learnhub/learnhub-backend/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./cmd/seed <catalog.xlsx> [image-dir]")
	}

	filePath := os.Args[1]
	imageDir := ""
	if len(os.Args) > 2 {
		imageDir = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	parsed, err := catalog.ReadWorkbook(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Courses to import: %d\n", len(parsed.Entries))
	printSkipped(parsed.Skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	ctx := context.Background()

	var images catalog.ImageUploader
	if imageDir != "" {
		if cfg.S3.Bucket == "" {
			fmt.Println("AWS_S3_BUCKET is not set, course images will be skipped.")
		} else {
			images = storage.NewS3Storage(ctx, cfg.S3)
		}
	}

	importer := catalog.NewImporter(
		repository.NewUserRepository(db.GetDB()),
		repository.NewCourseRepository(db.GetDB()),
		images,
		imageDir,
		catalog.DefaultBatchSize,
	)
	result, err := importer.Import(ctx, parsed.Entries)
	if err != nil {
		log.Fatal("Failed to import courses:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total courses imported: %d\n", result.Imported)
	printSkipped(result.Skipped)
}

func printSkipped(rows []catalog.SkippedRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Printf("Skipped rows: %d\n", len(rows))
	for _, row := range rows {
		fmt.Printf("  row %d: %s\n", row.Row, row.Reason)
	}
}
