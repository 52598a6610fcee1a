package main

import (
	"context"
	"log"
	"time"

	"ai-producer-be/internal/config"
	"ai-producer-be/internal/model"
	"ai-producer-be/pkg/database"
)

func main() {
	cfg := config.Load()

	dbCfg := database.GormConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}
	if err := database.WaitForReady(context.Background(), dbCfg, 10, 2*time.Second); err != nil {
		log.Fatal("Error: Database not reachable:", err)
	}
	db, err := database.NewGormDB(dbCfg)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// Extensions GORM AutoMigrate cannot create itself.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.ChatMessage{},
		&model.KnowledgeChunk{},
		&model.UserStrategy{},
		&model.ThreadBlueprint{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// HNSW index for cosine search; AutoMigrate does not manage vector
	// indexes.
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_knowledge_chunks_embedding
		ON knowledge_chunks USING hnsw (embedding vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index: %v", err)
	}

	log.Println("✅ Migration complete.")
}
