package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"BoraAli-App/internal/infrastructure/database"
	"BoraAli-App/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	dir := flag.String("dir", "migrations", "マイグレーションファイルのディレクトリ")
	flag.Parse()
	if flag.NArg() != 1 || (flag.Arg(0) != "up" && flag.Arg(0) != "down") {
		fmt.Fprintln(os.Stderr, "Usage: migrate [-dir migrations] up|down")
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger.SetGlobalLogger(logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), Format: "text"}))

	pg, err := database.NewPostgreSQLClient(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ PostgreSQL接続失敗")
	}
	defer pg.Close()

	driver, err := postgres.WithInstance(pg.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ マイグレーションドライバーの作成に失敗")
	}

	absPath, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ マイグレーションディレクトリの解決に失敗")
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(absPath), "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ マイグレーションの初期化に失敗")
	}

	switch flag.Arg(0) {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("direction", flag.Arg(0)).Msg("❌ マイグレーションに失敗")
	}

	version, dirty, _ := m.Version()
	log.Info().Str("direction", flag.Arg(0)).Uint("version", version).Bool("dirty", dirty).Msg("✅ マイグレーション完了")
}
