package main

import (
	"context"
	"log"
	"os"
	"time"

	"course-platform/internal/config"
	"course-platform/internal/database"
)

// Таблицы, без которых сервер не стартует корректно
var requiredTables = []string{
	"users",
	"email_verifications",
	"categories",
	"courses",
	"course_categories",
	"chapters",
	"subchapters",
	"registrations",
	"feedbacks",
	"course_bans",
	"email_jobs",
}

// fileExists проверяет существование файла
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func main() {
	log.Println("Проверка подключения к базе данных...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Вне Docker хост "postgres" не резолвится, подключаемся к localhost
	isInDocker := os.Getenv("container") != "" || fileExists("/.dockerenv")
	if cfg.Database.Host == "postgres" && !isInDocker {
		log.Println("⚠️  Обнаружен хост 'postgres', но скрипт запущен вне Docker, использую 'localhost'")
		cfg.Database.Host = "localhost"
	}

	log.Printf("Параметры подключения:")
	log.Printf("  Host: %s", cfg.Database.Host)
	log.Printf("  Port: %s", cfg.Database.Port)
	log.Printf("  User: %s", cfg.Database.User)
	log.Printf("  Database: %s", cfg.Database.DBName)
	log.Printf("  SSL Mode: %s", cfg.Database.SSLMode)

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("❌ Ошибка проверки подключения (Ping): %v", err)
	}
	log.Println("✅ Подключение к базе данных установлено")

	var version int64
	var dirty bool
	row := db.WithContext(ctx).Raw("SELECT version, dirty FROM schema_migrations LIMIT 1").Row()
	if err := row.Scan(&version, &dirty); err != nil {
		log.Fatalf("❌ Миграции не применены: %v (выполните go run ./cmd/migrate)", err)
	}
	if dirty {
		log.Fatalf("❌ Миграция %d в грязном состоянии, нужен cmd/migrate -force", version)
	}
	log.Printf("✅ Версия схемы: %d", version)

	missing := 0
	for _, table := range requiredTables {
		if !db.WithContext(ctx).Migrator().HasTable(table) {
			log.Printf("❌ Нет таблицы %s", table)
			missing++
		}
	}
	if missing > 0 {
		log.Fatalf("❌ Отсутствует таблиц: %d", missing)
	}

	log.Println("🎉 Все проверки пройдены! База данных готова к работе.")
}
