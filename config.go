package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// Config represents the bot configuration
type Config struct {
	BotToken   string
	DBPath     string
	AdminUsers []string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		DBPath:     "./bot.db",
		AdminUsers: []string{},
	}

	// Try to load from .env file
	if err := loadEnvFile(".env"); err == nil {
		log.Println("Loaded .env file")
	}

	config.BotToken = os.Getenv("BOT_TOKEN")

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DBPath = dbPath
	}

	if adminUsers := os.Getenv("ADMIN_USERS"); adminUsers != "" {
		config.AdminUsers = parseCommaSeparated(adminUsers)
	}

	if config.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return config, nil
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			// Remove quotes if present
			value = strings.Trim(value, `"'`)

			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
