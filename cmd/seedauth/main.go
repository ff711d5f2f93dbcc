// cmd/seedauth/main.go — Creates/updates the app's single credential and
// default settings in the local store.
// Usage: go run ./cmd/seedauth [username] [password]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"stockbook/internal/config"
	"stockbook/internal/model"
	"stockbook/internal/repository"
	"stockbook/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := "admin"
	password := "admin123"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	gw, err := storage.Open(cfg.DataPath)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer gw.Close()

	ctx := context.Background()
	authRepo := repository.NewAuthRepository(gw)
	if err := authRepo.Save(ctx, model.Credential{Username: username, PasswordHash: string(hash)}); err != nil {
		log.Fatalf("save credential error: %v", err)
	}

	// Seed default settings on first run only — never clobber user edits.
	settingsRepo := repository.NewSettingsRepository(gw)
	if _, getErr := gw.Get(ctx, storage.KeySettings); errors.Is(getErr, storage.ErrKeyNotFound) {
		if err := settingsRepo.Save(ctx, model.Settings{Currency: repository.DefaultCurrency}); err != nil {
			log.Fatalf("save settings error: %v", err)
		}
	}

	fmt.Printf("credential '%s' created/updated in %s\n", username, cfg.DataPath)
}
