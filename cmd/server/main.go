// @title           Sejf plików API
// @version         1.0
// @description     Encrypted-credential login and a private folder/file tree per user.
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sejf-plikow/internal/account"
	"sejf-plikow/internal/api"
	"sejf-plikow/internal/auth"
	"sejf-plikow/internal/config"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/logging"
	"sejf-plikow/internal/storage"
	"sejf-plikow/internal/tree"
	"sejf-plikow/internal/websocket"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	_ "sejf-plikow/docs"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Error("Nie można wczytać konfiguracji", zap.Error(err))
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Error("Nie można zainicjować loggera", zap.Error(err))
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		logger.Error("Nie można połączyć się z bazą danych", zap.Error(err))
		return err
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		logger.Error("Nie można pingować bazy danych", zap.Error(err))
		return err
	}
	logger.Info("Pomyślnie połączono z bazą danych")

	if err := database.Migrate(ctx, dbpool); err != nil {
		logger.Error("Nie można zastosować schematu bazy danych", zap.Error(err))
		return err
	}

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		logger.Error("Nie można zainicjować local storage", zap.Error(err))
		return err
	}
	logger.Info("Pliki będą przechowywane w katalogu", zap.String("path", cfg.Storage.Path))

	keys, err := auth.LoadOrCreateKeyManager(cfg.Keys.PrivatePath, cfg.Keys.PublicPath, cfg.Keys.Passphrase)
	if err != nil {
		logger.Error("Nie można wczytać pary kluczy RSA", zap.Error(err))
		return err
	}
	logger.Info("Wczytano parę kluczy RSA", zap.String("public_key", cfg.Keys.PublicPath))

	store := database.NewStore(dbpool)

	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)

	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	accounts := account.NewService(store, auth.NewCredentialCodec(keys), issuer, logger)

	files, err := tree.NewService(store, localStorage, wsHub, logger)
	if err != nil {
		logger.Error("Nie można zainicjować usługi drzewa plików", zap.Error(err))
		return err
	}

	released, err := files.ReleaseOrphanedBlobs(ctx)
	if err != nil {
		logger.Warn("Nie udało się zwolnić osieroconych plików", zap.Error(err))
	} else if released > 0 {
		logger.Info("Zwolniono osierocone pliki", zap.Int("count", released))
	}

	server := api.NewServer(cfg, store, accounts, files, keys, wsHub, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Uruchamianie serwera", zap.String("addr", cfg.Server.Addr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Nie można uruchomić serwera", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		logger.Info("Zatrzymywanie serwera")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Błąd podczas zatrzymywania serwera", zap.Error(err))
			return err
		}
	}

	logger.Info("Serwer zatrzymany")
	return nil
}
