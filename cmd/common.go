/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/urduproxy/internal/config"
	"github.com/valpere/urduproxy/internal/handler"
	"github.com/valpere/urduproxy/internal/store"
	"github.com/valpere/urduproxy/internal/translator"
)

// newLogger builds a JSON production logger at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// buildHandler wires the translate handler from cfg. The returned close
// function releases the history database when one is configured.
func buildHandler(cfg config.Config, log *zap.Logger) (*handler.Handler, func(), error) {
	svc := translator.NewMicrosoftService(cfg.Timeout)

	if cfg.APIKey == "" {
		log.Warn("TRANSLATOR_API_KEY is not set; translate requests will fail with 500")
	}

	if cfg.DBPath == "" {
		return handler.New(svc, cfg.Service(), log, nil), func() {}, nil
	}

	db, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	log.Info("recording translation history", zap.String("db", cfg.DBPath))

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
	return handler.New(svc, cfg.Service(), log, db), closeFn, nil
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
