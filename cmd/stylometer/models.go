package main

import (
	"stylometer/internal/config"
	"stylometer/internal/db"
	"stylometer/internal/store"
	"stylometer/internal/textmodel"
)

// loadModel reads a stored model from the model directory, or from the sqlite
// catalog when fromCatalog is set.
func loadModel(cfg *config.Config, name string, fromCatalog bool) (*textmodel.Model, error) {
	if fromCatalog {
		return db.LoadModel(cfg.CatalogPath, name)
	}
	return store.Read(cfg.ModelDir, name)
}
