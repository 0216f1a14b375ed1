package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/recruit-board/config"
	"github.com/target/recruit-board/internal/blob"
	"github.com/target/recruit-board/internal/core"
)

// StorageDeps contains configuration for the resume blob store.
type StorageDeps struct {
	Storage config.StorageConfig
	// BaseURL prefixes local-backend download links.
	BaseURL string
	Logger  *slog.Logger
}

// ConnectBlobStore builds the configured blob store. For S3 the bucket is
// created when missing.
//
//nolint:ireturn // the backend is selected at runtime.
func ConnectBlobStore(ctx context.Context, deps StorageDeps) (core.BlobStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, err := blob.New(ctx, blob.Config{
		Type:       deps.Storage.Type,
		Endpoint:   deps.Storage.Endpoint,
		Region:     deps.Storage.Region,
		AccessKey:  deps.Storage.AccessKey,
		SecretKey:  deps.Storage.SecretKey,
		Bucket:     deps.Storage.Bucket,
		UseSSL:     deps.Storage.UseSSL,
		BasePath:   deps.Storage.BasePath,
		BaseURL:    deps.BaseURL,
		SigningKey: deps.Storage.SigningKey,
	})
	if err != nil {
		return nil, fmt.Errorf("connect blob store: %w", err)
	}

	if deps.Logger != nil {
		attrs := []any{"type", deps.Storage.Type}
		if deps.Storage.Type == config.StorageTypeLocal {
			attrs = append(attrs, "base_path", deps.Storage.BasePath)
			if deps.Storage.SigningKey == "" {
				deps.Logger.Warn("STORAGE_SIGNING_KEY is empty; download links will not survive a restart")
			}
		} else {
			attrs = append(attrs, "endpoint", deps.Storage.Endpoint, "bucket", deps.Storage.Bucket)
		}
		deps.Logger.Info("blob store ready", attrs...)
	}
	return store, nil
}
