package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yunusemre274/World-Car/internal/errors"
)

// runPrepare downloads a region and converts it in one step.
func runPrepare(ctx context.Context, region, output string) error {
	regionConfig, exists := GetRegionConfig(region)
	if !exists {
		return errors.Errorf("unsupported region %q", region)
	}

	downloadDir := os.TempDir()
	if err := runDownload(ctx, region, downloadDir); err != nil {
		return err
	}

	input := filepath.Join(downloadDir, regionConfig.Filename)

	fmt.Println()

	return runConvert(ctx, input, output, region, true)
}
