package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
)

// DownloadConfig holds download configuration
type DownloadConfig struct {
	Region    string
	OutputDir string
	URL       string
	Filename  string
	Resume    bool
	Verify    bool
}

func runDownload(ctx context.Context, region, outputDir string) error {
	regionConfig, exists := GetRegionConfig(region)
	if !exists {
		return errors.Errorf("unsupported region %q, supported regions: %s",
			region, strings.Join(ListRegions(), ", "))
	}

	config := DownloadConfig{
		Region:    region,
		OutputDir: outputDir,
		URL:       regionConfig.URL,
		Filename:  regionConfig.Filename,
		Resume:    true,
		Verify:    true,
	}

	fmt.Printf("Downloading OSM data for %s\n", regionConfig.Name)
	fmt.Printf("Source: %s\n", config.URL)
	fmt.Printf("Output: %s/%s\n", config.OutputDir, config.Filename)
	fmt.Printf("Description: %s\n", regionConfig.Description)
	fmt.Println()

	if err := downloadFile(ctx, config); err != nil {
		return errors.Wrap(err, "failed to download file")
	}

	fmt.Printf("\nDownload completed successfully!\n")

	return nil
}

// downloadFile handles the actual download with progress tracking and resume support
func downloadFile(ctx context.Context, config DownloadConfig) error {
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	outputPath := filepath.Join(config.OutputDir, config.Filename)

	// Check if file already exists and get its size for resume
	var existingSize int64
	if config.Resume {
		if info, err := os.Stat(outputPath); err == nil {
			existingSize = info.Size()
			fmt.Printf("Resuming download from %d bytes\n", existingSize)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	if existingSize > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", existingSize))
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to make request")
	}
	defer resp.Body.Close()

	// 416 Range Not Satisfiable means the file is already complete
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		fmt.Println("File is already complete")

		return verifyFileIntegrity(config)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var file *os.File
	if existingSize > 0 && resp.StatusCode == http.StatusPartialContent {
		file, err = os.OpenFile(outputPath, os.O_APPEND|os.O_WRONLY, 0o644)
	} else {
		file, err = os.Create(outputPath)
		existingSize = 0
	}
	if err != nil {
		return errors.Wrap(err, "failed to open output file")
	}
	defer file.Close()

	totalSize := existingSize
	if resp.StatusCode == http.StatusOK {
		totalSize = resp.ContentLength
	} else if resp.StatusCode == http.StatusPartialContent {
		totalSize = -1
	}

	progress := &DownloadProgress{
		Total:      totalSize,
		Downloaded: existingSize,
		StartTime:  time.Now(),
	}

	if _, err = io.Copy(io.MultiWriter(file, progress), resp.Body); err != nil {
		return errors.Wrap(err, "failed to download file")
	}

	fmt.Println()

	if config.Verify {
		return verifyFileIntegrity(config)
	}

	return nil
}

// DownloadProgress tracks download progress and displays a progress bar
type DownloadProgress struct {
	Total      int64
	Downloaded int64
	StartTime  time.Time
}

func (dp *DownloadProgress) Write(p []byte) (int, error) {
	n := len(p)
	dp.Downloaded += int64(n)

	dp.displayProgress()
	return n, nil
}

func (dp *DownloadProgress) displayProgress() {
	width := 50

	if dp.Total <= 0 {
		fmt.Printf("\rDownloaded: %s", formatBytes(dp.Downloaded))
		return
	}

	progress := float64(dp.Downloaded) / float64(dp.Total)
	percentage := int(progress * 100)

	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", width-filled)

	elapsed := time.Since(dp.StartTime)
	speed := float64(dp.Downloaded) / elapsed.Seconds()
	eta := time.Duration(float64(dp.Total-dp.Downloaded)/speed) * time.Second

	fmt.Printf("\r[%s] %d%% | %s/%s | %s/s | ETA: %s",
		bar,
		percentage,
		formatBytes(dp.Downloaded),
		formatBytes(dp.Total),
		formatBytes(int64(speed)),
		formatDuration(eta),
	)
}

// formatBytes formats bytes into human readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats duration into human readable format
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm%.0fs", d.Minutes(), d.Seconds()-d.Minutes()*60)
	}
	return fmt.Sprintf("%.0fh%.0fm", d.Hours(), d.Minutes()-d.Hours()*60)
}

// verifyFileIntegrity prints the checksum of the downloaded file
func verifyFileIntegrity(config DownloadConfig) error {
	outputPath := filepath.Join(config.OutputDir, config.Filename)

	fmt.Printf("Verifying file integrity: %s\n", outputPath)

	sum, err := fileSHA256(outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("SHA256: %s\n", sum)

	return nil
}

// fileSHA256 computes the hex SHA256 checksum of a file
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file for checksum")
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
