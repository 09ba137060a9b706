package pascifar

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting build metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDownload is called after each archive download.
	RecordDownload(archive string, bytes int64, duration time.Duration, err error)

	// RecordExtract is called after each archive extraction.
	RecordExtract(archive string, files int, duration time.Duration, err error)

	// RecordImage is called after each image is written.
	RecordImage(target string, bytes int, duration time.Duration)

	// RecordSkip is called for each record without a selected label.
	RecordSkip(source string)

	// RecordManifest is called after the manifest is written.
	RecordManifest(rows int, duration time.Duration, err error)

	// RecordUpload is called after each file uploaded by Publish.
	RecordUpload(name string, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDownload(string, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordExtract(string, int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordImage(string, int, time.Duration)             {}
func (NoopMetricsCollector) RecordSkip(string)                                  {}
func (NoopMetricsCollector) RecordManifest(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordUpload(string, int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Downloads       atomic.Int64
	DownloadErrors  atomic.Int64
	DownloadedBytes atomic.Int64
	Extractions     atomic.Int64
	ExtractedFiles  atomic.Int64
	ImagesWritten   atomic.Int64
	ImageBytes      atomic.Int64
	ImageNanos      atomic.Int64
	RecordsSkipped  atomic.Int64
	ManifestRows    atomic.Int64
	ManifestErrors  atomic.Int64
	Uploads         atomic.Int64
	UploadErrors    atomic.Int64
	UploadedBytes   atomic.Int64
}

// RecordDownload implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDownload(_ string, bytes int64, _ time.Duration, err error) {
	b.Downloads.Add(1)
	b.DownloadedBytes.Add(bytes)
	if err != nil {
		b.DownloadErrors.Add(1)
	}
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(_ string, files int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	b.Extractions.Add(1)
	b.ExtractedFiles.Add(int64(files))
}

// RecordImage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImage(_ string, bytes int, duration time.Duration) {
	b.ImagesWritten.Add(1)
	b.ImageBytes.Add(int64(bytes))
	b.ImageNanos.Add(duration.Nanoseconds())
}

// RecordSkip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkip(string) {
	b.RecordsSkipped.Add(1)
}

// RecordManifest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordManifest(rows int, _ time.Duration, err error) {
	if err != nil {
		b.ManifestErrors.Add(1)
		return
	}
	b.ManifestRows.Add(int64(rows))
}

// RecordUpload implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpload(_ string, bytes int, _ time.Duration, err error) {
	b.Uploads.Add(1)
	if err != nil {
		b.UploadErrors.Add(1)
		return
	}
	b.UploadedBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	images := b.ImagesWritten.Load()
	var avg int64
	if images > 0 {
		avg = b.ImageNanos.Load() / images
	}
	return BasicMetricsStats{
		Downloads:       b.Downloads.Load(),
		DownloadErrors:  b.DownloadErrors.Load(),
		DownloadedBytes: b.DownloadedBytes.Load(),
		Extractions:     b.Extractions.Load(),
		ExtractedFiles:  b.ExtractedFiles.Load(),
		ImagesWritten:   images,
		ImageBytes:      b.ImageBytes.Load(),
		ImageAvgNanos:   avg,
		RecordsSkipped:  b.RecordsSkipped.Load(),
		ManifestRows:    b.ManifestRows.Load(),
		ManifestErrors:  b.ManifestErrors.Load(),
		Uploads:         b.Uploads.Load(),
		UploadErrors:    b.UploadErrors.Load(),
		UploadedBytes:   b.UploadedBytes.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector metrics.
type BasicMetricsStats struct {
	Downloads       int64
	DownloadErrors  int64
	DownloadedBytes int64
	Extractions     int64
	ExtractedFiles  int64
	ImagesWritten   int64
	ImageBytes      int64
	ImageAvgNanos   int64
	RecordsSkipped  int64
	ManifestRows    int64
	ManifestErrors  int64
	Uploads         int64
	UploadErrors    int64
	UploadedBytes   int64
}

// observer adapts a MetricsCollector to the component observer interfaces.
type observer struct {
	mc MetricsCollector
}

func (o observer) OnDownload(archive string, bytes int64, d time.Duration, err error) {
	o.mc.RecordDownload(archive, bytes, d, err)
}

func (o observer) OnExtract(archive string, files int, d time.Duration, err error) {
	o.mc.RecordExtract(archive, files, d, err)
}

func (o observer) OnImage(target string, bytes int, d time.Duration) {
	o.mc.RecordImage(target, bytes, d)
}

func (o observer) OnSkip(source string) {
	o.mc.RecordSkip(source)
}
