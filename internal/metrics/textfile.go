package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile сохраняет метрики в формате textfile collector node_exporter.
// CLI живёт секунды, поэтому вместо /metrics-эндпоинта метрики сбрасываются в файл.
// Файл перезаписывается целиком: значения относятся к одному запуску команды,
// и счётчики *_total в нём начинаются с нуля при каждом вызове CLI.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if path == "" {
		return errors.New("metrics textfile path is required")
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
