package listquery

import (
	"math"
	"strconv"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
)

// Stats — сводка по отфильтрованной (до пагинации) коллекции файлов.
type Stats struct {
	Total       int
	ByExtension map[string]int
	TotalBytes  int64
}

// Count — количество файлов с расширением ext.
func (s Stats) Count(ext string) int {
	return s.ByExtension[ext]
}

// ComputeStats считает количество, разбивку по расширениям и общий размер.
func ComputeStats(files []model.File) Stats {
	stats := Stats{
		Total:       len(files),
		ByExtension: make(map[string]int),
	}
	for _, f := range files {
		if ext := f.Extension(); ext != "" {
			stats.ByExtension[ext]++
		}
		if f.Size > 0 {
			stats.TotalBytes += f.Size
		}
	}
	return stats
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatBytes форматирует размер: 1536 → «1.5 KB».
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}
