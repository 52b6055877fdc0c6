package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 4 << 10 // 4 KiB: матрица растёт квадратично
)

var languageSeeds = []string{
	"",
	" ",
	"the cat sat",
	"the big cat sat",
	"color",
	"colour",
	"Hello,  world!\n\tBye.",
	`He said "hi" (twice) [ok] {x}.`,
	"„Labas“, – tarė jis…",
	"naïve café",
	"日本語 テキスト",
	"''quoted''",
	"a\x00b",
}

// addCorpusSeeds adds every pair of language seeds plus testdata/*.txt files.
func addCorpusSeeds(f *testing.F) {
	for _, a := range languageSeeds {
		for _, b := range languageSeeds {
			f.Add(a, b)
		}
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	var texts []string
	// проходим по дереву testdata, добавляем все *.txt файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil || len(src) > maxSeedBytes {
			return nil
		}
		texts = append(texts, string(src))
		return nil
	})
	for i := 1; i < len(texts); i++ {
		f.Add(texts[i-1], texts[i])
	}
}
