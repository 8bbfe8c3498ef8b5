package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

// FileSource 讀取食譜 JSON 陣列檔案
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

// NewFileSource 創建檔案來源
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load 讀取檔案；無法解析的單筆資料記錄警告後略過
func (f *FileSource) Load(ctx context.Context) ([]common.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", f.Path, err)
	}

	recipes, err := DecodeRecipes(data)
	if err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", f.Path, err)
	}
	return recipes, nil
}

// DecodeRecipes 解析食譜 JSON 陣列；null 或格式錯誤的元素會被略過
func DecodeRecipes(data []byte) ([]common.Recipe, error) {
	var raw []json.RawMessage
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		return nil, err
	}

	recipes := make([]common.Recipe, 0, len(raw))
	for i, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var r common.Recipe
		if err := json.Unmarshal(item, &r); err != nil {
			common.LogWarn("略過格式錯誤的食譜",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// WriteFile 以縮排 JSON 寫出食譜，先寫暫存檔再改名
func WriteFile(path string, recipes []common.Recipe) error {
	if recipes == nil {
		recipes = []common.Recipe{}
	}
	data, err := json.MarshalIndent(recipes, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".corpus-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close corpus: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename corpus: %w", err)
	}
	return nil
}
