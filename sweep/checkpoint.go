package sweep

import (
	"errors"
	"io/fs"
	"os"

	"github.com/StudioSol/set"

	jsonutil "tanuki/utils/json"
)

// Checkpoint : 완료된 파라미터 조합 키의 저장소. 과거에는 모듈 전역 JSON
// 파일 경로를 하드코딩했지만, 호출자가 주입하는 인터페이스로 바꿨다.
type Checkpoint interface {
	Load() (*set.LinkedHashSetString, error)
	Save(completed *set.LinkedHashSetString) error
}

// FileCheckpoint persists completed combination keys as a JSON string array.
type FileCheckpoint struct {
	Path string
}

func NewFileCheckpoint(path string) *FileCheckpoint {
	return &FileCheckpoint{Path: path}
}

func (c *FileCheckpoint) Load() (*set.LinkedHashSetString, error) {
	completed := set.NewLinkedHashSetString()

	body, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return completed, nil
		}
		return nil, err
	}

	keys := jsonutil.DeserializeMessageBody[[]string](body)
	completed.Add(keys...)
	return completed, nil
}

func (c *FileCheckpoint) Save(completed *set.LinkedHashSetString) error {
	keys := make([]string, 0, completed.Length())
	for key := range completed.Iter() {
		keys = append(keys, key)
	}
	return os.WriteFile(c.Path, jsonutil.SerializeMessageBodyIndent(keys), 0o644)
}

// NopCheckpoint : 재개가 필요 없는 일회성 스윕용.
type NopCheckpoint struct{}

func (NopCheckpoint) Load() (*set.LinkedHashSetString, error) {
	return set.NewLinkedHashSetString(), nil
}

func (NopCheckpoint) Save(*set.LinkedHashSetString) error {
	return nil
}
