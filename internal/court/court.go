package court

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed court_list.json
var courtListJSON []byte

var (
	once     sync.Once
	courts   []string
	parseErr error
)

// List 全部法院名称，首次调用时解析内嵌列表
func List() ([]string, error) {
	once.Do(func() {
		if e := json.Unmarshal(courtListJSON, &courts); e != nil {
			parseErr = fmt.Errorf("解析法院列表失败: %w", e)
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	out := make([]string, len(courts))
	copy(out, courts)
	return out, nil
}

// Contains 是否为已知法院
func Contains(name string) bool {
	list, e := List()
	if e != nil {
		return false
	}
	for _, c := range list {
		if c == name {
			return true
		}
	}
	return false
}
