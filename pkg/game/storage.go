package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储使用的应用名（决定数据目录）
const DefaultAppName = "fishy_escape"

// OpenStorage 打开跨平台持久化存储
//
// 参数：
//   - appName: 应用名，为空时使用 DefaultAppName
//
// 返回：
//   - *gdata.Manager: 存储管理器
//   - error: 打开失败时返回错误，调用方应降级为内存模式（传 nil 给各 Manager）
func OpenStorage(appName string) (*gdata.Manager, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %q: %w", appName, err)
	}
	log.Printf("[Storage] opened gdata storage for %s", appName)
	return manager, nil
}
