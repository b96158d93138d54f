// Package launch 解析桌面版和终端版共用的启动参数
//
// 参数来源的优先级：命令行 > 环境变量 > .env 文件 > 默认值。
package launch

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/gonewx/fishy-escape/pkg/config"
)

// 环境变量名
const (
	EnvSeed       = "FISHY_SEED"
	EnvEventsAddr = "FISHY_EVENTS_ADDR"
	EnvVerbose    = "FISHY_VERBOSE"
)

// Options 启动参数
type Options struct {
	Verbose    bool
	ConfigPath string // 外部配置文件，为空时使用嵌入配置
	Seed       int64
	EventsAddr string
	Fullscreen bool
}

// LoadDotEnv 加载当前目录下的 .env（不存在时忽略）
// 已存在的环境变量不会被覆盖
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Printf("[Launch] loaded environment from %s", path)
	return nil
}

// FromEnv 用环境变量填充默认值
func FromEnv(getenv func(string) string) (Options, error) {
	var opts Options
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		opts.Seed = seed
	}
	opts.EventsAddr = getenv(EnvEventsAddr)
	if v := getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		opts.Verbose = verbose
	}
	return opts, nil
}

// Parse 解析命令行参数，未给出的参数取环境变量的值
//
// 参数：
//   - fsName: FlagSet 名称（用于帮助信息）
//   - args: 命令行参数（不含程序名）
//   - getenv: 环境变量读取函数（通常为 os.Getenv）
func Parse(fsName string, args []string, getenv func(string) string) (Options, error) {
	opts, err := FromEnv(getenv)
	if err != nil {
		return opts, err
	}

	flags := flag.NewFlagSet(fsName, flag.ContinueOnError)
	flags.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "显示详细日志")
	flags.StringVar(&opts.ConfigPath, "config", "", "游戏参数 YAML 文件（默认使用内置配置）")
	flags.Int64Var(&opts.Seed, "seed", opts.Seed, "固定随机种子（0 表示每局随机）")
	flags.StringVar(&opts.EventsAddr, "events-addr", opts.EventsAddr, "事件桥 websocket 监听地址，如 :8090")
	flags.BoolVar(&opts.Fullscreen, "fullscreen", false, "全屏启动")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParseOS 加载 .env 后解析 os.Args
func ParseOS(fsName string) (Options, error) {
	if err := LoadDotEnv(""); err != nil {
		return Options{}, err
	}
	return Parse(fsName, os.Args[1:], os.Getenv)
}

// LoadGameConfig 按启动参数加载游戏配置
func (o Options) LoadGameConfig() (*config.GameConfig, error) {
	if o.ConfigPath != "" {
		return config.LoadGameConfig(o.ConfigPath)
	}
	return config.LoadEmbeddedGameConfig()
}
