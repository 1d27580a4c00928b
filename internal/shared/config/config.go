package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

const defaultConfigRelPath = "configs/conf.yml"

var (
	current   atomic.Pointer[Config]
	mu        sync.Mutex
	listeners []func(Config)
)

// Load 读取配置并设为当前快照。
//
// 约定：
//  1. cfgPath 非空（相对/绝对路径）则优先使用；
//  2. 否则从当前目录开始向上查找 configs/conf.yml。
func Load(cfgPath string) (Config, error) {
	path, err := resolvePath(cfgPath)
	if err != nil {
		return Config{}, err
	}
	return load(path, true)
}

// Get 返回当前配置快照；热更新时整体替换，读方无需加锁。
func Get() Config {
	if c := current.Load(); c != nil {
		return *c
	}
	return Default()
}

// OnChange 注册热更新回调，回调收到新的完整配置。
func OnChange(fn func(Config)) {
	mu.Lock()
	defer mu.Unlock()
	listeners = append(listeners, fn)
}

func publish(c Config) {
	current.Store(&c)

	mu.Lock()
	fns := append([]func(Config){}, listeners...)
	mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func resolvePath(cfgPath string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgPath != "" {
		if !filepath.IsAbs(cfgPath) {
			cfgPath = filepath.Join(curDir, cfgPath)
		}
		return cfgPath, nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config file not exist, searched %s from: %s", defaultConfigRelPath, startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
