package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch 监听配置文件，被改写后重新读取并送到 out
// 解析失败只打日志，继续用旧配置
// 监听的是所在目录：很多编辑器保存时是“写临时文件再改名”
func Watch(ctx context.Context, filename string, out chan<- *Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(filename)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(filename)
				if err != nil {
					log.Printf("config: reload %s: %v", filename, err)
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config: watcher: %v", err)
			}
		}
	}()

	return nil
}
