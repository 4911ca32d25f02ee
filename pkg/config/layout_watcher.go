package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// layoutReloadDebounce 连续写入时的合并间隔
const layoutReloadDebounce = 300 * time.Millisecond

// LayoutWatcher 监视布局文件并在修改后重新加载
//
// 监视在后台 goroutine 中进行，解析成功的布局通过 Updates() 通道投递，
// 由 UI 线程在 Update 中取出并整体替换当前布局。
type LayoutWatcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	path    string
	updates chan *SkbLayoutConfig
	done    chan struct{}
}

// NewLayoutWatcher 开始监视指定布局文件
//
// 监视文件所在目录而非文件本身，编辑器的"写临时文件再重命名"也能被捕获。
func NewLayoutWatcher(path string) (*LayoutWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create layout watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve layout path %s: %w", path, err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	lw := &LayoutWatcher{
		watcher: watcher,
		path:    absPath,
		updates: make(chan *SkbLayoutConfig, 1),
		done:    make(chan struct{}),
	}
	go lw.watchLoop(watcher)

	log.Printf("[LayoutWatcher] Watching %s for changes", absPath)
	return lw, nil
}

// Updates 返回重新加载后的布局通道
func (lw *LayoutWatcher) Updates() <-chan *SkbLayoutConfig {
	return lw.updates
}

// Stop 停止监视，可重复调用
func (lw *LayoutWatcher) Stop() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.watcher == nil {
		return
	}
	close(lw.done)
	lw.watcher.Close()
	lw.watcher = nil
	log.Printf("[LayoutWatcher] Stopped")
}

func (lw *LayoutWatcher) watchLoop(w *fsnotify.Watcher) {
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != lw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(layoutReloadDebounce, lw.reload)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("[LayoutWatcher] Watcher error: %v", err)

		case <-lw.done:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// reload 重新解析布局文件，失败时保留当前布局
func (lw *LayoutWatcher) reload() {
	cfg, err := LoadSkbLayoutConfig(lw.path)
	if err != nil {
		log.Printf("[LayoutWatcher] Warning: reload failed, keeping current layout: %v", err)
		return
	}

	// 只保留最新的一份
	select {
	case <-lw.updates:
	default:
	}
	select {
	case lw.updates <- cfg:
		log.Printf("[LayoutWatcher] Layout %q reloaded", cfg.Name)
	case <-lw.done:
	}
}
