package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file when it changes on disk, so physics can be
// tuned while the playground is running. Reload failures are logged and
// skipped; the last good config stands.
type Watcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	Configs chan *Config
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching path's directory (editors often replace the file
// rather than write it in place, so watching the file alone misses saves).
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		path:    path,
		log:     log,
		watcher: fw,
		Configs: make(chan *Config, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var lastReload time.Time
	target := filepath.Clean(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// Editors fire several events per save.
			if time.Since(lastReload) < 100*time.Millisecond {
				continue
			}
			lastReload = time.Now()

			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("config reloaded", zap.String("path", w.path))

			// Drop a stale pending config rather than block.
			select {
			case w.Configs <- cfg:
			default:
				select {
				case <-w.Configs:
				default:
				}
				w.Configs <- cfg
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		case <-w.closeCh:
			return
		}
	}
}
