package editor

import (
	"fmt"
	"path/filepath"
	"time"

	"markedit/buffer"
	"markedit/clipboardx"
	"markedit/config"
	"markedit/file"
	"markedit/markdown"
	"markedit/preview"
	"markedit/scrollsync"
	"markedit/search"
	"markedit/textenc"
	"markedit/ui"
	"markedit/wrap"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const messageDuration = 5 * time.Second

// fileWatchEvent is posted into the tcell event loop when the open file
// changes on disk.
type fileWatchEvent struct {
	tcell.EventTime
}

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	theme  *config.ColorScheme

	ctrl  *buffer.Controller
	doc   *file.Document
	ec    *config.EditorConfigSettings
	dirty bool

	renderer *preview.Renderer
	preview  *ui.PreviewPane
	status   *ui.StatusBar
	findBar  *ui.FindBar
	confirm  *ui.ConfirmBar
	session  search.Session
	clip     *clipboardx.Clipboard
	sync     *scrollsync.Synchronizer

	showPreview bool
	wordWrap    bool
	syncScroll  bool

	// Viewport over the wrapped row layout.
	rows      []wrap.LineInfo
	scrollRow int
	scrollCol int // horizontal scroll, used only when wrapping is off
	anchor    int // selection anchor for shift-movement
	goalCol   int // sticky column for vertical movement, -1 when unset

	// Geometry from the last layout pass.
	width, height int
	paneW         int // editor pane including gutter and scrollbar
	gutterW       int
	textX, textY  int
	textW, textH  int
	previewX      int
	previewW      int

	message     string
	messageTime time.Time

	watcher       *fsnotify.Watcher
	watchPath     string
	suppressWatch bool

	quit         bool
	mouseDown    bool
	caretAtStart bool // caret sits at the selection's start, not its end
	replacing    bool // programmatic text swap in progress, skip search rerun
}

func New(cfg *config.Config) *Editor {
	e := &Editor{
		cfg:         cfg,
		theme:       cfg.GetTheme(),
		ctrl:        buffer.NewController(),
		doc:         file.NewDocument(),
		renderer:    preview.New(),
		preview:     ui.NewPreviewPane(),
		status:      ui.NewStatusBar(),
		clip:        clipboardx.New(),
		showPreview: cfg.ShowPreview,
		wordWrap:    cfg.WordWrap,
		syncScroll:  cfg.SyncScroll,
		goalCol:     -1,
	}
	e.preview.Theme = e.theme
	e.status.Theme = e.theme
	e.sync = scrollsync.New(&editorRegion{e}, e.preview)
	e.ctrl.OnChange = e.textChanged
	return e
}

// editorRegion adapts the raw pane's viewport to the scroll-sync contract.
type editorRegion struct {
	e *Editor
}

func (r *editorRegion) ScrollTop() int    { return r.e.scrollRow }
func (r *editorRegion) ScrollHeight() int { return len(r.e.rows) }
func (r *editorRegion) ClientHeight() int { return r.e.textH }

func (r *editorRegion) SetScrollTop(top int) {
	r.e.scrollRow = top
	r.e.clampScroll()
}

func (e *Editor) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	e.screen = screen
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.
		Background(e.theme.Background).
		Foreground(e.theme.Foreground))

	defer func() {
		e.saveSession()
		e.cleanBackup()
		e.stopWatching()
		screen.Fini()
	}()

	if path != "" {
		if err := e.open(path); err != nil {
			return err
		}
	}
	e.refreshPreview()
	e.startBackupTimer()

	for !e.quit {
		e.render()
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *fileWatchEvent:
			e.handleFileChanged()
		}
	}
	return nil
}

func (e *Editor) open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	doc, err := file.Read(abs)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.doc = doc
	e.ec = config.FindEditorConfig(abs)
	e.applyEditorConfig()
	e.ctrl.SetMarkdown(markdown.IsMarkdownFile(abs))
	e.ctrl.SetText(doc.Text)
	e.dirty = false
	e.scrollRow = 0
	e.restoreSession()
	e.startWatching(abs)
	if doc.ReadOnly {
		e.setMessage("read-only file")
	}
	if text, ok := e.checkForBackup(); ok {
		e.confirm = ui.NewConfirmBar(ui.ConfirmRecover, filepath.Base(abs))
		e.confirm.OnAnswer = func(answer rune) {
			e.confirm = nil
			if answer != 'y' {
				e.cleanBackup()
				return
			}
			e.ctrl.LoadText(text)
			e.setMessage("recovered unsaved changes")
		}
	}
	return nil
}

// applyEditorConfig lets per-project .editorconfig settings override
// the document's line ending and target encoding.
func (e *Editor) applyEditorConfig() {
	if e.ec == nil {
		return
	}
	switch e.ec.EndOfLine {
	case "lf":
		e.doc.LineEnding = file.LF
	case "crlf":
		e.doc.LineEnding = file.CRLF
	}
	switch e.ec.Charset {
	case "utf-8":
		e.doc.Encoding = textenc.UTF8
	case "utf-8-bom":
		e.doc.Encoding = textenc.UTF8BOM
	case "utf-16le":
		e.doc.Encoding = textenc.UTF16LE
	case "utf-16be":
		e.doc.Encoding = textenc.UTF16BE
	case "latin1":
		e.doc.Encoding = "ISO-8859-1"
	}
}

func (e *Editor) save() {
	if e.doc.Path == "" {
		e.setMessage("untitled document, no save path")
		return
	}
	if e.doc.ReadOnly {
		e.setMessage("file is read-only")
		return
	}
	opts := file.SaveOptions{
		TrimTrailingSpace:  e.cfg.TrimTrailingSpace,
		InsertFinalNewline: e.cfg.InsertFinalNewline,
	}
	if e.ec != nil {
		if e.ec.TrimTrailingWhitespace != nil {
			opts.TrimTrailingSpace = *e.ec.TrimTrailingWhitespace
		}
		if e.ec.InsertFinalNewline != nil {
			opts.InsertFinalNewline = *e.ec.InsertFinalNewline
		}
	}
	// The save itself trips the watcher; swallow the next event.
	e.suppressWatch = true
	if err := e.doc.Save(e.ctrl.Text(), opts); err != nil {
		e.suppressWatch = false
		e.setMessage("save failed: " + err.Error())
		return
	}
	if e.doc.Text != e.ctrl.Text() {
		// Cleanup options rewrote the content; show what was written.
		keep, _ := e.ctrl.Selection()
		e.ctrl.LoadText(e.doc.Text)
		e.ctrl.SetSelection(keep, keep)
	}
	e.dirty = false
	e.cleanBackup()
	e.setMessage("saved " + filepath.Base(e.doc.Path))
}

// textChanged runs after every buffer mutation.
func (e *Editor) textChanged() {
	e.dirty = true
	e.goalCol = -1
	if e.findBar != nil && !e.replacing {
		e.session.Run(e.ctrl.Text(), e.findBar.Input, e.findBar.Options())
	}
	e.refreshPreview()
}

func (e *Editor) refreshPreview() {
	if e.showPreview {
		e.preview.SetContent(e.renderer.Lines(e.ctrl.Text()))
	}
}

func (e *Editor) setMessage(msg string) {
	e.message = msg
	e.messageTime = time.Now()
	if e.screen != nil {
		// Wake the event loop when the message expires so it clears
		// without waiting for user input.
		time.AfterFunc(messageDuration, func() {
			if e.screen != nil {
				e.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		})
	}
}

func (e *Editor) currentMessage() string {
	if e.message != "" && time.Since(e.messageTime) < messageDuration {
		return e.message
	}
	return ""
}

func (e *Editor) startWatching(path string) {
	e.stopWatching()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	// Watch the directory: editors that replace the file on save break a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return
	}
	e.watcher = watcher
	e.watchPath = path

	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Debounce the burst of events a single save produces.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(100*time.Millisecond, func() {
					if e.screen != nil {
						we := &fileWatchEvent{}
						we.SetEventNow()
						e.screen.PostEvent(we)
					}
				})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (e *Editor) stopWatching() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
}

func (e *Editor) handleFileChanged() {
	if e.suppressWatch {
		e.suppressWatch = false
		return
	}
	if !e.dirty {
		// Clean buffer: reload in place, keeping the caret where it was.
		e.reloadFromDisk()
		return
	}
	// Unsaved edits conflict with the on-disk change; ask.
	if e.confirm == nil {
		e.confirm = ui.NewConfirmBar(ui.ConfirmReload, filepath.Base(e.watchPath))
		e.confirm.OnAnswer = func(answer rune) {
			e.confirm = nil
			if answer != 'y' {
				e.setMessage("kept local changes")
				return
			}
			e.reloadFromDisk()
		}
	}
}

func (e *Editor) reloadFromDisk() {
	doc, err := file.Read(e.watchPath)
	if err != nil {
		e.setMessage("reload failed: " + err.Error())
		return
	}
	e.doc = doc
	e.ctrl.LoadText(doc.Text)
	e.dirty = false
	e.setMessage("reloaded from disk")
}

func (e *Editor) requestQuit() {
	if !e.dirty {
		e.quit = true
		return
	}
	name := e.doc.Path
	if name == "" {
		name = "untitled"
	} else {
		name = filepath.Base(name)
	}
	e.confirm = ui.NewConfirmBar(ui.ConfirmSave, name)
	e.confirm.OnAnswer = func(answer rune) {
		e.confirm = nil
		switch answer {
		case 'y':
			e.save()
			if !e.dirty {
				e.quit = true
			}
		case 'n':
			e.quit = true
		}
	}
}
