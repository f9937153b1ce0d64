package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const backupInterval = 30 * time.Second

// backupInfo is the metadata stored next to a crash backup so a later
// run can tell which file it belongs to.
type backupInfo struct {
	OriginalPath string    `json:"original_path"`
	Timestamp    time.Time `json:"timestamp"`
}

func backupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "markedit", "backups")
}

func backupPathForFile(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(backupDir(), fmt.Sprintf("%x.bak", hash[:8]))
}

func (e *Editor) startBackupTimer() {
	ticker := time.NewTicker(backupInterval)
	go func() {
		for range ticker.C {
			if e.quit {
				ticker.Stop()
				return
			}
			e.saveBackup()
		}
	}()
}

// saveBackup writes the unsaved document to the backup directory. Clean
// documents do not need one, and any stale backup for them is removed.
func (e *Editor) saveBackup() {
	if e.doc.Path == "" {
		return
	}
	if !e.dirty {
		e.cleanBackup()
		return
	}
	dir := backupDir()
	if dir == "" {
		return
	}
	os.MkdirAll(dir, 0755)

	bakPath := backupPathForFile(e.doc.Path)
	if err := os.WriteFile(bakPath, []byte(e.ctrl.Text()), 0644); err != nil {
		return
	}
	info := backupInfo{
		OriginalPath: e.doc.Path,
		Timestamp:    time.Now(),
	}
	if data, err := json.MarshalIndent(info, "", "  "); err == nil {
		os.WriteFile(bakPath+".json", data, 0644)
	}
}

func (e *Editor) cleanBackup() {
	if e.doc.Path == "" {
		return
	}
	bakPath := backupPathForFile(e.doc.Path)
	os.Remove(bakPath)
	os.Remove(bakPath + ".json")
}

// checkForBackup looks for a crash backup belonging to the open file.
// It returns the backup text when one exists and is newer than the last
// change to the file itself.
func (e *Editor) checkForBackup() (string, bool) {
	if e.doc.Path == "" {
		return "", false
	}
	bakPath := backupPathForFile(e.doc.Path)
	data, err := os.ReadFile(bakPath + ".json")
	if err != nil {
		return "", false
	}
	var info backupInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return "", false
	}
	if info.OriginalPath != e.doc.Path {
		return "", false
	}
	if stat, err := os.Stat(e.doc.Path); err == nil {
		if !info.Timestamp.After(stat.ModTime()) {
			e.cleanBackup()
			return "", false
		}
	}
	text, err := os.ReadFile(bakPath)
	if err != nil {
		return "", false
	}
	return string(text), true
}
