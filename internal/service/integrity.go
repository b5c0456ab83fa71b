package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/model"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type SlotStatus struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

type DoctorReport struct {
	Slots              []SlotStatus `json:"slots"`
	InvalidSlots       int          `json:"invalid_slots"`
	EntriesWithoutID   int          `json:"entries_without_id"`
	DuplicateBodyDates int          `json:"duplicate_body_dates"`
	ClearedSlots       int          `json:"cleared_slots,omitempty"`
}

// BackupFileName returns the default backup file name for t.
func BackupFileName(t time.Time) string {
	return "caloriecam-" + t.UTC().Format("20060102-150405") + ".db"
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies backupPath over dbPath after verifying the sidecar
// checksum when one exists.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks that every storage slot decodes into its record type. With
// fix, slots that fail to decode are removed so the app starts clean.
func RunDoctor(sqldb *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{Slots: make([]SlotStatus, 0, len(Slots))}
	invalid := make([]string, 0)
	for _, key := range Slots {
		raw, ok, err := db.GetValue(sqldb, key)
		if err != nil {
			return report, fmt.Errorf("doctor read %s: %w", key, err)
		}
		st := SlotStatus{Key: key, Present: ok, Valid: true}
		if ok {
			if err := inspectSlot(key, raw, &st, &report); err != nil {
				st.Valid = false
				st.Error = err.Error()
				report.InvalidSlots++
				invalid = append(invalid, key)
			}
		}
		report.Slots = append(report.Slots, st)
	}

	if fix {
		for _, key := range invalid {
			if err := db.DeleteValue(sqldb, key); err != nil {
				return report, fmt.Errorf("doctor clear %s: %w", key, err)
			}
			report.ClearedSlots++
		}
	}
	return report, nil
}

func inspectSlot(key, raw string, st *SlotStatus, report *DoctorReport) error {
	switch key {
	case KeyProfile:
		var p model.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return err
		}
		st.Records = 1
	case KeyLanguage:
		if raw != string(model.LanguageArabic) && raw != string(model.LanguageEnglish) {
			return fmt.Errorf("unknown language %q", raw)
		}
		st.Records = 1
	case KeyHistory:
		var items []model.AnalysisResult
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return err
		}
		for _, it := range items {
			if strings.TrimSpace(it.ID) == "" {
				report.EntriesWithoutID++
			}
		}
		st.Records = len(items)
	case KeyWeights:
		var items []model.WeightEntry
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return err
		}
		dates := make([]string, 0, len(items))
		for _, it := range items {
			dates = append(dates, it.Date)
		}
		report.DuplicateBodyDates += countDuplicates(dates)
		st.Records = len(items)
	case KeyMeasurements:
		var items []model.MeasurementsEntry
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return err
		}
		dates := make([]string, 0, len(items))
		for _, it := range items {
			dates = append(dates, it.Date)
		}
		report.DuplicateBodyDates += countDuplicates(dates)
		st.Records = len(items)
	}
	return nil
}

func countDuplicates(values []string) int {
	seen := map[string]bool{}
	n := 0
	for _, v := range values {
		if seen[v] {
			n++
		}
		seen[v] = true
	}
	return n
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

// FileSHA256 returns the hex sha256 of the file at path.
func FileSHA256(path string) (string, error) {
	return fileSHA256(path)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
