package emit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// WriteArtifacts stages every artifact in a temporary file inside dir and
// renames them into place only after all of them were written and synced.
// Existing targets are moved aside first and restored if any rename fails,
// so dir never ends up with a mix of old and new artifacts.
func WriteArtifacts(dir string, arts []Artifact) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("emit: create output dir: %w", err)
	}
	for _, a := range arts {
		if err := checkTarget(filepath.Join(dir, a.Name)); err != nil {
			return err
		}
	}

	staged := make([]string, 0, len(arts))
	defer func() {
		if err == nil {
			return
		}
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}()
	for _, a := range arts {
		tmp, err := stage(dir, a)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}

	var placed []placement
	defer func() {
		if err == nil {
			for _, p := range placed {
				p.commit()
			}
			return
		}
		for i := len(placed) - 1; i >= 0; i-- {
			placed[i].rollback()
		}
	}()
	for i, a := range arts {
		target := filepath.Join(dir, a.Name)
		p, err := place(dir, staged[i], target)
		if err != nil {
			return err
		}
		placed = append(placed, p)
		log.Info().Str("file", target).Int("bytes", len(a.Data)).Msg("artifact written")
	}
	staged = staged[:0]
	return nil
}

func checkTarget(target string) error {
	info, err := os.Lstat(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("emit: stat %s: %w", target, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("emit: %s exists and is not a regular file", target)
	}
	return nil
}

// placement records one rename into place and the backup of the file it
// replaced, if any.
type placement struct {
	target string
	backup string
}

func place(dir, tmp, target string) (placement, error) {
	p := placement{target: target}
	if _, err := os.Lstat(target); err == nil {
		b, err := os.CreateTemp(dir, "backup-"+filepath.Base(target)+"-*")
		if err != nil {
			return p, fmt.Errorf("emit: back up %s: %w", target, err)
		}
		_ = b.Close()
		if err := os.Rename(target, b.Name()); err != nil {
			_ = os.Remove(b.Name())
			return p, fmt.Errorf("emit: back up %s: %w", target, err)
		}
		p.backup = b.Name()
	}
	if err := os.Rename(tmp, target); err != nil {
		p.rollback()
		return p, fmt.Errorf("emit: rename %s: %w", target, err)
	}
	return p, nil
}

func (p placement) commit() {
	if p.backup != "" {
		_ = os.Remove(p.backup)
	}
}

func (p placement) rollback() {
	if p.backup == "" {
		_ = os.Remove(p.target)
		return
	}
	if err := os.Rename(p.backup, p.target); err != nil {
		log.Error().Err(err).Str("file", p.target).Str("backup", p.backup).Msg("artifact restore failed")
	}
}

func stage(dir string, a Artifact) (string, error) {
	f, err := os.CreateTemp(dir, fmt.Sprintf("writing-%s-*", a.Name))
	if err != nil {
		return "", fmt.Errorf("emit: could not create temporary file for %s: %w", a.Name, err)
	}
	name := f.Name()
	if _, err := f.Write(a.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("emit: write %s: %w", a.Name, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("emit: sync %s: %w", a.Name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("emit: close %s: %w", a.Name, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("emit: chmod %s: %w", a.Name, err)
	}
	return name, nil
}
