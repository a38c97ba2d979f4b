package homepage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/khanhhoang/homepage/shells"
)

// assetFS is the shell assets directory served under /public.
func (a *App) assetFS() (fs.FS, error) {
	return fs.Sub(a.shellFS, shells.AssetsDir)
}

// EjectShells copies the embedded shells into dir so they can be edited
// and served with ShellsDir. Existing files are left alone unless
// overwrite is set. It returns the files it wrote.
func EjectShells(dir string, overwrite bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(shells.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		if !overwrite {
			if _, err := os.Stat(outPath); err == nil {
				return nil
			}
		}
		data, err := fs.ReadFile(shells.FS, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("homepage: eject shells: %w", err)
	}
	return written, nil
}
