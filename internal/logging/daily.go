package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// dailyFile appends to <dir>/<prefix>-<YYYYMMDD>, switching files when the
// date of a write differs from the open file's date.
// Not goroutine-safe: only the async drain goroutine writes to it.
type dailyFile struct {
	dir    string
	prefix string
	now    func() time.Time

	name string
	f    *os.File
}

func newDailyFile(dir, prefix string) *dailyFile {
	return &dailyFile{dir: dir, prefix: prefix, now: time.Now}
}

// fileName returns the log file name for t.
func (d *dailyFile) fileName(t time.Time) string {
	return fmt.Sprintf("%s-%s", d.prefix, t.Format("20060102"))
}

func (d *dailyFile) Write(p []byte) (int, error) {
	name := d.fileName(d.now())
	if name != d.name || d.f == nil {
		if d.f != nil {
			d.f.Close()
			d.f = nil
		}
		f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return 0, err
		}
		d.f = f
		d.name = name
	}
	return d.f.Write(p)
}

func (d *dailyFile) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
