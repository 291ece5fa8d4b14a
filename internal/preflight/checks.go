package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"napcon/internal/config"
	"napcon/internal/consolidate"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// required bytes available to unprivileged users.
func CheckFreeSpace(name, path string, required int64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if required > 0 && available < uint64(required) {
		return Result{Name: name, Detail: fmt.Sprintf("%s has %s free, need %s",
			path, humanize.IBytes(available), humanize.IBytes(uint64(required)))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s free on %s", humanize.IBytes(available), path)}
}

// PendingBytes sums the sizes of the exports the next run will append.
// Outputs kept in the input folder and files already in the processed log are
// not counted unless rebuild is set, in which case every logged file is
// appended again.
func PendingBytes(cfg *config.Config, rebuild bool) (int64, error) {
	entries, err := consolidate.Inspect(consolidate.OptionsFromConfig(cfg))
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		if e.Status == consolidate.EntryPending || (rebuild && e.Status == consolidate.EntryProcessed) {
			total += e.Size
		}
	}
	return total, nil
}
