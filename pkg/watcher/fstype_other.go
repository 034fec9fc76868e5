//go:build !linux

package watcher

// DetectFilesystemType is only implemented on Linux; elsewhere the watcher
// uses fsnotify unless polling is forced.
func DetectFilesystemType(path string) FilesystemType {
	if path == "" {
		return FSTypeUnknown
	}
	return FSTypeLocal
}
