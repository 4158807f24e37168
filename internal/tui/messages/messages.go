package messages

// ErrorMsg carries a failure reported by the directory watcher.
type ErrorMsg struct {
	Err error
}

// DirectoryChangedMsg reports that entries were added to or removed from Path.
type DirectoryChangedMsg struct {
	Path string
}

// WatcherClosedMsg is sent once the directory watcher has stopped.
type WatcherClosedMsg struct{}

// NoticeExpiredMsg dismisses the notification with the given ID.
type NoticeExpiredMsg struct {
	ID int
}
